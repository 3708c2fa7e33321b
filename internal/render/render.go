// Package render drives the frame renderer and transition compositor across
// a timeline, emitting ordered frame streams to a sink.
package render

import (
	"fmt"

	"github.com/ivlev/series2video/internal/frame"
)

// Sink receives frames strictly in playback order. The ffmpeg segment
// writer is the production implementation; tests substitute an in-memory
// one.
type Sink interface {
	WriteFrame(f *frame.Frame) error
}

// FrameError aborts a whole sequence: no partial segment is usable once a
// frame in the middle cannot be produced. Index is the zero-based position
// of the offending frame.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("render frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
