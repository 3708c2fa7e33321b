// Package video owns the encoder boundary: streaming ordered raw frames
// into per-scene segment files and assembling segments plus the mixed audio
// track into the final artifact. FFmpeg does the codec work; this package's
// responsibility ends at handing it frames in order with a declared frame
// rate and resolution.
package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/ivlev/series2video/internal/frame"
)

// Segment is one contiguous scene persisted as a media file, tagged with
// the geometry and rate the assembler must verify.
type Segment struct {
	Path       string
	FrameCount int
	Width      int
	Height     int
	FPS        int
}

// Duration returns the segment's playback length in seconds.
func (s Segment) Duration() float64 {
	return float64(s.FrameCount) / float64(s.FPS)
}

// SegmentWriter pipes packed RGB24 frames into one ffmpeg process over
// stdin, avoiding intermediate image files on disk. Frames must be written
// in playback order; the writer only counts and forwards them.
type SegmentWriter struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	log     bytes.Buffer
	seg     Segment
	written int
}

// NewSegmentWriter starts the encoder for a segment at path. quality is the
// x264 CRF value.
func NewSegmentWriter(ctx context.Context, path string, width, height, fps, quality int) (*SegmentWriter, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", fmt.Sprintf("%d", quality),
		"-pix_fmt", "yuv420p",
		path,
	)

	w := &SegmentWriter{
		cmd: cmd,
		seg: Segment{Path: path, Width: width, Height: height, FPS: fps},
	}
	cmd.Stdout = &w.log
	cmd.Stderr = &w.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}
	return w, nil
}

// WriteFrame streams one frame to the encoder. The frame must match the
// segment geometry; a mismatch here would corrupt every later frame in the
// stream.
func (w *SegmentWriter) WriteFrame(f *frame.Frame) error {
	if f.Width != w.seg.Width || f.Height != w.seg.Height {
		return fmt.Errorf("frame %d is %dx%d, segment is %dx%d",
			f.Index, f.Width, f.Height, w.seg.Width, w.seg.Height)
	}
	if _, err := w.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("write frame %d: %w", f.Index, err)
	}
	w.written++
	return nil
}

// Close finishes the stream and waits for the encoder. On success it
// returns the completed segment descriptor.
func (w *SegmentWriter) Close() (Segment, error) {
	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return Segment{}, fmt.Errorf("ffmpeg: %v\nlog: %s", err, w.log.String())
	}
	w.seg.FrameCount = w.written
	return w.seg, nil
}
