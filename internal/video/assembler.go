package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// AssemblyError reports segments that cannot form one timeline, or an
// encoder that rejected the stream. Geometry mismatches are caught here,
// before any encoder invocation - silently concatenating segments of
// different resolutions is a classic source of corrupted output.
type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assembly: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("assembly: %s", e.Reason)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Assembler concatenates segments in timeline order and binds the mixed
// audio track starting at time zero.
type Assembler struct {
	// run executes the encoder; swapped out in tests.
	run func(ctx context.Context, args ...string) error
}

func NewAssembler() *Assembler {
	return &Assembler{run: runFFmpeg}
}

func runFFmpeg(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %v, output: %s", err, out)
	}
	return nil
}

// Assemble writes the final artifact at outPath from the segments, in the
// given order, with audioPath (a WAV file; empty for a silent video) as the
// single audio track. tmpDir holds the concat list file. Segment files are
// left on disk whatever happens; on failure they are diagnostic material,
// on success cleanup is the caller's call.
func (a *Assembler) Assemble(ctx context.Context, segments []Segment, audioPath, outPath, tmpDir string) error {
	if len(segments) == 0 {
		return &AssemblyError{Reason: "no segments"}
	}
	first := segments[0]
	for _, s := range segments[1:] {
		if s.Width != first.Width || s.Height != first.Height {
			return &AssemblyError{Reason: fmt.Sprintf(
				"resolution mismatch: %s is %dx%d, %s is %dx%d",
				first.Path, first.Width, first.Height, s.Path, s.Width, s.Height)}
		}
		if s.FPS != first.FPS {
			return &AssemblyError{Reason: fmt.Sprintf(
				"frame rate mismatch: %s is %d fps, %s is %d fps",
				first.Path, first.FPS, s.Path, s.FPS)}
		}
	}

	listPath := filepath.Join(tmpDir, "inputs.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return &AssemblyError{Reason: "write concat list", Err: err}
	}
	for _, s := range segments {
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			f.Close()
			return &AssemblyError{Reason: "write concat list", Err: err}
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", abs); err != nil {
			f.Close()
			return &AssemblyError{Reason: "write concat list", Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return &AssemblyError{Reason: "write concat list", Err: err}
	}

	args := []string{
		"-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
	}
	if audioPath != "" {
		args = append(args,
			"-i", audioPath,
			"-c:v", "copy",
			"-c:a", "aac",
			"-map", "0:v", "-map", "1:a",
			"-shortest",
		)
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, outPath)

	if err := a.run(ctx, args...); err != nil {
		return &AssemblyError{Reason: "encoder rejected the stream", Err: err}
	}
	return nil
}
