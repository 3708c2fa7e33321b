package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stubAssembler() (*Assembler, *int, *[]string) {
	calls := 0
	var gotArgs []string
	a := NewAssembler()
	a.run = func(ctx context.Context, args ...string) error {
		calls++
		gotArgs = args
		return nil
	}
	return a, &calls, &gotArgs
}

func TestAssembleResolutionMismatch(t *testing.T) {
	a, calls, _ := stubAssembler()

	segments := []Segment{
		{Path: "a.mp4", FrameCount: 72, Width: 1280, Height: 720, FPS: 24},
		{Path: "b.mp4", FrameCount: 21, Width: 1920, Height: 1080, FPS: 24},
	}

	err := a.Assemble(context.Background(), segments, "", "out.mp4", t.TempDir())
	var aerr *AssemblyError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want *AssemblyError", err)
	}
	if *calls != 0 {
		t.Errorf("encoder invoked %d times, want 0", *calls)
	}
}

func TestAssembleFrameRateMismatch(t *testing.T) {
	a, calls, _ := stubAssembler()

	segments := []Segment{
		{Path: "a.mp4", Width: 1280, Height: 720, FPS: 24},
		{Path: "b.mp4", Width: 1280, Height: 720, FPS: 30},
	}

	err := a.Assemble(context.Background(), segments, "", "out.mp4", t.TempDir())
	var aerr *AssemblyError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want *AssemblyError", err)
	}
	if *calls != 0 {
		t.Errorf("encoder invoked %d times, want 0", *calls)
	}
}

func TestAssembleDifferentFrameCountsOK(t *testing.T) {
	// Matching geometry with different lengths is the normal case: a short
	// title followed by a long animation.
	a, calls, args := stubAssembler()
	tmpDir := t.TempDir()

	segments := []Segment{
		{Path: "title.mp4", FrameCount: 72, Width: 1280, Height: 720, FPS: 24},
		{Path: "anim.mp4", FrameCount: 500, Width: 1280, Height: 720, FPS: 24},
	}

	if err := a.Assemble(context.Background(), segments, "mixed.wav", "final.mp4", tmpDir); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("encoder invoked %d times, want 1", *calls)
	}

	// concat list preserves the given order
	list, err := os.ReadFile(filepath.Join(tmpDir, "inputs.txt"))
	if err != nil {
		t.Fatalf("read concat list: %v", err)
	}
	titleIdx := strings.Index(string(list), "title.mp4")
	animIdx := strings.Index(string(list), "anim.mp4")
	if titleIdx < 0 || animIdx < 0 || titleIdx > animIdx {
		t.Errorf("concat list order wrong:\n%s", list)
	}

	joined := strings.Join(*args, " ")
	if !strings.Contains(joined, "mixed.wav") {
		t.Errorf("audio track not bound: %s", joined)
	}
	if !strings.Contains(joined, "-shortest") {
		t.Errorf("expected -shortest for duration parity: %s", joined)
	}
}

func TestAssembleConcatListUnwritable(t *testing.T) {
	a, calls, _ := stubAssembler()

	segments := []Segment{
		{Path: "a.mp4", FrameCount: 72, Width: 1280, Height: 720, FPS: 24},
	}

	// tmpDir does not exist, so the concat list cannot be created; the
	// failure must be reported as such rather than reaching the encoder.
	err := a.Assemble(context.Background(), segments, "", "out.mp4", filepath.Join(t.TempDir(), "missing"))
	var aerr *AssemblyError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want *AssemblyError", err)
	}
	if aerr.Reason != "write concat list" {
		t.Errorf("reason = %q, want %q", aerr.Reason, "write concat list")
	}
	if *calls != 0 {
		t.Errorf("encoder invoked %d times, want 0", *calls)
	}
}

func TestAssembleNoSegments(t *testing.T) {
	a, calls, _ := stubAssembler()
	err := a.Assemble(context.Background(), nil, "", "out.mp4", t.TempDir())
	var aerr *AssemblyError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want *AssemblyError", err)
	}
	if *calls != 0 {
		t.Errorf("encoder invoked %d times, want 0", *calls)
	}
}

func TestSegmentDuration(t *testing.T) {
	s := Segment{FrameCount: 72, FPS: 24}
	if got := s.Duration(); got != 3.0 {
		t.Errorf("Duration = %g, want 3.0", got)
	}
}
