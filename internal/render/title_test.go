package render

import (
	"bytes"
	"context"
	"image/color"
	"testing"

	"github.com/ivlev/series2video/internal/chart"
)

func newTitler(t *testing.T, sourceURL string) *Titler {
	t.Helper()
	fonts, err := chart.NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	return &Titler{
		Width:      160,
		Height:     90,
		FPS:        24,
		Background: color.RGBA{0x2c, 0x3e, 0x50, 0xff},
		TextColor:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		Fonts:      fonts,
		SourceURL:  sourceURL,
	}
}

func TestTitlerFrameCount(t *testing.T) {
	sink := &memSink{}
	count, err := newTitler(t, "").Sequence(context.Background(), "Economic Growth", "2000-2020", 3, sink)
	if err != nil {
		t.Fatalf("Sequence: %v", err)
	}
	// 3 seconds at 24 fps
	if count != 72 {
		t.Errorf("count = %d, want 72", count)
	}
	if len(sink.frames) != 72 {
		t.Fatalf("emitted %d frames, want 72", len(sink.frames))
	}
	for i, f := range sink.frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
	}
}

func TestTitlerRevealProgresses(t *testing.T) {
	sink := &memSink{}
	if _, err := newTitler(t, "").Sequence(context.Background(), "A Very Long Title Indeed", "", 3, sink); err != nil {
		t.Fatalf("Sequence: %v", err)
	}

	// An early frame shows fewer characters than a late one, so the
	// rasters must differ; the final third is fully revealed and static.
	if bytes.Equal(sink.frames[2].Pix, sink.frames[40].Pix) {
		t.Error("reveal should change frames over the first third")
	}
	if !bytes.Equal(sink.frames[60].Pix, sink.frames[71].Pix) {
		t.Error("fully revealed frames should be identical")
	}
}

func TestTitlerDeterministic(t *testing.T) {
	a, b := &memSink{}, &memSink{}
	if _, err := newTitler(t, "https://example.com/data").Sequence(context.Background(), "Title", "Desc", 2, a); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := newTitler(t, "https://example.com/data").Sequence(context.Background(), "Title", "Desc", 2, b); err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i := range a.frames {
		if !bytes.Equal(a.frames[i].Pix, b.frames[i].Pix) {
			t.Fatalf("frame %d differs between runs", i)
		}
	}
}

func TestTitlerQROverlayChangesFrames(t *testing.T) {
	plain, withQR := &memSink{}, &memSink{}
	if _, err := newTitler(t, "").Sequence(context.Background(), "T", "", 1, plain); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if _, err := newTitler(t, "https://example.com").Sequence(context.Background(), "T", "", 1, withQR); err != nil {
		t.Fatalf("with QR: %v", err)
	}
	if bytes.Equal(plain.frames[0].Pix, withQR.frames[0].Pix) {
		t.Error("QR overlay should alter the frame")
	}
}

func TestTitlerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTitler(t, "").Sequence(ctx, "T", "D", 3, &memSink{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
