package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ivlev/series2video/internal/timeseries"
)

func testRenderer(t *testing.T, allowed []Kind) *Renderer {
	t.Helper()
	fonts, err := NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	style := Style{Width: 320, Height: 180, Background: "#ecf0f1", Text: "#222222"}
	return NewRenderer(style, allowed, NewRasterDrawer(fonts))
}

func testSeries(t *testing.T) timeseries.Series {
	t.Helper()
	s, err := timeseries.New([]timeseries.Point{
		{X: 2000, Y: 50}, {X: 2001, Y: 55}, {X: 2002, Y: 48}, {X: 2003, Y: 61},
	})
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	return s
}

func TestRenderDeterministic(t *testing.T) {
	series := testSeries(t)

	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			r := testRenderer(t, Kinds())

			a, err := r.Render(series.Prefix(3), kind)
			if err != nil {
				t.Fatalf("first render: %v", err)
			}
			b, err := r.Render(series.Prefix(3), kind)
			if err != nil {
				t.Fatalf("second render: %v", err)
			}
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Error("identical inputs produced different frames")
			}
		})
	}
}

func TestRenderInvalidKind(t *testing.T) {
	r := testRenderer(t, []Kind{KindLine, KindBar})

	f, err := r.Render(testSeries(t), KindScatter)
	if f != nil {
		t.Error("invalid kind must produce no frame")
	}
	var kerr *InvalidKindError
	if !errors.As(err, &kerr) {
		t.Fatalf("err = %v, want *InvalidKindError", err)
	}
	if kerr.Kind != KindScatter {
		t.Errorf("kind = %q, want scatter", kerr.Kind)
	}
}

func TestRenderFrameGeometry(t *testing.T) {
	r := testRenderer(t, Kinds())
	f, err := r.Render(testSeries(t), KindLine)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Width != 320 || f.Height != 180 {
		t.Errorf("frame = %dx%d, want 320x180", f.Width, f.Height)
	}
	if len(f.Pix) != 320*180*3 {
		t.Errorf("pix len = %d, want %d", len(f.Pix), 320*180*3)
	}
}

func TestRenderRescalesWithWindow(t *testing.T) {
	// Growing the prefix changes the axis bounds, so the same leading
	// points draw differently: that is the animation semantic.
	r := testRenderer(t, Kinds())
	series := testSeries(t)

	small, err := r.Render(series.Prefix(2), KindLine)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	large, err := r.Render(series.Prefix(4), KindLine)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bytes.Equal(small.Pix, large.Pix) {
		t.Error("different windows should render differently")
	}
}

func TestWindowBounds(t *testing.T) {
	s, _ := timeseries.New([]timeseries.Point{{X: 2000, Y: 50}, {X: 2010, Y: 100}})
	b := WindowBounds(s)
	if b.XMin != 1999 || b.XMax != 2011 {
		t.Errorf("x bounds = %g..%g, want 1999..2011", b.XMin, b.XMax)
	}
	if b.YMin != 45 || b.YMax != 110 {
		t.Errorf("y bounds = %g..%g, want 45..110", b.YMin, b.YMax)
	}
}

func TestWindowBoundsDegenerate(t *testing.T) {
	// A single point at y=0 must still get a non-zero vertical range.
	s, _ := timeseries.New([]timeseries.Point{{X: 5, Y: 0}})
	b := WindowBounds(s)
	if b.YMax-b.YMin <= 0 {
		t.Errorf("degenerate y range: %g..%g", b.YMin, b.YMax)
	}
	if b.XMax-b.XMin <= 0 {
		t.Errorf("degenerate x range: %g..%g", b.XMin, b.XMax)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Line "); err != nil || k != KindLine {
		t.Errorf("ParseKind(' Line ') = %q, %v", k, err)
	}
	if _, err := ParseKind("pie"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
