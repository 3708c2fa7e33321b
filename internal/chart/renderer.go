package chart

import (
	"github.com/ivlev/series2video/internal/frame"
	"github.com/ivlev/series2video/internal/timeseries"
)

// Renderer turns a data window into one packed frame. It is a pure function
// of its inputs: the same window, kind and style always produce
// bit-identical frames.
type Renderer struct {
	style   Style
	allowed map[Kind]bool
	drawer  Drawer
}

// NewRenderer builds a renderer restricted to the given kind set.
func NewRenderer(style Style, allowed []Kind, drawer Drawer) *Renderer {
	set := make(map[Kind]bool, len(allowed))
	for _, k := range allowed {
		set[k] = true
	}
	return &Renderer{style: style, allowed: set, drawer: drawer}
}

// Render validates the kind, derives axis bounds from the window and draws.
// The kind check runs before any drawing work so a bad kind fails a batch
// before the first frame, not during it.
func (r *Renderer) Render(window timeseries.Series, kind Kind) (*frame.Frame, error) {
	if !r.allowed[kind] {
		allowed := make([]Kind, 0, len(r.allowed))
		for _, k := range Kinds() {
			if r.allowed[k] {
				allowed = append(allowed, k)
			}
		}
		return nil, &InvalidKindError{Kind: kind, Allowed: allowed}
	}

	img, err := r.drawer.Draw(window, kind, r.style, WindowBounds(window))
	if err != nil {
		return nil, err
	}
	return frame.FromRGBA(img)
}

// WindowBounds derives the visible axis range from the window itself with a
// fixed padding factor (one unit on X, ±10% on Y). Recomputing this per
// frame is what makes the growing-prefix animation rescale.
func WindowBounds(window timeseries.Series) Bounds {
	xmin, xmax, ymin, ymax := window.Bounds()

	b := Bounds{
		XMin: xmin - 1,
		XMax: xmax + 1,
		YMin: ymin * 0.9,
		YMax: ymax * 1.1,
	}
	if ymin < 0 {
		b.YMin = ymin * 1.1
	}
	if ymax < 0 {
		b.YMax = ymax * 0.9
	}
	if b.YMax-b.YMin < 1e-9 {
		b.YMin--
		b.YMax++
	}
	return b
}
