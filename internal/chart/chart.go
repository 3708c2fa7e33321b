// Package chart rasterises time-series data into fixed-size RGBA images.
// It is the drawing collaborator behind the frame renderer: everything
// above it consumes packed frames and never touches image internals.
package chart

import (
	"fmt"
	"strings"
)

// Kind selects the mark type used to plot the data window.
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
)

// Kinds lists every chart kind this package can draw.
func Kinds() []Kind {
	return []Kind{KindLine, KindBar, KindScatter}
}

// ParseKind maps a config identifier to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLine, KindBar, KindScatter:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", s)
	}
}

// InvalidKindError reports a per-call chart kind that is not in the
// configured set. It is raised before any drawing work happens.
type InvalidKindError struct {
	Kind    Kind
	Allowed []Kind
}

func (e *InvalidKindError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, k := range e.Allowed {
		names[i] = string(k)
	}
	return fmt.Sprintf("invalid chart kind %q: choose from %s", e.Kind, strings.Join(names, ", "))
}

// Style carries the visual parameters a drawer needs: target size and the
// palette roles resolved from config.
type Style struct {
	Width      int
	Height     int
	Background string // hex, chart area fill
	Text       string // hex, axis labels
}

// Bounds is the visible axis range for one frame. It is recomputed from the
// data window itself every frame, so the chart rescales as points are
// revealed.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}
