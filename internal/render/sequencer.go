package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/series2video/internal/chart"
	"github.com/ivlev/series2video/internal/frame"
	"github.com/ivlev/series2video/internal/timeseries"
)

// Animator renders the growing-prefix chart animation: frame k shows the
// first k+1 points of the series, with axis bounds recomputed per frame.
type Animator struct {
	Renderer   *chart.Renderer
	Transition *frame.Compositor
	Workers    int // parallel renders; <=1 renders inline
}

// Sequence emits exactly len(series) frames with contiguous indices
// starting at 0, in increasing order. Prefix renders are pure, so they run
// on a bounded worker pool; compositing and emission stay sequential and
// ordered. Cancellation is checked once per frame boundary. Any render
// failure aborts the run and nothing further is written to the sink.
func (a *Animator) Sequence(ctx context.Context, series timeseries.Series, kind chart.Kind, sink Sink) (int, error) {
	n := len(series)
	frames := make([]*frame.Frame, n)

	g, gctx := errgroup.WithContext(ctx)
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for k := 1; k <= n; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := a.Renderer.Render(series.Prefix(k), kind)
			if err != nil {
				return &FrameError{Index: k - 1, Err: err}
			}
			frames[k-1] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	a.Transition.Reset()
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		f.Index = i
		// Blend is a pass-through for the opening frame (nothing to fade
		// from) and crossfades every later frame with its predecessor.
		out := a.Transition.Blend(f)
		if err := sink.WriteFrame(out); err != nil {
			return i, &FrameError{Index: i, Err: err}
		}
	}

	return n, nil
}
