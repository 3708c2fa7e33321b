package timeseries

import "fmt"

// Point is a single observation: X is the position on the time axis
// (year, timestamp, tick), Y is the measured value.
type Point struct {
	X float64
	Y float64
}

// Series is an ordered sequence of points with strictly increasing X.
// A Series is immutable once built; rendering code receives prefixes of it
// and must not modify them.
type Series []Point

// New validates and wraps a point slice as a Series.
func New(points []Point) (Series, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("series must contain at least one point")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, fmt.Errorf("series X values must be strictly increasing: point %d (%g) <= point %d (%g)",
				i, points[i].X, i-1, points[i-1].X)
		}
	}
	return Series(points), nil
}

// Prefix returns the first k points. k is clamped to the series length.
func (s Series) Prefix(k int) Series {
	if k < 1 {
		k = 1
	}
	if k > len(s) {
		k = len(s)
	}
	return s[:k]
}

// Bounds returns the min/max of both axes over the whole series.
func (s Series) Bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = s[0].X, s[0].X
	ymin, ymax = s[0].Y, s[0].Y
	for _, p := range s[1:] {
		if p.X < xmin {
			xmin = p.X
		}
		if p.X > xmax {
			xmax = p.X
		}
		if p.Y < ymin {
			ymin = p.Y
		}
		if p.Y > ymax {
			ymax = p.Y
		}
	}
	return xmin, xmax, ymin, ymax
}
