// Package frame defines the packed raster buffer exchanged between the
// chart renderer, the transition compositor and the video encoder. Keeping
// the pipeline on this one type isolates it from the drawing library's
// internal buffer layout.
package frame

import (
	"fmt"
	"image"
)

// Frame is one fixed-resolution RGB24 raster tagged with its position in
// the segment. Pix holds width*height*3 bytes in row-major R,G,B order —
// exactly what the rawvideo encoder input expects.
type Frame struct {
	Index  int
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (black) frame.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// FromRGBA repacks a drawing surface into an RGB24 frame, dropping alpha.
// The source image must start at the origin.
func FromRGBA(img *image.RGBA) (*Frame, error) {
	b := img.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 {
		return nil, fmt.Errorf("image bounds must start at origin, got %v", b.Min)
	}
	f := New(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		src := img.Pix[y*img.Stride:]
		dst := f.Pix[y*f.Width*3:]
		for x := 0; x < f.Width; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return f, nil
}

// Clone returns an independent copy.
func (f *Frame) Clone() *Frame {
	c := &Frame{Index: f.Index, Width: f.Width, Height: f.Height, Pix: make([]byte, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}
