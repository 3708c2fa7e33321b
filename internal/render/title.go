package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/series2video/internal/chart"
	"github.com/ivlev/series2video/internal/frame"
)

// Description fade-in: invisible until the start frame, then a linear
// opacity ramp over the ramp window. Both are frame counts, never wall
// clock, so output is deterministic regardless of rendering speed.
const (
	descFadeStart = 15
	descFadeRamp  = 30
)

// Titler renders the fixed-duration title card: background fill, character
// reveal of the title, fading description, and an optional source-URL QR
// code in the lower-right corner.
type Titler struct {
	Width      int
	Height     int
	FPS        int
	Background color.RGBA
	TextColor  color.RGBA
	Fonts      *chart.FontManager
	SourceURL  string // empty disables the QR overlay
}

// Sequence emits durationSec*FPS frames with contiguous indices from 0.
func (t *Titler) Sequence(ctx context.Context, title, description string, durationSec float64, sink Sink) (int, error) {
	total := int(math.Round(durationSec * float64(t.FPS)))
	if total < 1 {
		total = 1
	}

	titleFace, err := t.Fonts.Face(float64(t.Height) / 9)
	if err != nil {
		return 0, &FrameError{Index: 0, Err: err}
	}
	descFace, err := t.Fonts.Face(float64(t.Height) / 22)
	if err != nil {
		return 0, &FrameError{Index: 0, Err: err}
	}

	var qrImg image.Image
	if t.SourceURL != "" {
		qr, err := qrcode.New(t.SourceURL, qrcode.Medium)
		if err != nil {
			return 0, &FrameError{Index: 0, Err: err}
		}
		qr.BackgroundColor = t.Background
		qr.ForegroundColor = t.TextColor
		qrImg = qr.Image(t.Height / 5)
	}

	titleRunes := []rune(title)
	marginX := t.Width / 12

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
		draw.Draw(img, img.Bounds(), &image.Uniform{t.Background}, image.Point{}, draw.Src)

		// Character reveal: the full title is visible by roughly one third
		// of the duration.
		visible := len(titleRunes) * 3 * i / total
		if visible > len(titleRunes) {
			visible = len(titleRunes)
		}
		drawText(img, string(titleRunes[:visible]), marginX, t.Height*2/7, t.TextColor, titleFace)

		if description != "" && i > descFadeStart {
			alpha := float64(i-descFadeStart) / descFadeRamp
			if alpha > 1 {
				alpha = 1
			}
			drawText(img, description, marginX, t.Height*2/5, lerpColor(t.Background, t.TextColor, alpha), descFace)
		}

		if qrImg != nil {
			qb := qrImg.Bounds()
			pos := image.Pt(t.Width-qb.Dx()-marginX/2, t.Height-qb.Dy()-marginX/2)
			draw.Draw(img, image.Rectangle{Min: pos, Max: pos.Add(qb.Size())}, qrImg, qb.Min, draw.Src)
		}

		f, err := frame.FromRGBA(img)
		if err != nil {
			return i, &FrameError{Index: i, Err: err}
		}
		f.Index = i
		if err := sink.WriteFrame(f); err != nil {
			return i, &FrameError{Index: i, Err: err}
		}
	}

	return total, nil
}

func drawText(img *image.RGBA, text string, x, y int, col color.RGBA, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// lerpColor interpolates from a to b; alpha 0 yields a (invisible against a
// matching background), alpha 1 yields b.
func lerpColor(a, b color.RGBA, alpha float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*alpha + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
