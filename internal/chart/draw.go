// draw.go - Default raster drawer: line, bar and scatter marks on a plain
// image.RGBA surface with axes and min/max tick labels.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/series2video/internal/timeseries"
)

// Drawer produces one chart image from a data window. Implementations must
// be deterministic: identical inputs yield identical pixels.
type Drawer interface {
	Draw(window timeseries.Series, kind Kind, st Style, b Bounds) (*image.RGBA, error)
}

// Mark colors per kind, matching the house palette.
var markColors = map[Kind]color.RGBA{
	KindLine:    {0x34, 0x98, 0xdb, 0xff},
	KindBar:     {0x2e, 0xcc, 0x71, 0xff},
	KindScatter: {0xe7, 0x4c, 0x3c, 0xff},
}

// RasterDrawer draws charts directly onto an RGBA buffer.
type RasterDrawer struct {
	fonts *FontManager
}

func NewRasterDrawer(fonts *FontManager) *RasterDrawer {
	return &RasterDrawer{fonts: fonts}
}

func (d *RasterDrawer) Draw(window timeseries.Series, kind Kind, st Style, b Bounds) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, st.Width, st.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{ParseHexColor(st.Background)}, image.Point{}, draw.Src)

	// Plot area margins, proportional to the canvas.
	left := st.Width / 10
	right := st.Width / 20
	top := st.Height / 12
	bottom := st.Height / 8
	plotW := st.Width - left - right
	plotH := st.Height - top - bottom
	if plotW < 2 || plotH < 2 {
		return nil, fmt.Errorf("canvas %dx%d too small for plot area", st.Width, st.Height)
	}

	toX := func(x float64) int {
		return left + int(float64(plotW)*(x-b.XMin)/(b.XMax-b.XMin))
	}
	toY := func(y float64) int {
		return top + plotH - int(float64(plotH)*(y-b.YMin)/(b.YMax-b.YMin))
	}

	axisColor := ParseHexColor(st.Text)
	drawHLine(img, left, left+plotW, top+plotH, axisColor)
	drawVLine(img, top, top+plotH, left, axisColor)

	mark, ok := markColors[kind]
	if !ok {
		return nil, &InvalidKindError{Kind: kind, Allowed: Kinds()}
	}

	switch kind {
	case KindLine:
		for i, p := range window {
			fillDisc(img, toX(p.X), toY(p.Y), 4, mark)
			if i > 0 {
				prev := window[i-1]
				drawSegment(img, toX(prev.X), toY(prev.Y), toX(p.X), toY(p.Y), mark)
			}
		}
	case KindBar:
		// Bar width leaves a one-third gap between neighbours.
		barW := plotW / (len(window)*3/2 + 1)
		if barW < 1 {
			barW = 1
		}
		base := toY(clamp(0, b.YMin, b.YMax))
		for _, p := range window {
			x := toX(p.X)
			y := toY(p.Y)
			y0, y1 := y, base
			if y0 > y1 {
				y0, y1 = y1, y0
			}
			fillRect(img, x-barW/2, y0, x+barW/2, y1, mark)
		}
	case KindScatter:
		for _, p := range window {
			fillDisc(img, toX(p.X), toY(p.Y), 6, mark)
		}
	}

	if err := d.drawTicks(img, st, b, left, top, plotW, plotH, axisColor); err != nil {
		return nil, err
	}

	return img, nil
}

// drawTicks labels the axis extremes. Anything fancier is left to the
// palette and mark choice; this is an explainer video, not a dashboard.
func (d *RasterDrawer) drawTicks(img *image.RGBA, st Style, b Bounds, left, top, plotW, plotH int, col color.RGBA) error {
	face, err := d.fonts.Face(float64(st.Height) / 45)
	if err != nil {
		return err
	}

	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}

	label := func(text string, x, y int) {
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(text)
	}

	label(formatTick(b.XMin), left, top+plotH+20)
	xmaxText := formatTick(b.XMax)
	label(xmaxText, left+plotW-font.MeasureString(face, xmaxText).Ceil(), top+plotH+20)
	label(formatTick(b.YMax), 4, top+12)
	label(formatTick(b.YMin), 4, top+plotH)
	return nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// ParseHexColor converts "#rrggbb" to an opaque RGBA. Returns white on any
// parse error (safe default for rendering).
func ParseHexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}
	r, errR := strconv.ParseUint(hex[0:2], 16, 8)
	g, errG := strconv.ParseUint(hex[2:4], 16, 8)
	b, errB := strconv.ParseUint(hex[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// ValidHexColor reports whether s parses as "#rrggbb".
func ValidHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		setPixel(img, x, y, c)
	}
}

func drawVLine(img *image.RGBA, y0, y1, x int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		setPixel(img, x, y, c)
	}
}

// drawSegment rasterises a line with the integer Bresenham walk.
func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		// Thicken to 3px for visibility at video resolutions.
		setPixel(img, x0, y0, c)
		setPixel(img, x0+1, y0, c)
		setPixel(img, x0, y0+1, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			setPixel(img, x, y, c)
		}
	}
}

func fillDisc(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
