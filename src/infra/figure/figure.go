// Package figure builds the catalogue charts with gonum/plot and rasterises
// them to images.
package figure

import (
	"image"
	"image/color"
	"strings"

	"github.com/gosimple/unidecode"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Size is an output size in pixels.
type Size struct {
	Width  int
	Height int
}

// Point is one x/y sample.
type Point = plotter.XY

var (
	SkyBlue    = color.NRGBA{R: 135, G: 206, B: 235, A: 255}
	LightGreen = color.NRGBA{R: 144, G: 238, B: 144, A: 255}
	LightCoral = color.NRGBA{R: 240, G: 128, B: 128, A: 255}
	red        = color.NRGBA{R: 220, G: 20, B: 60, A: 255}
	purple     = color.NRGBA{R: 128, G: 0, B: 128, A: 255}
)

// Label transliterates s to printable ASCII. The bundled Liberation faces
// have no CJK glyphs.
func Label(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = Label(title)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = Label(xlabel)
	p.Y.Label.Text = Label(ylabel)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// newCanvas creates a white raster canvas where one point is one pixel.
func newCanvas(size Size) *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(size.Width), vg.Length(size.Height)),
		vgimg.UseDPI(72),
	)
}

// Render draws p onto a size canvas.
func Render(p *plot.Plot, size Size) image.Image {
	c := newCanvas(size)
	p.Draw(draw.New(c))
	return c.Image()
}

func dashed(c color.Color) draw.LineStyle {
	return draw.LineStyle{
		Color:  c,
		Width:  vg.Points(2),
		Dashes: []vg.Length{vg.Points(6), vg.Points(4)},
	}
}

// swatch is a legend entry filled with a single color.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.color, []vg.Point{
		c.Min,
		{X: c.Max.X, Y: c.Min.Y},
		c.Max,
		{X: c.Min.X, Y: c.Max.Y},
	})
}

func extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
