package figure

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Slice is one pie wedge.
type Slice struct {
	Label string
	Value float64
}

// pie draws counter-clockwise wedges from twelve o'clock with percent labels.
type pie struct {
	parts  []Slice
	colors []color.Color
	total  float64
}

func (pc pie) Plot(c draw.Canvas, p *plot.Plot) {
	if pc.total <= 0 {
		return
	}
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	ctr := vg.Point{X: c.Min.X + w*0.4, Y: c.Min.Y + h/2}
	r := min(w*0.8, h) * 0.45

	sty := p.Legend.TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	start := math.Pi / 2
	for i, s := range pc.parts {
		sweep := 2 * math.Pi * s.Value / pc.total
		c.FillPolygon(pc.colors[i%len(pc.colors)], wedge(ctr, r, start, start+sweep))

		mid := start + sweep/2
		at := vg.Point{
			X: ctr.X + r*0.7*vg.Length(math.Cos(mid)),
			Y: ctr.Y + r*0.7*vg.Length(math.Sin(mid)),
		}
		c.FillText(sty, at, fmt.Sprintf("%.1f%%", s.Value/pc.total*100))
		start += sweep
	}
}

// wedge approximates the circular sector between angles a0 and a1 (radians).
func wedge(ctr vg.Point, r vg.Length, a0, a1 float64) []vg.Point {
	steps := max(2, int(math.Ceil((a1-a0)/(math.Pi/90))))
	pts := make([]vg.Point, 0, steps+2)
	pts = append(pts, ctr)
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		pts = append(pts, vg.Point{
			X: ctr.X + r*vg.Length(math.Cos(a)),
			Y: ctr.Y + r*vg.Length(math.Sin(a)),
		})
	}
	return pts
}

// Pie draws a pie chart of parts with a legend of their labels.
func Pie(size Size, title string, parts []Slice) image.Image {
	p := plot.New()
	p.Title.Text = Label(title)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()
	p.Legend.Top = true

	chart := pie{parts: parts, colors: Qualitative()}
	for i, s := range parts {
		chart.total += s.Value
		p.Legend.Add(Label(s.Label), swatch{color: chart.colors[i%len(chart.colors)]})
	}
	p.Add(chart)
	return Render(p, size)
}
