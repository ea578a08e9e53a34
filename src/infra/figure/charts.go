package figure

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Histogram bins Values into equal-width bars and marks their mean.
type Histogram struct {
	Title     string
	XLabel    string
	YLabel    string
	Values    []float64
	Bins      int
	Color     color.Color
	MeanLabel func(mean float64) string
}

// Draw renders the histogram.
func (h Histogram) Draw(size Size) (image.Image, error) {
	p := newPlot(h.Title, h.XLabel, h.YLabel)
	if len(h.Values) == 0 {
		return Render(p, size), nil
	}

	hist, err := plotter.NewHist(plotter.Values(h.Values), h.Bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", h.Title, err)
	}
	hist.FillColor = h.Color
	if hist.FillColor == nil {
		hist.FillColor = SkyBlue
	}
	hist.LineStyle.Color = color.Black
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	top := 0.0
	for _, b := range hist.Bins {
		top = math.Max(top, b.Weight)
	}
	mean := stat.Mean(h.Values, nil)
	line, err := plotter.NewLine(plotter.XYs{{X: mean, Y: 0}, {X: mean, Y: top}})
	if err != nil {
		return nil, fmt.Errorf("histogram %q mean: %w", h.Title, err)
	}
	line.LineStyle = dashed(red)
	p.Add(line)
	if h.MeanLabel != nil {
		p.Legend.Add(h.MeanLabel(mean), line)
	}
	return Render(p, size), nil
}

// Bars draws one bar per label with the labels slanted under the axis.
func Bars(size Size, title, xlabel, ylabel string, labels []string, values []float64) (image.Image, error) {
	p := newPlot(title, xlabel, ylabel)
	if len(values) == 0 {
		return Render(p, size), nil
	}

	width := vg.Length(size.Width) * 0.6 / vg.Length(len(values))
	bars, err := plotter.NewBarChart(plotter.Values(values), width)
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.Color = LightCoral
	bars.LineStyle.Width = 0
	p.Add(bars)

	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = Label(l)
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return Render(p, size), nil
}

// Line connects points with markers and annotates each with format.
func Line(size Size, title, xlabel, ylabel string, points []Point, format string) (image.Image, error) {
	p := newPlot(title, xlabel, ylabel)
	if len(points) == 0 {
		return Render(p, size), nil
	}

	xys := plotter.XYs(points)
	line, marks, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("line chart %q: %w", title, err)
	}
	line.LineStyle.Color = purple
	line.LineStyle.Width = vg.Points(2)
	marks.GlyphStyle = draw.GlyphStyle{Color: purple, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}

	texts := make([]string, len(points))
	for i, pt := range points {
		texts[i] = fmt.Sprintf(format, pt.Y)
	}
	notes, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("line chart %q labels: %w", title, err)
	}
	notes.Offset = vg.Point{X: -vg.Points(10), Y: vg.Points(8)}

	p.Add(line, marks, notes)
	return Render(p, size), nil
}

// Trend is a fitted line y = Intercept + Slope*x.
type Trend struct {
	Intercept float64
	Slope     float64
}

// Scatter plots Points colored by Values, with a colorbar and an optional trend line.
type Scatter struct {
	Title      string
	XLabel     string
	YLabel     string
	Points     []Point
	Values     []float64
	ValueLabel string
	Trend      *Trend
}

// Draw renders the scatter plot and its colorbar side by side.
func (s Scatter) Draw(size Size) (image.Image, error) {
	p := newPlot(s.Title, s.XLabel, s.YLabel)
	cm := Continuous(extent(s.Values))

	if len(s.Points) > 0 {
		dots, err := plotter.NewScatter(plotter.XYs(s.Points))
		if err != nil {
			return nil, fmt.Errorf("scatter %q: %w", s.Title, err)
		}
		glyph := draw.GlyphStyle{Color: color.Black, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		dots.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			g := glyph
			if i < len(s.Values) {
				g.Color = colorAt(cm, s.Values[i])
			}
			return g
		}
		p.Add(dots)
	}

	if s.Trend != nil {
		t := *s.Trend
		fit := plotter.NewFunction(func(x float64) float64 { return t.Intercept + t.Slope*x })
		fit.LineStyle = dashed(red)
		p.Add(fit)
		p.Legend.Add(fmt.Sprintf("Trend: y = %.2fx %+.2f", t.Slope, t.Intercept), fit)
	}

	bar := plot.New()
	bar.HideX()
	bar.Title.Text = Label(s.ValueLabel)
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: 64})

	c := newCanvas(size)
	dc := draw.New(c)
	barWidth := vg.Length(size.Width) * 0.12
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, vg.Length(size.Width)-barWidth, 0, vg.Points(36), -vg.Points(10)))
	return c.Image(), nil
}

// Heatmap shades a Rows x Cols matrix and writes each value in its cell.
type Heatmap struct {
	Title  string
	XLabel string
	YLabel string
	Rows   []string
	Cols   []string
	Values [][]float64
}

// grid exposes a row-major matrix as a plotter.GridXYZ with the first row on top.
type grid struct {
	values [][]float64
}

func (g grid) Dims() (c, r int) { return len(g.values[0]), len(g.values) }
func (g grid) Z(c, r int) float64 {
	return g.values[len(g.values)-1-r][c]
}
func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(r) }

// Draw renders the heatmap.
func (h Heatmap) Draw(size Size) (image.Image, error) {
	p := newPlot(h.Title, h.XLabel, h.YLabel)
	if len(h.Values) == 0 || len(h.Values[0]) == 0 {
		return Render(p, size), nil
	}

	g := grid{values: h.Values}
	heat := plotter.NewHeatMap(g, Sequential())
	if heat.Max <= heat.Min {
		heat.Max = heat.Min + 1
	}
	p.Add(heat)

	var xys plotter.XYs
	var texts []string
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			xys = append(xys, plotter.XY{X: g.X(c), Y: g.Y(r)})
			texts = append(texts, fmt.Sprintf("%.3f", g.Z(c, r)))
		}
	}
	notes, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("heatmap %q labels: %w", h.Title, err)
	}
	for i := range notes.TextStyle {
		notes.TextStyle[i].XAlign = draw.XCenter
		notes.TextStyle[i].YAlign = draw.YCenter
		if (g.Z(i%cols, i/cols)-heat.Min)/(heat.Max-heat.Min) > 0.6 {
			notes.TextStyle[i].Color = color.White
		}
	}
	p.Add(notes)

	names := make([]string, len(h.Cols))
	for i, col := range h.Cols {
		names[i] = Label(col)
	}
	p.NominalX(names...)
	rowNames := make([]string, len(h.Rows))
	for i, row := range h.Rows {
		rowNames[len(h.Rows)-1-i] = Label(row)
	}
	p.NominalY(rowNames...)
	return Render(p, size), nil
}
