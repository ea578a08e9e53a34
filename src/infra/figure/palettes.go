package figure

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
)

// Qualitative returns the eight Set2 colors used for categories.
func Qualitative() []color.Color {
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", 8)
	if err != nil {
		return plotutil.DefaultColors
	}
	return pal.Colors()
}

// Sequential returns the yellow to red palette of the feature heatmap.
func Sequential() palette.Palette {
	pal, err := brewer.GetPalette(brewer.TypeSequential, "YlOrRd", 9)
	if err != nil {
		return palette.Heat(9, 1)
	}
	return pal
}

// Continuous returns a perceptually uniform colormap spanning [lo, hi].
func Continuous(lo, hi float64) palette.ColorMap {
	cm := moreland.Kindlmann()
	cm.SetMax(hi)
	cm.SetMin(lo)
	return cm
}

// colorAt looks v up in cm, clamping it to the colormap range.
func colorAt(cm palette.ColorMap, v float64) color.Color {
	v = max(cm.Min(), min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Black
	}
	return c
}
