package metrics

import (
	"strconv"

	"github.com/contre95/songstats/src/query"
)

// ChartData represents data for Chart.js charts.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset represents a Chart.js dataset.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
}

var colorPalette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#C9CBCF", "#8BC34A", "#E91E63", "#3F51B5",
}

// rankingChart converts a ranking to a single-dataset chart, one color per entry.
func rankingChart(label string, r query.Ranking) *ChartData {
	labels := make([]string, len(r))
	data := make([]float64, len(r))
	colors := make([]string, len(r))
	for i, c := range r {
		labels[i] = c.Key
		data[i] = float64(c.Value)
		colors[i] = colorPalette[i%len(colorPalette)]
	}
	return &ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           label,
			Data:            data,
			BackgroundColor: colors,
		}},
	}
}

// GenreChartData converts the genre distribution to chart format.
func GenreChartData(dist query.Ranking) *ChartData {
	return rankingChart("Tracks by Genre", dist)
}

// ArtistChartData converts the top artists to chart format.
func ArtistChartData(top query.Ranking) *ChartData {
	return rankingChart("Tracks by Artist", top)
}

// YearBarData converts yearly track counts to vertical bar chart format.
func YearBarData(years []query.YearMean) *ChartData {
	labels := make([]string, len(years))
	data := make([]float64, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y.Year)
		data[i] = float64(y.Count)
	}
	return &ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Tracks by Year",
			Data:            data,
			BackgroundColor: []string{"#36A2EB"},
		}},
	}
}

// PlayTrendData converts yearly mean play counts (millions) to line chart format.
func PlayTrendData(years []query.YearMean) *ChartData {
	labels := make([]string, len(years))
	data := make([]float64, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y.Year)
		data[i] = y.Mean
	}
	return &ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:       "Mean plays (millions)",
			Data:        data,
			BorderColor: []string{"#2E86AB"},
		}},
	}
}
