package query

import (
	"slices"

	"github.com/contre95/songstats/src/music"
)

// Column extracts a numeric value from every track in storage order.
func Column(ds *music.Dataset, value func(t *music.Track) float64) []float64 {
	out := make([]float64, 0, ds.Len())
	if ds.Empty() {
		return out
	}
	for i := range ds.Tracks {
		out = append(out, value(&ds.Tracks[i]))
	}
	return out
}

// YearMean is the mean of a value over the tracks of one release year.
type YearMean struct {
	Year  int     `json:"year"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// MeanByYear groups tracks by release year, ascending, and averages value.
func MeanByYear(ds *music.Dataset, value func(t *music.Track) float64) []YearMean {
	out := []YearMean{}
	if ds.Empty() {
		return out
	}
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i := range ds.Tracks {
		t := &ds.Tracks[i]
		sums[t.ReleaseYear] += value(t)
		counts[t.ReleaseYear]++
	}
	for year, n := range counts {
		out = append(out, YearMean{Year: year, Mean: sums[year] / float64(n), Count: n})
	}
	slices.SortFunc(out, func(a, b YearMean) int { return a.Year - b.Year })
	return out
}

// FeatureMatrix holds the mean audio feature scores per genre.
type FeatureMatrix struct {
	Genres   []string        `json:"genres"`
	Features []music.Feature `json:"features"`
	Values   [][]float64     `json:"values"`
}

// FeatureMeansByGenre averages each audio feature per genre, genres sorted by name.
func FeatureMeansByGenre(ds *music.Dataset) FeatureMatrix {
	m := FeatureMatrix{Genres: []string{}, Features: music.Features, Values: [][]float64{}}
	if ds.Empty() {
		return m
	}
	groups := CountBy(ds, byGenre)
	m.Genres = groups.Keys()
	slices.Sort(m.Genres)

	row := make(map[string]int, len(m.Genres))
	for i, g := range m.Genres {
		row[g] = i
		m.Values = append(m.Values, make([]float64, len(m.Features)))
	}
	for i := range ds.Tracks {
		t := &ds.Tracks[i]
		r := row[string(t.Genre)]
		for j, f := range m.Features {
			m.Values[r][j] += t.Feature(f)
		}
	}
	for i, g := range m.Genres {
		n := float64(groups.Get(g))
		for j := range m.Values[i] {
			m.Values[i][j] /= n
		}
	}
	return m
}
