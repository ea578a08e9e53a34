package query

import (
	"fmt"

	"github.com/contre95/songstats/src/music"
)

// DefaultTopArtists is the size of the artist ranking in a Summary.
const DefaultTopArtists = 10

// Summary holds the aggregate statistics of a whole dataset.
type Summary struct {
	TotalSongs        int     `json:"total_songs"`
	TotalArtists      int     `json:"total_artists"`
	TotalGenres       int     `json:"total_genres"`
	AvgRating         float64 `json:"avg_rating"`
	AvgPlayCount      float64 `json:"avg_play_count"`
	YearMin           int     `json:"year_min"`
	YearMax           int     `json:"year_max"`
	YearRange         string  `json:"year_range"`
	GenreDistribution Ranking `json:"genre_distribution"`
	TopArtists        Ranking `json:"top_artists"`
}

// Summarize computes the dataset statistics with a top-k artist ranking.
// It returns nil when there is nothing to summarise.
func Summarize(ds *music.Dataset, topK int) *Summary {
	if ds.Empty() {
		return nil
	}

	var ratingSum, playsSum float64
	yearMin, yearMax := ds.Tracks[0].ReleaseYear, ds.Tracks[0].ReleaseYear
	for i := range ds.Tracks {
		t := &ds.Tracks[i]
		ratingSum += t.Rating
		playsSum += t.PlayCountMillions
		yearMin = min(yearMin, t.ReleaseYear)
		yearMax = max(yearMax, t.ReleaseYear)
	}

	n := float64(ds.Len())
	genres := CountBy(ds, byGenre)
	artists := CountBy(ds, byArtist)

	return &Summary{
		TotalSongs:        ds.Len(),
		TotalArtists:      len(artists),
		TotalGenres:       len(genres),
		AvgRating:         music.Round(ratingSum/n, 1),
		AvgPlayCount:      music.Round(playsSum/n, 2),
		YearMin:           yearMin,
		YearMax:           yearMax,
		YearRange:         fmt.Sprintf("%d-%d", yearMin, yearMax),
		GenreDistribution: genres.Sorted(),
		TopArtists:        artists.Top(topK),
	}
}

// GenreDistribution counts tracks per genre, most frequent first.
func GenreDistribution(ds *music.Dataset) Ranking {
	return CountBy(ds, byGenre).Sorted()
}

// TopArtists ranks artists by track count, ties broken by first appearance.
func TopArtists(ds *music.Dataset, k int) Ranking {
	return CountBy(ds, byArtist).Top(k)
}

func byGenre(t *music.Track) string  { return string(t.Genre) }
func byArtist(t *music.Track) string { return t.Artist }
