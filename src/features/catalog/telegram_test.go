package catalog

import (
	"testing"

	"github.com/contre95/songstats/src/query"
	"github.com/stretchr/testify/assert"
)

func TestTelegramFormatting(t *testing.T) {
	ds := scenarioDataset()

	stats := formatStats(query.Summarize(ds, query.DefaultTopArtists))
	assert.Contains(t, stats, "Songs: `3`")
	assert.Contains(t, stats, "Years: `2018-2022`")
	assert.Equal(t, noDataset, formatStats(nil))

	ranking := formatRanking("Genres", query.GenreDistribution(ds))
	assert.Contains(t, ranking, "1. Pop `2`")
	assert.Contains(t, ranking, "2. Rock `1`")
	assert.Equal(t, noDataset, formatRanking("Genres", query.Ranking{}))
	assert.Contains(t, formatRanking("top", query.TopArtists(ds, 10)), "1. A `2`")

	found := formatTracks("a", ds.Tracks[:1])
	assert.Contains(t, found, "*1 tracks for* `a`")
	assert.Contains(t, found, "song 1 - A (2020)")
	assert.Contains(t, formatTracks("zz", nil), "No tracks found")
}
