package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/contre95/songstats/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func track(id int, genre music.Genre, artist string, rating float64, year int) music.Track {
	t := music.Track{
		ID:          id,
		Title:       fmt.Sprintf("song %d", id),
		Artist:      artist,
		Album:       "album",
		Genre:       genre,
		ReleaseYear: year,
		PlayCount:   id * 1_000_000,
		Duration:    180,
		Rating:      rating,
		Energy:      0.5,
	}
	t.Derive()
	return t
}

func scenario() *music.Dataset {
	return music.NewDataset("mem", []music.Track{
		track(1, music.GenrePop, "A", 8.0, 2020),
		track(2, music.GenreRock, "B", 6.0, 2018),
		track(3, music.GenrePop, "A", 9.0, 2022),
	})
}

func ids(tracks []music.Track) []int {
	out := make([]int, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestSummarizeScenario(t *testing.T) {
	s := Summarize(scenario(), DefaultTopArtists)
	require.NotNil(t, s)

	assert.Equal(t, 3, s.TotalSongs)
	assert.Equal(t, 2, s.TotalArtists)
	assert.Equal(t, 2, s.TotalGenres)
	assert.Equal(t, Ranking{{"Pop", 2}, {"Rock", 1}}, s.GenreDistribution)
	assert.Equal(t, 7.7, s.AvgRating)
	assert.Equal(t, 2.0, s.AvgPlayCount)
	assert.Equal(t, 2018, s.YearMin)
	assert.Equal(t, 2022, s.YearMax)
	assert.Equal(t, "2018-2022", s.YearRange)
	assert.Equal(t, Ranking{{"A", 2}, {"B", 1}}, s.TopArtists)
}

func TestSummarizeRoundsHalfToEven(t *testing.T) {
	ds := music.NewDataset("test", []music.Track{
		track(1, music.GenrePop, "A", 7.2, 2020),
		track(2, music.GenrePop, "B", 7.3, 2021),
	})
	s := Summarize(ds, DefaultTopArtists)
	require.NotNil(t, s)
	assert.Equal(t, 7.2, s.AvgRating)
}

func TestSummaryJSONKeepsOrder(t *testing.T) {
	data, err := json.Marshal(Summarize(scenario(), DefaultTopArtists))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"genre_distribution":{"Pop":2,"Rock":1}`)
	assert.Contains(t, string(data), `"top_artists":{"A":2,"B":1}`)

	var back Summary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Ranking{{"Pop", 2}, {"Rock", 1}}, back.GenreDistribution)
}

func TestFilterScenario(t *testing.T) {
	ds := scenario()

	assert.Equal(t, []int{1, 3}, ids(Filter(ds, Criteria{Genre: "Pop"}, 20)))
	assert.Equal(t, []int{3}, ids(Filter(ds, Criteria{RatingMin: ptr(8.5)}, 20)))
	assert.Equal(t, []int{1, 3}, ids(Filter(ds, Criteria{RatingMin: ptr(8.0)}, 20)), "bounds are inclusive")
	assert.Equal(t, []int{2}, ids(Filter(ds, Criteria{YearFrom: ptr(2018), YearTo: ptr(2018)}, 20)))
	assert.Equal(t, []int{1, 3}, ids(Filter(ds, Criteria{Artist: "a"}, 20)), "artist match ignores case")
	assert.Equal(t, []int{1, 3}, ids(Filter(ds, Criteria{Genre: "流行"}, 20)), "chinese labels resolve")
	assert.Empty(t, Filter(ds, Criteria{Genre: "pop"}, 20), "genre match is exact")
	assert.Equal(t, []int{1, 2, 3}, ids(Filter(ds, Criteria{}, 20)))
	assert.Equal(t, []int{1, 2}, ids(Filter(ds, Criteria{}, 2)))
}

func TestFilterTruncatesInStorageOrder(t *testing.T) {
	tracks := make([]music.Track, 0, 50)
	for i := 1; i <= 50; i++ {
		tracks = append(tracks, track(i, music.GenreJazz, "X", 5, 2015))
	}
	got := Filter(music.NewDataset("mem", tracks), Criteria{}, 20)
	require.Len(t, got, 20)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 20, got[19].ID)
}

func TestFilterMonotonicity(t *testing.T) {
	tracks := []music.Track{}
	genres := music.Genres
	artists := []string{"周杰伦", "Taylor Swift", "IU", "Dua Lipa", "五月天"}
	for i := 1; i <= 120; i++ {
		tracks = append(tracks, track(i, genres[i%len(genres)], artists[i%len(artists)], 1+float64(i%10), 2010+i%15))
	}
	ds := music.NewDataset("mem", tracks)

	full := Criteria{
		Genre:     string(music.GenrePop),
		Artist:    "taylor",
		RatingMin: ptr(2.0),
		RatingMax: ptr(9.0),
		YearFrom:  ptr(2011),
		YearTo:    ptr(2022),
	}
	drops := []func(c *Criteria){
		func(c *Criteria) { c.Genre = "" },
		func(c *Criteria) { c.Artist = "" },
		func(c *Criteria) { c.RatingMin = nil },
		func(c *Criteria) { c.RatingMax = nil },
		func(c *Criteria) { c.YearFrom = nil },
		func(c *Criteria) { c.YearTo = nil },
	}

	narrow := Filter(ds, full, 0)
	for i, drop := range drops {
		wider := full
		drop(&wider)
		wide := Filter(ds, wider, 0)
		assert.Subset(t, ids(wide), ids(narrow), "dropping predicate %d shrank the result", i)

		match := All(wider.Predicates()...)
		for _, tr := range wide {
			assert.True(t, match(&tr))
		}
	}

	limited := Filter(ds, full, 20)
	assert.Subset(t, ids(Filter(ds, Criteria{}, 0)), ids(limited))
	assert.LessOrEqual(t, len(limited), 20)
}

func TestTopArtistsTiesByFirstEncounter(t *testing.T) {
	var tracks []music.Track
	names := []string{"C", "A", "B", "A", "C", "D", "B"}
	for i, n := range names {
		tracks = append(tracks, track(i+1, music.GenrePop, n, 5, 2015))
	}
	ds := music.NewDataset("mem", tracks)

	assert.Equal(t, Ranking{{"C", 2}, {"A", 2}, {"B", 2}, {"D", 1}}, TopArtists(ds, 10))
	assert.Equal(t, Ranking{{"C", 2}, {"A", 2}}, TopArtists(ds, 2))
}

func TestTopArtistsBounds(t *testing.T) {
	var tracks []music.Track
	for i := 1; i <= 40; i++ {
		tracks = append(tracks, track(i, music.GenreRock, fmt.Sprintf("artist-%d", i%13), 5, 2015))
	}
	ds := music.NewDataset("mem", tracks)
	top := TopArtists(ds, DefaultTopArtists)

	assert.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Value, top[i].Value)
	}

	small := scenario()
	assert.Len(t, TopArtists(small, DefaultTopArtists), 2)
}

func TestGenreDistributionSumsToTotal(t *testing.T) {
	var tracks []music.Track
	for i := 1; i <= 77; i++ {
		tracks = append(tracks, track(i, music.Genres[(i*7)%len(music.Genres)], "x", 5, 2015))
	}
	ds := music.NewDataset("mem", tracks)
	assert.Equal(t, ds.Len(), GenreDistribution(ds).Total())
}

func TestDistinct(t *testing.T) {
	ds := scenario()

	genres, err := Distinct(ds, FieldGenre)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pop", "Rock"}, genres)

	artists, err := Distinct(ds, FieldArtist)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, artists)

	_, err = Distinct(ds, Field("album"))
	assert.ErrorIs(t, err, ErrUnknownField)

	f, err := ParseField("Artists")
	require.NoError(t, err)
	assert.Equal(t, FieldArtist, f)
}

func TestAbsentDataset(t *testing.T) {
	var ds *music.Dataset

	assert.NotNil(t, Head(ds, 50))
	assert.Empty(t, Head(ds, 50))
	assert.Nil(t, Summarize(ds, DefaultTopArtists))
	assert.Empty(t, Filter(ds, Criteria{Genre: "Pop"}, 20))
	assert.NotNil(t, Filter(ds, Criteria{}, 20))

	genres, err := Distinct(ds, FieldGenre)
	require.NoError(t, err)
	assert.Empty(t, genres)
	assert.Empty(t, MeanByYear(ds, func(t *music.Track) float64 { return t.PlayCountMillions }))
	assert.Empty(t, FeatureMeansByGenre(ds).Genres)
}

func TestHead(t *testing.T) {
	ds := scenario()
	assert.Equal(t, []int{1, 2}, ids(Head(ds, 2)))
	assert.Equal(t, []int{1, 2, 3}, ids(Head(ds, 50)))

	head := Head(ds, 1)
	head[0].Artist = "mutated"
	assert.Equal(t, "A", ds.Tracks[0].Artist)
}

func TestParseCriteria(t *testing.T) {
	get := func(q string) func(string) string {
		v, err := url.ParseQuery(q)
		require.NoError(t, err)
		return v.Get
	}

	c, err := ParseCriteria(get("genre=Pop&artist=%20taylor%20&min_rating=7.5&year_to=2020"))
	require.NoError(t, err)
	assert.Equal(t, "Pop", c.Genre)
	assert.Equal(t, "taylor", c.Artist)
	assert.Equal(t, 7.5, *c.RatingMin)
	assert.Nil(t, c.RatingMax)
	assert.Nil(t, c.YearFrom)
	assert.Equal(t, 2020, *c.YearTo)

	empty, err := ParseCriteria(get(""))
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	for _, q := range []string{"min_rating=abc", "max_rating=NaN", "min_rating=Inf", "max_rating=+Inf", "min_rating=-Infinity", "year_from=20x0", "year_to=2020.5"} {
		_, err := ParseCriteria(get(q))
		require.Error(t, err, q)
		assert.ErrorIs(t, err, ErrInvalidParameter, q)

		var pe *ParamError
		require.True(t, errors.As(err, &pe), q)
	}
}

func TestMeanByYear(t *testing.T) {
	got := MeanByYear(scenario(), func(t *music.Track) float64 { return t.PlayCountMillions })
	assert.Equal(t, []YearMean{
		{Year: 2018, Mean: 2, Count: 1},
		{Year: 2020, Mean: 1, Count: 1},
		{Year: 2022, Mean: 3, Count: 1},
	}, got)
}

func TestFeatureMeansByGenre(t *testing.T) {
	ds := scenario()
	ds.Tracks[0].Danceability = 0.2
	ds.Tracks[2].Danceability = 0.4

	m := FeatureMeansByGenre(ds)
	assert.Equal(t, []string{"Pop", "Rock"}, m.Genres)
	assert.Equal(t, music.Features, m.Features)
	assert.InDelta(t, 0.3, m.Values[0][0], 1e-9)
	assert.InDelta(t, 0.5, m.Values[0][1], 1e-9)
	assert.InDelta(t, 0.0, m.Values[1][0], 1e-9)
}
