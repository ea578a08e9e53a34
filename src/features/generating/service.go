// Package generating builds synthetic catalogues with realistic distributions.
package generating

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxPlayCount caps the long tail of the play count distribution.
const MaxPlayCount = 100_000_000

var artists = []string{
	"周杰伦", "林俊杰", "邓紫棋", "薛之谦", "李荣浩", "华晨宇", "Taylor Swift",
	"Ed Sheeran", "Ariana Grande", "Billie Eilish", "The Weeknd", "Dua Lipa",
	"陈奕迅", "王菲", "张学友", "刘德华", "蔡依林", "五月天", "S.H.E",
	"BTS", "Blackpink", "TWICE", "IU", "汪峰", "宋冬野", "马頔", "陈鸿宇", "赵雷",
}

// artistPools restricts some genres to the artists that actually play them.
var artistPools = map[music.Genre][]string{
	music.GenrePop:  {"周杰伦", "林俊杰", "邓紫棋", "薛之谦", "李荣浩", "Taylor Swift", "Ariana Grande"},
	music.GenreRock: {"五月天", "汪峰"},
	music.GenreFolk: {"宋冬野", "马頔", "陈鸿宇", "赵雷"},
}

var titles = []string{
	"告白气球", "演员", "小幸运", "青春修炼手册", "宠爱", "追光者",
	"成都", "南山南", "董小姐", "理想", "斑马斑马", "安和桥",
	"Faded", "Alone", "Unity", "Spectre", "Animals", "Titanium",
	"Blinding Lights", "Save Your Tears", "The Hills", "Starboy",
	"中国有嘻哈", "嘻哈帝国", "说唱听我的", "Freestyle", "Battle",
	"What A Wonderful World", "Fly Me To The Moon", "Take Five",
	"月光奏鸣曲", "命运交响曲", "小夜曲", "天鹅湖", "卡农", "欢乐颂",
	"夜曲", "稻香", "青花瓷", "简单爱", "七里香", "晴天",
	"修炼爱情", "可惜没如果", "那些你很冒险的梦", "醉赤壁",
	"光年之外", "泡沫", "手心的蔷薇", "倒数", "句号",
	"绅士", "丑八怪", "意外", "天外来物",
	"模特", "李白", "不将就", "年少有为", "麻雀",
}

var albums = []string{
	"青春纪念册", "时光机", "梦想起航", "音乐之旅", "情感日记", "城市之光",
	"星空漫步", "心灵之声", "回忆碎片", "未来序曲", "经典重现", "新歌精选",
	"热门单曲", "年度精选", "最佳合集", "音乐盛典", "流行金曲", "经典回顾",
}

// Options controls one generation run.
type Options struct {
	Songs  int
	Seed   uint64
	Window music.YearWindow
}

func (o Options) validate() error {
	if o.Songs <= 0 {
		return fmt.Errorf("songs must be positive, got %d", o.Songs)
	}
	if o.Window.IsZero() || o.Window.From > o.Window.To {
		return fmt.Errorf("invalid release year window %s", o.Window)
	}
	return nil
}

// sampler draws every random field from a single seeded source.
type sampler struct {
	rng          *rand.Rand
	plays        distuv.LogNormal
	rating       distuv.Beta
	danceability distuv.Beta
	energy       distuv.Beta
	valence      distuv.Beta
	acousticness distuv.Beta
}

func newSampler(seed uint64) *sampler {
	src := rand.NewPCG(seed, seed)
	return &sampler{
		rng:          rand.New(src),
		plays:        distuv.LogNormal{Mu: 15, Sigma: 2, Src: src},
		rating:       distuv.Beta{Alpha: 7, Beta: 3, Src: src},
		danceability: distuv.Beta{Alpha: 3, Beta: 2, Src: src},
		energy:       distuv.Beta{Alpha: 2, Beta: 2, Src: src},
		valence:      distuv.Beta{Alpha: 2, Beta: 3, Src: src},
		acousticness: distuv.Beta{Alpha: 2, Beta: 4, Src: src},
	}
}

func (s *sampler) pick(values []string) string {
	return values[s.rng.IntN(len(values))]
}

func (s *sampler) track(id int, window music.YearWindow) music.Track {
	genre := music.Genres[s.rng.IntN(len(music.Genres))]
	title := s.pick(titles)

	pool, ok := artistPools[genre]
	if !ok {
		pool = artists
	}
	artist := s.pick(pool)

	plays := math.Min(math.Floor(s.plays.Rand()), MaxPlayCount)

	t := music.Track{
		ID:           id,
		Title:        title,
		Artist:       artist,
		Album:        s.pick(albums),
		Genre:        genre,
		ReleaseYear:  window.From + s.rng.IntN(window.To-window.From+1),
		PlayCount:    int(plays),
		Duration:     120 + s.rng.IntN(241),
		Rating:       music.Round(s.rating.Rand()*9+1, 1),
		Danceability: music.Round(s.danceability.Rand(), 3),
		Energy:       music.Round(s.energy.Rand(), 3),
		Valence:      music.Round(s.valence.Rand(), 3),
		Acousticness: music.Round(s.acousticness.Rand(), 3),
	}
	t.Derive()
	return t
}

// Generate builds a dataset of opts.Songs tracks. The same options always
// produce the same tracks. progress, when not nil, is called after each track.
func Generate(opts Options, progress func()) (*music.Dataset, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	s := newSampler(opts.Seed)
	tracks := make([]music.Track, 0, opts.Songs)
	for i := 1; i <= opts.Songs; i++ {
		tracks = append(tracks, s.track(i, opts.Window))
		if progress != nil {
			progress()
		}
	}
	return music.NewDataset("generator", tracks), nil
}

// Service generates datasets and persists them.
type Service struct {
	writer music.DatasetWriter
	mirror music.DatasetWriter
}

// NewService creates a generator that saves with writer and, when mirror is
// not nil, also with mirror.
func NewService(writer, mirror music.DatasetWriter) *Service {
	return &Service{writer: writer, mirror: mirror}
}

// Run generates a dataset, validates it and writes it to path (and mirrorPath
// when set).
func (s *Service) Run(ctx context.Context, opts Options, path, mirrorPath string, progress func()) (*music.Dataset, error) {
	slog.Debug("Generate service called", "songs", opts.Songs, "seed", opts.Seed, "window", opts.Window.String())
	ds, err := Generate(opts, progress)
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(opts.Window); err != nil {
		return nil, fmt.Errorf("generated dataset is invalid: %w", err)
	}
	ds.Source = path
	if err := s.writer.Write(ctx, path, ds); err != nil {
		return nil, fmt.Errorf("failed to save dataset: %w", err)
	}
	if s.mirror != nil && mirrorPath != "" {
		if err := s.mirror.Write(ctx, mirrorPath, ds); err != nil {
			return nil, fmt.Errorf("failed to save dataset mirror: %w", err)
		}
	}
	slog.Debug("Generate completed", "tracks", ds.Len(), "path", path)
	return ds, nil
}

// GenreShare is the number and percentage of tracks in one genre.
type GenreShare struct {
	Genre   string
	Count   int
	Percent float64
}

// Statistics summarises a freshly generated dataset.
type Statistics struct {
	Songs         int
	Artists       int
	Genres        []string
	YearMin       int
	YearMax       int
	MeanPlayCount float64
	MeanRating    float64
	Shares        []GenreShare
}

// BasicStatistics computes the figures printed after generation.
func BasicStatistics(ds *music.Dataset) Statistics {
	st := Statistics{Genres: []string{}, Shares: []GenreShare{}}
	sum := query.Summarize(ds, query.DefaultTopArtists)
	if sum == nil {
		return st
	}
	st.Songs = sum.TotalSongs
	st.Artists = sum.TotalArtists
	st.YearMin, st.YearMax = sum.YearMin, sum.YearMax
	st.MeanRating = sum.AvgRating
	st.Genres, _ = query.Distinct(ds, query.FieldGenre)

	var plays float64
	for _, p := range query.Column(ds, func(t *music.Track) float64 { return float64(t.PlayCount) }) {
		plays += p
	}
	st.MeanPlayCount = math.Round(plays / float64(ds.Len()))

	for _, c := range sum.GenreDistribution {
		st.Shares = append(st.Shares, GenreShare{
			Genre:   c.Key,
			Count:   c.Value,
			Percent: music.Round(float64(c.Value)/float64(ds.Len())*100, 1),
		})
	}
	return st
}
