package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/contre95/songstats/src/music"
)

// Column names, in the order the writer emits them.
const (
	colID                = "song_id"
	colTitle             = "song_name"
	colArtist            = "artist"
	colAlbum             = "album"
	colGenre             = "genre"
	colReleaseYear       = "release_year"
	colPlayCount         = "play_count"
	colDuration          = "duration"
	colRating            = "rating"
	colDanceability      = "danceability"
	colEnergy            = "energy"
	colValence           = "valence"
	colAcousticness      = "acousticness"
	colDurationMinutes   = "duration_minutes"
	colPlayCountMillions = "play_count_millions"
)

var columns = []string{
	colID, colTitle, colArtist, colAlbum, colGenre, colReleaseYear, colPlayCount,
	colDuration, colRating, colDanceability, colEnergy, colValence, colAcousticness,
	colDurationMinutes, colPlayCountMillions,
}

var requiredColumns = columns[:13]

// CSVStore reads and writes the catalogue as a UTF-8 CSV file with a header row.
type CSVStore struct {
	window music.YearWindow
}

// NewCSVStore creates a CSV store that validates release years against window.
func NewCSVStore(window music.YearWindow) *CSVStore {
	return &CSVStore{window: window}
}

// Load parses the file at path into a dataset.
func (s *CSVStore) Load(ctx context.Context, path string) (*music.Dataset, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", music.ErrDatasetUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", music.ErrDatasetUnavailable, err)
	}
	defer file.Close()

	tracks, err := s.parse(file)
	if err != nil {
		return nil, err
	}
	ds := music.NewDataset(path, tracks)
	if err := ds.Validate(s.window); err != nil {
		return nil, err
	}
	slog.Debug("CSV dataset parsed", "path", path, "tracks", len(tracks))
	return ds, nil
}

func (s *CSVStore) parse(r io.Reader) ([]music.Track, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", music.ErrMalformedDataset, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", music.ErrMalformedDataset, col)
		}
	}

	tracks := []music.Track{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", music.ErrMalformedDataset, row, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		t, err := decodeRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", music.ErrMalformedDataset, row, err)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// normalizeHeader strips a BOM, trims and snake-cases a header cell.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// rowDecoder reads typed cells from one record and keeps the first error.
type rowDecoder struct {
	record []string
	index  map[string]int
	err    error
}

func (d *rowDecoder) cell(col string) (string, bool) {
	i, ok := d.index[col]
	if !ok || i >= len(d.record) {
		return "", false
	}
	return strings.TrimSpace(d.record[i]), true
}

func (d *rowDecoder) str(col string) string {
	v, _ := d.cell(col)
	return v
}

func (d *rowDecoder) intValue(col string) int {
	if d.err != nil {
		return 0
	}
	raw := d.str(col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		// accept whole floats such as "2019.0"
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			d.err = fmt.Errorf("column %s: %q is not an integer", col, raw)
			return 0
		}
		v = int(f)
	}
	return v
}

func (d *rowDecoder) floatValue(col string) float64 {
	if d.err != nil {
		return 0
	}
	raw := d.str(col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		d.err = fmt.Errorf("column %s: %q is not a number", col, raw)
		return 0
	}
	return v
}

func decodeRow(record []string, index map[string]int) (music.Track, error) {
	d := &rowDecoder{record: record, index: index}

	genre, err := music.ParseGenre(d.str(colGenre))
	if err != nil {
		return music.Track{}, err
	}
	t := music.Track{
		ID:           d.intValue(colID),
		Title:        d.str(colTitle),
		Artist:       d.str(colArtist),
		Album:        d.str(colAlbum),
		Genre:        genre,
		ReleaseYear:  d.intValue(colReleaseYear),
		PlayCount:    d.intValue(colPlayCount),
		Duration:     d.intValue(colDuration),
		Rating:       d.floatValue(colRating),
		Danceability: d.floatValue(colDanceability),
		Energy:       d.floatValue(colEnergy),
		Valence:      d.floatValue(colValence),
		Acousticness: d.floatValue(colAcousticness),
	}
	t.Derive()
	if _, ok := d.cell(colDurationMinutes); ok {
		t.DurationMinutes = d.floatValue(colDurationMinutes)
	}
	if _, ok := d.cell(colPlayCountMillions); ok {
		t.PlayCountMillions = d.floatValue(colPlayCountMillions)
	}
	return t, d.err
}

// Write saves ds at path, creating parent directories as needed.
func (s *CSVStore) Write(ctx context.Context, path string, ds *music.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create dataset directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range ds.Tracks {
		if err := w.Write(encodeRow(&ds.Tracks[i])); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	slog.Info("Dataset saved", "path", path, "tracks", ds.Len())
	return nil
}

func encodeRow(t *music.Track) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		strconv.Itoa(t.ID),
		t.Title,
		t.Artist,
		t.Album,
		string(t.Genre),
		strconv.Itoa(t.ReleaseYear),
		strconv.Itoa(t.PlayCount),
		strconv.Itoa(t.Duration),
		f(t.Rating),
		f(t.Danceability),
		f(t.Energy),
		f(t.Valence),
		f(t.Acousticness),
		f(t.DurationMinutes),
		f(t.PlayCountMillions),
	}
}
