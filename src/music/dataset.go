package music

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDatasetUnavailable is returned when the dataset file does not exist or cannot be opened.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	// ErrMalformedDataset is returned when the dataset file cannot be parsed or breaks an invariant.
	ErrMalformedDataset = errors.New("malformed dataset")
)

// Dataset is the ordered, read-only collection of tracks loaded from a source.
type Dataset struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Tracks   []Track
}

// NewDataset wraps tracks loaded from source. The slice must not be modified afterwards.
func NewDataset(source string, tracks []Track) *Dataset {
	return &Dataset{
		ID:       uuid.New().String(),
		Source:   source,
		LoadedAt: time.Now(),
		Tracks:   tracks,
	}
}

// Len returns the number of tracks; a nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Tracks)
}

// Empty reports whether there is nothing to query.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Validate checks every track and that IDs are sequential from 1.
func (d *Dataset) Validate(window YearWindow) error {
	if d == nil {
		return nil
	}
	for i := range d.Tracks {
		t := &d.Tracks[i]
		if t.ID != i+1 {
			return fmt.Errorf("%w: row %d has song_id %d, want %d", ErrMalformedDataset, i+1, t.ID, i+1)
		}
		if err := t.Validate(window); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrMalformedDataset, i+1, err)
		}
	}
	return nil
}

// YearWindow is an inclusive range of release years.
type YearWindow struct {
	From int
	To   int
}

// Contains reports whether year falls inside the window.
func (w YearWindow) Contains(year int) bool {
	return year >= w.From && year <= w.To
}

// IsZero reports whether the window is unset.
func (w YearWindow) IsZero() bool {
	return w.From == 0 && w.To == 0
}

func (w YearWindow) String() string {
	return fmt.Sprintf("%d-%d", w.From, w.To)
}

// DatasetLoader reads a dataset from a path.
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*Dataset, error)
}

// DatasetWriter persists a dataset to a path.
type DatasetWriter interface {
	Write(ctx context.Context, path string, ds *Dataset) error
}
