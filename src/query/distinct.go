package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contre95/songstats/src/music"
)

// ErrUnknownField is returned for a distinct listing on an unsupported field.
var ErrUnknownField = errors.New("unknown field")

// Field is a track column that supports distinct listing.
type Field string

const (
	FieldGenre  Field = "genre"
	FieldArtist Field = "artist"
)

// ParseField accepts the singular or plural field name.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "genre", "genres":
		return FieldGenre, nil
	case "artist", "artists":
		return FieldArtist, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Distinct returns the distinct values of field in first-seen order.
func Distinct(ds *music.Dataset, field Field) ([]string, error) {
	var key func(*music.Track) string
	switch field {
	case FieldGenre:
		key = byGenre
	case FieldArtist:
		key = byArtist
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return CountBy(ds, key).Keys(), nil
}
