// Package query implements the in-memory filtering, aggregation and ranking
// operations over a music.Dataset. Every function is a pure function of its
// arguments; a nil dataset yields an empty result.
package query

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/contre95/songstats/src/music"
)

// ErrInvalidParameter is matched by every *ParamError.
var ErrInvalidParameter = errors.New("invalid query parameter")

// ParamError reports a query parameter that could not be parsed.
type ParamError struct {
	Name  string
	Value string
	Want  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: expected %s", e.Value, e.Name, e.Want)
}

// Is lets errors.Is match ErrInvalidParameter.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// Query-string keys read by ParseCriteria.
const (
	ParamGenre     = "genre"
	ParamArtist    = "artist"
	ParamMinRating = "min_rating"
	ParamMaxRating = "max_rating"
	ParamYearFrom  = "year_from"
	ParamYearTo    = "year_to"
)

// Criteria is an optional conjunction of filter predicates. Zero values mean "not set".
type Criteria struct {
	Genre     string
	Artist    string
	RatingMin *float64
	RatingMax *float64
	YearFrom  *int
	YearTo    *int
}

// IsEmpty reports whether no predicate is set.
func (c Criteria) IsEmpty() bool {
	return c.Genre == "" && c.Artist == "" &&
		c.RatingMin == nil && c.RatingMax == nil &&
		c.YearFrom == nil && c.YearTo == nil
}

// Predicates returns the active predicates in a fixed order.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.Genre != "" {
		preds = append(preds, GenreIs(c.Genre))
	}
	if c.Artist != "" {
		preds = append(preds, ArtistContains(c.Artist))
	}
	if c.RatingMin != nil {
		preds = append(preds, RatingAtLeast(*c.RatingMin))
	}
	if c.RatingMax != nil {
		preds = append(preds, RatingAtMost(*c.RatingMax))
	}
	if c.YearFrom != nil {
		preds = append(preds, YearFrom(*c.YearFrom))
	}
	if c.YearTo != nil {
		preds = append(preds, YearTo(*c.YearTo))
	}
	return preds
}

// ParseCriteria builds Criteria from a key lookup such as a query string.
// Blank values leave the predicate unset; a non-numeric bound is rejected.
func ParseCriteria(get func(key string) string) (Criteria, error) {
	c := Criteria{
		Genre:  strings.TrimSpace(get(ParamGenre)),
		Artist: strings.TrimSpace(get(ParamArtist)),
	}
	var err error
	if c.RatingMin, err = parseFloat(ParamMinRating, get(ParamMinRating)); err != nil {
		return Criteria{}, err
	}
	if c.RatingMax, err = parseFloat(ParamMaxRating, get(ParamMaxRating)); err != nil {
		return Criteria{}, err
	}
	if c.YearFrom, err = parseInt(ParamYearFrom, get(ParamYearFrom)); err != nil {
		return Criteria{}, err
	}
	if c.YearTo, err = parseInt(ParamYearTo, get(ParamYearTo)); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func parseFloat(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &ParamError{Name: name, Value: raw, Want: "a number"}
	}
	return &v, nil
}

func parseInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ParamError{Name: name, Value: raw, Want: "an integer"}
	}
	return &v, nil
}

// Predicate is a single filter condition on a track.
type Predicate func(t *music.Track) bool

// GenreIs matches the genre exactly. Chinese catalogue labels resolve to their canonical genre.
func GenreIs(genre string) Predicate {
	want := music.Genre(genre)
	if g, ok := music.LookupAlias(genre); ok {
		want = g
	}
	return func(t *music.Track) bool {
		return t.Genre == want
	}
}

// ArtistContains matches a case-insensitive substring of the artist name.
func ArtistContains(sub string) Predicate {
	needle := strings.ToLower(sub)
	return func(t *music.Track) bool {
		return strings.Contains(strings.ToLower(t.Artist), needle)
	}
}

// RatingAtLeast matches rating >= min.
func RatingAtLeast(min float64) Predicate {
	return func(t *music.Track) bool { return t.Rating >= min }
}

// RatingAtMost matches rating <= max.
func RatingAtMost(max float64) Predicate {
	return func(t *music.Track) bool { return t.Rating <= max }
}

// YearFrom matches release_year >= year.
func YearFrom(year int) Predicate {
	return func(t *music.Track) bool { return t.ReleaseYear >= year }
}

// YearTo matches release_year <= year.
func YearTo(year int) Predicate {
	return func(t *music.Track) bool { return t.ReleaseYear <= year }
}

// All combines predicates with logical AND. No predicates matches everything.
func All(preds ...Predicate) Predicate {
	return func(t *music.Track) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}
