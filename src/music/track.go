package music

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MinRating and MaxRating bound a track rating (inclusive).
	MinRating = 1.0
	MaxRating = 10.0

	// derivedTolerance accepts derived values rounded half away from zero.
	derivedTolerance = 0.011
)

var validate = validator.New()

// Track is a single catalogue entry.
type Track struct {
	ID                int     `json:"song_id" validate:"gt=0"`
	Title             string  `json:"song_name" validate:"required"`
	Artist            string  `json:"artist" validate:"required"`
	Album             string  `json:"album" validate:"required"`
	Genre             Genre   `json:"genre" validate:"required"`
	ReleaseYear       int     `json:"release_year" validate:"gt=0"`
	PlayCount         int     `json:"play_count" validate:"gte=0"`
	Duration          int     `json:"duration" validate:"gt=0"`
	Rating            float64 `json:"rating" validate:"gte=1,lte=10"`
	Danceability      float64 `json:"danceability" validate:"gte=0,lte=1"`
	Energy            float64 `json:"energy" validate:"gte=0,lte=1"`
	Valence           float64 `json:"valence" validate:"gte=0,lte=1"`
	Acousticness      float64 `json:"acousticness" validate:"gte=0,lte=1"`
	DurationMinutes   float64 `json:"duration_minutes"`
	PlayCountMillions float64 `json:"play_count_millions"`
}

// Derive recomputes the derived fields from their base fields.
func (t *Track) Derive() {
	t.DurationMinutes = DurationMinutes(t.Duration)
	t.PlayCountMillions = PlayCountMillions(t.PlayCount)
}

// Validate checks the track invariants. A zero window skips the year range check.
func (t *Track) Validate(window YearWindow) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("track %d: %w", t.ID, err)
	}
	if strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Artist) == "" {
		return fmt.Errorf("track %d: title and artist cannot be blank", t.ID)
	}
	if !t.Genre.Valid() {
		return fmt.Errorf("track %d: unknown genre %q", t.ID, t.Genre)
	}
	if !window.IsZero() && !window.Contains(t.ReleaseYear) {
		return fmt.Errorf("track %d: release year %d outside %s", t.ID, t.ReleaseYear, window)
	}
	if math.Abs(t.DurationMinutes-DurationMinutes(t.Duration)) > derivedTolerance {
		return fmt.Errorf("track %d: duration_minutes %.2f does not match duration %d", t.ID, t.DurationMinutes, t.Duration)
	}
	if math.Abs(t.PlayCountMillions-PlayCountMillions(t.PlayCount)) > derivedTolerance {
		return fmt.Errorf("track %d: play_count_millions %.2f does not match play_count %d", t.ID, t.PlayCountMillions, t.PlayCount)
	}
	return nil
}

// Feature returns the named audio feature score.
func (t *Track) Feature(f Feature) float64 {
	switch f {
	case FeatureDanceability:
		return t.Danceability
	case FeatureEnergy:
		return t.Energy
	case FeatureValence:
		return t.Valence
	case FeatureAcousticness:
		return t.Acousticness
	}
	return 0
}

// Feature names one of the four audio feature scores.
type Feature string

const (
	FeatureDanceability Feature = "danceability"
	FeatureEnergy       Feature = "energy"
	FeatureValence      Feature = "valence"
	FeatureAcousticness Feature = "acousticness"
)

// Features lists the audio features in column order.
var Features = []Feature{FeatureDanceability, FeatureEnergy, FeatureValence, FeatureAcousticness}

// DurationMinutes converts seconds to minutes rounded to 2 decimals.
func DurationMinutes(seconds int) float64 {
	return Round(float64(seconds)/60, 2)
}

// PlayCountMillions converts a play count to millions rounded to 2 decimals.
func PlayCountMillions(plays int) float64 {
	return Round(float64(plays)/1_000_000, 2)
}

// Round rounds v to the given number of decimals, half to even.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}
