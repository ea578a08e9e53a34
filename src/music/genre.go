package music

import (
	"fmt"
	"strings"
)

// Genre is one of the fixed catalogue genres.
type Genre string

const (
	GenrePop        Genre = "Pop"
	GenreRock       Genre = "Rock"
	GenreFolk       Genre = "Folk"
	GenreElectronic Genre = "Electronic"
	GenreHipHop     Genre = "Hip-Hop"
	GenreRnB        Genre = "R&B"
	GenreJazz       Genre = "Jazz"
	GenreClassical  Genre = "Classical"
)

// Genres lists every genre in catalogue order.
var Genres = []Genre{
	GenrePop,
	GenreRock,
	GenreFolk,
	GenreElectronic,
	GenreHipHop,
	GenreRnB,
	GenreJazz,
	GenreClassical,
}

// genreAliases maps the Chinese labels found in QQ Music exports.
var genreAliases = map[string]Genre{
	"流行": GenrePop,
	"摇滚": GenreRock,
	"民谣": GenreFolk,
	"电子": GenreElectronic,
	"说唱": GenreHipHop,
	"爵士": GenreJazz,
	"古典": GenreClassical,
}

// LookupAlias resolves a Chinese catalogue label such as "流行".
func LookupAlias(label string) (Genre, bool) {
	g, ok := genreAliases[label]
	return g, ok
}

// ParseGenre resolves a genre name or alias, ignoring case and surrounding spaces.
func ParseGenre(s string) (Genre, error) {
	name := strings.TrimSpace(s)
	for _, g := range Genres {
		if strings.EqualFold(string(g), name) {
			return g, nil
		}
	}
	if g, ok := genreAliases[name]; ok {
		return g, nil
	}
	switch strings.ToLower(strings.ReplaceAll(name, " ", "")) {
	case "hiphop":
		return GenreHipHop, nil
	case "rnb":
		return GenreRnB, nil
	}
	return "", fmt.Errorf("unknown genre %q", s)
}

// Valid reports whether g belongs to the catalogue genres.
func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}
