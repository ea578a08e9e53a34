// Package dataset implements the file formats the catalogue can be loaded from
// and saved to.
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/contre95/songstats/src/music"
)

// Store both loads and writes a dataset format.
type Store interface {
	music.DatasetLoader
	music.DatasetWriter
}

// IsSQLite reports whether path names a SQLite database.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// ForPath picks the store matching the file extension; CSV is the default.
func ForPath(path string, window music.YearWindow) Store {
	if IsSQLite(path) {
		return NewSQLiteStore(window)
	}
	return NewCSVStore(window)
}
