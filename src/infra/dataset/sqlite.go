package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contre95/songstats/src/music"
	_ "github.com/mattn/go-sqlite3"
)

const createTracksTable = `
CREATE TABLE IF NOT EXISTS tracks (
	song_id             INTEGER PRIMARY KEY,
	song_name           TEXT NOT NULL,
	artist              TEXT NOT NULL,
	album               TEXT NOT NULL,
	genre               TEXT NOT NULL,
	release_year        INTEGER NOT NULL,
	play_count          INTEGER NOT NULL,
	duration            INTEGER NOT NULL,
	rating              REAL NOT NULL,
	danceability        REAL NOT NULL,
	energy              REAL NOT NULL,
	valence             REAL NOT NULL,
	acousticness        REAL NOT NULL,
	duration_minutes    REAL NOT NULL,
	play_count_millions REAL NOT NULL
)`

// SQLiteStore keeps the catalogue in a single "tracks" table.
type SQLiteStore struct {
	window music.YearWindow
}

// NewSQLiteStore creates a SQLite store that validates release years against window.
func NewSQLiteStore(window music.YearWindow) *SQLiteStore {
	return &SQLiteStore{window: window}
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	return db, nil
}

// Load reads every row of the tracks table ordered by song_id.
func (s *SQLiteStore) Load(ctx context.Context, path string) (*music.Dataset, error) {
	// sqlite3 creates missing files on open
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", music.ErrDatasetUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", music.ErrDatasetUnavailable, err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", music.ErrDatasetUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT song_id, song_name, artist, album, genre, release_year, play_count, duration,
			rating, danceability, energy, valence, acousticness, duration_minutes, play_count_millions
		FROM tracks ORDER BY song_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query tracks: %v", music.ErrMalformedDataset, err)
	}
	defer rows.Close()

	tracks := []music.Track{}
	for rows.Next() {
		var t music.Track
		var genre string
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Album, &genre, &t.ReleaseYear, &t.PlayCount, &t.Duration,
			&t.Rating, &t.Danceability, &t.Energy, &t.Valence, &t.Acousticness, &t.DurationMinutes, &t.PlayCountMillions); err != nil {
			return nil, fmt.Errorf("%w: failed to scan track: %v", music.ErrMalformedDataset, err)
		}
		g, err := music.ParseGenre(genre)
		if err != nil {
			return nil, fmt.Errorf("%w: track %d: %v", music.ErrMalformedDataset, t.ID, err)
		}
		t.Genre = g
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", music.ErrMalformedDataset, err)
	}

	ds := music.NewDataset(path, tracks)
	if err := ds.Validate(s.window); err != nil {
		return nil, err
	}
	slog.Debug("SQLite dataset loaded", "path", path, "tracks", len(tracks))
	return ds, nil
}

// Write replaces the contents of the tracks table with ds in one transaction.
func (s *SQLiteStore) Write(ctx context.Context, path string, ds *music.Dataset) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create dataset directory %s: %w", dir, err)
		}
	}
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTracksTable); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear tracks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (song_id, song_name, artist, album, genre, release_year, play_count, duration,
			rating, danceability, energy, valence, acousticness, duration_minutes, play_count_millions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range ds.Tracks {
		t := &ds.Tracks[i]
		if _, err := stmt.ExecContext(ctx, t.ID, t.Title, t.Artist, t.Album, string(t.Genre), t.ReleaseYear, t.PlayCount, t.Duration,
			t.Rating, t.Danceability, t.Energy, t.Valence, t.Acousticness, t.DurationMinutes, t.PlayCountMillions); err != nil {
			return fmt.Errorf("failed to insert track %d: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tracks: %w", err)
	}
	slog.Info("Dataset saved", "path", path, "tracks", ds.Len())
	return nil
}
