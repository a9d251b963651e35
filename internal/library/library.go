// Package library reads the music player's persisted song database.
//
// The database is the player's own SQLite file. Strawberry and Clementine
// keep compatible songs tables (url/path, title, artist, album, playcount,
// lastplayed, length); rewind only ever reads it.
package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	homedir "github.com/mitchellh/go-homedir"

	"rewind/internal/snapshot"
)

type Library struct {
	db *sql.DB
}

// DefaultPath probes the known player database locations and returns the
// first that exists. When none exists the primary candidate is returned so
// the caller's open error names a concrete path.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	candidates := []string{
		filepath.Join(home, ".local", "share", "strawberry", "strawberry", "strawberry.db"),
		filepath.Join(home, ".config", "Clementine", "clementine.db"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return candidates[0], nil
}

// Open opens the song database read-only. A missing database is an
// immediate error - the library is an external, user-managed resource, so
// there is nothing to create or retry.
func Open(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("song database not found at %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening song database: %w", err)
	}
	return &Library{db: db}, nil
}

func (l *Library) Close() error {
	return l.db.Close()
}

// CountPlayedDuring returns how many songs were last played during the
// given year, for sizing the scan progress.
func (l *Library) CountPlayedDuring(year int) (int, error) {
	start, end := yearBounds(year)

	var count int
	err := l.db.QueryRow(
		"SELECT COUNT(*) FROM songs WHERE lastplayed >= ? AND lastplayed < ?",
		start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return count, nil
}

// PlayedDuring returns a snapshot record for every song whose last play
// falls inside the civil year, in local time. Songs missing a path or
// title are skipped and counted rather than failing the whole extract,
// matching how the player itself tolerates ragged metadata. onRow, if not
// nil, is called once per scanned row.
//
// The playcount column is cumulative, so "played during year Y" here means
// "last played in Y"; the count includes plays from earlier years.
func (l *Library) PlayedDuring(year int, minPlaycount int, onRow func()) (tracks []snapshot.Track, skipped int, err error) {
	start, end := yearBounds(year)

	rows, err := l.db.Query(`
		SELECT url, title, artist, album, playcount, lastplayed, length
		FROM songs
		WHERE lastplayed >= ? AND lastplayed < ?
		ORDER BY playcount DESC, url ASC
	`, start, end)
	if err != nil {
		return nil, 0, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if onRow != nil {
			onRow()
		}

		var url, title, artist, album sql.NullString
		var playcount, lastplayed, length sql.NullInt64
		if err := rows.Scan(&url, &title, &artist, &album, &playcount, &lastplayed, &length); err != nil {
			return nil, 0, fmt.Errorf("scanning song: %w", err)
		}

		if playcount.Int64 < int64(minPlaycount) {
			continue
		}
		if url.String == "" || title.String == "" {
			skipped++
			continue
		}

		tracks = append(tracks, snapshot.Track{
			Identity:   pathFromURL(url.String),
			Title:      title.String,
			Artist:     artist.String,
			Album:      album.String,
			PlayCount:  playcount.Int64,
			LastPlayed: lastplayed.Int64,
			Length:     length.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading songs: %w", err)
	}
	return tracks, skipped, nil
}

func yearBounds(year int) (start, end int64) {
	s := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	return s.Unix(), s.AddDate(1, 0, 0).Unix()
}

// pathFromURL strips the file:// scheme Strawberry stores in the url
// column; Clementine stores bare paths.
func pathFromURL(u string) string {
	return strings.TrimPrefix(u, "file://")
}
