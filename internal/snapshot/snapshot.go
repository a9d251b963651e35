// Package snapshot defines the per-year play-count snapshot that the
// pipeline stages exchange on disk, and the paths of the per-year
// artifacts derived from it.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Track is one play record extracted from the player's song database.
// Identity is the track's file path and serves as the stable key; records
// are immutable once extracted.
type Track struct {
	Identity   string `json:"identity"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	PlayCount  int64  `json:"play_count"`
	LastPlayed int64  `json:"last_played"`
	Length     int64  `json:"length,omitempty"`
}

// Dir is the working directory for a year's artifacts.
func Dir(root string, year int) string {
	return filepath.Join(root, strconv.Itoa(year))
}

// Path is where the extract stage writes the year's snapshot.
func Path(root string, year int) string {
	return filepath.Join(Dir(root, year), "playcounts.json")
}

// StatsPath is where the stats stage writes the year's stats document.
func StatsPath(root string, year int) string {
	return filepath.Join(Dir(root, year), "stats.json")
}

// PlaylistPath is where the playlist stage writes the year's playlist.
func PlaylistPath(root string, year int) string {
	return filepath.Join(Dir(root, year), fmt.Sprintf("Your Top Songs %d.m3u", year))
}

// Write persists the snapshot, creating the year directory if needed.
func Write(path string, tracks []Track) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating year directory: %w", err)
	}

	if tracks == nil {
		tracks = []Track{}
	}
	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return Commit(path, append(data, '\n'))
}

// Read loads a snapshot written by the extract stage. A missing or
// malformed snapshot is an error for the caller to treat as fatal.
func Read(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return tracks, nil
}

// Commit writes data to a sibling temp file and renames it into place, so
// a downstream stage never observes a half-written artifact.
func Commit(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("committing %s: %w", path, err)
	}
	return nil
}
