package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rewind/internal/snapshot"
	"rewind/internal/stats"
)

func TestWriteM3U(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.m3u")
	tracks := []snapshot.Track{
		{Identity: "/music/b.flac", Title: "Beta", Artist: "Second Artist", PlayCount: 30, Length: 215},
		{Identity: "/music/a.flac", Title: "Alpha", Artist: "First Artist", PlayCount: 12},
	}

	if err := WriteM3U(path, tracks); err != nil {
		t.Fatalf("WriteM3U: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "#EXTM3U\n" +
		"#EXTINF:215,Second Artist - Beta\n" +
		"/music/b.flac\n" +
		"#EXTINF:-1,First Artist - Alpha\n" +
		"/music/a.flac\n"
	if string(data) != want {
		t.Errorf("playlist = %q, want %q", data, want)
	}
}

func TestWriteM3UEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.m3u")

	if err := WriteM3U(path, nil); err != nil {
		t.Fatalf("WriteM3U: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "#EXTM3U\n" {
		t.Errorf("empty playlist = %q, want header only", data)
	}
}

// The playlist must list tracks in exactly the order the stats document
// ranks them, including under play-count ties.
func TestWriteM3UOrderMatchesStats(t *testing.T) {
	tracks := []snapshot.Track{
		{Identity: "/music/z.flac", Title: "Zed", Artist: "A", PlayCount: 7},
		{Identity: "/music/a.flac", Title: "Ay", Artist: "A", PlayCount: 7},
		{Identity: "/music/top.flac", Title: "Top", Artist: "B", PlayCount: 9},
	}

	top := stats.TopTracks(tracks, 100)
	path := filepath.Join(t.TempDir(), "top.m3u")
	if err := WriteM3U(path, top); err != nil {
		t.Fatalf("WriteM3U: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	if len(paths) != len(top) {
		t.Fatalf("playlist has %d paths, stats ranked %d tracks", len(paths), len(top))
	}
	for i := range top {
		if paths[i] != top[i].Identity {
			t.Errorf("entry %d = %q, stats ranked %q", i, paths[i], top[i].Identity)
		}
	}
}

func TestWriteM3ULeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "top.m3u")
	if err := WriteM3U(path, nil); err != nil {
		t.Fatalf("WriteM3U: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "top.m3u" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}
