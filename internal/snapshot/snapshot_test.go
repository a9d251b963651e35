package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCreatesYearDirectory(t *testing.T) {
	root := t.TempDir()
	path := Path(root, 2025)

	tracks := []Track{
		{Identity: "/music/a.flac", Title: "Alpha", Artist: "Artist", Album: "One", PlayCount: 3, LastPlayed: 1750000000},
	}
	if err := Write(path, tracks); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0] != tracks[0] {
		t.Errorf("Read = %+v, want %+v", got, tracks)
	}
}

func TestWriteEmptySnapshotIsAnArray(t *testing.T) {
	path := Path(t.TempDir(), 2025)
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty snapshot = %q, want empty JSON array", data)
	}
}

func TestReadMissingSnapshot(t *testing.T) {
	_, err := Read(Path(t.TempDir(), 2025))
	if err == nil {
		t.Fatal("Read should error on a missing snapshot")
	}
}

func TestReadMalformedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playcounts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Read(path)
	if err == nil {
		t.Fatal("Read should error on a malformed snapshot")
	}
}

func TestArtifactPaths(t *testing.T) {
	if got, want := Path("playcounts", 2025), filepath.Join("playcounts", "2025", "playcounts.json"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if got, want := StatsPath("playcounts", 2025), filepath.Join("playcounts", "2025", "stats.json"); got != want {
		t.Errorf("StatsPath = %q, want %q", got, want)
	}
	if got, want := PlaylistPath("playcounts", 2025), filepath.Join("playcounts", "2025", "Your Top Songs 2025.m3u"); got != want {
		t.Errorf("PlaylistPath = %q, want %q", got, want)
	}
}
