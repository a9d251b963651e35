// Package stats derives the year's aggregate statistics from a play-count
// snapshot. It trusts the snapshot's play counts verbatim and never
// re-derives them.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"rewind/internal/snapshot"
)

// TopTrack is one ranked entry in the stats document.
type TopTrack struct {
	Identity string `json:"identity"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Plays    int64  `json:"plays"`
}

// TopArtist aggregates a single artist's plays across the snapshot.
type TopArtist struct {
	Artist string `json:"artist"`
	Plays  int64  `json:"plays"`
	Tracks int    `json:"tracks"`
}

// Totals are the metrics compared year over year.
type Totals struct {
	TotalPlays   int64 `json:"total_plays"`
	TotalTracks  int   `json:"total_tracks"`
	TotalArtists int   `json:"total_artists"`
}

// Stats is the terminal stats document for a year. Deltas is nil when no
// previous-year data was found; absent means "no data", not "no change".
type Stats struct {
	Year int `json:"year"`
	Totals
	TopTracks  []TopTrack  `json:"top_tracks"`
	TopArtists []TopArtist `json:"top_artists"`
	Deltas     *Totals     `json:"deltas,omitempty"`
}

// TotalsOf computes the aggregate metrics for a snapshot.
func TotalsOf(tracks []snapshot.Track) Totals {
	var t Totals
	identities := make(map[string]bool)
	artists := make(map[string]bool)
	for _, tr := range tracks {
		t.TotalPlays += tr.PlayCount
		identities[tr.Identity] = true
		artists[tr.Artist] = true
	}
	t.TotalTracks = len(identities)
	t.TotalArtists = len(artists)
	return t
}

// Compute aggregates the snapshot into a stats document. prev carries the
// previous year's totals when available.
func Compute(year int, tracks []snapshot.Track, limit int, prev *Totals) Stats {
	s := Stats{
		Year:       year,
		Totals:     TotalsOf(tracks),
		TopTracks:  []TopTrack{},
		TopArtists: TopArtists(tracks, limit),
	}

	for _, t := range TopTracks(tracks, limit) {
		s.TopTracks = append(s.TopTracks, TopTrack{
			Identity: t.Identity,
			Title:    t.Title,
			Artist:   t.Artist,
			Album:    t.Album,
			Plays:    t.PlayCount,
		})
	}

	if prev != nil {
		s.Deltas = &Totals{
			TotalPlays:   s.TotalPlays - prev.TotalPlays,
			TotalTracks:  s.TotalTracks - prev.TotalTracks,
			TotalArtists: s.TotalArtists - prev.TotalArtists,
		}
	}
	return s
}

// TopTracks returns the limit most played tracks, play count descending.
// Ties are broken by identity so the stats document and the playlist
// always agree on order. The input slice is not modified.
func TopTracks(tracks []snapshot.Track, limit int) []snapshot.Track {
	sorted := make([]snapshot.Track, len(tracks))
	copy(sorted, tracks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].PlayCount != sorted[j].PlayCount {
			return sorted[i].PlayCount > sorted[j].PlayCount
		}
		return sorted[i].Identity < sorted[j].Identity
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopArtists returns the limit artists with the most summed plays, ties
// broken by artist name.
func TopArtists(tracks []snapshot.Track, limit int) []TopArtist {
	plays := make(map[string]int64)
	count := make(map[string]int)
	for _, t := range tracks {
		plays[t.Artist] += t.PlayCount
		count[t.Artist]++
	}

	result := make([]TopArtist, 0, len(plays))
	for artist, p := range plays {
		result = append(result, TopArtist{Artist: artist, Plays: p, Tracks: count[artist]})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Plays != result[j].Plays {
			return result[i].Plays > result[j].Plays
		}
		return result[i].Artist < result[j].Artist
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Write persists the stats document next to the snapshot. Output is
// deterministic: the same input always produces the same bytes.
func Write(path string, s Stats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	return snapshot.Commit(path, append(data, '\n'))
}

// ReadTotals loads the year-over-year metrics from an earlier stats
// document.
func ReadTotals(path string) (Totals, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Totals{}, fmt.Errorf("reading stats: %w", err)
	}

	var t Totals
	if err := json.Unmarshal(data, &t); err != nil {
		return Totals{}, fmt.Errorf("parsing stats %s: %w", path, err)
	}
	return t, nil
}
