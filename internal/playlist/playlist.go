// Package playlist writes the year's top tracks as an extended M3U file.
package playlist

import (
	"bytes"
	"fmt"

	"rewind/internal/snapshot"
)

// WriteM3U renders tracks, already ranked, as an extended M3U playlist.
// Paths are written verbatim; checking that the media files still exist is
// the player's job, not ours. Zero tracks produces a header-only playlist.
func WriteM3U(path string, tracks []snapshot.Track) error {
	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")

	for _, t := range tracks {
		length := t.Length
		if length <= 0 {
			length = -1
		}
		fmt.Fprintf(&buf, "#EXTINF:%d,%s - %s\n", length, t.Artist, t.Title)
		buf.WriteString(t.Identity + "\n")
	}

	return snapshot.Commit(path, buf.Bytes())
}
