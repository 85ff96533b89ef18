package youtube

import (
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// QuerySeparator joins record fields into a search query.
const QuerySeparator = " - "

// BuildQuery composes the search string for a record: artist and song, with
// the album in between when includeAlbum is set. Empty fields are left out.
func BuildQuery(rec model.SongRecord, includeAlbum bool) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{rec.Artist, albumIf(rec.Album, includeAlbum), rec.Song} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, QuerySeparator)
}

func albumIf(album string, include bool) string {
	if include {
		return album
	}
	return ""
}
