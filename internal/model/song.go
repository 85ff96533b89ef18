package model

import (
	"path/filepath"
	"strings"
)

// SongRecord identifies one track to fetch.
//
// Field values are used verbatim for tags; Destination sanitizes them
// before they reach the filesystem.
type SongRecord struct {
	// Artist is the artist name (CSV column artist_name).
	Artist string

	// Album is the album title (CSV column album or album_name).
	Album string

	// Song is the track title (CSV column song_name).
	Song string
}

// String returns "Artist - Album - Song" for logs.
func (r SongRecord) String() string {
	return r.Artist + " - " + r.Album + " - " + r.Song
}

// Dir returns the album directory for the record under downloadDir.
//
// Path separators are removed from the artist and album names, so
// "AC/DC" becomes "ACDC".
func (r SongRecord) Dir(downloadDir string) string {
	return filepath.Join(downloadDir, StripSeparators(r.Artist), StripSeparators(r.Album))
}

// FileName returns the track file name with ext appended.
//
// Path separators in the song name are replaced with "-".
func (r SongRecord) FileName(ext string) string {
	return ReplaceSeparators(r.Song) + ext
}

// Destination returns the full path the record's audio file is placed at.
func (r SongRecord) Destination(downloadDir, ext string) string {
	return filepath.Join(r.Dir(downloadDir), r.FileName(ext))
}

// StripSeparators removes "/" and "\" from a path segment.
func StripSeparators(segment string) string {
	return guardDots(separatorStripper.Replace(segment))
}

// ReplaceSeparators replaces "/" and "\" in a path segment with "-".
func ReplaceSeparators(segment string) string {
	return guardDots(separatorReplacer.Replace(segment))
}

var (
	separatorStripper = strings.NewReplacer("/", "", "\\", "")
	separatorReplacer = strings.NewReplacer("/", "-", "\\", "-")
)

// guardDots keeps "." and ".." from being interpreted as directory
// references once joined into a path.
func guardDots(segment string) string {
	if segment == "." || segment == ".." {
		return "_"
	}
	return segment
}
