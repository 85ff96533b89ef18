package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls") to a format.
func ParsePlaylistFormat(name string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	default:
		return FormatM3U, fmt.Errorf("unknown playlist format %q", name)
	}
}

// Ext returns the file extension for the format, with the leading dot.
func (f PlaylistFormat) Ext() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistEntry is one placed song.
type PlaylistEntry struct {
	Path    string
	Artist  string
	Title   string
	Seconds int
}

// PlaylistCreator generates playlist files for an album directory.
//
// Paths in the playlist are file names only, so the playlist must live in
// the same directory as the songs.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	path, err := creator.Write("downloads/Artist/Album", "Album", entries)
//
//	// Album.m3u:
//	// #EXTM3U
//	// #EXTINF:210,Artist - Song
//	// Song.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist renders the playlist content.
func (p *PlaylistCreator) CreatePlaylist(entries []PlaylistEntry) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

// Write renders entries and writes them to dir/name<ext>, replacing any
// previous playlist. It returns the playlist path.
func (p *PlaylistCreator) Write(dir, name string, entries []PlaylistEntry) (string, error) {
	path := filepath.Join(dir, name+p.format.Ext())
	if err := os.WriteFile(path, []byte(p.CreatePlaylist(entries)), 0644); err != nil {
		return "", fmt.Errorf("failed to write playlist: %w", err)
	}
	return path, nil
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", seconds(e), e.Artist, e.Title))
		}
		sb.WriteString(filepath.Base(e.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Artist - Song
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(e.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, e.Artist, e.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, seconds(e)))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// seconds returns the entry length, -1 when unknown as both formats expect.
func seconds(e PlaylistEntry) int {
	if e.Seconds <= 0 {
		return -1
	}
	return e.Seconds
}
