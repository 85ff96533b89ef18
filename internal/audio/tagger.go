package audio

import (
	"fmt"
	"os"

	"github.com/bogem/id3v2"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// TagConfig controls which optional frames the Tagger touches.
//
// Artist, album, album artist and title are always written from the
// record.
type TagConfig struct {
	// ClearComments removes COMM frames left by the encoder.
	ClearComments bool

	// SourceURL adds a WOAS (official audio source) frame with the
	// watch URL the audio was taken from.
	SourceURL bool
}

// DefaultTagConfig returns the default tag configuration.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ClearComments: true,
		SourceURL:     false,
	}
}

// Tagger writes ID3 tags to placed MP3 files.
//
// Frames written for every record:
//   - TPE1 artist
//   - TALB album
//   - TPE2 album artist (the record's artist)
//   - TIT2 title (the record's song)
//
// Example:
//
//	tagger := NewTagger(nil)
//	err := tagger.WriteTags(path, rec, TagExtras{Artwork: jpegBytes})
type Tagger struct {
	config *TagConfig
}

// TagExtras carries optional frame content.
type TagExtras struct {
	// Artwork is JPEG data embedded as the front cover. Nil skips it.
	Artwork []byte

	// URL is the source watch URL, written when TagConfig.SourceURL is set.
	URL string
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// WriteTags writes the record's tags to the MP3 at path.
//
// Existing frames are parsed and kept unless overwritten; a file without
// a tag gets a new one. The file must exist.
func (t *Tagger) WriteTags(path string, rec model.SongRecord, extras TagExtras) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot tag %s: %w", path, err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open tags of %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	t.updateStringTags(tag, rec, extras)

	if extras.Artwork != nil {
		t.updateArtwork(tag, extras.Artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags of %s: %w", path, err)
	}
	return nil
}

// updateStringTags sets the text frames derived from the record.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, rec model.SongRecord, extras TagExtras) {
	tag.SetArtist(rec.Artist)
	tag.SetAlbum(rec.Album)
	tag.SetTitle(rec.Song)

	tag.DeleteFrames("TPE2")
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, rec.Artist)

	if t.config.ClearComments {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}

	if t.config.SourceURL && extras.URL != "" {
		tag.DeleteFrames("WOAS")
		tag.AddFrame("WOAS", id3v2.UnknownFrame{Body: []byte(extras.URL)})
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
