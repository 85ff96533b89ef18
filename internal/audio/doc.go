// Package audio provides audio file manipulation services: ID3 tag
// writing and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write a record's tags to a placed MP3:
//
//	tagger := audio.NewTagger(nil)
//	err := tagger.WriteTags("downloads/Artist/Album/Song.mp3", rec, audio.TagExtras{})
//
// The tagger writes:
//   - Artist and Album Artist (both the record's artist)
//   - Album Title, Track Title
//   - Cover Art (embedded in MP3), when artwork is supplied
//
// # Playlist Generation
//
// After an import, each album directory that received songs can get a
// playlist:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	path, err := creator.Write(albumDir, rec.Album, entries)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio
