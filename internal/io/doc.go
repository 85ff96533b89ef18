// Package ioutils provides file system, CSV and image utilities.
//
// This package contains functions for:
//   - Moving produced files into the library (rename, or copy across devices)
//   - Listing audio files in the work directory
//   - Directory creation
//   - Reading song records from CSV
//   - Preparing cover art
//
// # File Operations
//
//	// Move a file, falling back to copy+remove across filesystems
//	err := ioutils.MoveFile(ctx, "song.mp3", "downloads/Artist/Album/Song.mp3")
//
//	// List produced files
//	files, err := ioutils.ListAudioFiles(".", ".mp3")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("downloads/Artist/Album")
//
// # CSV Input
//
//	records, err := ioutils.OpenSongRecords("songs.csv")
//	if errors.Is(err, ioutils.ErrInvalidCSVPath) {
//	    // not a .csv file or missing
//	}
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.PrepareCoverArt(ctx, thumbnailBytes, 500)
package ioutils
