// Package model defines the core data structures used throughout
// csv2yt2mp3.
//
// # SongRecord
//
// SongRecord is one row of input, either read from CSV or built from the
// download subcommand flags:
//
//	rec := model.SongRecord{Artist: "AC/DC", Album: "Back in Black", Song: "Hells Bells"}
//	fmt.Println(rec.Destination("downloads", ".mp3"))
//	// downloads/ACDC/Back in Black/Hells Bells.mp3
//
// # Candidate and VideoInfo
//
// Candidate is a search result entry in provider order. VideoInfo is the
// metadata fetched for a candidate before it is accepted.
//
// # Outcome
//
// Outcome is what processing a record produced: a placed file or a tagged
// skip reason. Callers branch on Status and Reason instead of errors.
package model
