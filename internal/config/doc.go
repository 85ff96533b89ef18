// Package config provides configuration management for csv2yt2mp3.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation before a run starts
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// mp3 at 192 kbps, videos up to 19 minutes,
//	// files under downloads/{artist}/{album}, 5 attempts backing off 5,5,10,15,60s
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // malformed JSON; a missing file yields defaults
//	}
//
// # Compatibility switches
//
// FirstCandidateOnly, SingleDownloadAttempt and AbortOnFileCountMismatch
// select the legacy behavior. Only the first search result is considered,
// a failed download is not retried, and a wrong number of produced files
// aborts the whole run.
package config
