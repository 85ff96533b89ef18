package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Transcoding
	Codec       string `json:"codec"`
	BitrateKbps int    `json:"bitrate_kbps"`
	YtdlpPath   string `json:"ytdlp_path"`

	// Search and selection
	BaseURL            string  `json:"base_url"`
	MaxMinutes         float64 `json:"max_minutes"`
	MaxResults         int     `json:"max_results"`
	QueryIncludeAlbum  bool    `json:"query_include_album"`
	FirstCandidateOnly bool    `json:"first_candidate_only"`
	SearchAPIKey       string  `json:"search_api_key"`

	// Download settings
	DownloadDir           string `json:"download_dir"`
	WorkDir               string `json:"work_dir"`
	Attempts              int    `json:"attempts"`
	BackoffSeconds        []int  `json:"backoff_seconds"`
	SingleDownloadAttempt bool   `json:"single_download_attempt"`

	// Placement
	AbortOnFileCountMismatch bool `json:"abort_on_file_count_mismatch"`

	// Cover art settings
	EmbedCoverArt   bool `json:"embed_cover_art"`
	CoverArtMaxSize int  `json:"cover_art_max_size"`
	CoverArtSquare  bool `json:"cover_art_square"`

	// Tag settings
	TagSourceURL bool `json:"tag_source_url"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls

	// Run journal
	HistoryDB string `json:"history_db"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Codec:       "mp3",
		BitrateKbps: 192,

		BaseURL:    "https://www.youtube.com",
		MaxMinutes: 19,
		MaxResults: 10,

		DownloadDir:    "downloads",
		WorkDir:        ".",
		Attempts:       5,
		BackoffSeconds: []int{5, 5, 10, 15, 60},

		CoverArtMaxSize: 500,
		CoverArtSquare:  true,

		PlaylistFormat: "m3u",
	}
}

// Load reads settings from a JSON file.
//
// Keys missing from the file keep their default values. A missing file is
// not an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot drive a run.
func (s *Settings) Validate() error {
	switch {
	case s.Codec != "mp3":
		// Files are tagged with ID3, and the extension is taken from the codec.
		return fmt.Errorf("codec must be mp3, got %q", s.Codec)
	case s.BitrateKbps <= 0:
		return fmt.Errorf("bitrate_kbps must be positive, got %d", s.BitrateKbps)
	case s.MaxMinutes <= 0:
		return fmt.Errorf("max_minutes must be positive, got %v", s.MaxMinutes)
	case s.MaxResults <= 0:
		return fmt.Errorf("max_results must be positive, got %d", s.MaxResults)
	case s.Attempts <= 0:
		return fmt.Errorf("attempts must be positive, got %d", s.Attempts)
	case len(s.BackoffSeconds) == 0:
		return errors.New("backoff_seconds must not be empty")
	case s.DownloadDir == "":
		return errors.New("download_dir must not be empty")
	case s.PlaylistFormat != "m3u" && s.PlaylistFormat != "pls":
		return fmt.Errorf("playlist_format must be m3u or pls, got %q", s.PlaylistFormat)
	}
	for _, b := range s.BackoffSeconds {
		if b < 0 {
			return fmt.Errorf("backoff_seconds must not contain negative values, got %d", b)
		}
	}
	return nil
}

// Backoff converts BackoffSeconds to durations.
func (s *Settings) Backoff() []time.Duration {
	out := make([]time.Duration, len(s.BackoffSeconds))
	for i, sec := range s.BackoffSeconds {
		out[i] = time.Duration(sec) * time.Second
	}
	return out
}

// AudioExt returns the extension of produced audio files, including the dot.
func (s *Settings) AudioExt() string {
	return "." + s.Codec
}

// WorkDirOrDefault returns WorkDir, or "." when it is empty.
func (s *Settings) WorkDirOrDefault() string {
	if s.WorkDir == "" {
		return "."
	}
	return s.WorkDir
}
