package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Codec != "mp3" || s.BitrateKbps != 192 {
		t.Errorf("codec = %s@%d, want mp3@192", s.Codec, s.BitrateKbps)
	}
	if s.BaseURL != "https://www.youtube.com" {
		t.Errorf("BaseURL = %q", s.BaseURL)
	}
	if s.MaxMinutes != 19 {
		t.Errorf("MaxMinutes = %v, want 19", s.MaxMinutes)
	}
	if s.DownloadDir != "downloads" {
		t.Errorf("DownloadDir = %q, want downloads", s.DownloadDir)
	}
	if s.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", s.Attempts)
	}
	if !reflect.DeepEqual(s.BackoffSeconds, []int{5, 5, 10, 15, 60}) {
		t.Errorf("BackoffSeconds = %v", s.BackoffSeconds)
	}
	if s.FirstCandidateOnly || s.SingleDownloadAttempt || s.AbortOnFileCountMismatch {
		t.Error("compatibility switches should default to false")
	}
	if !s.CoverArtSquare || s.TagSourceURL {
		t.Errorf("CoverArtSquare = %v, TagSourceURL = %v, want true, false", s.CoverArtSquare, s.TagSourceURL)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Error("missing file should yield defaults")
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"max_minutes": 8, "backoff_seconds": [1, 2]}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxMinutes != 8 {
		t.Errorf("MaxMinutes = %v, want 8", s.MaxMinutes)
	}
	if !reflect.DeepEqual(s.BackoffSeconds, []int{1, 2}) {
		t.Errorf("BackoffSeconds = %v, want [1 2]", s.BackoffSeconds)
	}
	if s.Attempts != 5 {
		t.Errorf("Attempts = %d, want default 5", s.Attempts)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.EmbedCoverArt = true
	s.PlaylistFormat = "pls"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, s) {
		t.Errorf("loaded = %+v, want %+v", loaded, s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero attempts", func(s *Settings) { s.Attempts = 0 }},
		{"empty backoff", func(s *Settings) { s.BackoffSeconds = nil }},
		{"negative backoff", func(s *Settings) { s.BackoffSeconds = []int{5, -1} }},
		{"zero max minutes", func(s *Settings) { s.MaxMinutes = 0 }},
		{"zero bitrate", func(s *Settings) { s.BitrateKbps = 0 }},
		{"empty codec", func(s *Settings) { s.Codec = "" }},
		{"aac codec", func(s *Settings) { s.Codec = "aac" }},
		{"vorbis codec", func(s *Settings) { s.Codec = "vorbis" }},
		{"empty download dir", func(s *Settings) { s.DownloadDir = "" }},
		{"bad playlist format", func(s *Settings) { s.PlaylistFormat = "wpl" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBackoff(t *testing.T) {
	s := DefaultSettings()
	want := []time.Duration{5 * time.Second, 5 * time.Second, 10 * time.Second, 15 * time.Second, time.Minute}
	if got := s.Backoff(); !reflect.DeepEqual(got, want) {
		t.Errorf("Backoff() = %v, want %v", got, want)
	}
}

func TestAudioExtAndWorkDir(t *testing.T) {
	s := DefaultSettings()
	if got := s.AudioExt(); got != ".mp3" {
		t.Errorf("AudioExt() = %q, want .mp3", got)
	}
	s.WorkDir = ""
	if got := s.WorkDirOrDefault(); got != "." {
		t.Errorf("WorkDirOrDefault() = %q, want .", got)
	}
}
