package download

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/audio"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// fakeMP3 is a few MPEG frame headers with no tag.
var fakeMP3 = bytes.Repeat(append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...), 4)

func writeAudio(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), fakeMP3, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPlacer_Place(t *testing.T) {
	work := t.TempDir()
	dest := filepath.Join(t.TempDir(), "Artist", "Album", "Song.mp3")
	writeAudio(t, work, "Some Video Title.mp3")

	p := NewPlacer(audio.NewTagger(nil), ".mp3", nil)
	rec := model.SongRecord{Artist: "Artist", Album: "Album", Song: "Song"}

	if err := p.Place(context.Background(), work, dest, rec, audio.TagExtras{}); err != nil {
		t.Fatalf("Place() error: %v", err)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing: %v", err)
	}
	if left, _ := p.StrayAudioFiles(work); len(left) != 0 {
		t.Errorf("work directory still holds %v", left)
	}
}

func TestPlacer_UnexpectedFileCount(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"no files", nil},
		{"two files", []string{"a.mp3", "b.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := t.TempDir()
			for _, f := range tt.files {
				writeAudio(t, work, f)
			}
			dest := filepath.Join(t.TempDir(), "A", "B", "C.mp3")

			p := NewPlacer(audio.NewTagger(nil), ".mp3", nil)
			err := p.Place(context.Background(), work, dest, model.SongRecord{}, audio.TagExtras{})
			if !errors.Is(err, ErrUnexpectedFileCount) {
				t.Fatalf("expected ErrUnexpectedFileCount, got %v", err)
			}
			if _, err := os.Stat(dest); !os.IsNotExist(err) {
				t.Error("nothing should be placed")
			}
			if left, _ := p.StrayAudioFiles(work); len(left) != len(tt.files) {
				t.Errorf("work directory changed: %v", left)
			}
		})
	}
}

func TestPlacer_IgnoresOtherExtensions(t *testing.T) {
	work := t.TempDir()
	writeAudio(t, work, "song.mp3")
	writeAudio(t, work, "song.webm.part")

	dest := filepath.Join(t.TempDir(), "Song.mp3")
	p := NewPlacer(audio.NewTagger(nil), ".mp3", nil)
	if err := p.Place(context.Background(), work, dest, model.SongRecord{Song: "Song"}, audio.TagExtras{}); err != nil {
		t.Fatalf("Place() error: %v", err)
	}
}

func TestPlacer_Discard(t *testing.T) {
	work := t.TempDir()
	writeAudio(t, work, "a.mp3")
	writeAudio(t, work, "b.mp3")
	writeAudio(t, work, "notes.txt")

	p := NewPlacer(audio.NewTagger(nil), ".mp3", nil)
	if err := p.Discard(work); err != nil {
		t.Fatalf("Discard() error: %v", err)
	}
	if left, _ := p.StrayAudioFiles(work); len(left) != 0 {
		t.Errorf("audio files left: %v", left)
	}
	if _, err := os.Stat(filepath.Join(work, "notes.txt")); err != nil {
		t.Error("non-audio files must be kept")
	}
}
