package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/audio"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
	ioutils "github.com/samuelpedrajas/csv2yt2mp3/internal/io"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

var (
	// ErrUnexpectedFileCount is returned when the work directory does not
	// hold exactly one audio file after a fetch.
	ErrUnexpectedFileCount = errors.New("unexpected number of audio files in work directory")

	// ErrStrayAudioFiles is returned when the work directory already holds
	// audio files before a fetch.
	ErrStrayAudioFiles = errors.New("work directory already contains audio files")

	// ErrMoveFailed is returned when the fetched file cannot be moved to its
	// destination.
	ErrMoveFailed = errors.New("failed to move audio file")

	// ErrTagWriteFailed is returned when the placed file cannot be tagged.
	ErrTagWriteFailed = errors.New("failed to write tags")
)

// Placer moves the single fetched file from the work directory to its
// destination and tags it.
type Placer struct {
	tagger *audio.Tagger
	ext    string
	sink   event.Sink
}

// NewPlacer creates a Placer for files with extension ext (".mp3").
func NewPlacer(tagger *audio.Tagger, ext string, sink event.Sink) *Placer {
	return &Placer{
		tagger: tagger,
		ext:    ext,
		sink:   sink,
	}
}

// Place moves the fetched file to dest and writes rec's tags to it.
//
// If the work directory does not hold exactly one audio file, nothing is
// moved or tagged and the error wraps ErrUnexpectedFileCount.
func (p *Placer) Place(ctx context.Context, workDir, dest string, rec model.SongRecord, extras audio.TagExtras) error {
	files, err := ioutils.ListAudioFiles(workDir, p.ext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedFileCount, err)
	}
	if len(files) != 1 {
		return fmt.Errorf("%w: found %d", ErrUnexpectedFileCount, len(files))
	}

	if err := ioutils.EnsureDir(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("%w: %w", ErrMoveFailed, err)
	}
	if err := ioutils.MoveFile(ctx, files[0], dest); err != nil {
		return fmt.Errorf("%w: %w", ErrMoveFailed, err)
	}

	p.sink.Emit(event.Event{
		Message: fmt.Sprintf("Moved %s to %s", filepath.Base(files[0]), dest),
		Level:   event.LevelVerbose,
		Kind:    event.KindPlaced,
	})

	if err := p.tagger.WriteTags(dest, rec, extras); err != nil {
		return fmt.Errorf("%w: %w", ErrTagWriteFailed, err)
	}

	p.sink.Emit(event.Event{
		Message: fmt.Sprintf("Tagged %s", dest),
		Level:   event.LevelVerbose,
		Kind:    event.KindTagged,
	})
	return nil
}

// StrayAudioFiles returns the audio files currently in workDir.
func (p *Placer) StrayAudioFiles(workDir string) ([]string, error) {
	files, err := ioutils.ListAudioFiles(workDir, p.ext)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return files, nil
}

// Discard removes every audio file in workDir.
func (p *Placer) Discard(workDir string) error {
	files, err := p.StrayAudioFiles(workDir)
	if err != nil {
		return err
	}
	var errs []error
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
