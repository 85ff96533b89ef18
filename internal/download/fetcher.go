package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
)

// ErrDownloadFailed is returned when every download attempt failed.
var ErrDownloadFailed = errors.New("download failed")

// Engine downloads and transcodes one URL into workDir.
type Engine interface {
	Download(ctx context.Context, url, workDir string) error
}

// YtdlpEngine runs yt-dlp to fetch the best audio stream and transcode it.
//
// Equivalent command line:
//
//	yt-dlp -f bestaudio/best -x --audio-format mp3 --audio-quality 192K \
//	    --no-playlist -o '<workDir>/%(title)s.%(ext)s' <url>
type YtdlpEngine struct {
	// Codec is the target audio format, "mp3" by default.
	Codec string

	// BitrateKbps is the target bitrate.
	BitrateKbps int

	// Executable overrides the yt-dlp binary. Empty uses PATH.
	Executable string

	// OnProgress, if set, receives byte counts while downloading.
	OnProgress func(downloaded, total int)
}

// Download runs yt-dlp for url.
func (e *YtdlpEngine) Download(ctx context.Context, url, workDir string) error {
	codec := e.Codec
	if codec == "" {
		codec = "mp3"
	}

	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(codec).
		AudioQuality(strconv.Itoa(e.BitrateKbps) + "K").
		NoPlaylist().
		Output(filepath.Join(workDir, "%(title)s.%(ext)s"))

	if e.Executable != "" {
		dl.SetExecutable(e.Executable)
	}

	if e.OnProgress != nil {
		dl.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			e.OnProgress(update.DownloadedBytes, update.TotalBytes)
		})
	}

	if _, err := dl.Run(ctx, url); err != nil {
		return fmt.Errorf("yt-dlp: %w", err)
	}
	return nil
}

// FetcherConfig controls retries.
type FetcherConfig struct {
	// Attempts is the maximum number of engine runs.
	Attempts int

	// Backoff is the wait after failed attempt i. The last entry is reused
	// when there are more attempts than entries.
	Backoff []time.Duration

	// SingleAttempt runs the engine once and, on failure, waits Backoff[0]
	// before giving up.
	SingleAttempt bool
}

// Fetcher runs an Engine with a fixed retry schedule.
type Fetcher struct {
	engine Engine
	config FetcherConfig
	sink   event.Sink
}

// NewFetcher creates a Fetcher. sink may be nil.
func NewFetcher(engine Engine, config FetcherConfig, sink event.Sink) *Fetcher {
	if config.Attempts <= 0 {
		config.Attempts = 1
	}
	return &Fetcher{
		engine: engine,
		config: config,
		sink:   sink,
	}
}

// Fetch downloads url into workDir, retrying on failure.
//
// The returned error wraps ErrDownloadFailed and the last engine error, or
// is the context's error when ctx is canceled.
func (f *Fetcher) Fetch(ctx context.Context, url, workDir string) error {
	attempts := f.config.Attempts
	if f.config.SingleAttempt {
		attempts = 1
	}

	var lastErr error
	for try := 0; try < attempts; try++ {
		f.sink.Emit(event.Event{
			Message: fmt.Sprintf("Downloading %s (attempt %d/%d)", url, try+1, attempts),
			Level:   event.LevelVerbose,
			Kind:    event.KindDownloadTry,
			URL:     url,
		})

		err := f.engine.Download(ctx, url, workDir)
		if err == nil {
			f.sink.Emit(event.Event{
				Message: fmt.Sprintf("Downloaded %s", url),
				Level:   event.LevelVerbose,
				Kind:    event.KindDownloaded,
				URL:     url,
			})
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err

		f.sink.Emit(event.Event{
			Message: fmt.Sprintf("Retry %d/%d for %s: %v", try+1, attempts, url, err),
			Level:   event.LevelWarning,
			Kind:    event.KindDownloadFailed,
			URL:     url,
			Err:     err,
		})

		// The single-attempt mode still waits once before giving up.
		if try < attempts-1 || f.config.SingleAttempt {
			if err := waitForRetry(ctx, f.backoffAt(try)); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w after %d attempt(s): %w", ErrDownloadFailed, attempts, lastErr)
}

func (f *Fetcher) backoffAt(try int) time.Duration {
	if len(f.config.Backoff) == 0 {
		return 0
	}
	if try >= len(f.config.Backoff) {
		return f.config.Backoff[len(f.config.Backoff)-1]
	}
	return f.config.Backoff[try]
}

// waitForRetry sleeps for d or until ctx is done.
func waitForRetry(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
