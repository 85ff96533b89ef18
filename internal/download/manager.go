package download

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/audio"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/config"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/history"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/http"
	ioutils "github.com/samuelpedrajas/csv2yt2mp3/internal/io"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/youtube"
)

// Components are the replaceable parts of the pipeline. Nil fields get
// production implementations.
type Components struct {
	Searcher   youtube.Searcher
	Metadata   youtube.MetadataFetcher
	Engine     Engine
	Tagger     *audio.Tagger
	HTTPClient *http.Client

	// History, if set, receives one entry per processed record.
	History history.Recorder
}

// Summary totals an import.
type Summary struct {
	RunID     string
	Total     int
	Placed    int
	Skipped   int
	Failed    int
	Outcomes  []model.Outcome
	Playlists []string
}

// Manager runs records through search, fetch, placement and tagging, one
// at a time.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	selector     *youtube.Selector
	fetcher      *Fetcher
	placer       *Placer
	imageService *ioutils.ImageService
	playlist     *audio.PlaylistCreator
	history      history.Recorder
	runID        string

	totalRecords int32
	doneRecords  int32

	// placed collects playlist entries per album directory.
	placed map[string][]audio.PlaylistEntry

	sink event.Sink
}

// NewManager creates a new Manager.
//
// When no Searcher is supplied, the Data API is used if settings carry a
// search API key, and the results page otherwise.
func NewManager(ctx context.Context, settings *config.Settings, c Components, sink event.Sink) (*Manager, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	playlistFormat, err := audio.ParsePlaylistFormat(settings.PlaylistFormat)
	if err != nil {
		return nil, err
	}

	if c.HTTPClient == nil {
		c.HTTPClient = http.NewClient()
	}
	if c.Searcher == nil {
		if settings.SearchAPIKey != "" {
			c.Searcher, err = youtube.NewAPISearcher(ctx, settings.SearchAPIKey)
			if err != nil {
				return nil, err
			}
		} else {
			c.Searcher = youtube.NewPageSearcher(c.HTTPClient, settings.BaseURL)
		}
	}
	if c.Metadata == nil {
		c.Metadata = youtube.NewClientMetadata(c.HTTPClient.HTTPClient())
	}
	if c.Engine == nil {
		c.Engine = &YtdlpEngine{
			Codec:       settings.Codec,
			BitrateKbps: settings.BitrateKbps,
			Executable:  settings.YtdlpPath,
			OnProgress: func(downloaded, total int) {
				if total > 0 {
					sink.Emit(event.Event{
						Message: fmt.Sprintf("Downloading: %d%%", downloaded*100/total),
						Level:   event.LevelVerbose,
						Kind:    event.KindDownloadBytes,
					})
				}
			},
		}
	}
	if c.Tagger == nil {
		c.Tagger = audio.NewTagger(&audio.TagConfig{
			ClearComments: true,
			SourceURL:     settings.TagSourceURL,
		})
	}

	m := &Manager{
		settings:     settings,
		httpClient:   c.HTTPClient,
		imageService: ioutils.NewImageService(),
		playlist:     audio.NewPlaylistCreator(playlistFormat, true),
		history:      c.History,
		runID:        uuid.NewString(),
		placed:       make(map[string][]audio.PlaylistEntry),
		sink:         sink,
	}

	m.selector = youtube.NewSelector(c.Searcher, c.Metadata, youtube.SelectorConfig{
		BaseURL:            settings.BaseURL,
		MaxResults:         settings.MaxResults,
		MaxMinutes:         settings.MaxMinutes,
		FirstCandidateOnly: settings.FirstCandidateOnly,
	}, sink)
	m.fetcher = NewFetcher(c.Engine, FetcherConfig{
		Attempts:      settings.Attempts,
		Backoff:       settings.Backoff(),
		SingleAttempt: settings.SingleDownloadAttempt,
	}, sink)
	m.placer = NewPlacer(c.Tagger, settings.AudioExt(), sink)

	return m, nil
}

// RunID identifies this manager's run in the history journal.
func (m *Manager) RunID() string {
	return m.runID
}

// Preflight fails with ErrStrayAudioFiles when the work directory already
// holds audio files, since they would be mistaken for a fetch result.
func (m *Manager) Preflight() error {
	workDir := m.settings.WorkDirOrDefault()
	if err := ioutils.EnsureDir(workDir); err != nil {
		return err
	}

	files, err := m.placer.StrayAudioFiles(workDir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		return fmt.Errorf("%w: %s", ErrStrayAudioFiles, strings.Join(files, ", "))
	}
	return nil
}

// GetProgress returns the number of processed records and the total of
// the running import.
func (m *Manager) GetProgress() (done, total int) {
	return int(atomic.LoadInt32(&m.doneRecords)), int(atomic.LoadInt32(&m.totalRecords))
}

// Import processes records in order.
//
// Record-level problems are reported in the summary and never stop the
// import. The returned error is non-nil only when ctx is canceled or, with
// abort_on_file_count_mismatch, when the work directory held the wrong
// number of files.
func (m *Manager) Import(ctx context.Context, records []model.SongRecord) (Summary, error) {
	summary := Summary{RunID: m.runID, Total: len(records)}
	atomic.StoreInt32(&m.totalRecords, int32(len(records)))
	atomic.StoreInt32(&m.doneRecords, 0)

	var fatal error
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			fatal = err
			break
		}

		outcome := m.ProcessRecord(ctx, rec)
		summary.Outcomes = append(summary.Outcomes, outcome)
		switch outcome.Status {
		case model.StatusPlaced:
			summary.Placed++
		case model.StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		atomic.AddInt32(&m.doneRecords, 1)

		if errors.Is(outcome.Err, context.Canceled) || errors.Is(outcome.Err, context.DeadlineExceeded) {
			fatal = outcome.Err
			break
		}
		if outcome.Reason == model.ReasonUnexpectedFileCount && m.settings.AbortOnFileCountMismatch {
			fatal = fmt.Errorf("%s: %w", rec, outcome.Err)
			break
		}
	}

	if m.settings.CreatePlaylist {
		summary.Playlists = m.writePlaylists()
	}

	m.progress(event.Event{
		Message: fmt.Sprintf("Done: %d placed, %d skipped, %d failed of %d", summary.Placed, summary.Skipped, summary.Failed, summary.Total),
		Level:   summaryLevel(summary),
		Kind:    event.KindSummary,
	})

	return summary, fatal
}

// ProcessRecord runs one record through the pipeline.
func (m *Manager) ProcessRecord(ctx context.Context, rec model.SongRecord) model.Outcome {
	outcome := m.processRecord(ctx, rec)
	m.report(outcome)
	m.recordHistory(ctx, outcome)
	return outcome
}

func (m *Manager) processRecord(ctx context.Context, rec model.SongRecord) model.Outcome {
	dest := rec.Destination(m.settings.DownloadDir, m.settings.AudioExt())
	outcome := model.Outcome{Record: rec, Path: dest}

	m.progress(event.Event{
		Message: fmt.Sprintf("Processing %s", rec),
		Level:   event.LevelInfo,
		Kind:    event.KindRecordStart,
	})

	if ioutils.FileExists(dest) {
		return skipped(outcome, model.ReasonAlreadyExists, nil)
	}

	query := youtube.BuildQuery(rec, m.settings.QueryIncludeAlbum)
	sel := m.selector.Select(ctx, query)
	if !sel.Accepted() {
		if err := ctx.Err(); err != nil {
			return failed(outcome, sel.Reason, err)
		}
		return skipped(outcome, sel.Reason, sel.Err)
	}
	outcome.URL = sel.URL
	outcome.Duration = sel.Info.Duration

	workDir := m.settings.WorkDirOrDefault()
	stray, err := m.placer.StrayAudioFiles(workDir)
	if err != nil {
		return failed(outcome, model.ReasonDownloadFailed, err)
	}
	if len(stray) > 0 {
		return skipped(outcome, model.ReasonUnexpectedFileCount,
			fmt.Errorf("%w: %s", ErrStrayAudioFiles, strings.Join(stray, ", ")))
	}

	if err := m.fetcher.Fetch(ctx, sel.URL, workDir); err != nil {
		// yt-dlp can exit non-zero after writing the audio file.
		m.clearWorkDir(workDir)
		return failed(outcome, model.ReasonDownloadFailed, err)
	}

	extras := audio.TagExtras{URL: sel.URL}
	if m.settings.EmbedCoverArt && sel.Info.ThumbnailURL != "" {
		extras.Artwork = m.coverArt(ctx, sel.Info.ThumbnailURL)
	}

	err = m.placer.Place(ctx, workDir, dest, rec, extras)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnexpectedFileCount):
		if !m.settings.AbortOnFileCountMismatch {
			m.clearWorkDir(workDir)
		}
		return skipped(outcome, model.ReasonUnexpectedFileCount, err)
	case errors.Is(err, ErrTagWriteFailed):
		return failed(outcome, model.ReasonTagWriteFailed, err)
	default:
		m.clearWorkDir(workDir)
		return failed(outcome, model.ReasonMoveFailed, err)
	}

	outcome.Status = model.StatusPlaced
	m.addPlaylistEntry(rec, dest, sel.Minutes)
	return outcome
}

// clearWorkDir removes audio left behind by a record that was not placed.
// The stray check before each fetch guarantees every such file came from
// that record's fetch.
func (m *Manager) clearWorkDir(workDir string) {
	if err := m.placer.Discard(workDir); err != nil {
		m.progress(event.Event{
			Message: fmt.Sprintf("Failed to clear work directory: %v", err),
			Level:   event.LevelWarning,
			Err:     err,
		})
	}
}

// coverArt downloads and converts a thumbnail. Failures only warn; the
// song is tagged without a picture.
func (m *Manager) coverArt(ctx context.Context, url string) []byte {
	data, err := m.httpClient.DownloadBytes(ctx, url)
	if err == nil {
		if m.settings.CoverArtSquare {
			data, err = m.imageService.PrepareCoverArt(ctx, data, m.settings.CoverArtMaxSize)
		} else {
			data, err = m.imageService.ConvertToJPEG(ctx, data)
		}
	}
	if err != nil {
		m.progress(event.Event{
			Message: fmt.Sprintf("Error preparing cover art: %v", err),
			Level:   event.LevelWarning,
			Kind:    event.KindCoverArt,
			URL:     url,
			Err:     err,
		})
		return nil
	}

	m.progress(event.Event{
		Message: "Prepared cover art",
		Level:   event.LevelVerbose,
		Kind:    event.KindCoverArt,
		URL:     url,
	})
	return data
}

func (m *Manager) addPlaylistEntry(rec model.SongRecord, dest string, minutes float64) {
	dir := filepath.Dir(dest)
	m.placed[dir] = append(m.placed[dir], audio.PlaylistEntry{
		Path:    dest,
		Artist:  rec.Artist,
		Title:   rec.Song,
		Seconds: int(math.Round(minutes * 60)),
	})
}

// writePlaylists writes one playlist per album directory that received
// songs. Songs placed by earlier runs are listed too, without a length.
func (m *Manager) writePlaylists() []string {
	var written []string
	for dir, entries := range m.placed {
		entries = m.withExistingFiles(dir, entries)

		path, err := m.playlist.Write(dir, filepath.Base(dir), entries)
		if err != nil {
			m.progress(event.Event{
				Message: fmt.Sprintf("Error creating playlist: %v", err),
				Level:   event.LevelWarning,
				Kind:    event.KindPlaylist,
				Err:     err,
			})
			continue
		}

		written = append(written, path)
		m.progress(event.Event{
			Message: fmt.Sprintf("Created playlist %s", path),
			Level:   event.LevelSuccess,
			Kind:    event.KindPlaylist,
		})
	}
	return written
}

func (m *Manager) withExistingFiles(dir string, entries []audio.PlaylistEntry) []audio.PlaylistEntry {
	files, err := ioutils.ListAudioFiles(dir, m.settings.AudioExt())
	if err != nil {
		return entries
	}

	known := make(map[string]audio.PlaylistEntry, len(entries))
	for _, e := range entries {
		known[e.Path] = e
	}

	artist := entries[0].Artist
	out := make([]audio.PlaylistEntry, 0, len(files))
	for _, f := range files {
		if e, ok := known[f]; ok {
			out = append(out, e)
			continue
		}
		out = append(out, audio.PlaylistEntry{
			Path:   f,
			Artist: artist,
			Title:  strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)),
		})
	}
	return out
}

func (m *Manager) report(o model.Outcome) {
	switch o.Status {
	case model.StatusPlaced:
		m.progress(event.Event{
			Message: fmt.Sprintf("Placed %s", o.Path),
			Level:   event.LevelSuccess,
			Kind:    event.KindRecordPlaced,
			URL:     o.URL,
		})
	default:
		level := event.LevelWarning
		if o.Status == model.StatusFailed {
			level = event.LevelError
		}
		msg := fmt.Sprintf("Skipping %s: %s", o.Record, o.Reason)
		if o.Reason == model.ReasonAlreadyExists {
			level = event.LevelVerbose
			msg = fmt.Sprintf("Skipping existing: %s", o.Path)
		}
		if o.Err != nil {
			msg += ": " + o.Err.Error()
		}
		m.progress(event.Event{
			Message: msg,
			Level:   level,
			Kind:    event.KindRecordSkipped,
			Query:   youtube.BuildQuery(o.Record, m.settings.QueryIncludeAlbum),
			URL:     o.URL,
			Reason:  string(o.Reason),
			Err:     o.Err,
		})
	}
}

func (m *Manager) recordHistory(ctx context.Context, o model.Outcome) {
	if m.history == nil {
		return
	}
	// Recorded even when ctx is canceled, so an interrupted record is
	// still journaled.
	if err := m.history.Record(context.WithoutCancel(ctx), history.FromOutcome(m.runID, o, time.Now())); err != nil {
		m.progress(event.Event{
			Message: fmt.Sprintf("Error writing history: %v", err),
			Level:   event.LevelWarning,
			Kind:    event.KindHistory,
			Err:     err,
		})
	}
}

func (m *Manager) progress(e event.Event) {
	m.sink.Emit(e)
}

func skipped(o model.Outcome, reason model.SkipReason, err error) model.Outcome {
	o.Status = model.StatusSkipped
	o.Reason = reason
	o.Err = err
	return o
}

func failed(o model.Outcome, reason model.SkipReason, err error) model.Outcome {
	o.Status = model.StatusFailed
	o.Reason = reason
	o.Err = err
	return o
}

func summaryLevel(s Summary) event.Level {
	switch {
	case s.Failed > 0:
		return event.LevelWarning
	case s.Placed > 0:
		return event.LevelSuccess
	default:
		return event.LevelInfo
	}
}
