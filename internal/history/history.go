// Package history keeps a journal of processed records across runs.
//
// The journal is informational: nothing in the pipeline reads it back to
// decide whether a record is skipped. The destination file alone decides
// that.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// ErrUnavailable is returned by Open in builds without SQLite support.
var ErrUnavailable = errors.New("history journal is not available in non-CGO builds; rebuild with CGO_ENABLED=1")

// Entry is one journal row.
type Entry struct {
	RunID  string
	Artist string
	Album  string
	Song   string
	Status string
	Reason string
	URL    string
	Path   string
	At     time.Time
}

// FromOutcome builds the journal entry for an outcome.
func FromOutcome(runID string, o model.Outcome, at time.Time) Entry {
	return Entry{
		RunID:  runID,
		Artist: o.Record.Artist,
		Album:  o.Record.Album,
		Song:   o.Record.Song,
		Status: o.Status.String(),
		Reason: string(o.Reason),
		URL:    o.URL,
		Path:   o.Path,
		At:     at.UTC(),
	}
}

// Recorder appends entries to a journal.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}
