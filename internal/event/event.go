// Package event defines the progress events emitted by the pipeline.
//
// Components never print. They report what happened to a Sink, and the
// front end (CLI printer, TUI, tests) decides how to render or assert it.
//
//	sink := func(e event.Event) { fmt.Println(e.Message) }
//	manager, err := download.NewManager(ctx, settings, download.Components{}, sink)
package event

import "sync"

// Level indicates the severity/type of an event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Kind tags what the event is about so consumers can branch without
// parsing Message.
type Kind string

const (
	KindRecordStart    Kind = "record_start"
	KindRecordSkipped  Kind = "record_skipped"
	KindRecordPlaced   Kind = "record_placed"
	KindSearch         Kind = "search"
	KindCandidate      Kind = "candidate"
	KindCandidateSkip  Kind = "candidate_skipped"
	KindSelected       Kind = "selected"
	KindDownloadTry    Kind = "download_attempt"
	KindDownloadFailed Kind = "download_failed"
	KindDownloadBytes  Kind = "download_progress"
	KindDownloaded     Kind = "downloaded"
	KindPlaced         Kind = "placed"
	KindTagged         Kind = "tagged"
	KindCoverArt       Kind = "cover_art"
	KindPlaylist       Kind = "playlist"
	KindHistory        Kind = "history"
	KindSummary        Kind = "summary"
)

// Event is a single progress update.
type Event struct {
	Message string
	Level   Level
	Kind    Kind

	// Query, URL and Reason carry context for diagnosis; any may be empty.
	Query  string
	URL    string
	Reason string
	Err    error
}

// Sink receives events. A nil Sink discards them.
type Sink func(Event)

// Emit sends e to s when s is not nil.
func (s Sink) Emit(e Event) {
	if s != nil {
		s(e)
	}
}

// Collector records events in memory.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// Sink returns a Sink that appends to c.
func (c *Collector) Sink() Sink {
	return func(e Event) {
		c.mu.Lock()
		c.events = append(c.events, e)
		c.mu.Unlock()
	}
}

// Events returns a copy of everything collected so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// OfKind returns collected events with the given kind, in order.
func (c *Collector) OfKind(kind Kind) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
