package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// SelectorConfig controls candidate evaluation.
type SelectorConfig struct {
	// BaseURL is prefixed to relative candidate links.
	BaseURL string

	// MaxResults caps how many candidates are considered.
	MaxResults int

	// MaxMinutes rejects candidates strictly longer than this.
	MaxMinutes float64

	// FirstCandidateOnly evaluates only the top result and gives up if it
	// is rejected.
	FirstCandidateOnly bool
}

// Selection is the result of Select. Reason is ReasonNone when a candidate
// was accepted, in which case URL and Info are set.
type Selection struct {
	URL     string
	Info    *model.VideoInfo
	Minutes float64
	Reason  model.SkipReason
	Err     error
}

// Accepted reports whether a candidate was chosen.
func (s Selection) Accepted() bool {
	return s.Reason == model.ReasonNone && s.URL != ""
}

// Selector picks the first acceptable candidate for a query.
//
// A candidate is rejected when it has no link, links to a playlist, its
// metadata cannot be fetched or parsed, or it runs longer than MaxMinutes.
type Selector struct {
	searcher Searcher
	metadata MetadataFetcher
	config   SelectorConfig
	sink     event.Sink
}

// NewSelector creates a Selector. sink may be nil.
func NewSelector(searcher Searcher, metadata MetadataFetcher, config SelectorConfig, sink event.Sink) *Selector {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Selector{
		searcher: searcher,
		metadata: metadata,
		config:   config,
		sink:     sink,
	}
}

// Select searches for query and returns the first candidate that passes
// every check, in ranking order.
func (s *Selector) Select(ctx context.Context, query string) Selection {
	s.sink.Emit(event.Event{
		Message: fmt.Sprintf("Searching: %s", query),
		Level:   event.LevelVerbose,
		Kind:    event.KindSearch,
		Query:   query,
	})

	candidates, err := s.searcher.Search(ctx, query, s.config.MaxResults)
	if err != nil {
		return Selection{Reason: model.ReasonSearchFailed, Err: err}
	}
	if len(candidates) == 0 {
		return Selection{Reason: model.ReasonSearchEmpty}
	}
	if s.config.MaxResults > 0 && len(candidates) > s.config.MaxResults {
		candidates = candidates[:s.config.MaxResults]
	}

	for i, c := range candidates {
		if ctx.Err() != nil {
			return Selection{Reason: model.ReasonSearchFailed, Err: ctx.Err()}
		}

		sel := s.evaluate(ctx, query, i, c)
		if sel.Reason == model.ReasonNone {
			s.sink.Emit(event.Event{
				Message: fmt.Sprintf("Selected %s (%s)", sel.URL, sel.Info.Duration),
				Level:   event.LevelInfo,
				Kind:    event.KindSelected,
				Query:   query,
				URL:     sel.URL,
			})
			return sel
		}

		msg := fmt.Sprintf("Candidate %d rejected: %s", i+1, sel.Reason)
		if sel.Err != nil {
			msg += ": " + sel.Err.Error()
		}
		s.sink.Emit(event.Event{
			Message: msg,
			Level:   event.LevelVerbose,
			Kind:    event.KindCandidateSkip,
			Query:   query,
			URL:     sel.URL,
			Reason:  string(sel.Reason),
			Err:     sel.Err,
		})

		if s.config.FirstCandidateOnly {
			break
		}
	}

	return Selection{Reason: model.ReasonNoAcceptableCandidate}
}

// evaluate checks one candidate. The returned Selection carries the
// candidate-level reason on rejection.
func (s *Selector) evaluate(ctx context.Context, query string, index int, c model.Candidate) Selection {
	if !c.HasLink() {
		return Selection{Reason: model.ReasonNoLink}
	}

	url := s.config.BaseURL + c.Link
	if IsPlaylistURL(url) {
		return Selection{URL: url, Reason: model.ReasonPlaylist}
	}

	s.sink.Emit(event.Event{
		Message: fmt.Sprintf("Candidate %d: %s", index+1, c.Title),
		Level:   event.LevelVerbose,
		Kind:    event.KindCandidate,
		Query:   query,
		URL:     url,
	})

	info, err := s.metadata.FetchMetadata(ctx, url)
	if err != nil {
		return Selection{URL: url, Reason: model.ReasonMetadataFailed, Err: err}
	}

	minutes, err := ParseDuration(info.Duration)
	if err != nil {
		return Selection{URL: url, Info: info, Reason: model.ReasonBadDuration, Err: err}
	}
	if minutes > s.config.MaxMinutes {
		return Selection{
			URL:     url,
			Info:    info,
			Minutes: minutes,
			Reason:  model.ReasonTooLong,
			Err:     fmt.Errorf("%s exceeds %g minutes", info.Duration, s.config.MaxMinutes),
		}
	}

	return Selection{URL: url, Info: info, Minutes: minutes}
}
