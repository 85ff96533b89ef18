package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/event"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

type fakeSearcher struct {
	candidates []model.Candidate
	err        error
	calls      int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

type fakeMetadata struct {
	durations map[string]string
	errs      map[string]error
	fetched   []string
}

func (f *fakeMetadata) FetchMetadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	f.fetched = append(f.fetched, url)
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return &model.VideoInfo{Title: url, Duration: f.durations[url]}, nil
}

const base = "https://www.youtube.com"

func newTestSelector(s Searcher, m MetadataFetcher, firstOnly bool, sink event.Sink) *Selector {
	return NewSelector(s, m, SelectorConfig{
		BaseURL:            base + "/",
		MaxResults:         10,
		MaxMinutes:         19,
		FirstCandidateOnly: firstOnly,
	}, sink)
}

func TestSelector_AcceptsFirstValid(t *testing.T) {
	searcher := &fakeSearcher{candidates: []model.Candidate{{Link: "/watch?v=abc"}}}
	meta := &fakeMetadata{durations: map[string]string{base + "/watch?v=abc": "0:03:30"}}

	var c event.Collector
	sel := newTestSelector(searcher, meta, false, c.Sink()).Select(context.Background(), "Artist - Song")

	if !sel.Accepted() {
		t.Fatalf("expected acceptance, got reason %q (%v)", sel.Reason, sel.Err)
	}
	if sel.URL != base+"/watch?v=abc" {
		t.Errorf("URL = %q", sel.URL)
	}
	if sel.Minutes != 3.5 {
		t.Errorf("Minutes = %v, want 3.5", sel.Minutes)
	}
	if len(c.OfKind(event.KindSelected)) != 1 {
		t.Error("expected one selected event")
	}
}

func TestSelector_DurationBoundary(t *testing.T) {
	tests := []struct {
		duration string
		accepted bool
	}{
		{"0:19:00", true},
		{"0:19:01", false},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			url := base + "/watch?v=x"
			searcher := &fakeSearcher{candidates: []model.Candidate{{Link: "/watch?v=x"}}}
			meta := &fakeMetadata{durations: map[string]string{url: tt.duration}}

			sel := newTestSelector(searcher, meta, false, nil).Select(context.Background(), "q")
			if sel.Accepted() != tt.accepted {
				t.Errorf("Accepted() = %v, want %v (reason %q)", sel.Accepted(), tt.accepted, sel.Reason)
			}
			if !tt.accepted && sel.Reason != model.ReasonNoAcceptableCandidate {
				t.Errorf("Reason = %q", sel.Reason)
			}
		})
	}
}

func TestSelector_SkipsRejectedCandidates(t *testing.T) {
	searcher := &fakeSearcher{candidates: []model.Candidate{
		{Title: "no link"},
		{Link: "/watch?v=p&list=PL1"},
		{Link: "/watch?v=broken"},
		{Link: "/watch?v=odd"},
		{Link: "/watch?v=long"},
		{Link: "/watch?v=good"},
	}}
	meta := &fakeMetadata{
		durations: map[string]string{
			base + "/watch?v=odd":  "n/a",
			base + "/watch?v=long": "1:00:00",
			base + "/watch?v=good": "0:04:00",
		},
		errs: map[string]error{base + "/watch?v=broken": errors.New("unavailable")},
	}

	var c event.Collector
	sel := newTestSelector(searcher, meta, false, c.Sink()).Select(context.Background(), "q")
	if sel.URL != base+"/watch?v=good" {
		t.Fatalf("URL = %q, want the good candidate", sel.URL)
	}

	skips := c.OfKind(event.KindCandidateSkip)
	wantReasons := []model.SkipReason{
		model.ReasonNoLink,
		model.ReasonPlaylist,
		model.ReasonMetadataFailed,
		model.ReasonBadDuration,
		model.ReasonTooLong,
	}
	if len(skips) != len(wantReasons) {
		t.Fatalf("got %d skip events, want %d", len(skips), len(wantReasons))
	}
	for i, want := range wantReasons {
		if skips[i].Reason != string(want) {
			t.Errorf("skip %d reason = %q, want %q", i, skips[i].Reason, want)
		}
	}

	for _, u := range meta.fetched {
		if IsPlaylistURL(u) {
			t.Errorf("metadata fetched for playlist %q", u)
		}
	}
}

func TestSelector_FirstCandidateOnly(t *testing.T) {
	searcher := &fakeSearcher{candidates: []model.Candidate{
		{Link: "/watch?v=long"},
		{Link: "/watch?v=good"},
	}}
	meta := &fakeMetadata{durations: map[string]string{
		base + "/watch?v=long": "0:25:00",
		base + "/watch?v=good": "0:04:00",
	}}

	sel := newTestSelector(searcher, meta, true, nil).Select(context.Background(), "q")
	if sel.Accepted() {
		t.Fatalf("expected rejection, got %q", sel.URL)
	}
	if len(meta.fetched) != 1 {
		t.Errorf("fetched %d candidates, want 1", len(meta.fetched))
	}
}

func TestSelector_SearchOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		want     model.SkipReason
	}{
		{"search error", &fakeSearcher{err: errors.New("boom")}, model.ReasonSearchFailed},
		{"no results", &fakeSearcher{}, model.ReasonSearchEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &fakeMetadata{}
			sel := newTestSelector(tt.searcher, meta, false, nil).Select(context.Background(), "q")
			if sel.Reason != tt.want {
				t.Errorf("Reason = %q, want %q", sel.Reason, tt.want)
			}
			if len(meta.fetched) != 0 {
				t.Error("metadata should not be fetched")
			}
		})
	}
}

func TestSelector_CapsCandidates(t *testing.T) {
	var candidates []model.Candidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, model.Candidate{})
	}
	searcher := &fakeSearcher{candidates: candidates}

	var c event.Collector
	newTestSelector(searcher, &fakeMetadata{}, false, c.Sink()).Select(context.Background(), "q")

	if got := len(c.OfKind(event.KindCandidateSkip)); got != 10 {
		t.Errorf("evaluated %d candidates, want 10", got)
	}
}
