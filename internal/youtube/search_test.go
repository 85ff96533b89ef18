package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	ythttp "github.com/samuelpedrajas/csv2yt2mp3/internal/http"
)

func TestPageSearcher_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("search_query")
		fmt.Fprint(w, resultsPage)
	}))
	defer srv.Close()

	searcher := NewPageSearcher(ythttp.NewClientWith(srv.Client()), srv.URL+"/")

	candidates, err := searcher.Search(context.Background(), "Artist - Song & Co", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "Artist - Song & Co" {
		t.Errorf("server got query %q", gotQuery)
	}
	if len(candidates) != 2 {
		t.Errorf("got %d candidates, want 2 (limit)", len(candidates))
	}
}

func TestPageSearcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	searcher := NewPageSearcher(ythttp.NewClientWith(srv.Client()), srv.URL)
	if _, err := searcher.Search(context.Background(), "q", 10); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestPageSearcher_ResultsURL(t *testing.T) {
	searcher := NewPageSearcher(ythttp.NewClient(), "https://www.youtube.com")
	got := searcher.ResultsURL("A - B")
	want := "https://www.youtube.com/results?search_query=A+-+B"
	if got != want {
		t.Errorf("ResultsURL() = %q, want %q", got, want)
	}
}

const apiResponse = `{
 "items": [
  {"id": {"kind": "youtube#video", "videoId": "abc"}, "snippet": {"title": "Artist &amp; Friends - Song"}},
  {"id": {"kind": "youtube#playlist", "playlistId": "PL1"}, "snippet": {"title": "Mix"}},
  {"id": {"kind": "youtube#channel", "channelId": "UC1"}, "snippet": {"title": "Channel"}}
 ]
}`

func TestAPISearcher_Search(t *testing.T) {
	var gotQuery, gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/search") {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, apiResponse)
	}))
	defer srv.Close()

	ctx := context.Background()
	searcher, err := NewAPISearcher(ctx, "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewAPISearcher() error: %v", err)
	}

	candidates, err := searcher.Search(ctx, "Artist - Song", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "Artist - Song" || gotMax != "10" {
		t.Errorf("server got q=%q maxResults=%q", gotQuery, gotMax)
	}

	want := []struct{ link, title string }{
		{"/watch?v=abc", "Artist & Friends - Song"},
		{"/playlist?list=PL1", "Mix"},
		{"", "Channel"},
	}
	if len(candidates) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(candidates), len(want))
	}
	for i, w := range want {
		if candidates[i].Link != w.link || candidates[i].Title != w.title {
			t.Errorf("candidate %d = %+v, want link %q title %q", i, candidates[i], w.link, w.title)
		}
	}
}
