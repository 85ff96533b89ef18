package youtube

import (
	"context"
	"net/url"
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/http"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// Searcher returns ranked candidates for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.Candidate, error)
}

// PageSearcher searches by loading the public results page and reading its
// embedded ytInitialData. It needs no credentials.
type PageSearcher struct {
	client  *http.Client
	baseURL string
}

// NewPageSearcher creates a PageSearcher rooted at baseURL
// (for example "https://www.youtube.com").
func NewPageSearcher(client *http.Client, baseURL string) *PageSearcher {
	return &PageSearcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ResultsURL returns the results page URL for query.
func (s *PageSearcher) ResultsURL(query string) string {
	return s.baseURL + "/results?search_query=" + url.QueryEscape(query)
}

// Search fetches the results page and returns up to limit candidates.
// A limit of zero or less returns every candidate on the page.
func (s *PageSearcher) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	html, err := s.client.GetString(ctx, s.ResultsURL(query))
	if err != nil {
		return nil, err
	}

	candidates, err := ParseResultsPage(html)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
