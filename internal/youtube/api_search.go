package youtube

import (
	"context"
	"fmt"
	"html"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// APISearcher searches through the YouTube Data API v3. It is used instead
// of PageSearcher when an API key is configured.
//
// The API's search results carry no durations, so every candidate is
// judged on the metadata fetched for it.
type APISearcher struct {
	service *ytapi.Service
}

// NewAPISearcher creates an APISearcher authenticated with apiKey. Extra
// options (endpoint, HTTP client) are applied after the key.
func NewAPISearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APISearcher, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &APISearcher{service: service}, nil
}

// Search runs search.list and converts the items to candidates.
func (s *APISearcher) Search(ctx context.Context, query string, limit int) ([]model.Candidate, error) {
	call := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Context(ctx)
	if limit > 0 {
		call = call.MaxResults(int64(limit))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search.list failed: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		candidates = append(candidates, searchResultToCandidate(item))
	}
	return candidates, nil
}

func searchResultToCandidate(item *ytapi.SearchResult) model.Candidate {
	var c model.Candidate
	if item.Snippet != nil {
		// The API returns HTML-escaped titles.
		c.Title = html.UnescapeString(item.Snippet.Title)
	}
	if item.Id == nil {
		return c
	}

	switch item.Id.Kind {
	case "youtube#video":
		if item.Id.VideoId != "" {
			c.Link = "/watch?v=" + item.Id.VideoId
		}
	case "youtube#playlist":
		if item.Id.PlaylistId != "" {
			c.Link = "/playlist?list=" + item.Id.PlaylistId
		}
	}
	return c
}
