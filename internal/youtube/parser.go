package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/youtube/dto"
)

// ErrNoInitialData is returned when a results page does not embed the
// ytInitialData payload, typically a consent or captcha interstitial.
var ErrNoInitialData = errors.New("could not find ytInitialData in page")

// ParseResultsPage extracts search candidates from a YouTube results page.
//
// YouTube embeds the results as JSON in a script tag:
//
//	<script>var ytInitialData = {...};</script>
//
// The object is decoded with a streaming decoder so that braces inside
// string values never confuse the boundary detection. Candidates keep the
// page's ranking order; shelves and ads are dropped.
func ParseResultsPage(htmlContent string) ([]model.Candidate, error) {
	raw, err := extractInitialData(htmlContent)
	if err != nil {
		return nil, err
	}

	var data dto.InitialData
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse ytInitialData: %w", err)
	}

	var candidates []model.Candidate
	for _, item := range data.Items() {
		if c, ok := item.ToCandidate(); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// extractInitialData returns the page text starting at the ytInitialData
// opening brace.
func extractInitialData(htmlContent string) (string, error) {
	const marker = "ytInitialData"

	idx := strings.Index(htmlContent, marker)
	if idx == -1 {
		return "", ErrNoInitialData
	}

	remaining := htmlContent[idx+len(marker):]
	start := strings.Index(remaining, "{")
	if start == -1 {
		return "", ErrNoInitialData
	}

	return remaining[start:], nil
}
