// Package youtube finds a YouTube video for a song record.
//
// The package covers the first two pipeline stages:
//
//  1. Building a search query from a record (BuildQuery)
//  2. Choosing a result (Selector)
//
// # Searching
//
// Two Searcher implementations exist. PageSearcher loads the public
// results page and decodes the ytInitialData JSON that YouTube embeds in
// it; APISearcher calls the Data API v3 and needs a key:
//
//	searcher := youtube.NewPageSearcher(http.NewClient(), "https://www.youtube.com")
//	candidates, err := searcher.Search(ctx, "Artist - Song", 10)
//
// # Selecting
//
// Selector walks candidates in ranking order. Links without a target and
// playlist links are rejected outright; the rest have their metadata
// fetched (ClientMetadata) and are accepted if they run no longer than
// MaxMinutes:
//
//	sel := youtube.NewSelector(searcher, youtube.NewClientMetadata(nil), youtube.SelectorConfig{
//	    BaseURL:    "https://www.youtube.com",
//	    MaxResults: 10,
//	    MaxMinutes: 19,
//	}, sink)
//	selection := sel.Select(ctx, youtube.BuildQuery(rec, false))
//	if selection.Accepted() {
//	    fmt.Println(selection.URL)
//	}
//
// Durations are clock strings ("H:MM:SS"); ParseDuration turns them into
// minutes.
package youtube
