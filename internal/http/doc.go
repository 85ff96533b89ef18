// Package http provides the HTTP client used to query YouTube and fetch
// thumbnails.
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch a results page
//	html, err := client.GetString(ctx, "https://www.youtube.com/results?search_query=artist+-+song")
//
//	// Fetch a thumbnail
//	data, err := client.DownloadBytes(ctx, thumbnailURL)
package http
