package model

// Candidate is one search result entry.
//
// Link is relative to the platform base URL (for example "/watch?v=abc")
// and may be empty when the provider returned an entry without one.
type Candidate struct {
	Link     string
	Title    string
	Duration string
}

// HasLink reports whether the candidate carries a link.
func (c Candidate) HasLink() bool {
	return c.Link != ""
}

// VideoInfo is the metadata fetched for a candidate's watch page.
type VideoInfo struct {
	ID    string
	Title string

	// Duration is a clock string, "H:MM:SS".
	Duration string

	// ThumbnailURL is the largest thumbnail, empty if none.
	ThumbnailURL string
}
