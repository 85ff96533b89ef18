package model

// Status is the terminal state of a processed record.
type Status int

const (
	// StatusPlaced means the file was moved into place and tagged.
	StatusPlaced Status = iota

	// StatusSkipped means the record was intentionally not produced.
	StatusSkipped

	// StatusFailed means the record was abandoned because of an error.
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusPlaced:
		return "placed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SkipReason tags why a record or candidate was not used.
type SkipReason string

// Record-level reasons.
const (
	ReasonNone                  SkipReason = ""
	ReasonAlreadyExists         SkipReason = "already_exists"
	ReasonSearchFailed          SkipReason = "search_failed"
	ReasonSearchEmpty           SkipReason = "search_empty"
	ReasonNoAcceptableCandidate SkipReason = "no_acceptable_candidate"
	ReasonDownloadFailed        SkipReason = "download_failed"
	ReasonUnexpectedFileCount   SkipReason = "unexpected_file_count"
	ReasonMoveFailed            SkipReason = "move_failed"
	ReasonTagWriteFailed        SkipReason = "tag_write_failed"
)

// Candidate-level reasons.
const (
	ReasonNoLink         SkipReason = "no_link"
	ReasonPlaylist       SkipReason = "playlist"
	ReasonMetadataFailed SkipReason = "metadata_failed"
	ReasonBadDuration    SkipReason = "bad_duration"
	ReasonTooLong        SkipReason = "too_long"
)

// Outcome is the result of processing one SongRecord.
type Outcome struct {
	Record SongRecord
	Status Status
	Reason SkipReason

	// Path is the destination file path. Set for every outcome, since
	// it is computed before any work starts.
	Path string

	// URL is the selected watch URL, empty if selection did not succeed.
	URL string

	// Duration is the selected video's clock string, if known.
	Duration string

	// Err carries the underlying error for failed outcomes.
	Err error
}

// Placed reports whether the outcome produced a file.
func (o Outcome) Placed() bool {
	return o.Status == StatusPlaced
}
