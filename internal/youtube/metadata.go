package youtube

import (
	"context"
	"fmt"
	"net/http"

	ytclient "github.com/kkdai/youtube/v2"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// MetadataFetcher loads a candidate's watch page metadata.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (*model.VideoInfo, error)
}

// ClientMetadata fetches metadata through the innertube player API.
type ClientMetadata struct {
	client *ytclient.Client
}

// NewClientMetadata creates a ClientMetadata. A nil hc uses
// http.DefaultClient.
func NewClientMetadata(hc *http.Client) *ClientMetadata {
	return &ClientMetadata{
		client: &ytclient.Client{HTTPClient: hc},
	}
}

// FetchMetadata returns the video's title, duration and best thumbnail.
func (m *ClientMetadata) FetchMetadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	video, err := m.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	return &model.VideoInfo{
		ID:           video.ID,
		Title:        video.Title,
		Duration:     FormatClock(video.Duration),
		ThumbnailURL: largestThumbnail(video.Thumbnails),
	}, nil
}

func largestThumbnail(thumbs ytclient.Thumbnails) string {
	best := ""
	var bestArea uint
	for _, t := range thumbs {
		if area := t.Width * t.Height; best == "" || area > bestArea {
			best, bestArea = t.URL, area
		}
	}
	return best
}
