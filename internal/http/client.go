package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is a desktop browser string. YouTube serves the full
// results page, including the embedded ytInitialData, only to browsers.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Client wraps HTTP operations used by the search and cover art steps.
//
// Client provides:
//   - A browser User-Agent and an English Accept-Language, so page
//     layout and duration text are predictable
//   - Timeout handling
//
// Example usage:
//
//	client := NewClient()
//	html, err := client.GetString(ctx, "https://www.youtube.com/results?search_query=x")
type Client struct {
	httpClient *http.Client
	userAgent  string
	language   string
}

// NewClient creates a new HTTP client with a 30 second timeout.
func NewClient() *Client {
	return NewClientWith(&http.Client{Timeout: 30 * time.Second})
}

// NewClientWith wraps an existing *http.Client, for tests and proxies.
func NewClientWith(hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		userAgent:  DefaultUserAgent,
		language:   "en-US,en;q=0.9",
	}
}

// HTTPClient returns the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadBytes downloads a small file, such as a thumbnail, into memory.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url)
}
