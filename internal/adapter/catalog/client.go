// Package catalog provides the HTTP client for the catalog backend's track
// listing endpoint. Read-only; callers treat failures as non-fatal.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	catalogDomain "kidsafe-backend/internal/domain/catalog"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type trackListResponse struct {
	Tracks []catalogDomain.Track `json:"tracks"`
}

func (c *Client) ListTracks(ctx context.Context, contentRef string) ([]catalogDomain.Track, error) {
	u := fmt.Sprintf("%s/v1/albums/%s/tracks", c.baseURL, url.PathEscape(contentRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: list tracks for %q: unexpected status %d", contentRef, resp.StatusCode)
	}

	var body trackListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: decode track list: %w", err)
	}
	return body.Tracks, nil
}
