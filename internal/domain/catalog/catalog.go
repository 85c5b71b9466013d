package catalog

import "context"

// Track is one album track as reported by the catalog backend.
type Track struct {
	TrackRef   string `json:"track_ref"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	DurationMs int64  `json:"duration_ms"`
	Explicit   bool   `json:"explicit"`
}

// Provider is the read-only catalog collaborator. It is consulted only when a
// hierarchical request is approved; failures must not fail the approval.
type Provider interface {
	ListTracks(ctx context.Context, contentRef string) ([]Track, error)
}
