package catalogmock

import (
	"context"

	domain "kidsafe-backend/internal/domain/catalog"
)

var _ domain.Provider = (*Provider)(nil)

// Provider is a function-backed mock that satisfies catalog.Provider.
type Provider struct {
	ListTracksFn func(ctx context.Context, contentRef string) ([]domain.Track, error)
}

func (m *Provider) ListTracks(ctx context.Context, contentRef string) ([]domain.Track, error) {
	if m.ListTracksFn != nil {
		return m.ListTracksFn(ctx, contentRef)
	}
	return nil, nil
}
