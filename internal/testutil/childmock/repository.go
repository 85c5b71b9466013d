package childmock

import (
	"context"

	domain "kidsafe-backend/internal/domain/childapproval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	UpsertFn              func(ctx context.Context, c *domain.ChildApproval) error
	GetByTrackRefFn       func(ctx context.Context, requestID uint64, trackRef string) (*domain.ChildApproval, error)
	ListByRequestIDFn     func(ctx context.Context, requestID uint64) ([]domain.ChildApproval, error)
	RevokeAllForRequestFn func(ctx context.Context, requestID uint64) error
}

func (m *Repo) Upsert(ctx context.Context, c *domain.ChildApproval) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByTrackRef(ctx context.Context, requestID uint64, trackRef string) (*domain.ChildApproval, error) {
	if m.GetByTrackRefFn != nil {
		return m.GetByTrackRefFn(ctx, requestID, trackRef)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRequestID(ctx context.Context, requestID uint64) ([]domain.ChildApproval, error) {
	if m.ListByRequestIDFn != nil {
		return m.ListByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) RevokeAllForRequest(ctx context.Context, requestID uint64) error {
	if m.RevokeAllForRequestFn != nil {
		return m.RevokeAllForRequestFn(ctx, requestID)
	}
	return nil
}
