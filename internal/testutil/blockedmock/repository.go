package blockedmock

import (
	"context"

	domain "kidsafe-backend/internal/domain/blockedsearch"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies blockedsearch.Repository.
type Repo struct {
	AppendFn      func(ctx context.Context, e *domain.Entry) error
	ListByKidIDFn func(ctx context.Context, kidID string, unreadOnly bool) ([]domain.Entry, error)
	MarkAllReadFn func(ctx context.Context, kidID string) error
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListByKidID(ctx context.Context, kidID string, unreadOnly bool) ([]domain.Entry, error) {
	if m.ListByKidIDFn != nil {
		return m.ListByKidIDFn(ctx, kidID, unreadOnly)
	}
	return nil, nil
}

func (m *Repo) MarkAllRead(ctx context.Context, kidID string) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, kidID)
	}
	return nil
}
