package requestmock

import (
	"context"

	domain "kidsafe-backend/internal/domain/request"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                    func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn            func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn   func(ctx context.Context, requestID string) (*domain.Request, error)
	GetPendingByKidAndContentFn func(ctx context.Context, kidID, contentRef string) (*domain.Request, error)
	ListByStatusFn              func(ctx context.Context, status domain.Status, kidID string) ([]domain.Request, error)
	SaveFn                      func(ctx context.Context, r *domain.Request) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPendingByKidAndContent(ctx context.Context, kidID, contentRef string) (*domain.Request, error) {
	if m.GetPendingByKidAndContentFn != nil {
		return m.GetPendingByKidAndContentFn(ctx, kidID, contentRef)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status, kidID string) ([]domain.Request, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, kidID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
