package request

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	// Row-locking variant used inside UnitOfWork transactions.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	GetPendingByKidAndContent(ctx context.Context, kidID, contentRef string) (*Request, error)
	ListByStatus(ctx context.Context, status Status, kidID string) ([]Request, error)
	Save(ctx context.Context, r *Request) error
}
