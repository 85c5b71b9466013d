package childapproval

import "context"

type Repository interface {
	// Upsert creates or updates the (request, track) approval flag.
	Upsert(ctx context.Context, c *ChildApproval) error
	GetByTrackRef(ctx context.Context, requestID uint64, trackRef string) (*ChildApproval, error)
	ListByRequestID(ctx context.Context, requestID uint64) ([]ChildApproval, error)
	// RevokeAllForRequest flips approved=false on every child of the request.
	RevokeAllForRequest(ctx context.Context, requestID uint64) error
}
