package uow

import (
	"context"

	"kidsafe-backend/internal/domain/childapproval"
	"kidsafe-backend/internal/domain/request"
)

type Repos struct {
	Requests request.Repository
	Children childapproval.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *request.Request) error) error
}
