package mysql

import (
	"context"
	"errors"

	requestDomain "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *requestDomain.Request) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the request row up-front to prevent races
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return requestDomain.ErrNotFound
			}
			return err
		}
		return fn(r, req)
	})
}

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Requests: &RequestRepository{db: tx},
		Children: &ChildApprovalRepository{db: tx},
	}
}
