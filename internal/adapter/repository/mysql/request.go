package mysql

import (
	"context"

	requestDomain "kidsafe-backend/internal/domain/request"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) Save(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no row locks; the surrounding tx serializes writes.
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out requestDomain.Request
	res := q.Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *RequestRepository) GetPendingByKidAndContent(ctx context.Context, kidID, contentRef string) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := r.db.WithContext(ctx).
		Where("kid_id = ? AND content_ref = ? AND status = ?", kidID, contentRef, requestDomain.StatusPending).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *RequestRepository) ListByStatus(ctx context.Context, status requestDomain.Status, kidID string) ([]requestDomain.Request, error) {
	q := r.db.WithContext(ctx).Where("status = ?", status)
	if kidID != "" {
		q = q.Where("kid_id = ?", kidID)
	}
	var out []requestDomain.Request
	res := q.Order("requested_at DESC, id DESC").Find(&out)
	return out, res.Error
}
