package mysql

import (
	"context"

	childDomain "kidsafe-backend/internal/domain/childapproval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChildApprovalRepository struct{ db *gorm.DB }

func NewChildApprovalRepository(db *gorm.DB) *ChildApprovalRepository {
	return &ChildApprovalRepository{db: db}
}

// Upsert inserts the (request, track) flag or updates it in place, keyed on
// the unique (request_id, track_ref) index.
func (r *ChildApprovalRepository) Upsert(ctx context.Context, c *childDomain.ChildApproval) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}, {Name: "track_ref"}},
			DoUpdates: clause.AssignmentColumns([]string{"approved", "track_name", "updated_at"}),
		}).
		Create(c).Error
}

func (r *ChildApprovalRepository) GetByTrackRef(ctx context.Context, requestID uint64, trackRef string) (*childDomain.ChildApproval, error) {
	var out childDomain.ChildApproval
	res := r.db.WithContext(ctx).
		Where("request_id = ? AND track_ref = ?", requestID, trackRef).
		First(&out)
	return &out, res.Error
}

func (r *ChildApprovalRepository) ListByRequestID(ctx context.Context, requestID uint64) ([]childDomain.ChildApproval, error) {
	var out []childDomain.ChildApproval
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ChildApprovalRepository) RevokeAllForRequest(ctx context.Context, requestID uint64) error {
	return r.db.WithContext(ctx).
		Model(&childDomain.ChildApproval{}).
		Where("request_id = ? AND approved = ?", requestID, true).
		Update("approved", false).Error
}
