package mysql

import (
	"context"

	blockedDomain "kidsafe-backend/internal/domain/blockedsearch"

	"gorm.io/gorm"
)

type BlockedSearchRepository struct{ db *gorm.DB }

func NewBlockedSearchRepository(db *gorm.DB) *BlockedSearchRepository {
	return &BlockedSearchRepository{db: db}
}

func (r *BlockedSearchRepository) Append(ctx context.Context, e *blockedDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *BlockedSearchRepository) ListByKidID(ctx context.Context, kidID string, unreadOnly bool) ([]blockedDomain.Entry, error) {
	q := r.db.WithContext(ctx).Where("kid_id = ?", kidID)
	if unreadOnly {
		q = q.Where("`read` = ?", false)
	}
	var out []blockedDomain.Entry
	res := q.Order("searched_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *BlockedSearchRepository) MarkAllRead(ctx context.Context, kidID string) error {
	return r.db.WithContext(ctx).
		Model(&blockedDomain.Entry{}).
		Where("kid_id = ? AND `read` = ?", kidID, false).
		Update("read", true).Error
}
