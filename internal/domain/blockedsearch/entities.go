package blockedsearch

import "time"

// Entry is one blocked search query. Append-only log, not a state machine:
// the only mutation ever applied is the read flag.
type Entry struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	KidID          string    `gorm:"column:kid_id;type:char(32);not null;index" json:"kid_id"`
	Query          string    `gorm:"column:query;type:text;not null" json:"query"`
	MatchedKeyword string    `gorm:"column:matched_keyword;type:varchar(64);not null" json:"matched_keyword"`
	SearchedAt     time.Time `gorm:"column:searched_at;not null" json:"searched_at"`
	Read           bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Entry) TableName() string { return "blocked_searches" }
