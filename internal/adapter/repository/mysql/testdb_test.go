package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type requestSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	RequestID       string         `gorm:"size:32;column:request_id"`
	KidID           string         `gorm:"size:32;column:kid_id"`
	Kind            string         `gorm:"type:text;column:kind"`
	ContentRef      string         `gorm:"column:content_ref"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	RequestedAt     time.Time      `gorm:"column:requested_at"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at"`
	ReviewerNote    *string        `gorm:"column:reviewer_note"`
	DenialReason    *string        `gorm:"column:denial_reason"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (requestSQLite) TableName() string { return "requests" }

type childApprovalSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	RequestID uint64    `gorm:"column:request_id;uniqueIndex:ux_child_approvals_track"`
	TrackRef  string    `gorm:"column:track_ref;uniqueIndex:ux_child_approvals_track"`
	TrackName string    `gorm:"column:track_name"`
	Approved  bool      `gorm:"column:approved"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (childApprovalSQLite) TableName() string { return "child_approvals" }

type blockedSearchSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	KidID          string    `gorm:"size:32;column:kid_id"`
	Query          string    `gorm:"column:query"`
	MatchedKeyword string    `gorm:"column:matched_keyword"`
	SearchedAt     time.Time `gorm:"column:searched_at"`
	Read           bool      `gorm:"column:read"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (blockedSearchSQLite) TableName() string { return "blocked_searches" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&requestSQLite{}, &childApprovalSQLite{}, &blockedSearchSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
