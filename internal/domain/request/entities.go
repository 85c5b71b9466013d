package request

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Kind string

const (
	KindAlbum   Kind = "album"
	KindSong    Kind = "song"
	KindVideo   Kind = "video"
	KindChannel Kind = "channel"
)

// Hierarchical reports whether requests of this kind decompose into
// independently approvable children (album tracks).
func (k Kind) Hierarchical() bool { return k == KindAlbum }

func ValidKind(k Kind) bool {
	switch k {
	case KindAlbum, KindSong, KindVideo, KindChannel:
		return true
	}
	return false
}

type Status string

const (
	StatusPending           Status = "pending"
	StatusApproved          Status = "approved"
	StatusDenied            Status = "denied"
	StatusPartiallyApproved Status = "partially_approved"
)

// Action is a moderation action applied through the lifecycle or in batch.
type Action string

const (
	ActionApprove Action = "approve"
	ActionDeny    Action = "deny"
)

var (
	ErrNotFound          = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrDuplicatePending  = errors.New("kid already has a pending request for this content")
	ErrNotHierarchical   = errors.New("request kind has no children")
)

// NewInvalidTransition wraps ErrInvalidTransition naming the attempted
// operation and the status it was attempted from.
func NewInvalidTransition(op string, s Status) error {
	return fmt.Errorf("%w: cannot %s request in state %q", ErrInvalidTransition, op, s)
}

type Request struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	RequestID       string         `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_requests_request_id_active" json:"request_id"`
	KidID           string         `gorm:"column:kid_id;type:char(32);not null;index:idx_requests_kid_active" json:"kid_id"`
	Kind            Kind           `gorm:"column:kind;type:enum('album','song','video','channel');not null" json:"kind"`
	ContentRef      string         `gorm:"column:content_ref;type:text;not null" json:"content_ref"`
	Status          Status         `gorm:"column:status;type:enum('pending','approved','denied','partially_approved');default:'pending'" json:"status"`
	RequestedAt     time.Time      `gorm:"column:requested_at;autoCreateTime" json:"requested_at"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewerNote    *string        `gorm:"column:reviewer_note;type:text" json:"reviewer_note,omitempty"`
	DenialReason    *string        `gorm:"column:denial_reason;type:text" json:"denial_reason,omitempty"`
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Request) TableName() string { return "requests" }
