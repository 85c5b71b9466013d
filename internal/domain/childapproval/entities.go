package childapproval

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("child approval not found")

// ChildApproval is an independent approve/revoke flag on one track beneath a
// hierarchical (album) request. It exists only for hierarchical parents and is
// mutable independently of the parent's status.
type ChildApproval struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RequestID uint64    `gorm:"column:request_id;not null;index;uniqueIndex:ux_child_approvals_track" json:"-"`
	TrackRef  string    `gorm:"column:track_ref;type:varchar(128);not null;uniqueIndex:ux_child_approvals_track" json:"track_ref"`
	TrackName string    `gorm:"column:track_name;type:text" json:"track_name"`
	Approved  bool      `gorm:"column:approved;not null;default:false" json:"approved"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (ChildApproval) TableName() string { return "child_approvals" }
