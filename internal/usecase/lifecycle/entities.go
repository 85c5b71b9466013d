package lifecycle

import (
	"time"
)

type SubmitInput struct {
	KidID      string `json:"kid_id"`
	Kind       string `json:"kind"`
	ContentRef string `json:"content_ref"`
}

type RequestDTO struct {
	RequestID    string     `json:"request_id"`
	KidID        string     `json:"kid_id"`
	Kind         string     `json:"kind"`
	ContentRef   string     `json:"content_ref"`
	Status       string     `json:"status"`
	RequestedAt  time.Time  `json:"requested_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewerNote *string    `json:"reviewer_note,omitempty"`
	DenialReason *string    `json:"denial_reason,omitempty"`
}
