package blockedsearch

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByKidID(ctx context.Context, kidID string, unreadOnly bool) ([]Entry, error)
	MarkAllRead(ctx context.Context, kidID string) error
}
