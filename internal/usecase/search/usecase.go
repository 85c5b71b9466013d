// Package search gates kid-facing search: queries are screened before they
// reach the catalog and result batches are screened before they reach the kid.
package search

import (
	"context"
	"log"
	"time"

	"kidsafe-backend/internal/domain/blockedsearch"
	"kidsafe-backend/internal/safety"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

// ResultItem is one catalog search result as rendered to a kid.
type ResultItem struct {
	Ref           string `json:"ref"`
	Title         string `json:"title"`
	ChannelName   string `json:"channel_name"`
	Description   string `json:"description"`
	AgeRestricted bool   `json:"age_restricted"`
}

type Usecase struct {
	filter  *safety.Filter
	blocked blockedsearch.Repository
}

func NewUsecase(filter *safety.Filter, blocked blockedsearch.Repository) *Usecase {
	return &Usecase{filter: filter, blocked: blocked}
}

// ValidateQuery screens a query and, on a keyword hit, appends a blocked
// search entry for the guardian's review. A logging failure does not turn a
// blocked query into an allowed one.
func (u *Usecase) ValidateQuery(ctx context.Context, kidID, query string) safety.QueryVerdict {
	verdict := u.filter.ValidateQuery(query)
	if verdict.Valid || verdict.MatchedKeyword == "" {
		return verdict
	}

	entry := &blockedsearch.Entry{
		KidID:          kidID,
		Query:          query,
		MatchedKeyword: verdict.MatchedKeyword,
		SearchedAt:     nowUTC(),
	}
	if err := u.blocked.Append(ctx, entry); err != nil {
		log.Printf("search: failed to log blocked query for kid %s: %v", kidID, err)
	}
	return verdict
}

// ScreenResults drops any item whose visible text classifies as a match, plus
// anything the catalog flags as age-restricted.
func (u *Usecase) ScreenResults(items []ResultItem) []ResultItem {
	out := make([]ResultItem, 0, len(items))
	for _, it := range items {
		if it.AgeRestricted {
			continue
		}
		if m := u.filter.Screen(it.Title, it.ChannelName, it.Description); m != nil {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ListBlocked returns the blocked-search log for one kid, newest first.
func (u *Usecase) ListBlocked(ctx context.Context, kidID string, unreadOnly bool) ([]blockedsearch.Entry, error) {
	return u.blocked.ListByKidID(ctx, kidID, unreadOnly)
}

// MarkSearchesRead clears the unread badge for one kid's blocked searches.
func (u *Usecase) MarkSearchesRead(ctx context.Context, kidID string) error {
	return u.blocked.MarkAllRead(ctx, kidID)
}
