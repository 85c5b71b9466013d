// Package undo keeps the most recent reversible moderation action and replays
// its inverse within a fixed window. At most one record is live at a time; a
// new reversible action overwrites the previous one, and undo is single-use.
package undo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/lifecycle"

	"github.com/redis/go-redis/v9"
)

const ledgerKey = "moderation:undo:last"

var nowUTC = func() time.Time { return time.Now().UTC() }

var ErrUndoExpired = errors.New("nothing to undo or the undo window has elapsed")

// Reverser is the slice of the lifecycle usecase the ledger needs.
type Reverser interface {
	UndoApproval(ctx context.Context, requestID string) (*lifecycle.RequestDTO, error)
	UndoDenial(ctx context.Context, requestID string) (*lifecycle.RequestDTO, error)
}

// Record is one reversible action. WindowSecs is captured at record time so
// the expiry check survives a config change between record and undo.
type Record struct {
	Action     domainRequest.Action `json:"action"`
	Kind       domainRequest.Kind   `json:"kind"`
	RequestIDs []string             `json:"request_ids"`
	RecordedAt time.Time            `json:"recorded_at"`
	WindowSecs int                  `json:"window_secs"`
}

type Failure struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

type Result struct {
	SuccessCount int       `json:"success_count"`
	FailCount    int       `json:"fail_count"`
	Failures     []Failure `json:"failures,omitempty"`
}

type Ledger struct {
	rdb *redis.Client
	lc  Reverser
}

func NewLedger(rdb *redis.Client, lc Reverser) *Ledger {
	return &Ledger{rdb: rdb, lc: lc}
}

// Record stores rec as the single live reversible action, replacing any
// previous one. The redis key TTL doubles as the expiry window.
func (l *Ledger) Record(ctx context.Context, action domainRequest.Action, kind domainRequest.Kind, requestIDs []string, window time.Duration) error {
	rec := Record{
		Action:     action,
		Kind:       kind,
		RequestIDs: requestIDs,
		RecordedAt: nowUTC(),
		WindowSecs: int(window / time.Second),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return l.rdb.Set(ctx, ledgerKey, payload, window).Err()
}

// Undo replays the inverse transition for every id in the live record,
// sequentially, aggregating per-item outcomes. The record is cleared whether
// or not every item succeeds; a missing or expired record is ErrUndoExpired,
// never a silent no-op.
func (l *Ledger) Undo(ctx context.Context) (*Result, error) {
	payload, err := l.rdb.Get(ctx, ledgerKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUndoExpired
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		_ = l.rdb.Del(ctx, ledgerKey).Err()
		return nil, ErrUndoExpired
	}

	// The TTL already bounds the record's life; the timestamp check guards
	// against a redis server without key expiry (or a clock rewind).
	if nowUTC().Sub(rec.RecordedAt) > time.Duration(rec.WindowSecs)*time.Second {
		_ = l.rdb.Del(ctx, ledgerKey).Err()
		return nil, ErrUndoExpired
	}

	res := &Result{}
	for _, rid := range rec.RequestIDs {
		var itemErr error
		switch rec.Action {
		case domainRequest.ActionApprove:
			_, itemErr = l.lc.UndoApproval(ctx, rid)
		case domainRequest.ActionDeny:
			_, itemErr = l.lc.UndoDenial(ctx, rid)
		default:
			itemErr = errors.New("unknown recorded action")
		}
		if itemErr != nil {
			res.FailCount++
			res.Failures = append(res.Failures, Failure{RequestID: rid, Error: itemErr.Error()})
			continue
		}
		res.SuccessCount++
	}

	// single-use: clear regardless of per-item outcome
	if err := l.rdb.Del(ctx, ledgerKey).Err(); err != nil {
		return res, err
	}
	return res, nil
}
