// Package batch applies one lifecycle transition to a set of request ids,
// sequentially, with exact per-item failure accounting. Items are processed
// one at a time, each awaited before the next starts: this bounds load on the
// store and keeps the counts unambiguous. There is no retry and no
// cancellation of a started run.
package batch

import (
	"context"
	"errors"
	"log"
	"time"

	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/lifecycle"
)

var ErrEmptyBatch = errors.New("batch requires at least one request id")

// Transitioner is the slice of the lifecycle usecase the coordinator drives.
type Transitioner interface {
	Approve(ctx context.Context, requestID string) (*lifecycle.RequestDTO, error)
	Deny(ctx context.Context, requestID, reason string) (*lifecycle.RequestDTO, error)
}

// Recorder registers a reversible action with the undo ledger.
type Recorder interface {
	Record(ctx context.Context, action domainRequest.Action, kind domainRequest.Kind, requestIDs []string, window time.Duration) error
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

type Coordinator struct {
	lc     Transitioner
	ledger Recorder
	window time.Duration // undo window for all-succeeded batches
}

func NewCoordinator(lc Transitioner, ledger Recorder, undoWindow time.Duration) *Coordinator {
	return &Coordinator{lc: lc, ledger: ledger, window: undoWindow}
}

// Apply runs the action over ids in the order given. Per-item store errors are
// counted, not propagated, and never abort the remaining items. An undo record
// is registered only when every item succeeded: partially-successful batches
// are not undoable, which avoids ambiguous partial-undo semantics.
func (c *Coordinator) Apply(ctx context.Context, action domainRequest.Action, kind domainRequest.Kind, ids []string, denialReason string) (*Result, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	if action != domainRequest.ActionApprove && action != domainRequest.ActionDeny {
		return nil, errors.New("unknown batch action")
	}

	res := &Result{}
	for _, rid := range ids {
		var err error
		switch action {
		case domainRequest.ActionApprove:
			_, err = c.lc.Approve(ctx, rid)
		case domainRequest.ActionDeny:
			_, err = c.lc.Deny(ctx, rid, denialReason)
		}
		if err != nil {
			res.FailCount++
			res.Failures = append(res.Failures, Failure{RequestID: rid, Error: err.Error()})
			continue
		}
		res.SuccessCount++
	}

	if res.FailCount == 0 && res.SuccessCount > 0 && c.ledger != nil {
		if err := c.ledger.Record(ctx, action, kind, ids, c.window); err != nil {
			// The batch itself succeeded; losing the undo affordance is not a
			// reason to report failure.
			log.Printf("batch: failed to record undo entry: %v", err)
		}
	}
	return res, nil
}
