package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/lifecycle"
)

type fakeTransitioner struct {
	order   []string
	failOn  map[string]error
	denials map[string]string
}

func (f *fakeTransitioner) Approve(ctx context.Context, rid string) (*lifecycle.RequestDTO, error) {
	f.order = append(f.order, rid)
	if err := f.failOn[rid]; err != nil {
		return nil, err
	}
	return &lifecycle.RequestDTO{RequestID: rid, Status: "approved"}, nil
}

func (f *fakeTransitioner) Deny(ctx context.Context, rid, reason string) (*lifecycle.RequestDTO, error) {
	f.order = append(f.order, rid)
	if f.denials != nil {
		f.denials[rid] = reason
	}
	if err := f.failOn[rid]; err != nil {
		return nil, err
	}
	return &lifecycle.RequestDTO{RequestID: rid, Status: "denied"}, nil
}

type fakeRecorder struct {
	records int
	lastIDs []string
	lastAct request.Action
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, action request.Action, kind request.Kind, ids []string, window time.Duration) error {
	f.records++
	f.lastAct = action
	f.lastIDs = ids
	return f.err
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("all succeed registers one undo record", func(t *testing.T) {
		lc := &fakeTransitioner{failOn: map[string]error{}}
		rec := &fakeRecorder{}
		c := NewCoordinator(lc, rec, 30*time.Second)

		res, err := c.Apply(ctx, request.ActionApprove, request.KindVideo, []string{"a", "b", "c"}, "")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if res.SuccessCount != 3 || res.FailCount != 0 {
			t.Fatalf("counts = %d/%d, want 3/0", res.SuccessCount, res.FailCount)
		}
		if rec.records != 1 {
			t.Fatalf("undo records = %d, want 1", rec.records)
		}
		if rec.lastAct != request.ActionApprove || len(rec.lastIDs) != 3 {
			t.Fatalf("record = %s %v", rec.lastAct, rec.lastIDs)
		}
	})

	t.Run("items run sequentially in the order given", func(t *testing.T) {
		lc := &fakeTransitioner{failOn: map[string]error{}}
		c := NewCoordinator(lc, &fakeRecorder{}, 30*time.Second)

		if _, err := c.Apply(ctx, request.ActionApprove, request.KindSong, []string{"z", "a", "m"}, ""); err != nil {
			t.Fatal(err)
		}
		want := []string{"z", "a", "m"}
		for i, rid := range want {
			if lc.order[i] != rid {
				t.Fatalf("order = %v, want %v", lc.order, want)
			}
		}
	})

	t.Run("partial failure counts and is not undoable", func(t *testing.T) {
		lc := &fakeTransitioner{failOn: map[string]error{"b": errors.New("store down")}}
		rec := &fakeRecorder{}
		c := NewCoordinator(lc, rec, 30*time.Second)

		res, err := c.Apply(ctx, request.ActionApprove, request.KindVideo, []string{"a", "b", "c"}, "")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if res.SuccessCount != 2 || res.FailCount != 1 {
			t.Fatalf("counts = %d/%d, want 2/1", res.SuccessCount, res.FailCount)
		}
		if len(res.Failures) != 1 || res.Failures[0].RequestID != "b" {
			t.Fatalf("failures = %+v", res.Failures)
		}
		if rec.records != 0 {
			t.Fatal("partially-successful batch registered an undo record")
		}
		// a failed item never aborts the rest
		if len(lc.order) != 3 {
			t.Fatalf("processed %d items, want 3", len(lc.order))
		}
	})

	t.Run("deny passes the reason through", func(t *testing.T) {
		lc := &fakeTransitioner{failOn: map[string]error{}, denials: map[string]string{}}
		c := NewCoordinator(lc, &fakeRecorder{}, 30*time.Second)

		if _, err := c.Apply(ctx, request.ActionDeny, request.KindVideo, []string{"a"}, "bedtime"); err != nil {
			t.Fatal(err)
		}
		if lc.denials["a"] != "bedtime" {
			t.Fatalf("reason = %q", lc.denials["a"])
		}
	})

	t.Run("ledger failure does not fail a successful batch", func(t *testing.T) {
		lc := &fakeTransitioner{failOn: map[string]error{}}
		rec := &fakeRecorder{err: errors.New("redis down")}
		c := NewCoordinator(lc, rec, 30*time.Second)

		res, err := c.Apply(ctx, request.ActionApprove, request.KindSong, []string{"a"}, "")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if res.SuccessCount != 1 {
			t.Fatalf("counts = %+v", res)
		}
	})

	t.Run("empty id list", func(t *testing.T) {
		c := NewCoordinator(&fakeTransitioner{}, &fakeRecorder{}, 30*time.Second)
		if _, err := c.Apply(ctx, request.ActionApprove, request.KindSong, nil, ""); !errors.Is(err, ErrEmptyBatch) {
			t.Fatalf("want ErrEmptyBatch, got %v", err)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		c := NewCoordinator(&fakeTransitioner{}, &fakeRecorder{}, 30*time.Second)
		if _, err := c.Apply(ctx, request.Action("archive"), request.KindSong, []string{"a"}, ""); err == nil {
			t.Fatal("expected error for unknown action")
		}
	})
}
