package undo

import (
	"context"
	"errors"
	"testing"
	"time"

	"kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/lifecycle"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeReverser struct {
	undone   []string
	redenied []string
	failOn   map[string]error
}

func (f *fakeReverser) UndoApproval(ctx context.Context, rid string) (*lifecycle.RequestDTO, error) {
	if err := f.failOn[rid]; err != nil {
		return nil, err
	}
	f.undone = append(f.undone, rid)
	return &lifecycle.RequestDTO{RequestID: rid, Status: "pending"}, nil
}

func (f *fakeReverser) UndoDenial(ctx context.Context, rid string) (*lifecycle.RequestDTO, error) {
	if err := f.failOn[rid]; err != nil {
		return nil, err
	}
	f.redenied = append(f.redenied, rid)
	return &lifecycle.RequestDTO{RequestID: rid, Status: "pending"}, nil
}

func newTestLedger(t *testing.T, lc Reverser) (*miniredis.Miniredis, *Ledger) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewLedger(rdb, lc)
}

func TestUndo_WithinWindow(t *testing.T) {
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{}}
	_, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionApprove, request.KindVideo, []string{"a", "b"}, 30*time.Second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	res, err := l.Undo(ctx)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if res.SuccessCount != 2 || res.FailCount != 0 {
		t.Fatalf("counts = %d/%d, want 2/0", res.SuccessCount, res.FailCount)
	}
	if len(lc.undone) != 2 {
		t.Fatalf("undone = %v", lc.undone)
	}

	// single-use: a second undo has nothing to replay
	if _, err := l.Undo(ctx); !errors.Is(err, ErrUndoExpired) {
		t.Fatalf("second Undo: want ErrUndoExpired, got %v", err)
	}
}

func TestUndo_ExpiredByTTL(t *testing.T) {
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{}}
	mr, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionApprove, request.KindVideo, []string{"a"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(40 * time.Second)

	if _, err := l.Undo(ctx); !errors.Is(err, ErrUndoExpired) {
		t.Fatalf("want ErrUndoExpired, got %v", err)
	}
	if len(lc.undone) != 0 {
		t.Fatalf("expired undo still replayed: %v", lc.undone)
	}
}

func TestUndo_ExpiredByTimestamp(t *testing.T) {
	// The record is still in redis but the wall clock moved past the window;
	// the timestamp check must reject it.
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{}}
	_, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionDeny, request.KindSong, []string{"a"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}

	orig := nowUTC
	nowUTC = func() time.Time { return orig().Add(45 * time.Second) }
	defer func() { nowUTC = orig }()

	if _, err := l.Undo(ctx); !errors.Is(err, ErrUndoExpired) {
		t.Fatalf("want ErrUndoExpired, got %v", err)
	}
}

func TestUndo_DenyRecordReplaysUndoDenial(t *testing.T) {
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{}}
	_, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionDeny, request.KindSong, []string{"x"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Undo(ctx); err != nil {
		t.Fatal(err)
	}
	if len(lc.redenied) != 1 || lc.redenied[0] != "x" {
		t.Fatalf("redenied = %v", lc.redenied)
	}
	if len(lc.undone) != 0 {
		t.Fatalf("approve inverse used for a deny record: %v", lc.undone)
	}
}

func TestUndo_PerItemFailureStillClearsRecord(t *testing.T) {
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{"b": errors.New("store down")}}
	_, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionApprove, request.KindVideo, []string{"a", "b", "c"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}

	res, err := l.Undo(ctx)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if res.SuccessCount != 2 || res.FailCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", res.SuccessCount, res.FailCount)
	}
	if res.Failures[0].RequestID != "b" {
		t.Fatalf("failures = %+v", res.Failures)
	}

	// cleared even though one item failed
	if _, err := l.Undo(ctx); !errors.Is(err, ErrUndoExpired) {
		t.Fatalf("want ErrUndoExpired after partial undo, got %v", err)
	}
}

func TestRecord_MostRecentWins(t *testing.T) {
	ctx := context.Background()
	lc := &fakeReverser{failOn: map[string]error{}}
	_, l := newTestLedger(t, lc)

	if err := l.Record(ctx, request.ActionApprove, request.KindVideo, []string{"old"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	if err := l.Record(ctx, request.ActionApprove, request.KindVideo, []string{"new-1", "new-2"}, 30*time.Second); err != nil {
		t.Fatal(err)
	}

	res, err := l.Undo(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.SuccessCount != 2 {
		t.Fatalf("counts = %+v, want the replacing record's 2 items", res)
	}
	for _, rid := range lc.undone {
		if rid == "old" {
			t.Fatal("replaced record was replayed")
		}
	}
}

func TestUndo_EmptyLedger(t *testing.T) {
	_, l := newTestLedger(t, &fakeReverser{})
	if _, err := l.Undo(context.Background()); !errors.Is(err, ErrUndoExpired) {
		t.Fatalf("want ErrUndoExpired, got %v", err)
	}
}
