package uowmock

import (
	"context"
	"errors"
	"testing"

	"kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/domain/uow"
	"kidsafe-backend/internal/testutil/childmock"
	"kidsafe-backend/internal/testutil/requestmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	reqs := &requestmock.Repo{}
	children := &childmock.Repo{}
	repos := uow.Repos{Requests: reqs, Children: children}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Requests != reqs || r.Children != children {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set

	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinRequestTx(ctx, "x", func(uow.Repos, *request.Request) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinRequestTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_LooksUpAndForwards(t *testing.T) {
	ctx := context.Background()

	locked := &request.Request{ID: 7, RequestID: "r-7", Status: request.StatusPending}
	reqs := &requestmock.Repo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*request.Request, error) {
			if requestID != "r-7" {
				return nil, request.ErrNotFound
			}
			return locked, nil
		},
	}
	m := Passthrough(uow.Repos{Requests: reqs})

	innerCalled := false
	err := m.WithinRequestTx(ctx, "r-7", func(r uow.Repos, req *request.Request) error {
		innerCalled = true
		if req != locked {
			t.Fatalf("request not forwarded: %+v", req)
		}
		if r.Requests != reqs {
			t.Fatalf("repos not forwarded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinRequestTx: %v", err)
	}
	if !innerCalled {
		t.Fatalf("inner fn not called")
	}

	if err := m.WithinRequestTx(ctx, "missing", func(uow.Repos, *request.Request) error { return nil }); !errors.Is(err, request.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing id, got %v", err)
	}
}

func TestUoW_Reset(t *testing.T) {
	m := New()
	m.WithinTxFn = func(context.Context, func(uow.Repos) error) error { return nil }
	m.Reset()
	if m.WithinTxFn != nil || m.WithinRequestTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
