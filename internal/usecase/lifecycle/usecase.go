package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kidsafe-backend/internal/domain/catalog"
	"kidsafe-backend/internal/domain/childapproval"
	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/domain/uow"
	"kidsafe-backend/pkg/id"

	"gorm.io/gorm"
)

// overridable in tests
var nowUTC = func() time.Time { return time.Now().UTC() }

type Usecase struct {
	repo    domainRequest.Repository
	catalog catalog.Provider
	uow     uow.UnitOfWork
}

// NewUsecase: repo for reads, UoW for transition flows, catalog for
// hierarchical child materialization.
func NewUsecase(repo domainRequest.Repository, cat catalog.Provider, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, catalog: cat, uow: tx}
}

// Submit creates a new request in pending. A kid may hold at most one pending
// request per content ref.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*RequestDTO, error) {
	kind := domainRequest.Kind(in.Kind)
	if in.KidID == "" || in.ContentRef == "" || !domainRequest.ValidKind(kind) {
		return nil, errors.New("invalid input")
	}

	pending, err := u.repo.GetPendingByKidAndContent(ctx, in.KidID, in.ContentRef)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domainRequest.ErrDuplicatePending, pending.RequestID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	r := &domainRequest.Request{
		RequestID:       id.NewID32(),
		KidID:           in.KidID,
		Kind:            kind,
		ContentRef:      in.ContentRef,
		Status:          domainRequest.StatusPending,
		RequestedAt:     nowUTC(),
		StatusUpdatedAt: nowUTC(),
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	r, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) ListByStatus(ctx context.Context, status domainRequest.Status, kidID string) ([]RequestDTO, error) {
	rs, err := u.repo.ListByStatus(ctx, status, kidID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(rs))
	for i := range rs {
		out = append(out, *toDTO(&rs[i]))
	}
	return out, nil
}

// Approve moves a pending request to approved. For hierarchical requests it
// also materializes one approved ChildApproval per catalog track; a catalog
// failure does not block the approval (the request is approved with no
// children materialized).
func (u *Usecase) Approve(ctx context.Context, requestID string) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var dto *RequestDTO

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status != domainRequest.StatusPending {
			return domainRequest.NewInvalidTransition("approve", req.Status)
		}

		now := nowUTC()
		req.Status = domainRequest.StatusApproved
		req.ReviewedAt = &now
		req.StatusUpdatedAt = now
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		if req.Kind.Hierarchical() {
			tracks, err := u.catalog.ListTracks(ctx, req.ContentRef)
			if err != nil {
				// Approving the whole album must not depend on the catalog
				// being reachable; skip materialization.
				log.Printf("lifecycle: catalog fetch failed for request %s: %v", req.RequestID, err)
			} else {
				for _, tr := range tracks {
					c := &childapproval.ChildApproval{
						RequestID: req.ID,
						TrackRef:  tr.TrackRef,
						TrackName: tr.Name,
						Approved:  true,
					}
					if err := r.Children.Upsert(ctx, c); err != nil {
						return err
					}
				}
			}
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Deny moves a pending request to denied. Child approvals granted while the
// parent was pending are revoked.
func (u *Usecase) Deny(ctx context.Context, requestID, reason string) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var dto *RequestDTO

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status != domainRequest.StatusPending {
			return domainRequest.NewInvalidTransition("deny", req.Status)
		}

		now := nowUTC()
		req.Status = domainRequest.StatusDenied
		req.DenialReason = &reason
		req.StatusUpdatedAt = now
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		if req.Kind.Hierarchical() {
			if err := r.Children.RevokeAllForRequest(ctx, req.ID); err != nil {
				return err
			}
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApproveOverride approves a previously denied request despite the denial.
// Calling it on an already approved request is a no-op for the caller.
func (u *Usecase) ApproveOverride(ctx context.Context, requestID string) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var dto *RequestDTO

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status == domainRequest.StatusApproved {
			dto = toDTO(req)
			return nil
		}
		if req.Status != domainRequest.StatusDenied {
			return domainRequest.NewInvalidTransition("override", req.Status)
		}

		now := nowUTC()
		req.Status = domainRequest.StatusApproved
		req.ReviewedAt = &now
		req.DenialReason = nil
		req.StatusUpdatedAt = now
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UndoApproval reverts an approved request to pending and revokes any child
// approvals the approval materialized.
func (u *Usecase) UndoApproval(ctx context.Context, requestID string) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var dto *RequestDTO

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status != domainRequest.StatusApproved {
			return domainRequest.NewInvalidTransition("undo approval", req.Status)
		}

		req.Status = domainRequest.StatusPending
		req.ReviewedAt = nil
		req.StatusUpdatedAt = nowUTC()
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		if req.Kind.Hierarchical() {
			if err := r.Children.RevokeAllForRequest(ctx, req.ID); err != nil {
				return err
			}
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// UndoDenial reverts a denied request to pending and clears the denial reason.
func (u *Usecase) UndoDenial(ctx context.Context, requestID string) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var dto *RequestDTO

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *domainRequest.Request) error {
		if req.Status != domainRequest.StatusDenied {
			return domainRequest.NewInvalidTransition("undo denial", req.Status)
		}

		req.Status = domainRequest.StatusPending
		req.DenialReason = nil
		req.StatusUpdatedAt = nowUTC()
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		dto = toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(r *domainRequest.Request) *RequestDTO {
	return &RequestDTO{
		RequestID:    r.RequestID,
		KidID:        r.KidID,
		Kind:         string(r.Kind),
		ContentRef:   r.ContentRef,
		Status:       string(r.Status),
		RequestedAt:  r.RequestedAt,
		ReviewedAt:   r.ReviewedAt,
		ReviewerNote: r.ReviewerNote,
		DenialReason: r.DenialReason,
	}
}
