// Package partial resolves the aggregate state of a hierarchical (album)
// request from the approval flags of its tracks. It is the only path to the
// partially_approved status: individual child toggles never change the parent.
package partial

import (
	"context"
	"errors"
	"time"

	"kidsafe-backend/internal/domain/childapproval"
	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/domain/uow"

	"gorm.io/gorm"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

var ErrNoApprovedChildren = errors.New("complete review requires at least one approved track")

type ChildInput struct {
	TrackRef  string `json:"track_ref"`
	TrackName string `json:"track_name"`
}

type ChildDTO struct {
	TrackRef  string `json:"track_ref"`
	TrackName string `json:"track_name"`
	Approved  bool   `json:"approved"`
}

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// ApproveChild marks one track approved while the parent review is open.
func (u *Usecase) ApproveChild(ctx context.Context, parentID string, in ChildInput) error {
	return u.toggleChild(ctx, parentID, in, true)
}

// RevokeChild clears one track's approval flag.
func (u *Usecase) RevokeChild(ctx context.Context, parentID string, in ChildInput) error {
	return u.toggleChild(ctx, parentID, in, false)
}

func (u *Usecase) toggleChild(ctx context.Context, parentID string, in ChildInput, approved bool) error {
	if u.uow == nil {
		return domainRequest.ErrInvalidTransition
	}
	if in.TrackRef == "" {
		return errors.New("missing track ref")
	}

	return u.uow.WithinRequestTx(ctx, parentID, func(r uow.Repos, req *domainRequest.Request) error {
		if !req.Kind.Hierarchical() {
			return domainRequest.ErrNotHierarchical
		}
		// Tracks stay toggleable after a partial close-out; approved/denied
		// parents are settled wholesale and their children are not.
		if req.Status != domainRequest.StatusPending && req.Status != domainRequest.StatusPartiallyApproved {
			return domainRequest.NewInvalidTransition("toggle child", req.Status)
		}

		c, err := r.Children.GetByTrackRef(ctx, req.ID, in.TrackRef)
		switch {
		case err == nil:
			c.Approved = approved
			if in.TrackName != "" {
				c.TrackName = in.TrackName
			}
		case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, childapproval.ErrNotFound):
			c = &childapproval.ChildApproval{
				RequestID: req.ID,
				TrackRef:  in.TrackRef,
				TrackName: in.TrackName,
				Approved:  approved,
			}
		default:
			return err
		}
		return r.Children.Upsert(ctx, c)
	})
}

// CompleteReview closes out a pending album review with only some tracks
// approved. Terminal for the parent record; valid only from pending and only
// with at least one approved track.
func (u *Usecase) CompleteReview(ctx context.Context, parentID, note string) error {
	if u.uow == nil {
		return domainRequest.ErrInvalidTransition
	}

	return u.uow.WithinRequestTx(ctx, parentID, func(r uow.Repos, req *domainRequest.Request) error {
		if !req.Kind.Hierarchical() {
			return domainRequest.ErrNotHierarchical
		}
		if req.Status != domainRequest.StatusPending {
			return domainRequest.NewInvalidTransition("complete review", req.Status)
		}

		children, err := r.Children.ListByRequestID(ctx, req.ID)
		if err != nil {
			return err
		}
		approved := 0
		for _, c := range children {
			if c.Approved {
				approved++
			}
		}
		if approved == 0 {
			return ErrNoApprovedChildren
		}

		now := nowUTC()
		req.Status = domainRequest.StatusPartiallyApproved
		req.ReviewerNote = &note
		req.ReviewedAt = &now
		req.StatusUpdatedAt = now
		return r.Requests.Save(ctx, req)
	})
}

// ListChildren returns the track approval flags for a hierarchical request.
func (u *Usecase) ListChildren(ctx context.Context, parentID string) ([]ChildDTO, error) {
	if u.uow == nil {
		return nil, domainRequest.ErrInvalidTransition
	}
	var out []ChildDTO

	err := u.uow.WithinRequestTx(ctx, parentID, func(r uow.Repos, req *domainRequest.Request) error {
		if !req.Kind.Hierarchical() {
			return domainRequest.ErrNotHierarchical
		}
		children, err := r.Children.ListByRequestID(ctx, req.ID)
		if err != nil {
			return err
		}
		out = make([]ChildDTO, 0, len(children))
		for _, c := range children {
			out = append(out, ChildDTO{TrackRef: c.TrackRef, TrackName: c.TrackName, Approved: c.Approved})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
