package http

import (
	"net/http"

	"kidsafe-backend/internal/usecase/partial"

	"github.com/labstack/echo/v4"
)

type ChildrenHandler struct{ uc *partial.Usecase }

func NewChildrenHandler(uc *partial.Usecase) *ChildrenHandler { return &ChildrenHandler{uc: uc} }

type toggleChildReq struct {
	TrackRef  string `json:"track_ref"  validate:"required"`
	TrackName string `json:"track_name"`
}

type completeReviewReq struct {
	Note string `json:"note"`
}

func (h *ChildrenHandler) List(c echo.Context) error {
	children, err := h.uc.ListChildren(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"children": children})
}

func (h *ChildrenHandler) Approve(c echo.Context) error {
	return h.toggle(c, true)
}

func (h *ChildrenHandler) Revoke(c echo.Context) error {
	return h.toggle(c, false)
}

func (h *ChildrenHandler) toggle(c echo.Context, approved bool) error {
	var req toggleChildReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := partial.ChildInput{TrackRef: req.TrackRef, TrackName: req.TrackName}
	var err error
	if approved {
		err = h.uc.ApproveChild(c.Request().Context(), c.Param("request_id"), in)
	} else {
		err = h.uc.RevokeChild(c.Request().Context(), c.Param("request_id"), in)
	}
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"track_ref": req.TrackRef, "approved": approved})
}

func (h *ChildrenHandler) CompleteReview(c echo.Context) error {
	var req completeReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.uc.CompleteReview(c.Request().Context(), c.Param("request_id"), req.Note); err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "partially_approved"})
}
