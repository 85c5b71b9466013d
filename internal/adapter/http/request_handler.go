package http

import (
	"log"
	"net/http"
	"time"

	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/batch"
	"kidsafe-backend/internal/usecase/lifecycle"

	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	uc           *lifecycle.Usecase
	ledger       batch.Recorder
	singleWindow time.Duration
}

// NewRequestHandler: single-item transitions record an undo entry with the
// single-item window, which is configured independently of the batch one.
func NewRequestHandler(uc *lifecycle.Usecase, ledger batch.Recorder, singleWindow time.Duration) *RequestHandler {
	return &RequestHandler{uc: uc, ledger: ledger, singleWindow: singleWindow}
}

type submitRequestReq struct {
	KidID      string `json:"kid_id"       validate:"required,hex32"`
	Kind       string `json:"kind"         validate:"required,kind"`
	ContentRef string `json:"content_ref"  validate:"required"`
}

type denyRequestReq struct {
	Reason string `json:"reason"`
}

func (h *RequestHandler) Submit(c echo.Context) error {
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), lifecycle.SubmitInput(req))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) List(c echo.Context) error {
	status := domainRequest.Status(c.QueryParam("status"))
	if status == "" {
		status = domainRequest.StatusPending
	}
	dtos, err := h.uc.ListByStatus(c.Request().Context(), status, c.QueryParam("kid_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"requests": dtos})
}

func (h *RequestHandler) Approve(c echo.Context) error {
	rid := c.Param("request_id")
	dto, err := h.uc.Approve(c.Request().Context(), rid)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	h.recordSingle(c, domainRequest.ActionApprove, dto.Kind, rid)
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) Deny(c echo.Context) error {
	var req denyRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	rid := c.Param("request_id")
	dto, err := h.uc.Deny(c.Request().Context(), rid, req.Reason)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	h.recordSingle(c, domainRequest.ActionDeny, dto.Kind, rid)
	return c.JSON(http.StatusOK, dto)
}

// Override approves despite an earlier denial. Deliberately not undoable: the
// guardian already reversed course once.
func (h *RequestHandler) Override(c echo.Context) error {
	dto, err := h.uc.ApproveOverride(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) recordSingle(c echo.Context, action domainRequest.Action, kind, rid string) {
	if h.ledger == nil {
		return
	}
	err := h.ledger.Record(c.Request().Context(), action, domainRequest.Kind(kind), []string{rid}, h.singleWindow)
	if err != nil {
		log.Printf("http: failed to record undo entry for %s: %v", rid, err)
	}
}
