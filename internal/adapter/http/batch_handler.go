package http

import (
	"net/http"

	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/batch"
	"kidsafe-backend/internal/usecase/undo"

	"github.com/labstack/echo/v4"
)

type BatchHandler struct {
	coord  *batch.Coordinator
	ledger *undo.Ledger
}

func NewBatchHandler(coord *batch.Coordinator, ledger *undo.Ledger) *BatchHandler {
	return &BatchHandler{coord: coord, ledger: ledger}
}

type batchApplyReq struct {
	Action     string   `json:"action"       validate:"required,action"`
	Kind       string   `json:"kind"         validate:"required,kind"`
	RequestIDs []string `json:"request_ids"  validate:"required,min=1,dive,hex32"`
	Reason     string   `json:"reason"`
}

func (h *BatchHandler) Apply(c echo.Context) error {
	var req batchApplyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.coord.Apply(
		c.Request().Context(),
		domainRequest.Action(req.Action),
		domainRequest.Kind(req.Kind),
		req.RequestIDs,
		req.Reason,
	)
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	// Partial failure still reports the aggregate; the UI shows
	// "N approved, M failed" off these counts.
	return c.JSON(http.StatusOK, res)
}

func (h *BatchHandler) Undo(c echo.Context) error {
	res, err := h.ledger.Undo(c.Request().Context())
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
