package http

import (
	"net/http"

	"kidsafe-backend/internal/usecase/search"

	"github.com/labstack/echo/v4"
)

type SearchHandler struct{ uc *search.Usecase }

func NewSearchHandler(uc *search.Usecase) *SearchHandler { return &SearchHandler{uc: uc} }

type validateQueryReq struct {
	KidID string `json:"kid_id"  validate:"required,hex32"`
	Query string `json:"query"   validate:"required"`
}

type screenResultsReq struct {
	Items []search.ResultItem `json:"items"`
}

// ValidateQuery gates a kid's free-form search. A blocked query still returns
// 200: the verdict is the payload, not an error.
func (h *SearchHandler) ValidateQuery(c echo.Context) error {
	var req validateQueryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	verdict := h.uc.ValidateQuery(c.Request().Context(), req.KidID, req.Query)
	return c.JSON(http.StatusOK, verdict)
}

// ScreenResults filters a fetched result batch before it is rendered to a kid.
func (h *SearchHandler) ScreenResults(c echo.Context) error {
	var req screenResultsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": h.uc.ScreenResults(req.Items)})
}

func (h *SearchHandler) ListBlocked(c echo.Context) error {
	kidID := c.QueryParam("kid_id")
	if !reHex32.MatchString(kidID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid kid_id"})
	}
	entries, err := h.uc.ListBlocked(c.Request().Context(), kidID, c.QueryParam("unread") == "true")
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"entries": entries})
}

func (h *SearchHandler) MarkRead(c echo.Context) error {
	kidID := c.QueryParam("kid_id")
	if !reHex32.MatchString(kidID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid kid_id"})
	}
	if err := h.uc.MarkSearchesRead(c.Request().Context(), kidID); err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
