package http

import (
	"errors"
	"net/http"
	"strings"

	domainRequest "kidsafe-backend/internal/domain/request"
	"kidsafe-backend/internal/usecase/batch"
	"kidsafe-backend/internal/usecase/partial"
	"kidsafe-backend/internal/usecase/undo"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// errStatus maps the engine's error taxonomy onto HTTP codes. Anything
// outside the taxonomy is a store failure.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domainRequest.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainRequest.ErrInvalidTransition),
		errors.Is(err, domainRequest.ErrDuplicatePending),
		errors.Is(err, domainRequest.ErrNotHierarchical),
		errors.Is(err, partial.ErrNoApprovedChildren):
		return http.StatusConflict
	case errors.Is(err, undo.ErrUndoExpired):
		return http.StatusGone
	case errors.Is(err, batch.ErrEmptyBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
