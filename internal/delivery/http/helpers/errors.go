package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"efgportal/internal/domain"
)

// WriteServiceError maps a service error onto the response envelope. Unclassified errors are
// logged and returned as 500 without leaking their text.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSONValidationError(w, verr)
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotOwner):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
	case errors.Is(err, domain.ErrPreconditionFailed):
		WriteJSONError(w, http.StatusConflict, ErrCodePreconditionFailed, err.Error())
	case errors.Is(err, domain.ErrTransport):
		logger.WarnContext(r.Context(), "storage unavailable", "path", r.URL.Path, "method", r.Method, "err", err)
		w.Header().Set("Retry-After", "1")
		WriteJSONError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service temporarily unavailable, try again")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
