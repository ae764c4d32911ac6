package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevent/internal/domain"
)

// StatusFor maps a service error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDanglingReference):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrUpload):
		return http.StatusBadGateway, ErrCodeUploadFailed
	case errors.Is(err, domain.ErrConnection):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError writes err using the standard envelope. Server-side failures
// are logged and their message replaced with fallback.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	status, code := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		if status == http.StatusInternalServerError {
			message = fallback
		}
	}
	WriteJSONError(w, status, code, message)
}
