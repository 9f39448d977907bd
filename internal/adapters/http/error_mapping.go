package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/risklens/risklens/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrValidation):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrSubscriptionInactive):
		return http.StatusPaymentRequired
	case domain.IsKind(err, domain.ErrJurisdiction):
		return http.StatusForbidden
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrRateLimited), domain.IsKind(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders policy rejections with their caller-facing message
// and keeps internal failures opaque.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status < http.StatusInternalServerError {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	slog.Error("request_failed",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	message := "internal server error"
	if status == http.StatusServiceUnavailable {
		message = "service temporarily unavailable"
	}
	writeJSON(w, status, map[string]string{"error": message})
}
