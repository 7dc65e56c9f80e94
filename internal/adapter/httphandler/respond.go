package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

// writeDomainError maps the error taxonomy to status codes: Not-Found and
// Validation are client errors with the given detail, everything else is
// surfaced as 503 with the underlying message.
func writeDomainError(
	w http.ResponseWriter, err error, notFoundDetail string,
) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, notFoundDetail, http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	}
}
