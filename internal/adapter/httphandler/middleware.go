package httphandler

import (
	"net/http"
	"strings"
)

// AllowJSON rejects request bodies that are not declared as JSON.
// Requests without a body pass through untouched.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType := r.Header.Get("Content-Type")
		if !strings.HasPrefix(mediaType, "application/json") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
