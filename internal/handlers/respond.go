package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mediashelf-api/internal/media"
	"mediashelf-api/pkg/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCatalogError maps domain errors to transport responses. NotFound is
// the only error detail exposed; unavailable and misconfigured upstreams
// both collapse to a generic 503 so provider details never leak.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.L(r.Context())

	switch {
	case errors.Is(err, media.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, media.ErrCredentialMissing):
		logger.Error("upstream credential missing", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		logger.Error("catalog fetch failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	}
}
