package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mediashelf-api/internal/recs"
	"mediashelf-api/pkg/logging"
)

const (
	recsNotConfiguredMsg = "Recommendations are not configured. Please add an OpenAI API key to the environment."
	recsErrorMsg         = "I am having trouble getting a recommendation for you right now."
)

// Recommender is implemented by the recs client.
type Recommender interface {
	Recommend(ctx context.Context, movies []recs.RatedMovie) (string, error)
}

// RecsHandler serves POST /api/recs. The recommendation call is stateless
// and never cached; failures degrade to a fixed apology message.
type RecsHandler struct {
	// client is nil when no credential is configured.
	client Recommender
}

func NewRecsHandler(client Recommender) *RecsHandler {
	return &RecsHandler{client: client}
}

type recsRequest struct {
	Movies []recs.RatedMovie `json:"movies"`
}

func (h *RecsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)

	var req recsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Movies) == 0 {
		writeError(w, http.StatusBadRequest, "at least one rated movie is required")
		return
	}

	if h.client == nil {
		writeJSON(w, http.StatusOK, map[string]string{"recommendation": recsNotConfiguredMsg})
		return
	}

	recommendation, err := h.client.Recommend(ctx, req.Movies)
	if err != nil {
		logger.Warn("recommendation failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]string{"recommendation": recsErrorMsg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"recommendation": recommendation})
}
