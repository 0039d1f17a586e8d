// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
)

// ScoreDependencies defines the interface for synchronous scoring.
type ScoreDependencies interface {
	Assess(ctx context.Context, items []model.Item, c model.Container) (predict.Result, []float32, error)
	Container() model.Container
}

// ScoreHandler handles synchronous scoring requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// scoreResponse is the stability assessment plus the feature vector it
// was computed from.
type scoreResponse struct {
	predict.Result
	Features []float32 `json:"features"`
}

// HandlePostScore handles POST /score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req arrangementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, features, err := h.deps.Assess(r.Context(), req.Items, req.container(h.deps))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{Result: result, Features: features})
}
