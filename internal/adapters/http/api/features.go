// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stacksafe/internal/domain/model"
)

// FeaturesDependencies defines the interface for feature extraction.
type FeaturesDependencies interface {
	Features(ctx context.Context, items []model.Item, c model.Container) ([]float32, error)
	Container() model.Container
}

// FeaturesHandler handles feature extraction requests.
type FeaturesHandler struct {
	deps FeaturesDependencies
}

// NewFeaturesHandler creates a new features handler.
func NewFeaturesHandler(deps FeaturesDependencies) *FeaturesHandler {
	return &FeaturesHandler{deps: deps}
}

type featuresResponse struct {
	Features []float32 `json:"features"`
	Size     int       `json:"size"`
}

// HandlePostFeatures handles POST /features requests.
func (h *FeaturesHandler) HandlePostFeatures(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_features"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req arrangementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	features, err := h.deps.Features(r.Context(), req.Items, req.container(h.deps))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, featuresResponse{Features: features, Size: len(features)})
}
