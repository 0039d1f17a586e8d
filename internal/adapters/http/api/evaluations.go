// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/stacksafe/internal/domain/dedupe"
	"github.com/okian/stacksafe/internal/domain/model"
)

// EvaluationDependencies defines the interface for evaluation intake.
type EvaluationDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, e model.Evaluation) bool
	Container() model.Container
}

// EvaluationsHandler handles asynchronous evaluation requests.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// HandlePostEvaluation handles POST /evaluations requests.
func (h *EvaluationsHandler) HandlePostEvaluation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.EvaluationID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	c := h.deps.Container()
	if req.Container != nil {
		c = *req.Container
	}
	e := model.Evaluation{
		EvaluationID:  req.EvaluationID,
		ArrangementID: req.ArrangementID,
		Items:         req.Items,
		Container:     c,
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), e); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.EvaluationID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
