// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/stacksafe/internal/adapters/repository"
	"github.com/okian/stacksafe/internal/domain/dedupe"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
	"github.com/okian/stacksafe/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes an evaluation for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, e model.Evaluation) bool

	// Assess computes a stability assessment synchronously, returning
	// the feature vector the assessment was derived from.
	Assess(ctx context.Context, items []model.Item, c model.Container) (predict.Result, []float32, error)

	// Features extracts the raw feature vector for an arrangement.
	Features(ctx context.Context, items []model.Item, c model.Container) ([]float32, error)

	// Read operations expose ranking data.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, arrangementID string) (Entry, error)

	// Container returns the configured container used when a request
	// omits one.
	Container() model.Container
}

// Entry mirrors the read shape returned by ranking queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoreHandler       *ScoreHandler
	featuresHandler    *FeaturesHandler
	evaluationsHandler *EvaluationsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoreHandler:       NewScoreHandler(deps),
		featuresHandler:    NewFeaturesHandler(deps),
		evaluationsHandler: NewEvaluationsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/features", MetricsMiddleware(s.featuresHandler.HandlePostFeatures, "features"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandlePostEvaluation, "evaluations"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

// arrangementRequest is the shared body for synchronous scoring routes.
type arrangementRequest struct {
	Items     []model.Item     `json:"items"`
	Container *model.Container `json:"container,omitempty"`
}

// container resolves the effective container for a request.
func (a arrangementRequest) container(deps interface{ Container() model.Container }) model.Container {
	if a.Container != nil {
		return *a.Container
	}
	return deps.Container()
}

// evaluationRequest mirrors the OpenAPI schema for POST /evaluations.
type evaluationRequest struct {
	EvaluationID  string           `json:"evaluation_id"`
	ArrangementID string           `json:"arrangement_id"`
	Items         []model.Item     `json:"items"`
	Container     *model.Container `json:"container,omitempty"`
}

func (e evaluationRequest) validate() error {
	switch {
	case strings.TrimSpace(e.EvaluationID) == "":
		return errors.New("missing evaluation_id")
	case strings.TrimSpace(e.ArrangementID) == "":
		return errors.New("missing arrangement_id")
	}
	if e.Container != nil {
		if err := e.Container.Validate(); err != nil {
			return err
		}
	}
	return model.ValidateItems(e.Items)
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
