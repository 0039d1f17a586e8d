// Package predict defines the contract for turning an arrangement into a
// stability score, plus the two implementations: a trained feed-forward
// regressor loaded from an exported model artifact, and a physics
// heuristic used as the training labeler and as a fallback when no model
// is configured.
package predict

import (
	"context"
	"math"

	"github.com/okian/stacksafe/internal/domain/model"
)

// Score band thresholds, from the exported model contract.
const (
	lowRiskThreshold    = 0.8
	mediumRiskThreshold = 0.6
	safeThreshold       = 0.7
	maxScoreValue       = 100
)

// Result contains the computed stability assessment for an arrangement.
type Result struct {
	Score           float64 `json:"score"`            // 0-100
	NormalizedScore float64 `json:"normalized_score"` // 0-1
	RiskAssessment  string  `json:"risk_assessment"`  // "Low Risk" | "Medium Risk" | "High Risk"
	IsSafe          bool    `json:"is_safe"`
	Confidence      float64 `json:"confidence"`
	Source          string  `json:"source"` // scorer that produced the result
}

// Scorer computes a stability score for an arrangement of items.
type Scorer interface {
	// Score computes a stability assessment, honoring ctx for cancellation.
	Score(ctx context.Context, items []model.Item, c model.Container) (Result, error)
}

// VectorScorer is implemented by scorers that can assess a pre-extracted
// feature vector directly, so callers that already hold the vector do not
// extract it a second time.
type VectorScorer interface {
	ScoreVector(features []float32) (Result, error)
}

// resultFrom builds a Result from a normalized score in [0,1].
func resultFrom(normalized float64, source string) Result {
	s := math.Max(0, math.Min(1, normalized))
	risk := "High Risk"
	switch {
	case s > lowRiskThreshold:
		risk = "Low Risk"
	case s > mediumRiskThreshold:
		risk = "Medium Risk"
	}
	return Result{
		Score:           s * maxScoreValue,
		NormalizedScore: s,
		RiskAssessment:  risk,
		IsSafe:          s > safeThreshold,
		Confidence:      math.Abs(s-0.5) * 2,
		Source:          source,
	}
}
