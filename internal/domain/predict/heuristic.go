package predict

import (
	"context"
	"fmt"

	"github.com/okian/stacksafe/internal/domain/geometry"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/physics"
)

// Heuristic penalty parameters. These also define the ground-truth labels
// the dataset generator emits, so changing them retrains the model.
const (
	minSupportRatio      = 0.70
	supportPenalty       = 0.6
	maxTopBottomWeight   = 1.5
	weightPenalty        = 0.3
	heuristicScoreSource = "heuristic"
)

// HeuristicScorer assigns a stability score from the physics metrics
// directly: a well-supported stack with no heavy items resting on light
// ones scores 1.0, and each violated rule subtracts a fixed penalty.
// It is deterministic and pure, which makes it suitable both as the
// dataset labeler and as a serving fallback when no trained model is
// configured.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a heuristic scorer.
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Score computes the penalty-based stability assessment.
func (s *HeuristicScorer) Score(ctx context.Context, items []model.Item, c model.Container) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("scoring cancelled: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	if err := model.ValidateItems(items); err != nil {
		return Result{}, err
	}

	score := 1.0

	if physics.AverageSupportRatio(items) < minSupportRatio {
		score -= supportPenalty
	}
	if hasTopHeavyPair(items) {
		score -= weightPenalty
	}

	return resultFrom(score, heuristicScoreSource), nil
}

// hasTopHeavyPair reports whether any supported item is substantially
// heavier than an item directly beneath it.
func hasTopHeavyPair(items []model.Item) bool {
	for _, below := range items {
		if below.Weight <= 0 {
			continue
		}
		for _, above := range items {
			if above.ID == below.ID || !geometry.IsBelow(below, above) {
				continue
			}
			if above.Weight/below.Weight > maxTopBottomWeight {
				return true
			}
		}
	}
	return false
}
