package predict

import (
	"context"
	"fmt"

	"github.com/okian/stacksafe/internal/domain/feature"
	"github.com/okian/stacksafe/internal/domain/model"
)

// MLPScorer scores arrangements with a trained feed-forward regressor:
// standardized input, ReLU hidden layers, linear single-unit output
// clamped to [0,1]. The scorer is immutable after construction and safe
// for concurrent use.
type MLPScorer struct {
	mf *ModelFile
}

// NewMLPScorer builds a scorer from a validated model artifact.
func NewMLPScorer(mf *ModelFile) (*MLPScorer, error) {
	if mf == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return &MLPScorer{mf: mf}, nil
}

// Score extracts the feature vector for the arrangement and runs the
// forward pass.
func (s *MLPScorer) Score(ctx context.Context, items []model.Item, c model.Container) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("scoring cancelled: %w", err)
	}
	features, err := feature.Extract(items, c)
	if err != nil {
		return Result{}, err
	}
	return s.ScoreVector(features)
}

// ScoreVector runs the forward pass on an already-extracted feature
// vector. A wrong-length vector is a validation error, never silently
// padded or truncated.
func (s *MLPScorer) ScoreVector(features []float32) (Result, error) {
	if len(features) != s.mf.NFeatures {
		return Result{}, fmt.Errorf("%w: expected %d features, got %d",
			ErrFeatureCount, s.mf.NFeatures, len(features))
	}

	// Standardize.
	current := make([]float64, len(features))
	for i, f := range features {
		current[i] = (float64(f) - s.mf.ScalerMean[i]) / s.mf.ScalerScale[i]
	}

	// Hidden layers with ReLU, output layer linear.
	last := len(s.mf.Weights) - 1
	for l, w := range s.mf.Weights {
		units := len(s.mf.Biases[l])
		next := make([]float64, units)
		for j := 0; j < units; j++ {
			sum := s.mf.Biases[l][j]
			for i, x := range current {
				sum += x * w[i][j]
			}
			if l < last && sum < 0 {
				sum = 0
			}
			next[j] = sum
		}
		current = next
	}

	return resultFrom(current[0], "mlp"), nil
}
