// Package feature turns an arrangement of items into the fixed-length
// numeric vector consumed by the stability regressor.
//
// The same extraction runs at training time (dataset generation) and at
// inference time (scoring); any divergence between the two silently
// corrupts the predictor, so this package is the single owner of the
// mapping. For a given arrangement and container the vector is a pure
// function of the input: no hidden state, no randomness.
package feature

import (
	"fmt"
	"slices"

	"github.com/okian/stacksafe/internal/domain/geometry"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/physics"
)

// VectorSize is the fixed feature vector length.
const VectorSize = 30

// Layout constants for the per-item slot block.
const (
	perItemOffset   = 6  // first per-item slot
	perItemFeatures = 4  // slots per item
	maxPerItemSlots = 6  // items with individual slots
	countSaturation = 10 // item count normalization ceiling
)

// Per-item normalization divisors, shared with the training pipeline.
const (
	weightDivisor   = 20
	volumeDivisor   = 1e5
	baseAreaDivisor = 1e4
)

// Extract maps items and container dimensions to the 30-slot feature
// vector. Every slot is clamped to [0,1]. Malformed items or containers
// are contract violations and fail fast; degenerate geometry is not.
//
// Slots:
//
//	0-2   normalized center of gravity (x, y, z)
//	3     average support ratio
//	4     total overhang over the container footprint perimeter
//	5     item count, saturating at 10
//	6-29  four slots per item for up to 6 items, sorted by y ascending:
//	      weight/20, volume/1e5, baseArea/1e4, centerY/height
func Extract(items []model.Item, c model.Container) ([]float32, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateItems(items); err != nil {
		return nil, err
	}

	features := make([]float32, VectorSize)

	// "No items" is a distinct, exactly reproduced sentinel: centered,
	// on the floor, perfectly supported.
	if len(items) == 0 {
		features[0] = 0.5
		features[1] = 0
		features[2] = 0.5
		features[3] = 1.0
		features[4] = 0
		features[5] = 0
		return features, nil
	}

	// Stable sort keeps the original relative order of y ties, which the
	// per-item slots depend on for reproducibility.
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b model.Item) int {
		switch {
		case a.Position.Y < b.Position.Y:
			return -1
		case a.Position.Y > b.Position.Y:
			return 1
		default:
			return 0
		}
	})

	cog := physics.CenterOfGravity(sorted, c)
	features[0] = clamp01(cog.X / c.Width)
	features[1] = clamp01(cog.Y / c.Height)
	features[2] = clamp01(cog.Z / c.Depth)

	features[3] = clamp01(physics.AverageSupportRatio(sorted))

	containerPerimeter := 2 * (c.Width + c.Depth)
	features[4] = clamp01(physics.TotalOverhang(sorted) / containerPerimeter)

	features[5] = clamp01(float64(len(items)) / countSaturation)

	for i := 0; i < maxPerItemSlots; i++ {
		base := perItemOffset + i*perItemFeatures
		if i >= len(sorted) {
			// Zero-filled slots for absent items.
			continue
		}
		it := sorted[i]
		features[base+0] = clamp01(it.Weight / weightDivisor)
		features[base+1] = clamp01(geometry.Volume(it) / volumeDivisor)
		features[base+2] = clamp01(geometry.BaseArea(it) / baseAreaDivisor)
		features[base+3] = clamp01(geometry.Center(it).Y / c.Height)
	}

	return features, nil
}

// Validate checks that a vector matches the fixed contract: exact length
// and every element inside [0,1]. Consumers feeding a regressor call this
// on vectors that crossed a runtime boundary.
func Validate(v []float32) error {
	if len(v) != VectorSize {
		return fmt.Errorf("%w: expected %d features, got %d", ErrVectorSize, VectorSize, len(v))
	}
	for i, f := range v {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: slot %d out of range: %v", ErrVectorRange, i, f)
		}
	}
	return nil
}

func clamp01(x float64) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return float32(x)
}
