// Package dataset generates labeled stacking arrangements for training
// the stability regressor. Arrangements are built bottom-up from the
// product catalog and labeled with the physics heuristic, so the exported
// data matches what the scorer computes at serve time.
package dataset

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/okian/stacksafe/internal/domain/catalog"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
)

// Generation bounds.
const (
	minStackItems = 1
	maxStackItems = 6
	// maxOffsetFraction bounds how far an item may slide off its
	// supporter, as a fraction of the supporter's footprint.
	maxOffsetFraction = 0.6
)

// Generator produces labeled samples deterministically from a base seed.
type Generator struct {
	catalog   catalog.Catalog
	container model.Container
	labeler   predict.Scorer
	seed      int64
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		catalog:   catalog.Default(),
		container: model.DefaultContainer(),
		labeler:   predict.NewHeuristicScorer(),
		seed:      1,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Container returns the container samples are generated for.
func (g *Generator) Container() model.Container {
	return g.container
}

// Sample generates the i-th labeled sample. The same (seed, i) pair
// always yields the same sample, independent of generation order.
func (g *Generator) Sample(ctx context.Context, i int) (model.Sample, error) {
	rng := rand.New(rand.NewSource(sampleSeed(g.seed, i)))

	items := g.stack(rng)

	result, err := g.labeler.Score(ctx, items, g.container)
	if err != nil {
		return model.Sample{}, fmt.Errorf("labeling sample %d: %w", i, err)
	}

	return model.Sample{
		Items:          items,
		StabilityScore: result.Score,
	}, nil
}

// stack builds a random tower of catalog items inside the container.
// The first item sits on the floor; each following item is placed on
// top of the previous one with a random lateral offset, so support
// ratios vary from full support to severe overhang.
func (g *Generator) stack(rng *rand.Rand) []model.Item {
	n := minStackItems + rng.Intn(maxStackItems-minStackItems+1)
	items := make([]model.Item, 0, n)

	var below model.Item
	for i := 0; i < n; i++ {
		p := g.catalog.Pick(rng)
		dims := model.Dimensions{
			Width:  g.catalog.Dimension(rng),
			Height: g.catalog.Dimension(rng),
			Depth:  g.catalog.Dimension(rng),
		}

		var pos model.Vec3
		if i == 0 {
			pos = model.Vec3{
				X: rng.Float64() * maxf(0, g.container.Width-dims.Width),
				Y: 0,
				Z: rng.Float64() * maxf(0, g.container.Depth-dims.Depth),
			}
		} else {
			// Slide off the supporter by a random offset in each
			// horizontal direction, then clamp into the container.
			offX := (rng.Float64()*2 - 1) * maxOffsetFraction * below.Dimensions.Width
			offZ := (rng.Float64()*2 - 1) * maxOffsetFraction * below.Dimensions.Depth
			pos = model.Vec3{
				X: clamp(below.Position.X+offX, 0, maxf(0, g.container.Width-dims.Width)),
				Y: below.Position.Y + below.Dimensions.Height,
				Z: clamp(below.Position.Z+offZ, 0, maxf(0, g.container.Depth-dims.Depth)),
			}
		}

		it := model.Item{
			ID:         fmt.Sprintf("item-%d", i+1),
			Position:   pos,
			Dimensions: dims,
			Weight:     p.Weight,
		}
		items = append(items, it)
		below = it
	}

	return items
}

// sampleSeed mixes the base seed with the sample index (splitmix64
// finalizer) so neighboring indices, and neighboring base seeds, get
// independent streams instead of shifted copies of the same one.
func sampleSeed(seed int64, i int) int64 {
	z := uint64(seed) + uint64(i)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
