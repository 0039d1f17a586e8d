package dataset

import (
	"github.com/okian/stacksafe/internal/domain/catalog"
	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/internal/domain/predict"
)

// GeneratorOption applies a configuration option to the Generator.
type GeneratorOption func(*Generator)

// WithCatalog sets the product catalog items are sampled from.
func WithCatalog(c catalog.Catalog) GeneratorOption {
	return func(g *Generator) {
		g.catalog = c
	}
}

// WithContainer sets the container arrangements are generated for.
func WithContainer(c model.Container) GeneratorOption {
	return func(g *Generator) {
		if c.Validate() == nil {
			g.container = c
		}
	}
}

// WithLabeler sets the scorer used to label generated arrangements.
func WithLabeler(s predict.Scorer) GeneratorOption {
	return func(g *Generator) {
		if s != nil {
			g.labeler = s
		}
	}
}

// WithSeed sets the base seed. The i-th sample is derived from seed+i,
// so runs with the same seed produce identical datasets.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}
