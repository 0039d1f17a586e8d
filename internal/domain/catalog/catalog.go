// Package catalog holds the static product configuration the dataset
// generator samples from: category value ranges and product names.
// A Catalog is constructed once and passed explicitly; there is no
// ambient global state.
package catalog

import "math/rand"

// Code is the numeric category representation the model learns.
type Code int

// Category codes.
const (
	CodeCommon  Code = 0
	CodeFragile Code = 1
	CodeHeavy   Code = 2
)

// Category groups products sharing a realistic weight range.
type Category struct {
	Name      string
	Code      Code
	Products  []string
	MinWeight float64
	MaxWeight float64
}

// Product is one sampled catalog entry with a concrete weight.
type Product struct {
	Name     string
	Category string
	Code     Code
	Weight   float64
}

// Catalog is an immutable set of categories plus the dimension range
// items are drawn from.
type Catalog struct {
	categories []Category
	minDim     float64
	maxDim     float64
}

// Default dimension sampling range.
const (
	defaultMinDim = 10
	defaultMaxDim = 60
)

// Default returns the built-in product catalog: heavy industrial loads,
// fragile goods and common household items.
func Default() Catalog {
	return New([]Category{
		{
			Name: "Heavy Load", Code: CodeHeavy,
			Products: []string{
				"Industrial Motor", "Steel Beam", "Car Engine", "Gym Weights",
				"Concrete Block", "Generator", "Safe Box", "Anvil",
			},
			MinWeight: 30, MaxWeight: 80,
		},
		{
			Name: "Fragile", Code: CodeFragile,
			Products: []string{
				"Glass Vase", "Ceramic Plates", "Monitor", "Mirror",
				"Laboratory Beaker", "Antique Lamp", "Wine Bottles", "TV Screen",
			},
			MinWeight: 1, MaxWeight: 15,
		},
		{
			Name: "Common", Code: CodeCommon,
			Products: []string{
				"Books", "Shoes", "Plastic Toys", "Canned Food",
				"Clothes", "Tools", "Paper Ream", "Cushions",
			},
			MinWeight: 2, MaxWeight: 30,
		},
	})
}

// New builds a catalog from explicit categories with the default
// dimension range.
func New(categories []Category) Catalog {
	cp := make([]Category, len(categories))
	copy(cp, categories)
	return Catalog{categories: cp, minDim: defaultMinDim, maxDim: defaultMaxDim}
}

// Categories returns a copy of the configured categories.
func (c Catalog) Categories() []Category {
	cp := make([]Category, len(c.categories))
	copy(cp, c.categories)
	return cp
}

// Pick samples a random product with a weight drawn uniformly from its
// category range.
func (c Catalog) Pick(rng *rand.Rand) Product {
	cat := c.categories[rng.Intn(len(c.categories))]
	name := cat.Products[rng.Intn(len(cat.Products))]
	return Product{
		Name:     name,
		Category: cat.Name,
		Code:     cat.Code,
		Weight:   cat.MinWeight + rng.Float64()*(cat.MaxWeight-cat.MinWeight),
	}
}

// Dimension samples one item extent from the configured range.
func (c Catalog) Dimension(rng *rand.Rand) float64 {
	return c.minDim + rng.Float64()*(c.maxDim-c.minDim)
}
