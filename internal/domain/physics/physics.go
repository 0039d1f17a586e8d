// Package physics computes the physical stability metrics of an
// arrangement: weighted center of gravity, average support ratio and
// total overhang. All functions are pure and tolerate empty input by
// returning their documented neutral values.
package physics

import (
	"math"

	"github.com/okian/stacksafe/internal/domain/geometry"
	"github.com/okian/stacksafe/internal/domain/model"
)

// CenterOfGravity returns the weighted average of item centers, weighted
// by item mass, over items with positive weight. When no item carries
// weight the result defaults to the container's horizontal center at
// floor height.
func CenterOfGravity(items []model.Item, c model.Container) model.Vec3 {
	var totalWeight float64
	for _, it := range items {
		if it.Weight > 0 {
			totalWeight += it.Weight
		}
	}
	if totalWeight == 0 {
		return model.Vec3{X: c.Width / 2, Y: 0, Z: c.Depth / 2}
	}

	var cog model.Vec3
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		center := geometry.Center(it)
		cog.X += center.X * it.Weight
		cog.Y += center.Y * it.Weight
		cog.Z += center.Z * it.Weight
	}
	cog.X /= totalWeight
	cog.Y /= totalWeight
	cog.Z /= totalWeight
	return cog
}

// SupportedArea sums the overlap area between it and every other item
// directly beneath it. Self-comparison is excluded by id.
func SupportedArea(items []model.Item, it model.Item) float64 {
	var supported float64
	for _, p := range items {
		if p.ID == it.ID {
			continue
		}
		if geometry.IsBelow(p, it) {
			supported += geometry.OverlapArea(p, it)
		}
	}
	return supported
}

// AverageSupportRatio returns the mean, over all items not resting on the
// floor, of min(1, supportedArea/baseArea). Items with zero base area
// contribute a ratio of 0. With no non-floor items the mean defaults to
// 1.0: everything on the floor is vacuously fully supported.
func AverageSupportRatio(items []model.Item) float64 {
	var nonFloor int
	var totalRatio float64

	for _, it := range items {
		if it.Position.Y <= 0 {
			continue
		}
		nonFloor++

		baseArea := geometry.BaseArea(it)
		if baseArea <= 0 {
			continue // ratio 0
		}
		ratio := math.Min(1, SupportedArea(items, it)/baseArea)
		totalRatio += ratio
	}

	if nonFloor == 0 {
		return 1.0
	}
	return totalRatio / float64(nonFloor)
}

// TotalOverhang sums, over all non-floor items, the footprint area not
// backed by support below, normalized by the item's footprint perimeter.
// Items with zero perimeter are skipped; with no non-floor items the
// total is 0.
func TotalOverhang(items []model.Item) float64 {
	var total float64

	for _, it := range items {
		if it.Position.Y <= 0 {
			continue
		}

		perimeter := geometry.Perimeter(it)
		if perimeter <= 0 {
			continue
		}

		baseArea := geometry.BaseArea(it)
		supported := math.Min(SupportedArea(items, it), baseArea)
		unsupported := math.Max(0, baseArea-supported)
		total += unsupported / perimeter
	}

	return total
}
