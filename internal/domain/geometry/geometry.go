// Package geometry provides axis-aligned bounding-box primitives for
// placed items: center computation, planar overlap area and the
// vertical-adjacency test used for support detection.
package geometry

import (
	"math"

	"github.com/okian/stacksafe/internal/domain/model"
)

// SupportEpsilon is the vertical gap tolerance, in the same length units
// as item positions, under which two items count as touching. The trainer
// and the scorer must agree on this value bit for bit, since it gates the
// support and overhang classification.
const SupportEpsilon = 0.001

// Center returns the geometric center of an item.
func Center(it model.Item) model.Vec3 {
	return model.Vec3{
		X: it.Position.X + it.Dimensions.Width/2,
		Y: it.Position.Y + it.Dimensions.Height/2,
		Z: it.Position.Z + it.Dimensions.Depth/2,
	}
}

// BaseArea returns the footprint area of an item in the x-z plane.
func BaseArea(it model.Item) float64 {
	return it.Dimensions.Width * it.Dimensions.Depth
}

// Volume returns the item volume.
func Volume(it model.Item) float64 {
	return it.Dimensions.Width * it.Dimensions.Height * it.Dimensions.Depth
}

// Perimeter returns the footprint perimeter of an item in the x-z plane.
func Perimeter(it model.Item) float64 {
	return 2 * (it.Dimensions.Width + it.Dimensions.Depth)
}

// OverlapArea returns the area of the intersection of two items'
// projections onto the x-z plane. This is deliberately not a volumetric
// overlap: vertical extent is ignored because overlap is only ever
// evaluated between vertically adjacent pairs.
func OverlapArea(a, b model.Item) float64 {
	overlapWidth := math.Min(a.Position.X+a.Dimensions.Width, b.Position.X+b.Dimensions.Width) -
		math.Max(a.Position.X, b.Position.X)
	overlapDepth := math.Min(a.Position.Z+a.Dimensions.Depth, b.Position.Z+b.Dimensions.Depth) -
		math.Max(a.Position.Z, b.Position.Z)

	if overlapWidth > 0 && overlapDepth > 0 {
		return overlapWidth * overlapDepth
	}
	return 0
}

// IsBelow reports whether a directly supports b: a's top face is within
// SupportEpsilon of b's bottom face and their footprints overlap with
// strictly positive area. The relation is neither symmetric nor
// transitive.
func IsBelow(a, b model.Item) bool {
	aTop := a.Position.Y + a.Dimensions.Height
	bBottom := b.Position.Y

	verticallyAdjacent := math.Abs(aTop-bBottom) < SupportEpsilon
	return verticallyAdjacent && OverlapArea(a, b) > 0
}
