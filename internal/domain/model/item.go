// Package model contains domain models passed between layers.
package model

import "fmt"

// Vec3 is a point in container-relative coordinates.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dimensions holds the axis-aligned extents of an item.
// Width maps to the x axis, Height to y, Depth to z.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Item is one placed box inside a container. Position is the minimum
// corner. Items are immutable inputs for the duration of one evaluation;
// the caller retains ownership.
type Item struct {
	ID         string     `json:"id"`
	Position   Vec3       `json:"position"`
	Dimensions Dimensions `json:"dimensions"`
	// Weight is the item mass. Zero-weight items are excluded from the
	// center-of-gravity contribution but still participate in support
	// and overhang checks.
	Weight float64 `json:"weight"`
}

// Validate checks the item contract. A violation is reported with the
// offending field; degenerate but well-formed geometry is not an error.
func (it Item) Validate() error {
	switch {
	case it.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	case it.Dimensions.Width <= 0:
		return fmt.Errorf("%w: item %q: width must be > 0", ErrInvalidItem, it.ID)
	case it.Dimensions.Height <= 0:
		return fmt.Errorf("%w: item %q: height must be > 0", ErrInvalidItem, it.ID)
	case it.Dimensions.Depth <= 0:
		return fmt.Errorf("%w: item %q: depth must be > 0", ErrInvalidItem, it.ID)
	case it.Position.X < 0 || it.Position.Y < 0 || it.Position.Z < 0:
		return fmt.Errorf("%w: item %q: position must be >= 0 on every axis", ErrInvalidItem, it.ID)
	case it.Weight < 0:
		return fmt.Errorf("%w: item %q: weight must be >= 0", ErrInvalidItem, it.ID)
	}
	return nil
}

// ValidateItems validates every item in a list and rejects duplicate ids.
func ValidateItems(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidItem, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// Container is the fixed bounding box items are placed in. It is used
// only to normalize features into [0,1].
type Container struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Default container dimensions, shared by the trainer and the scorer.
const (
	DefaultContainerWidth  = 100
	DefaultContainerHeight = 100
	DefaultContainerDepth  = 100
)

// DefaultContainer returns the process-wide default 100x100x100 container.
func DefaultContainer() Container {
	return Container{
		Width:  DefaultContainerWidth,
		Height: DefaultContainerHeight,
		Depth:  DefaultContainerDepth,
	}
}

// Validate checks that all container dimensions are positive.
func (c Container) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		return fmt.Errorf("%w: container dimensions must be > 0", ErrInvalidContainer)
	}
	return nil
}

// Evaluation is one asynchronous scoring request flowing through the
// queue: an arrangement of items plus the container they sit in.
type Evaluation struct {
	EvaluationID  string    // unique id for idempotency
	ArrangementID string    // subject arrangement identifier
	Items         []Item    // placed items
	Container     Container // normalization bounds
}

// Sample is one labeled training example: an arrangement and its
// ground-truth stability score in [0,100].
type Sample struct {
	Items          []Item  `json:"items"`
	StabilityScore float64 `json:"stability_score"`
}
