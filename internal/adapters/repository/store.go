// Package repository defines the stability ranking store interface and errors.
package repository

import "context"

// Entry represents one ranked arrangement.
type Entry struct {
	Rank          int
	ArrangementID string
	Score         float64
	EvaluationID  string
	ItemCount     int
	SupportRatio  float64
}

// Store provides read/write access to the stability ranking state.
type Store interface {
	// UpdateBest sets a new best stability score for an arrangement if
	// higher than the existing one. Returns true if the store updated.
	UpdateBest(ctx context.Context, arrangementID string, score float64) (bool, error)
	// UpdateBestWithMeta sets a new best score and stores associated
	// evaluation metadata when improved.
	UpdateBestWithMeta(ctx context.Context, arrangementID string, score float64, evaluationID string, itemCount int, supportRatio float64) (bool, error)

	// Rank returns the current rank and score for an arrangement.
	// Returns ErrNotFound if the arrangement is unknown.
	Rank(ctx context.Context, arrangementID string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of arrangements tracked.
	Count(ctx context.Context) int
}
