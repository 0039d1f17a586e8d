// Package types contains common types used across the application
package types

// Entry represents one ranked arrangement in the stability leaderboard.
type Entry struct {
	Rank          int     `json:"rank"`
	ArrangementID string  `json:"arrangement_id"`
	Score         float64 `json:"score"`
	ItemCount     int     `json:"item_count,omitempty"`
	SupportRatio  float64 `json:"support_ratio,omitempty"`
}
