package dataset

import "math"

// Stats accumulates summary statistics over generated labels.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`

	// Risk band counts over the 0-100 label scale.
	LowRisk    int `json:"low_risk"`
	MediumRisk int `json:"medium_risk"`
	HighRisk   int `json:"high_risk"`

	sum float64
}

// Risk band thresholds on the 0-100 label scale.
const (
	lowRiskLabel    = 80
	mediumRiskLabel = 60
)

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Add records one label.
func (s *Stats) Add(score float64) {
	s.Count++
	s.sum += score
	s.Mean = s.sum / float64(s.Count)
	if score < s.Min {
		s.Min = score
	}
	if score > s.Max {
		s.Max = score
	}

	switch {
	case score > lowRiskLabel:
		s.LowRisk++
	case score > mediumRiskLabel:
		s.MediumRisk++
	default:
		s.HighRisk++
	}
}
