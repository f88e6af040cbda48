// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QualityReport grades a resume independently of any job
type QualityReport struct {
	Score     float64            `json:"score"`
	Grade     string             `json:"grade"`
	Breakdown map[string]float64 `json:"breakdown"`
	Bonuses   map[string]float64 `json:"bonuses"`
	Penalties map[string]float64 `json:"penalties"`
	Feedback  []string           `json:"feedback,omitempty"`
}

// BaseTotal returns the sum of the base categories
func (q *QualityReport) BaseTotal() float64 {
	return sumValues(q.Breakdown)
}

// BonusTotal returns the sum of all bonuses
func (q *QualityReport) BonusTotal() float64 {
	return sumValues(q.Bonuses)
}

// PenaltyTotal returns the sum of all penalties
func (q *QualityReport) PenaltyTotal() float64 {
	return sumValues(q.Penalties)
}

func sumValues(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
