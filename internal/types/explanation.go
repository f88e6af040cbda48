// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Match tiers selected by final score
const (
	TierExcellent = "excellent"
	TierStrong    = "strong"
	TierGood      = "good"
	TierFair      = "fair"
	TierWeak      = "weak"
)

// Gap severities, most to least severe
const (
	SeverityCritical  = "critical"
	SeverityImportant = "important"
	SeverityMinor     = "minor"
)

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Explanation is the human-readable account of one MatchResult
type Explanation struct {
	Narrative       string          `json:"narrative"`
	Tier            string          `json:"tier"`
	FinalScore      float64         `json:"final_score"`
	RankedFactors   []RankedFactor  `json:"ranked_factors"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	KeyMatches      []KeyMatch      `json:"key_matches"`
	KeyGaps         []KeyGap        `json:"key_gaps"`
	Recommendations Recommendations `json:"recommendations"`
	Risk            RiskAssessment  `json:"risk"`
}

// RankedFactor is one factor's weighted contribution to the final score
type RankedFactor struct {
	Factor       string  `json:"factor"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Pct          float64 `json:"pct"` // share of the final score, 0-100
}

// KeyMatch is a notable point of agreement between candidate and job
type KeyMatch struct {
	Kind   string `json:"kind"` // required_skill, preferred_skill, level, degree, field
	Item   string `json:"item"`
	Detail string `json:"detail,omitempty"`
}

// KeyGap is a notable shortfall of the candidate against the job
type KeyGap struct {
	Kind     string `json:"kind"` // required_skill, preferred_skill, experience, level, education
	Item     string `json:"item"`
	Severity string `json:"severity"`
	Detail   string `json:"detail,omitempty"`
}

// Recommendations are suggestions for both sides of a match
type Recommendations struct {
	Employer  []string `json:"employer"`
	Candidate []string `json:"candidate"`
	Decision  string   `json:"decision"` // advance, consider, hold, decline
}

// RiskAssessment buckets hiring risks into low/medium/high
type RiskAssessment struct {
	RetentionRisk         string   `json:"retention_risk"`
	OverqualificationRisk string   `json:"overqualification_risk"`
	SkillGapRisk          string   `json:"skill_gap_risk"`
	Factors               []string `json:"factors"`
}

// SeverityRank orders severities for sorting; lower is more severe
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityImportant:
		return 1
	case SeverityMinor:
		return 2
	default:
		return 3
	}
}
