// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Factor names used in scores and explanations
const (
	FactorSemantic   = "semantic"
	FactorSkills     = "skills"
	FactorExperience = "experience"
	FactorEducation  = "education"
)

// Factors lists every scoring factor in a stable order
var Factors = []string{FactorSemantic, FactorSkills, FactorExperience, FactorEducation}

// FactorScores holds the per-factor sub-scores, each in [0,100]
type FactorScores struct {
	Semantic   float64 `json:"semantic"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// Get returns the sub-score for a factor name
func (s FactorScores) Get(factor string) float64 {
	switch factor {
	case FactorSemantic:
		return s.Semantic
	case FactorSkills:
		return s.Skills
	case FactorExperience:
		return s.Experience
	case FactorEducation:
		return s.Education
	default:
		return 0
	}
}

// Get returns the weight for a factor name
func (w Weights) Get(factor string) float64 {
	switch factor {
	case FactorSemantic:
		return w.Semantic
	case FactorSkills:
		return w.Skills
	case FactorExperience:
		return w.Experience
	case FactorEducation:
		return w.Education
	default:
		return 0
	}
}

// MatchResult is the scored comparison of one candidate against one job.
// FinalScore equals the weighted sum of Scores using Weights, with no further normalization.
type MatchResult struct {
	ID          string       `json:"id,omitempty"`
	CandidateID string       `json:"candidate_id,omitempty"`
	JobID       string       `json:"job_id,omitempty"`
	FinalScore  float64      `json:"final_score"`
	Scores      FactorScores `json:"scores"`
	Weights     Weights      `json:"weights"`
	Details     MatchDetails `json:"details"`
}

// MatchDetails carries per-factor diagnostics
type MatchDetails struct {
	Semantic   SemanticDetails   `json:"semantic"`
	Skills     SkillDetails      `json:"skills"`
	Experience ExperienceDetails `json:"experience"`
	Education  EducationDetails  `json:"education"`
}

// SemanticDetails describes how the semantic score was obtained
type SemanticDetails struct {
	Provider string `json:"provider"`
	Fallback bool   `json:"fallback,omitempty"`
}

// SkillDetails lists matched and missing skills
type SkillDetails struct {
	MatchedRequired   []string `json:"matched_required"`
	MissingRequired   []string `json:"missing_required"`
	MatchedPreferred  []string `json:"matched_preferred"`
	MissingPreferred  []string `json:"missing_preferred"`
	MissingCritical   []string `json:"missing_critical,omitempty"` // canonical names, a subset of MissingRequired
	RequiredCoverage  float64  `json:"required_coverage"`
	PreferredCoverage float64  `json:"preferred_coverage"`
	PreferredBonus    float64  `json:"preferred_bonus"`
}

// ExperienceDetails compares candidate and required experience
type ExperienceDetails struct {
	CandidateYears float64 `json:"candidate_years"`
	RequiredYears  float64 `json:"required_years"`
	YearsGap       float64 `json:"years_gap"` // positive when the candidate falls short
	YearsScore     float64 `json:"years_score"`
	CandidateLevel string  `json:"candidate_level,omitempty"`
	RequiredLevel  string  `json:"required_level,omitempty"`
	LevelDistance  int     `json:"level_distance"`
	LevelScore     float64 `json:"level_score"`
}

// EducationDetails compares candidate and required education
type EducationDetails struct {
	CandidateDegree string  `json:"candidate_degree,omitempty"`
	RequiredDegree  string  `json:"required_degree,omitempty"`
	DegreeMet       bool    `json:"degree_met"`
	DegreeScore     float64 `json:"degree_score"`
	CandidateField  string  `json:"candidate_field,omitempty"`
	RequiredField   string  `json:"required_field,omitempty"`
	FieldMatch      string  `json:"field_match"` // exact, related, unrelated, unspecified
	FieldScore      float64 `json:"field_score"`
}

// WeightedSum returns Σ weight × score over every factor
func WeightedSum(scores FactorScores, weights Weights) float64 {
	return weights.Semantic*scores.Semantic +
		weights.Skills*scores.Skills +
		weights.Experience*scores.Experience +
		weights.Education*scores.Education
}
