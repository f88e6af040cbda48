// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Seniority levels, ordered from least to most senior
const (
	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelExpert = "expert"
	LevelLead   = "lead"
)

// Levels lists the seniority levels in ascending order
var Levels = []string{LevelEntry, LevelMid, LevelSenior, LevelExpert, LevelLead}

// LevelIndex returns the position of a level in Levels, or -1 when unknown
func LevelIndex(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	for i, l := range Levels {
		if l == level {
			return i
		}
	}
	return -1
}

// weightTolerance bounds the accepted drift of a weight sum away from 1.0
const weightTolerance = 1e-6

// Weights are the per-factor coefficients of the final match score
type Weights struct {
	Semantic   float64 `json:"semantic" mapstructure:"semantic" validate:"gte=0,lte=1"`
	Skills     float64 `json:"skills" mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
	Education  float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the default factor weights
func DefaultWeights() Weights {
	return Weights{
		Semantic:   0.30,
		Skills:     0.40,
		Experience: 0.20,
		Education:  0.10,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Semantic + w.Skills + w.Experience + w.Education
}

// IsZero reports whether no weight has been set
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate rejects negative weights and weights that do not sum to 1.0
func (w Weights) Validate() error {
	fields := map[string]float64{
		"semantic":   w.Semantic,
		"skills":     w.Skills,
		"experience": w.Experience,
		"education":  w.Education,
	}
	for name, value := range fields {
		if value < 0 || math.IsNaN(value) {
			return &ConfigurationError{
				Field:   "weights." + name,
				Message: fmt.Sprintf("weight must be non-negative, got %v", value),
			}
		}
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return &ConfigurationError{
			Field:   "weights",
			Message: fmt.Sprintf("weights must sum to 1.0, got %.4f", w.Sum()),
		}
	}
	return nil
}

// JobRecord is the raw job posting as supplied by the persistence layer
type JobRecord struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title" validate:"required"`
	Company            string   `json:"company,omitempty"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	PreferredSkills    []string `json:"preferred_skills,omitempty"`
	CriticalSkills     []string `json:"critical_skills,omitempty"`
	MinExperienceYears *float64 `json:"min_experience_years,omitempty" validate:"omitempty,gte=0,lte=60"`
	RequiredLevel      string   `json:"required_level,omitempty" validate:"omitempty,oneof=entry mid senior expert lead"`
	RequiredDegree     string   `json:"required_degree,omitempty"`
	RequiredField      string   `json:"required_field,omitempty"`
	Weights            *Weights `json:"weights,omitempty"`
}

// JobProfile is the structured view of one job posting
type JobProfile struct {
	ID                        string   `json:"id,omitempty"`
	Title                     string   `json:"title" validate:"required"`
	Company                   string   `json:"company,omitempty"`
	Description               string   `json:"description"`
	RequiredSkills            []string `json:"required_skills"`
	PreferredSkills           []string `json:"preferred_skills"`
	CriticalSkills            []string `json:"critical_skills,omitempty"`
	MinExperienceYears        float64  `json:"min_experience_years" validate:"gte=0,lte=60"`
	RequiredLevel             string   `json:"required_level,omitempty" validate:"omitempty,oneof=entry mid senior expert lead"`
	RequiredDegree            string   `json:"required_degree,omitempty" validate:"omitempty,oneof=associate bachelor master phd"`
	RequiredField             string   `json:"required_field,omitempty"`
	AllowEquivalentExperience bool     `json:"allow_equivalent_experience,omitempty"`
	Weights                   Weights  `json:"weights"`
}

var validate = validator.New()

// NewJobProfile validates a job profile and fills in default weights.
// Invalid weights are rejected here, never deep inside scoring.
func NewJobProfile(p JobProfile) (*JobProfile, error) {
	if p.Weights.IsZero() {
		p.Weights = DefaultWeights()
	}
	if err := p.Weights.Validate(); err != nil {
		return nil, err
	}
	p.RequiredLevel = strings.ToLower(strings.TrimSpace(p.RequiredLevel))
	p.RequiredDegree = strings.ToLower(strings.TrimSpace(p.RequiredDegree))
	if err := validate.Struct(p); err != nil {
		return nil, &ConfigurationError{
			Field:   "job_profile",
			Message: "invalid job profile",
			Cause:   err,
		}
	}
	p.RequiredSkills = dedupe(p.RequiredSkills)
	p.PreferredSkills = dedupe(p.PreferredSkills)
	p.CriticalSkills = dedupe(p.CriticalSkills)
	return &p, nil
}

// IsCritical reports whether a skill is on the job's explicit critical list
func (p *JobProfile) IsCritical(skill string) bool {
	for _, s := range p.CriticalSkills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// ValidateRecord validates a raw job record's struct tags and optional weights
func ValidateRecord(r *JobRecord) error {
	if err := validate.Struct(r); err != nil {
		return &ConfigurationError{Field: "job_record", Message: "invalid job record", Cause: err}
	}
	if r.Weights != nil {
		return r.Weights.Validate()
	}
	return nil
}

// dedupe removes empty and case-insensitively duplicated entries, keeping first spelling
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
