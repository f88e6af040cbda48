// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Proficiency levels recognised for a skill
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// DefaultProficiency and DefaultProficiencyConfidence apply when no explicit signal is found
const (
	DefaultProficiency           = ProficiencyIntermediate
	DefaultProficiencyConfidence = 0.3
)

// Progression classifications for a career timeline
const (
	ProgressionUpward  = "upward"
	ProgressionLateral = "lateral"
	ProgressionMixed   = "mixed"
)

// CandidateProfile is the structured view of one resume.
// It is produced once per parse and never mutated afterwards.
type CandidateProfile struct {
	ID                   string                `json:"id,omitempty"`
	Contact              Contact               `json:"contact"`
	Summary              string                `json:"summary,omitempty"`
	Skills               map[string]SkillEntry `json:"skills"`
	Experience           []ExperienceRecord    `json:"experience"`
	Education            []EducationRecord     `json:"education"`
	Certifications       []string              `json:"certifications,omitempty"`
	Organizations        []Entity              `json:"organizations,omitempty"`
	TotalExperienceYears float64               `json:"total_experience_years"`
	Level                string                `json:"level,omitempty"` // inferred seniority level
	Timeline             *Timeline             `json:"timeline,omitempty"`
	Sections             map[string]string     `json:"sections,omitempty"`
	RawText              string                `json:"-"`
}

// SkillEntry annotates a canonical skill name on a candidate profile
type SkillEntry struct {
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	Confidence            float64  `json:"confidence"`
	Proficiency           string   `json:"proficiency"`
	ProficiencyConfidence float64  `json:"proficiency_confidence"`
	Years                 *float64 `json:"years,omitempty"`
	Mentions              int      `json:"mentions"`
}

// Contact holds candidate contact details
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceRecord is a single role on a resume.
// DurationMonths is derived from the dates and never taken as input.
type ExperienceRecord struct {
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsCurrent      bool       `json:"is_current"`
	Achievements   []string   `json:"achievements,omitempty"`
	DurationMonths int        `json:"duration_months"`
	RawDates       string     `json:"raw_dates,omitempty"`
}

// EducationRecord is a single degree or program on a resume
type EducationRecord struct {
	Degree      string     `json:"degree"`
	DegreeLevel string     `json:"degree_level,omitempty"` // associate, bachelor, master, phd
	Institution string     `json:"institution"`
	Field       string     `json:"field,omitempty"`
	GPA         *float64   `json:"gpa,omitempty"`
	Honors      []string   `json:"honors,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Timeline summarises a candidate's employment history
type Timeline struct {
	TotalExperienceYears float64         `json:"total_experience_years"`
	Gaps                 []EmploymentGap `json:"gaps"`
	Progression          string          `json:"progression"`
	Promotions           int             `json:"promotions"`
	Regressions          int             `json:"regressions"`
	JobHoppingScore      float64         `json:"job_hopping_score"`
	AvgTenureMonths      float64         `json:"avg_tenure_months"`
	Roles                []TimelineRole  `json:"roles,omitempty"`
}

// EmploymentGap is a period of more than three months between two roles
type EmploymentGap struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Months        float64   `json:"months"`
	Days          int       `json:"days"`
	BeforeRole    string    `json:"before_role"`
	BeforeCompany string    `json:"before_company,omitempty"`
	AfterRole     string    `json:"after_role"`
	AfterCompany  string    `json:"after_company,omitempty"`
}

// TimelineRole is a normalized role in chronological order
type TimelineRole struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	IsCurrent      bool      `json:"is_current"`
	DurationMonths int       `json:"duration_months"`
	Seniority      int       `json:"seniority"`
}

// HasSkill reports whether the profile carries the canonical skill name
func (p *CandidateProfile) HasSkill(name string) bool {
	if p == nil || p.Skills == nil {
		return false
	}
	_, ok := p.Skills[name]
	return ok
}

// SkillNames returns the canonical skill names on the profile
func (p *CandidateProfile) SkillNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	return names
}
