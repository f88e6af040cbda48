// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Entity labels produced by a NER tagger
const (
	EntityPerson = "PERSON"
	EntityOrg    = "ORG"
	EntityGPE    = "GPE"
	EntityDate   = "DATE"
)

// Extraction sources, in the order the extractor runs them
const (
	SourcePattern = "pattern"
	SourceSection = "section"
	SourceContext = "context"
	SourceNER     = "ner"
)

// Entity is a named-entity span found in document text
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// ExtractedSkill is a validated skill with its provenance
type ExtractedSkill struct {
	Name                  string   `json:"name"` // canonical name
	Raw                   string   `json:"raw"`  // text as it appeared
	Category              string   `json:"category"`
	Source                string   `json:"source"`
	Confidence            float64  `json:"confidence"`
	Proficiency           string   `json:"proficiency"`
	ProficiencyConfidence float64  `json:"proficiency_confidence"`
	Years                 *float64 `json:"years,omitempty"`
	Mentions              int      `json:"mentions"`
	Fuzzy                 bool     `json:"fuzzy,omitempty"`
}

// ExtractionResult is the output of one extractor run
type ExtractionResult struct {
	Skills   []ExtractedSkill `json:"skills"`
	Entities []Entity         `json:"entities"`
}

// SkillMap converts extracted skills into the candidate profile representation
func (r *ExtractionResult) SkillMap() map[string]SkillEntry {
	out := make(map[string]SkillEntry, len(r.Skills))
	for _, s := range r.Skills {
		out[s.Name] = SkillEntry{
			Name:                  s.Name,
			Category:              s.Category,
			Confidence:            s.Confidence,
			Proficiency:           s.Proficiency,
			ProficiencyConfidence: s.ProficiencyConfidence,
			Years:                 s.Years,
			Mentions:              s.Mentions,
		}
	}
	return out
}

// EntitiesByLabel returns entities carrying the given label
func (r *ExtractionResult) EntitiesByLabel(label string) []Entity {
	var out []Entity
	for _, e := range r.Entities {
		if e.Label == label {
			out = append(out, e)
		}
	}
	return out
}
