// Package taxonomy provides the skill taxonomy and the keyword libraries used by extraction,
// parsing and grading. All resources are JSON files embedded at compile time and validated
// against JSON Schemas when loaded.
package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"github.com/jonathan/talent-match/internal/schemas"
)

//go:embed data/*.json data/schema/*.json
var dataFiles embed.FS

// resource files and the schema each one is validated against
var resources = []struct {
	file   string
	schema string
}{
	{"skills.json", "skills.schema.json"},
	{"sections.json", "families.schema.json"},
	{"proficiency.json", "families.schema.json"},
	{"degrees.json", "degrees.schema.json"},
	{"lexicon.json", "lexicon.schema.json"},
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Load builds a taxonomy from the embedded resources
func Load() (*Taxonomy, error) {
	sub, err := fs.Sub(dataFiles, "data")
	if err != nil {
		return nil, &LoadError{File: "data", Message: "failed to open embedded resources", Cause: err}
	}
	return LoadFS(sub)
}

// LoadFS builds a taxonomy from resource files in fsys. Schemas always come from the
// embedded copy so an override directory cannot loosen validation.
func LoadFS(fsys fs.FS) (*Taxonomy, error) {
	raw := make(map[string][]byte, len(resources))
	for _, r := range resources {
		data, err := fs.ReadFile(fsys, r.file)
		if err != nil {
			return nil, &LoadError{File: r.file, Message: "failed to read resource", Cause: err}
		}
		schema, err := dataFiles.ReadFile("data/schema/" + r.schema)
		if err != nil {
			return nil, &LoadError{File: r.schema, Message: "failed to read schema", Cause: err}
		}
		if err := schemas.ValidateJSONString(string(schema), string(data)); err != nil {
			return nil, &LoadError{File: r.file, Message: "resource does not match schema", Cause: err}
		}
		raw[r.file] = data
	}

	var doc document
	if err := decode(raw, "skills.json", &doc.skills); err != nil {
		return nil, err
	}
	if err := decode(raw, "sections.json", &doc.sections); err != nil {
		return nil, err
	}
	if err := decode(raw, "proficiency.json", &doc.proficiency); err != nil {
		return nil, err
	}
	if err := decode(raw, "degrees.json", &doc.degrees); err != nil {
		return nil, err
	}
	if err := decode(raw, "lexicon.json", &doc.lexicon); err != nil {
		return nil, err
	}

	return build(&doc)
}

// Default returns the process-wide taxonomy built from the embedded resources.
// It panics if the embedded resources are invalid, which is a build defect.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("failed to load embedded taxonomy: %v", defaultErr))
	}
	return defaultTax
}

func decode(raw map[string][]byte, file string, v any) error {
	if err := json.Unmarshal(raw[file], v); err != nil {
		return &LoadError{File: file, Message: "failed to parse resource", Cause: err}
	}
	return nil
}

// document mirrors the on-disk resource layout
type document struct {
	skills struct {
		Categories          map[string][]skillEntry `json:"categories"`
		Exclusions          []string                `json:"exclusions"`
		TechnicalIndicators []string                `json:"technical_indicators"`
		Ambiguous           []string                `json:"ambiguous"`
	}
	sections struct {
		Sections map[string][]string `json:"sections"`
	}
	proficiency struct {
		Cues map[string][]string `json:"cues"`
	}
	degrees struct {
		Levels map[string]struct {
			Rank     int      `json:"rank"`
			Keywords []string `json:"keywords"`
		} `json:"levels"`
		InstitutionKeywords []string            `json:"institution_keywords"`
		Honors              []string            `json:"honors"`
		RelatedFields       map[string][]string `json:"related_fields"`
	}
	lexicon lexiconDoc
}

type skillEntry struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases"`
}

type lexiconDoc struct {
	Seniority        map[string][]string `json:"seniority"`
	Buzzwords        []string            `json:"buzzwords"`
	Leadership       []string            `json:"leadership"`
	ActionVerbs      []string            `json:"action_verbs"`
	OutdatedSkills   []string            `json:"outdated_skills"`
	ModernSkills     []string            `json:"modern_skills"`
	IndustryKeywords []string            `json:"industry_keywords"`
	International    []string            `json:"international"`
	ContactKeywords  []string            `json:"contact_keywords"`
	Placeholders     []string            `json:"placeholders"`
	OrgSuffixes      []string            `json:"org_suffixes"`
	Places           []string            `json:"places"`
}
