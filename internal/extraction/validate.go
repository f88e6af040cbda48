package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/types"
)

// Candidate term bounds
const (
	minTermLength = 2
	maxTermLength = 50
	maxTermWords  = 5
)

// HeuristicConfidence is assigned to terms accepted only by a technical indicator
const HeuristicConfidence = 0.6

// CategoryOther holds skills the taxonomy does not know
const CategoryOther = "other"

// validate decides whether a candidate term is a skill. Taxonomy matches are
// accepted first, then a fuzzy taxonomy match, then unknown terms that carry a
// technical indicator and are not generic words.
func (e *Extractor) validate(term, source string) (types.ExtractedSkill, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return types.ExtractedSkill{}, false
	}
	// exact taxonomy entries skip the length gate so single-letter languages like C and R survive
	if m, ok := e.tax.Lookup(term); ok {
		return types.ExtractedSkill{
			Name:       m.Canonical,
			Raw:        term,
			Category:   m.Category,
			Source:     source,
			Confidence: m.Confidence,
		}, true
	}
	if !plausibleTerm(term) {
		return types.ExtractedSkill{}, false
	}
	if e.tax.IsExcluded(term) {
		return types.ExtractedSkill{}, false
	}
	if e.fuzzy {
		if m, ok := e.tax.FuzzyLookup(term); ok {
			return types.ExtractedSkill{
				Name:       m.Canonical,
				Raw:        term,
				Category:   m.Category,
				Source:     source,
				Confidence: m.Confidence,
				Fuzzy:      true,
			}, true
		}
	}
	if e.tax.HasTechnicalIndicator(term) {
		return types.ExtractedSkill{
			Name:       skills.NormalizeSkillName(e.tax, term),
			Raw:        term,
			Category:   CategoryOther,
			Source:     source,
			Confidence: HeuristicConfidence,
		}, true
	}
	return types.ExtractedSkill{}, false
}

// plausibleTerm applies the length, word-count and letter checks
func plausibleTerm(term string) bool {
	n := utf8.RuneCountInString(term)
	if n < minTermLength || n > maxTermLength {
		return false
	}
	if len(strings.Fields(term)) > maxTermWords {
		return false
	}
	return strings.IndexFunc(term, unicode.IsLetter) >= 0
}
