package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// patternSkills scans free text with the per-category alias patterns. Each
// canonical skill is reported once with its mention count.
func (e *Extractor) patternSkills(text string) []types.ExtractedSkill {
	var out []types.ExtractedSkill
	index := make(map[string]int)
	for _, p := range e.tax.Patterns() {
		for _, span := range taxonomy.FindSkillSpans(p, text) {
			raw := text[span[0]:span[1]]
			m, ok := e.tax.Lookup(raw)
			if !ok {
				continue
			}
			if i, seen := index[m.Canonical]; seen {
				out[i].Mentions++
				continue
			}
			index[m.Canonical] = len(out)
			out = append(out, types.ExtractedSkill{
				Name:       m.Canonical,
				Raw:        strings.TrimSpace(raw),
				Category:   m.Category,
				Source:     types.SourcePattern,
				Confidence: m.Confidence,
				Mentions:   1,
			})
		}
	}
	return out
}

// CaseMatchConfidence is assigned to ambiguous skills matched by exact spelling
const CaseMatchConfidence = 0.9

// caseSensitiveSkills finds skills such as "Go" written exactly as their
// canonical name, ignoring sentence-initial words
func (e *Extractor) caseSensitiveSkills(text string) []types.ExtractedSkill {
	var out []types.ExtractedSkill
	for _, s := range e.tax.CaseSensitiveSkills() {
		mentions := 0
		for _, span := range occurrences(text, s.Canonical) {
			if !sentenceInitial(text, span[0]) {
				mentions++
			}
		}
		if mentions == 0 {
			continue
		}
		out = append(out, types.ExtractedSkill{
			Name:       s.Canonical,
			Raw:        s.Canonical,
			Category:   s.Category,
			Source:     types.SourcePattern,
			Confidence: CaseMatchConfidence,
			Mentions:   mentions,
		})
	}
	return out
}

// sentenceInitial reports whether the word at i opens a line, bullet or sentence
func sentenceInitial(text string, i int) bool {
	before := text[:i]
	prefix := strings.TrimRightFunc(before, unicode.IsSpace)
	if prefix == "" || strings.Contains(before[len(prefix):], "\n") {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(prefix)
	return strings.ContainsRune(".!?•*", r)
}
