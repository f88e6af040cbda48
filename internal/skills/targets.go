// Package skills merges skill lists from several sources into one deduplicated set,
// keeping the strongest evidence for each canonical name.
package skills

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Requirement tiers of a job skill, strongest first
const (
	TierCritical  = "critical"
	TierRequired  = "required"
	TierPreferred = "preferred"
)

// Requirements is a job's skill list split by tier. A skill appears in exactly one of
// Required or Preferred; Critical is always a subset of Required.
type Requirements struct {
	Required  []string
	Preferred []string
	Critical  []string
}

// BuildRequirements canonicalizes and deduplicates job skills. A skill listed as both
// required and preferred is kept as required; a critical skill is implicitly required.
func BuildRequirements(tax *taxonomy.Taxonomy, required, preferred, critical []string) Requirements {
	tiers := make(map[string]string)
	order := make([]string, 0, len(required)+len(preferred)+len(critical))

	add := func(raw, tier string) {
		name := NormalizeSkillName(tax, raw)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		existing, seen := tiers[key]
		if !seen {
			order = append(order, name)
			tiers[key] = tier
			return
		}
		if tierPriority(tier) > tierPriority(existing) {
			tiers[key] = tier
		}
	}
	for _, s := range critical {
		add(s, TierCritical)
	}
	for _, s := range required {
		add(s, TierRequired)
	}
	for _, s := range preferred {
		add(s, TierPreferred)
	}

	var reqs Requirements
	for _, name := range order {
		switch tiers[strings.ToLower(name)] {
		case TierCritical:
			reqs.Critical = append(reqs.Critical, name)
			reqs.Required = append(reqs.Required, name)
		case TierRequired:
			reqs.Required = append(reqs.Required, name)
		case TierPreferred:
			reqs.Preferred = append(reqs.Preferred, name)
		}
	}
	return reqs
}

// tierPriority returns a numeric priority for requirement tiers.
// Higher numbers indicate higher priority.
func tierPriority(tier string) int {
	switch tier {
	case TierCritical:
		return 3
	case TierRequired:
		return 2
	case TierPreferred:
		return 1
	default:
		return 0
	}
}

// NormalizeSkillName returns the taxonomy's canonical spelling, or a tidied form of the
// raw name when the taxonomy does not know it
func NormalizeSkillName(tax *taxonomy.Taxonomy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if tax != nil {
		if canonical, ok := tax.Canonicalize(trimmed); ok {
			return canonical
		}
	}
	if trimmed == strings.ToLower(trimmed) && !strings.Contains(trimmed, " ") {
		r, size := utf8.DecodeRuneInString(trimmed)
		return string(unicode.ToUpper(r)) + trimmed[size:]
	}
	return trimmed
}

// Merge deduplicates extracted skills by canonical name, case-insensitively. The
// highest-confidence variant wins; on equal confidence the higher-priority source wins.
// Mentions are summed and years keep the maximum seen.
func Merge(in []types.ExtractedSkill) []types.ExtractedSkill {
	byKey := make(map[string]*types.ExtractedSkill, len(in))
	order := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s.Name)
		existing, ok := byKey[key]
		if !ok {
			cp := s
			if cp.Mentions == 0 {
				cp.Mentions = 1
			}
			byKey[key] = &cp
			order = append(order, key)
			continue
		}
		mentions := existing.Mentions + max(1, s.Mentions)
		years := maxYears(existing.Years, s.Years)
		if s.Confidence > existing.Confidence ||
			(s.Confidence == existing.Confidence && sourcePriority(s.Source) > sourcePriority(existing.Source)) {
			*existing = s
		}
		existing.Mentions = mentions
		existing.Years = years
	}

	out := make([]types.ExtractedSkill, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// sourcePriority ranks extraction sources: taxonomy patterns are the most reliable
func sourcePriority(source string) int {
	switch source {
	case types.SourcePattern:
		return 4
	case types.SourceSection:
		return 3
	case types.SourceContext:
		return 2
	case types.SourceNER:
		return 1
	default:
		return 0
	}
}

func maxYears(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}
