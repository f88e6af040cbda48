package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

// Key match and gap kinds
const (
	KindRequiredSkill  = "required_skill"
	KindPreferredSkill = "preferred_skill"
	KindExperience     = "experience"
	KindLevel          = "level"
	KindDegree         = "degree"
	KindField          = "field"
	KindEducation      = "education"
)

// majorYearsGap is the shortfall in years at which an experience gap is important rather than minor
const majorYearsGap = 2.0

// equivalentDegreeScore is the degree credit granted for equivalent experience
const equivalentDegreeScore = 75.0

// KeyMatches lists the skills, level and education the candidate satisfies
func KeyMatches(r *types.MatchResult) []types.KeyMatch {
	matches := []types.KeyMatch{}
	for _, s := range r.Details.Skills.MatchedRequired {
		matches = append(matches, types.KeyMatch{Kind: KindRequiredSkill, Item: s})
	}
	for _, s := range r.Details.Skills.MatchedPreferred {
		matches = append(matches, types.KeyMatch{Kind: KindPreferredSkill, Item: s})
	}
	x := r.Details.Experience
	if x.RequiredLevel != "" && x.LevelDistance == 0 {
		matches = append(matches, types.KeyMatch{Kind: KindLevel, Item: x.RequiredLevel})
	}
	edu := r.Details.Education
	if edu.RequiredDegree != "" && edu.DegreeMet {
		matches = append(matches, types.KeyMatch{Kind: KindDegree, Item: edu.RequiredDegree, Detail: edu.CandidateDegree})
	}
	if edu.RequiredField != "" && (edu.FieldMatch == ranking.FieldExact || edu.FieldMatch == ranking.FieldRelated) {
		matches = append(matches, types.KeyMatch{Kind: KindField, Item: edu.RequiredField, Detail: edu.FieldMatch})
	}
	return matches
}

// KeyGaps lists shortfalls sorted critical, then important, then minor.
// A missing required skill is critical only when the job marks it so, under any alias.
func KeyGaps(r *types.MatchResult, job *types.JobProfile) []types.KeyGap {
	gaps := []types.KeyGap{}
	critical := make(map[string]struct{}, len(r.Details.Skills.MissingCritical))
	for _, s := range r.Details.Skills.MissingCritical {
		critical[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range r.Details.Skills.MissingRequired {
		severity := types.SeverityImportant
		_, marked := critical[strings.ToLower(s)]
		if marked || (job != nil && job.IsCritical(s)) {
			severity = types.SeverityCritical
		}
		gaps = append(gaps, types.KeyGap{Kind: KindRequiredSkill, Item: s, Severity: severity})
	}
	for _, s := range r.Details.Skills.MissingPreferred {
		gaps = append(gaps, types.KeyGap{Kind: KindPreferredSkill, Item: s, Severity: types.SeverityMinor})
	}

	x := r.Details.Experience
	if x.YearsGap > 0 {
		severity := types.SeverityMinor
		if x.YearsGap >= majorYearsGap {
			severity = types.SeverityImportant
		}
		gaps = append(gaps, types.KeyGap{
			Kind:     KindExperience,
			Item:     fmt.Sprintf("%.0f+ years", x.RequiredYears),
			Severity: severity,
			Detail:   fmt.Sprintf("%.1f years short", x.YearsGap),
		})
	}
	if x.RequiredLevel != "" && x.LevelDistance < 0 {
		severity := types.SeverityMinor
		if x.LevelDistance <= -2 {
			severity = types.SeverityImportant
		}
		gaps = append(gaps, types.KeyGap{
			Kind:     KindLevel,
			Item:     x.RequiredLevel,
			Severity: severity,
			Detail:   fmt.Sprintf("candidate level %s", orUnknown(x.CandidateLevel)),
		})
	}

	edu := r.Details.Education
	if edu.RequiredDegree != "" && !edu.DegreeMet {
		severity := types.SeverityImportant
		if edu.DegreeScore >= equivalentDegreeScore {
			severity = types.SeverityMinor
		}
		gaps = append(gaps, types.KeyGap{
			Kind:     KindEducation,
			Item:     edu.RequiredDegree,
			Severity: severity,
			Detail:   fmt.Sprintf("highest degree %s", orUnknown(edu.CandidateDegree)),
		})
	}
	if edu.RequiredField != "" && edu.FieldMatch == ranking.FieldUnrelated {
		gaps = append(gaps, types.KeyGap{Kind: KindField, Item: edu.RequiredField, Severity: types.SeverityMinor})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return types.SeverityRank(gaps[i].Severity) < types.SeverityRank(gaps[j].Severity)
	})
	return gaps
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
