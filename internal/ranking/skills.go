package ranking

import (
	"strings"

	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// PreferredBonusCap is the most that preferred skills can add to the skills score
const PreferredBonusCap = 20.0

// ScoreSkills rates required-skill coverage with a bounded bonus for preferred
// skills. A job with no required skills scores 100.
func ScoreSkills(tax *taxonomy.Taxonomy, cand *types.CandidateProfile, job *types.JobProfile) (float64, types.SkillDetails) {
	reqs := skills.BuildRequirements(tax, job.RequiredSkills, job.PreferredSkills, job.CriticalSkills)
	have := candidateSkills(tax, cand)

	d := types.SkillDetails{
		MatchedRequired:  []string{},
		MissingRequired:  []string{},
		MatchedPreferred: []string{},
		MissingPreferred: []string{},
	}
	critical := make(map[string]struct{}, len(reqs.Critical))
	for _, name := range reqs.Critical {
		critical[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range reqs.Required {
		key := strings.ToLower(name)
		if _, ok := have[key]; ok {
			d.MatchedRequired = append(d.MatchedRequired, name)
			continue
		}
		d.MissingRequired = append(d.MissingRequired, name)
		if _, ok := critical[key]; ok {
			d.MissingCritical = append(d.MissingCritical, name)
		}
	}
	for _, name := range reqs.Preferred {
		if _, ok := have[strings.ToLower(name)]; ok {
			d.MatchedPreferred = append(d.MatchedPreferred, name)
		} else {
			d.MissingPreferred = append(d.MissingPreferred, name)
		}
	}
	if len(reqs.Preferred) > 0 {
		d.PreferredCoverage = float64(len(d.MatchedPreferred)) / float64(len(reqs.Preferred))
	}
	if len(reqs.Required) == 0 {
		d.RequiredCoverage = 1
		return 100, d
	}

	d.RequiredCoverage = float64(len(d.MatchedRequired)) / float64(len(reqs.Required))
	d.PreferredBonus = min(PreferredBonusCap*d.PreferredCoverage, 100*(1-d.RequiredCoverage))
	return min(100, 100*d.RequiredCoverage+d.PreferredBonus), d
}

// candidateSkills returns the candidate's skill names, canonicalized and lowercased
func candidateSkills(tax *taxonomy.Taxonomy, cand *types.CandidateProfile) map[string]struct{} {
	out := make(map[string]struct{}, len(cand.Skills))
	for name := range cand.Skills {
		if n := skills.NormalizeSkillName(tax, name); n != "" {
			out[strings.ToLower(n)] = struct{}{}
		}
	}
	return out
}
