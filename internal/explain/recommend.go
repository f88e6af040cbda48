package explain

import (
	"fmt"

	"github.com/jonathan/talent-match/internal/types"
)

// Hiring decisions
const (
	DecisionAdvance  = "advance"
	DecisionConsider = "consider"
	DecisionHold     = "hold"
	DecisionDecline  = "decline"
)

// maxSkillTips bounds how many preferred skills the candidate is pointed at
const maxSkillTips = 3

// Decision maps a tier to a hiring decision
func Decision(tier string) string {
	switch tier {
	case types.TierExcellent, types.TierStrong:
		return DecisionAdvance
	case types.TierGood:
		return DecisionConsider
	case types.TierFair:
		return DecisionHold
	default:
		return DecisionDecline
	}
}

// Recommend derives employer and candidate suggestions from an explanation's
// gaps and risks
func Recommend(ex *types.Explanation, r *types.MatchResult) types.Recommendations {
	rec := types.Recommendations{
		Employer:  []string{},
		Candidate: []string{},
		Decision:  Decision(ex.Tier),
	}

	switch rec.Decision {
	case DecisionAdvance:
		rec.Employer = append(rec.Employer, "Prioritize for an interview")
	case DecisionConsider:
		rec.Employer = append(rec.Employer, "Schedule a screening call to confirm fit")
	}

	preferredTips := 0
	for _, g := range ex.KeyGaps {
		switch g.Kind {
		case KindRequiredSkill:
			if g.Severity == types.SeverityCritical {
				rec.Employer = append(rec.Employer, fmt.Sprintf("Verify %s before advancing; the role depends on it", g.Item))
			} else {
				rec.Employer = append(rec.Employer, fmt.Sprintf("Probe %s in a technical interview", g.Item))
			}
			rec.Candidate = append(rec.Candidate, fmt.Sprintf("Build and showcase hands-on experience with %s", g.Item))
		case KindPreferredSkill:
			if preferredTips < maxSkillTips {
				rec.Candidate = append(rec.Candidate, fmt.Sprintf("Learning %s would strengthen the application", g.Item))
				preferredTips++
			}
		case KindExperience:
			rec.Employer = append(rec.Employer, fmt.Sprintf("Assess depth of experience; the candidate is %s", g.Detail))
			rec.Candidate = append(rec.Candidate, "Highlight projects that demonstrate equivalent experience")
		case KindLevel:
			rec.Employer = append(rec.Employer, fmt.Sprintf("Consider whether a %s role is a realistic step up", g.Item))
		case KindEducation:
			rec.Candidate = append(rec.Candidate, "List certifications or coursework that offset the degree requirement")
		}
	}

	if ex.Risk.RetentionRisk == types.RiskHigh {
		rec.Employer = append(rec.Employer, "Discuss career goals and tenure expectations")
	}
	if ex.Risk.OverqualificationRisk == types.RiskHigh {
		rec.Employer = append(rec.Employer, "Confirm the role's scope and compensation match the candidate's expectations")
	}
	if len(rec.Candidate) == 0 && r.FinalScore >= strongMin {
		rec.Candidate = append(rec.Candidate, "Emphasize measurable impact in the most relevant roles")
	}
	return rec
}
