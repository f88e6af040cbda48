package explain

import (
	"fmt"

	"github.com/jonathan/talent-match/internal/types"
)

// Risk thresholds
const (
	hoppingHigh   = 0.7
	hoppingMedium = 0.5

	overqualifiedScore     = 95.0
	overqualifiedHighRatio = 2.0
	overqualifiedMidRatio  = 1.5

	coverageHigh   = 0.5
	coverageMedium = 0.8
)

// AssessRisk buckets retention, overqualification and skill-gap risk. Without
// a timeline retention risk is medium and contributes no factor.
func AssessRisk(r *types.MatchResult, cand *types.CandidateProfile) types.RiskAssessment {
	risk := types.RiskAssessment{Factors: []string{}}

	var tl *types.Timeline
	if cand != nil {
		tl = cand.Timeline
	}
	switch {
	case tl == nil:
		risk.RetentionRisk = types.RiskMedium
	case tl.JobHoppingScore >= hoppingHigh:
		risk.RetentionRisk = types.RiskHigh
		risk.Factors = append(risk.Factors, fmt.Sprintf("short average tenure (%.0f months)", tl.AvgTenureMonths))
	case tl.JobHoppingScore >= hoppingMedium:
		risk.RetentionRisk = types.RiskMedium
		risk.Factors = append(risk.Factors, fmt.Sprintf("moderate average tenure (%.0f months)", tl.AvgTenureMonths))
	default:
		risk.RetentionRisk = types.RiskLow
	}

	x := r.Details.Experience
	risk.OverqualificationRisk = types.RiskLow
	if x.RequiredYears > 0 {
		ratio := x.CandidateYears / x.RequiredYears
		switch {
		case r.Scores.Experience >= overqualifiedScore && r.Scores.Education >= overqualifiedScore && ratio >= overqualifiedHighRatio:
			risk.OverqualificationRisk = types.RiskHigh
		case ratio >= overqualifiedMidRatio:
			risk.OverqualificationRisk = types.RiskMedium
		}
		if risk.OverqualificationRisk != types.RiskLow {
			risk.Factors = append(risk.Factors, fmt.Sprintf("%.1f years of experience against %.0f required", x.CandidateYears, x.RequiredYears))
		}
	}

	coverage := r.Details.Skills.RequiredCoverage
	switch {
	case coverage < coverageHigh:
		risk.SkillGapRisk = types.RiskHigh
	case coverage < coverageMedium:
		risk.SkillGapRisk = types.RiskMedium
	default:
		risk.SkillGapRisk = types.RiskLow
	}
	if risk.SkillGapRisk != types.RiskLow {
		risk.Factors = append(risk.Factors, fmt.Sprintf("%.0f%% of required skills covered", 100*coverage))
	}
	return risk
}
