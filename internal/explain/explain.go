// Package explain turns match results into ranked factors, a narrative, gaps,
// recommendations and a risk assessment for a human reviewer.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Default thresholds for calling a factor a strength or a weakness
const (
	DefaultStrengthThreshold = 75.0
	DefaultWeaknessThreshold = 50.0
	DefaultMaxHighlights     = 2
)

// Tier boundaries on the final score
const (
	excellentMin = 85.0
	strongMin    = 75.0
	goodMin      = 65.0
	fairMin      = 50.0
)

// Explainer builds explanations. It is stateless and safe for concurrent use.
type Explainer struct {
	strength      float64
	weakness      float64
	maxHighlights int
}

// Option configures an Explainer
type Option func(*Explainer)

// WithStrengthThreshold sets the factor score at or above which a factor is a strength
func WithStrengthThreshold(v float64) Option {
	return func(e *Explainer) { e.strength = v }
}

// WithWeaknessThreshold sets the factor score below which a factor is a weakness
func WithWeaknessThreshold(v float64) Option {
	return func(e *Explainer) { e.weakness = v }
}

// WithMaxHighlights sets how many strengths and weaknesses the narrative names
func WithMaxHighlights(n int) Option {
	return func(e *Explainer) {
		if n > 0 {
			e.maxHighlights = n
		}
	}
}

// New creates an explainer
func New(opts ...Option) *Explainer {
	e := &Explainer{
		strength:      DefaultStrengthThreshold,
		weakness:      DefaultWeaknessThreshold,
		maxHighlights: DefaultMaxHighlights,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tier maps a final score to its match tier
func Tier(final float64) string {
	switch {
	case final >= excellentMin:
		return types.TierExcellent
	case final >= strongMin:
		return types.TierStrong
	case final >= goodMin:
		return types.TierGood
	case final >= fairMin:
		return types.TierFair
	default:
		return types.TierWeak
	}
}

// Explain describes one match result. The candidate and job supply context
// such as the timeline and critical skills; either may be nil.
func (e *Explainer) Explain(result *types.MatchResult, cand *types.CandidateProfile, job *types.JobProfile) *types.Explanation {
	if result == nil {
		return nil
	}
	if job == nil {
		job = &types.JobProfile{}
	}

	ex := &types.Explanation{
		Tier:          Tier(result.FinalScore),
		FinalScore:    result.FinalScore,
		RankedFactors: RankFactors(result),
		Strengths:     []string{},
	}
	for _, f := range ex.RankedFactors {
		if f.Score >= e.strength {
			ex.Strengths = append(ex.Strengths, strengthPhrase(f.Factor, result))
		}
	}
	ex.Weaknesses = orderWeaknesses(ex.RankedFactors, result, e.weakness)

	ex.KeyMatches = KeyMatches(result)
	ex.KeyGaps = KeyGaps(result, job)
	ex.Risk = AssessRisk(result, cand)
	ex.Recommendations = Recommend(ex, result)
	ex.Narrative = e.narrative(ex)
	return ex
}

// RankFactors orders factors by weighted contribution, largest first
func RankFactors(result *types.MatchResult) []types.RankedFactor {
	factors := make([]types.RankedFactor, 0, len(types.Factors))
	for _, name := range types.Factors {
		score, weight := result.Scores.Get(name), result.Weights.Get(name)
		f := types.RankedFactor{Factor: name, Score: score, Weight: weight, Contribution: score * weight}
		if result.FinalScore > 0 {
			f.Pct = 100 * f.Contribution / result.FinalScore
		}
		factors = append(factors, f)
	}
	sort.SliceStable(factors, func(i, j int) bool { return factors[i].Contribution > factors[j].Contribution })
	return factors
}

// orderWeaknesses lists weak factors by ascending score
func orderWeaknesses(factors []types.RankedFactor, result *types.MatchResult, threshold float64) []string {
	weak := make([]types.RankedFactor, 0, len(factors))
	for _, f := range factors {
		if f.Score < threshold {
			weak = append(weak, f)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	out := make([]string, 0, len(weak))
	for _, f := range weak {
		out = append(out, weaknessPhrase(f.Factor, result))
	}
	return out
}

// narrativeTemplate is the wording family of one tier. opener takes the final
// score, strengths and concerns take the joined highlights; the none forms are
// used when a tier has nothing to say on that side.
type narrativeTemplate struct {
	opener      string
	strengths   string
	concerns    string
	noStrengths string
	noConcerns  string
}

var tierTemplates = map[string]narrativeTemplate{
	types.TierExcellent: {
		opener:     "Excellent match (%.1f/100) and a clear fit for the role.",
		strengths:  "Stands out for: %s.",
		concerns:   "Worth confirming: %s.",
		noConcerns: "No material concerns.",
	},
	types.TierStrong: {
		opener:     "Strong match (%.1f/100).",
		strengths:  "Key strengths: %s.",
		concerns:   "Minor reservations: %s.",
		noConcerns: "No significant gaps.",
	},
	types.TierGood: {
		opener:    "Good match (%.1f/100) with some ground to cover.",
		strengths: "Brings %s.",
		concerns:  "Gaps to close: %s.",
	},
	types.TierFair: {
		opener:      "Fair match (%.1f/100); the fit is partial.",
		strengths:   "Relevant strengths: %s.",
		concerns:    "Significant concerns: %s.",
		noStrengths: "No factor stands out as a strength.",
	},
	types.TierWeak: {
		opener:      "Weak match (%.1f/100) for this role.",
		strengths:   "Limited positives: %s.",
		concerns:    "Main shortfalls: %s.",
		noStrengths: "No factor meets the bar for a strength.",
	},
}

func (e *Explainer) narrative(ex *types.Explanation) string {
	tmpl, ok := tierTemplates[ex.Tier]
	if !ok {
		tmpl = tierTemplates[types.TierWeak]
	}
	parts := []string{fmt.Sprintf(tmpl.opener, ex.FinalScore)}
	if s := firstN(ex.Strengths, e.maxHighlights); len(s) > 0 {
		parts = append(parts, fmt.Sprintf(tmpl.strengths, strings.Join(s, "; ")))
	} else if tmpl.noStrengths != "" {
		parts = append(parts, tmpl.noStrengths)
	}
	if w := firstN(ex.Weaknesses, e.maxHighlights); len(w) > 0 {
		parts = append(parts, fmt.Sprintf(tmpl.concerns, strings.Join(w, "; ")))
	} else if tmpl.noConcerns != "" {
		parts = append(parts, tmpl.noConcerns)
	}
	return strings.Join(parts, " ")
}

func strengthPhrase(factor string, r *types.MatchResult) string {
	switch factor {
	case types.FactorSkills:
		s := r.Details.Skills
		total := len(s.MatchedRequired) + len(s.MissingRequired)
		if total == 0 {
			return "no required skills to miss"
		}
		return fmt.Sprintf("matches %d of %d required skills", len(s.MatchedRequired), total)
	case types.FactorExperience:
		x := r.Details.Experience
		if x.RequiredYears > 0 {
			return fmt.Sprintf("%.1f years of experience against %.0f required", x.CandidateYears, x.RequiredYears)
		}
		return "seniority fits the role"
	case types.FactorEducation:
		return "education meets the requirements"
	default:
		return "background closely aligned with the role"
	}
}

func weaknessPhrase(factor string, r *types.MatchResult) string {
	switch factor {
	case types.FactorSkills:
		missing := r.Details.Skills.MissingRequired
		if len(missing) == 0 {
			return "few matching skills"
		}
		return fmt.Sprintf("missing %d required %s (%s)", len(missing), plural(len(missing), "skill", "skills"), strings.Join(firstN(missing, 3), ", "))
	case types.FactorExperience:
		x := r.Details.Experience
		if x.YearsGap > 0 {
			return fmt.Sprintf("%.1f years short of the experience requirement", x.YearsGap)
		}
		return "seniority level differs from the role"
	case types.FactorEducation:
		if !r.Details.Education.DegreeMet {
			return "below the required degree"
		}
		return "field of study not aligned with the role"
	default:
		return "background only loosely related to the role"
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
