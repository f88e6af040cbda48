package explain

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

type fixedProvider float64

func (p fixedProvider) Name() string { return "fixed" }

func (p fixedProvider) Similarity(context.Context, *types.CandidateProfile, *types.JobProfile) (float64, error) {
	return float64(p), nil
}

func score(t *testing.T, cand *types.CandidateProfile, job *types.JobProfile) *types.MatchResult {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	result, err := ranking.NewScorer(fixedProvider(80), ranking.WithTaxonomy(tax)).Score(context.Background(), cand, job)
	require.NoError(t, err)
	return result
}

func candidate(skillNames ...string) *types.CandidateProfile {
	c := &types.CandidateProfile{ID: "c1", Skills: map[string]types.SkillEntry{}}
	for _, n := range skillNames {
		c.Skills[n] = types.SkillEntry{Name: n}
	}
	return c
}

func job(required ...string) *types.JobProfile {
	return &types.JobProfile{ID: "j1", Title: "Backend Engineer", RequiredSkills: required, Weights: types.DefaultWeights()}
}

func TestTier(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, types.TierExcellent},
		{85, types.TierExcellent},
		{84.9, types.TierStrong},
		{75, types.TierStrong},
		{65, types.TierGood},
		{50, types.TierFair},
		{49.9, types.TierWeak},
		{0, types.TierWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tier(tt.score), "score %v", tt.score)
	}
}

func TestExplain_SingleMissingSkill(t *testing.T) {
	cand := candidate("Python", "Django", "PostgreSQL")
	j := job("Python", "Django", "PostgreSQL", "Kubernetes")
	result := score(t, cand, j)

	ex := New().Explain(result, cand, j)

	require.Len(t, ex.KeyGaps, 1)
	assert.Equal(t, "Kubernetes", ex.KeyGaps[0].Item)
	assert.Equal(t, types.SeverityImportant, ex.KeyGaps[0].Severity)
	assert.Equal(t, KindRequiredSkill, ex.KeyGaps[0].Kind)
	assert.Len(t, ex.KeyMatches, 3)
	assert.Equal(t, types.RiskMedium, ex.Risk.SkillGapRisk)
}

func TestExplain_CriticalSkillsSortFirst(t *testing.T) {
	cand := candidate("Python")
	j := job("Python", "Go", "Kubernetes")
	j.PreferredSkills = []string{"Terraform"}
	j.CriticalSkills = []string{"Kubernetes"}
	j.MinExperienceYears = 5
	result := score(t, cand, j)

	gaps := New().Explain(result, cand, j).KeyGaps

	require.NotEmpty(t, gaps)
	assert.Equal(t, "Kubernetes", gaps[0].Item)
	assert.Equal(t, types.SeverityCritical, gaps[0].Severity)
	for i := 1; i < len(gaps); i++ {
		assert.LessOrEqual(t, types.SeverityRank(gaps[i-1].Severity), types.SeverityRank(gaps[i].Severity))
	}
	kinds := map[string]string{}
	for _, g := range gaps {
		kinds[g.Item] = g.Severity
	}
	assert.Equal(t, types.SeverityImportant, kinds["Go"])
	assert.Equal(t, types.SeverityMinor, kinds["Terraform"])
	assert.Equal(t, types.SeverityImportant, kinds["5+ years"])
}

func TestExplain_CriticalSkillGivenByAlias(t *testing.T) {
	j, err := types.NewJobProfile(types.JobProfile{
		ID:             "j1",
		Title:          "Platform Engineer",
		RequiredSkills: []string{"Python", "k8s"},
		CriticalSkills: []string{"k8s"},
	})
	require.NoError(t, err)
	cand := candidate("Python")
	result := score(t, cand, j)

	gaps := New().Explain(result, cand, j).KeyGaps

	require.Len(t, gaps, 1)
	assert.Equal(t, "Kubernetes", gaps[0].Item)
	assert.Equal(t, types.SeverityCritical, gaps[0].Severity)
}

func TestRankFactors(t *testing.T) {
	result := &types.MatchResult{
		Scores:  types.FactorScores{Semantic: 50, Skills: 100, Experience: 80, Education: 100},
		Weights: types.DefaultWeights(),
	}
	result.FinalScore = types.WeightedSum(result.Scores, result.Weights)

	factors := RankFactors(result)

	require.Len(t, factors, 4)
	assert.Equal(t, types.FactorSkills, factors[0].Factor)
	assert.Equal(t, types.FactorExperience, factors[1].Factor)
	assert.Equal(t, types.FactorSemantic, factors[2].Factor)
	assert.Equal(t, types.FactorEducation, factors[3].Factor)
	total := 0.0
	for i, f := range factors {
		if i > 0 {
			assert.LessOrEqual(t, f.Contribution, factors[i-1].Contribution)
		}
		total += f.Pct
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestExplain_Narrative(t *testing.T) {
	cand := candidate("Python", "Go")
	cand.TotalExperienceYears = 6
	cand.Level = types.LevelSenior
	j := job("Python", "Go")
	j.MinExperienceYears = 5
	j.RequiredLevel = types.LevelSenior
	result := score(t, cand, j)

	ex := New().Explain(result, cand, j)

	assert.Equal(t, types.TierExcellent, ex.Tier)
	assert.True(t, strings.HasPrefix(ex.Narrative, "Excellent match"), ex.Narrative)
	assert.Contains(t, ex.Narrative, "Stands out for: matches 2 of 2 required skills")
	assert.Contains(t, ex.Narrative, "No material concerns.")
	assert.Equal(t, DecisionAdvance, ex.Recommendations.Decision)
	assert.Contains(t, ex.Recommendations.Employer, "Prioritize for an interview")
}

func TestNarrative_TierTemplates(t *testing.T) {
	strength := "matches 3 of 4 required skills"
	concern := "2.0 years short of the experience requirement"
	tests := []struct {
		tier   string
		score  float64
		opener string
		strong string
		weak   string
	}{
		{types.TierExcellent, 90, "Excellent match (90.0/100)", "Stands out for: ", "Worth confirming: "},
		{types.TierStrong, 80, "Strong match (80.0/100)", "Key strengths: ", "Minor reservations: "},
		{types.TierGood, 70, "Good match (70.0/100)", "Brings ", "Gaps to close: "},
		{types.TierFair, 55, "Fair match (55.0/100)", "Relevant strengths: ", "Significant concerns: "},
		{types.TierWeak, 30, "Weak match (30.0/100)", "Limited positives: ", "Main shortfalls: "},
	}
	seen := map[string]bool{}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			ex := &types.Explanation{Tier: tt.tier, FinalScore: tt.score, Strengths: []string{strength}, Weaknesses: []string{concern}}
			got := New().narrative(ex)
			assert.True(t, strings.HasPrefix(got, tt.opener), got)
			assert.Contains(t, got, tt.strong+strength)
			assert.Contains(t, got, tt.weak+concern)
			assert.False(t, seen[got], "each tier words its narrative differently")
			seen[got] = true
		})
	}

	bare := New().narrative(&types.Explanation{Tier: types.TierWeak, FinalScore: 10})
	assert.Equal(t, "Weak match (10.0/100) for this role. No factor meets the bar for a strength.", bare)
}

func TestExplain_WeakMatch(t *testing.T) {
	cand := candidate("Excel")
	cand.TotalExperienceYears = 1
	j := job("Python", "Go", "Kubernetes")
	j.MinExperienceYears = 8
	j.RequiredLevel = types.LevelLead
	j.RequiredDegree = "master"
	result := score(t, cand, j)

	ex := New().Explain(result, cand, j)

	assert.Equal(t, types.TierWeak, ex.Tier)
	assert.Contains(t, ex.Narrative, "Main shortfalls: missing 3 required skills")
	assert.Equal(t, DecisionDecline, ex.Recommendations.Decision)
	assert.Equal(t, types.RiskHigh, ex.Risk.SkillGapRisk)
	assert.NotEmpty(t, ex.Recommendations.Candidate)
	assert.Equal(t, "missing 3 required skills (Python, Go, Kubernetes)", ex.Weaknesses[0])
}

func TestAssessRisk(t *testing.T) {
	base := func() *types.MatchResult {
		return &types.MatchResult{
			Scores: types.FactorScores{Experience: 100, Education: 100},
			Details: types.MatchDetails{
				Skills:     types.SkillDetails{RequiredCoverage: 1},
				Experience: types.ExperienceDetails{CandidateYears: 4, RequiredYears: 4},
			},
		}
	}

	t.Run("no timeline is medium retention risk", func(t *testing.T) {
		risk := AssessRisk(base(), candidate())
		assert.Equal(t, types.RiskMedium, risk.RetentionRisk)
		assert.Empty(t, risk.Factors)
	})

	t.Run("retention buckets", func(t *testing.T) {
		tests := []struct {
			hopping float64
			want    string
		}{
			{0.9, types.RiskHigh},
			{0.7, types.RiskHigh},
			{0.5, types.RiskMedium},
			{0.2, types.RiskLow},
		}
		for _, tt := range tests {
			cand := candidate()
			cand.Timeline = &types.Timeline{JobHoppingScore: tt.hopping}
			assert.Equal(t, tt.want, AssessRisk(base(), cand).RetentionRisk, "hopping %v", tt.hopping)
		}
	})

	t.Run("overqualification buckets", func(t *testing.T) {
		tests := []struct {
			name   string
			years  float64
			expSc  float64
			eduSc  float64
			wanted string
		}{
			{"double with top scores", 8, 100, 100, types.RiskHigh},
			{"double with weaker education", 8, 100, 80, types.RiskMedium},
			{"one and a half", 6, 100, 100, types.RiskMedium},
			{"matching", 4, 100, 100, types.RiskLow},
		}
		for _, tt := range tests {
			r := base()
			r.Details.Experience.CandidateYears = tt.years
			r.Scores.Experience, r.Scores.Education = tt.expSc, tt.eduSc
			assert.Equal(t, tt.wanted, AssessRisk(r, nil).OverqualificationRisk, tt.name)
		}
	})

	t.Run("no required years is never overqualified", func(t *testing.T) {
		r := base()
		r.Details.Experience = types.ExperienceDetails{CandidateYears: 20}
		assert.Equal(t, types.RiskLow, AssessRisk(r, nil).OverqualificationRisk)
	})

	t.Run("skill gap buckets", func(t *testing.T) {
		tests := []struct {
			coverage float64
			want     string
		}{
			{0.49, types.RiskHigh},
			{0.5, types.RiskMedium},
			{0.79, types.RiskMedium},
			{0.8, types.RiskLow},
		}
		for _, tt := range tests {
			r := base()
			r.Details.Skills.RequiredCoverage = tt.coverage
			assert.Equal(t, tt.want, AssessRisk(r, nil).SkillGapRisk, "coverage %v", tt.coverage)
		}
	})
}

func TestExplain_NilResult(t *testing.T) {
	assert.Nil(t, New().Explain(nil, nil, nil))
}

func TestDecision(t *testing.T) {
	assert.Equal(t, DecisionAdvance, Decision(types.TierStrong))
	assert.Equal(t, DecisionConsider, Decision(types.TierGood))
	assert.Equal(t, DecisionHold, Decision(types.TierFair))
	assert.Equal(t, DecisionDecline, Decision(types.TierWeak))
}
