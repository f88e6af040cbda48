package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

func loadTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	return tax
}

func candidate(id string, skillNames ...string) *types.CandidateProfile {
	c := &types.CandidateProfile{ID: id, Skills: map[string]types.SkillEntry{}}
	for _, n := range skillNames {
		c.Skills[n] = types.SkillEntry{Name: n}
	}
	return c
}

func job(required ...string) *types.JobProfile {
	return &types.JobProfile{
		ID:             "job_1",
		Title:          "Backend Engineer",
		RequiredSkills: required,
		Weights:        types.DefaultWeights(),
	}
}

type fixedProvider struct {
	score float64
	err   error
}

func (p fixedProvider) Name() string { return "fixed" }

func (p fixedProvider) Similarity(context.Context, *types.CandidateProfile, *types.JobProfile) (float64, error) {
	return p.score, p.err
}

func newTestScorer(t *testing.T, opts ...Option) *Scorer {
	t.Helper()
	opts = append([]Option{WithTaxonomy(loadTaxonomy(t))}, opts...)
	return NewScorer(fixedProvider{score: 80}, opts...)
}
