package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

const resume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | San Francisco, CA

SUMMARY
Backend engineer focused on distributed systems.

EXPERIENCE
Senior Software Engineer | Acme Corp | San Francisco, CA | Jan 2020 – Present
• Led migration of billing services to Kubernetes, cutting costs by 30%
• Built APIs using Go and PostgreSQL

Software Engineer
Globex Inc, Austin, TX
Jun 2016 – Dec 2019
• Developed Django services in Python

EDUCATION
B.S. in Computer Science, Stanford University, 2016

SKILLS
Go, Python, Docker, Kubernetes, PostgreSQL
`

func clock() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

func jobRecord() types.JobRecord {
	years := 5.0
	return types.JobRecord{
		Title:              "Senior Backend Engineer",
		Company:            "Initech",
		Description:        "We build payment infrastructure in Go.",
		RequiredSkills:     []string{"Go", "PostgreSQL", "Kubernetes"},
		PreferredSkills:    []string{"Terraform"},
		MinExperienceYears: &years,
		RequiredDegree:     "bachelor",
	}
}

type fakeStore struct {
	mu         sync.Mutex
	saved      []*types.MatchResult
	candidates map[string]bool
	jobs       map[string]bool
	err        error
}

func (s *fakeStore) SaveCandidate(_ context.Context, c *types.CandidateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.candidates == nil {
		s.candidates = make(map[string]bool)
	}
	s.candidates[c.ID] = true
	return nil
}

func (s *fakeStore) SaveJob(_ context.Context, j *types.JobProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.jobs == nil {
		s.jobs = make(map[string]bool)
	}
	s.jobs[j.ID] = true
	return nil
}

func (s *fakeStore) SaveMatch(_ context.Context, r *types.MatchResult, _ *types.Explanation) (*db.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.saved = append(s.saved, r)
	return &db.MatchRecord{CandidateID: r.CandidateID, JobID: r.JobID, FinalScore: r.FinalScore}, nil
}

func newPipeline(t *testing.T, deps Deps) *Pipeline {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	deps.Taxonomy = tax
	deps.Now = clock
	p, err := New(deps)
	require.NoError(t, err)
	return p
}

func TestNew_RequiresTaxonomy(t *testing.T) {
	_, err := New(Deps{})
	var ce *types.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "taxonomy", ce.Field)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.Ranking.Provider = "bert"

	_, err = New(Deps{Taxonomy: tax, Config: &cfg})
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	store := &fakeStore{}
	var steps []string
	p := newPipeline(t, Deps{Store: store, OnProgress: func(e ProgressEvent) { steps = append(steps, e.Step) }})

	ev, err := p.Evaluate(context.Background(), resume, jobRecord())
	require.NoError(t, err)

	assert.Regexp(t, `^cand_[0-9a-f]{16}$`, ev.Candidate.ID)
	assert.Regexp(t, `^job_[0-9a-f]{16}$`, ev.Job.ID)
	assert.Equal(t, ev.Candidate.ID, ev.Result.CandidateID)
	assert.Equal(t, ev.Job.ID, ev.Result.JobID)
	assert.InDelta(t, 100, ev.Result.Scores.Skills, 1e-9)
	assert.InDelta(t, types.WeightedSum(ev.Result.Scores, ev.Result.Weights), ev.Result.FinalScore, 1e-9)
	require.NotNil(t, ev.Explanation)
	assert.NotEmpty(t, ev.Explanation.Narrative)
	require.NotNil(t, ev.Quality)
	assert.Greater(t, ev.Quality.Score, 0.0)

	assert.True(t, ev.Persisted)
	require.Len(t, store.saved, 1)
	assert.Equal(t, ev.Result.ID, store.saved[0].ID)
	assert.True(t, store.candidates[ev.Candidate.ID])
	assert.True(t, store.jobs[ev.Job.ID])
	assert.Equal(t, []string{StepCandidate, StepJob, StepScore, StepExplain, StepPersist, StepQuality}, steps)
}

func TestEvaluate_InvalidJobRecord(t *testing.T) {
	p := newPipeline(t, Deps{})
	rec := jobRecord()
	rec.Title = ""

	_, err := p.Evaluate(context.Background(), resume, rec)
	require.Error(t, err)
	var ce *types.ConfigurationError
	assert.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "job parsing failed")
}

func TestMatch_PersistFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := newPipeline(t, Deps{Store: &fakeStore{err: errors.New("connection refused")}, Logger: zap.New(core)})
	ctx := context.Background()

	cand, err := p.BuildCandidate(ctx, resume)
	require.NoError(t, err)
	job, err := p.BuildJob(ctx, jobRecord())
	require.NoError(t, err)

	out, err := p.Match(ctx, cand, job)
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Equal(t, 1, logs.FilterMessage("failed to persist match, continuing without persistence").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save candidate snapshot").Len())
}

func TestMatch_UsesCache(t *testing.T) {
	p := newPipeline(t, Deps{})
	ctx := context.Background()
	cand, err := p.BuildCandidate(ctx, resume)
	require.NoError(t, err)
	job, err := p.BuildJob(ctx, jobRecord())
	require.NoError(t, err)

	first, err := p.Match(ctx, cand, job)
	require.NoError(t, err)
	second, err := p.Match(ctx, cand, job)
	require.NoError(t, err)

	assert.Equal(t, first.Result.FinalScore, second.Result.FinalScore)
	hits, misses := p.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestMatch_CacheDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Ranking.Cache = false
	p := newPipeline(t, Deps{Config: &cfg})

	hits, misses := p.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestRank(t *testing.T) {
	store := &fakeStore{}
	p := newPipeline(t, Deps{Store: store})
	job, err := p.BuildJob(context.Background(), jobRecord())
	require.NoError(t, err)

	strong := &types.CandidateProfile{
		ID:                   "cand_strong",
		Skills:               map[string]types.SkillEntry{"Go": {Name: "Go"}, "PostgreSQL": {Name: "PostgreSQL"}, "Kubernetes": {Name: "Kubernetes"}},
		TotalExperienceYears: 6,
		Level:                types.LevelSenior,
		Education:            []types.EducationRecord{{DegreeLevel: "bachelor"}},
	}
	weak := &types.CandidateProfile{
		ID:     "cand_weak",
		Skills: map[string]types.SkillEntry{"Excel": {Name: "Excel"}},
	}

	outcomes, err := p.Rank(context.Background(), []*types.CandidateProfile{weak, strong}, job)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "cand_strong", outcomes[0].Result.CandidateID)
	assert.Greater(t, outcomes[0].Result.FinalScore, outcomes[1].Result.FinalScore)
	for _, o := range outcomes {
		require.NotNil(t, o.Explanation)
		assert.True(t, o.Persisted)
	}
	assert.Len(t, store.saved, 2)
	assert.Len(t, store.candidates, 2)
	assert.Len(t, store.jobs, 1)
}

func TestRank_CandidatesWithoutIDsKeepTheirOwnProfiles(t *testing.T) {
	p := newPipeline(t, Deps{})
	job, err := p.BuildJob(context.Background(), jobRecord())
	require.NoError(t, err)

	steady := &types.CandidateProfile{
		Skills:               map[string]types.SkillEntry{"Go": {Name: "Go"}, "PostgreSQL": {Name: "PostgreSQL"}, "Kubernetes": {Name: "Kubernetes"}},
		TotalExperienceYears: 6,
		Timeline:             &types.Timeline{JobHoppingScore: 0.2},
	}
	hopper := &types.CandidateProfile{
		Skills:   map[string]types.SkillEntry{"Excel": {Name: "Excel"}},
		Timeline: &types.Timeline{JobHoppingScore: 0.9},
	}

	outcomes, err := p.Rank(context.Background(), []*types.CandidateProfile{steady, hopper}, job)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, types.RiskLow, outcomes[0].Explanation.Risk.RetentionRisk)
	assert.Equal(t, types.RiskHigh, outcomes[1].Explanation.Risk.RetentionRisk)
}

func TestJobID_Stable(t *testing.T) {
	a, b := jobRecord(), jobRecord()
	assert.Equal(t, JobID(a), JobID(b))
	b.Company = "Umbrella"
	assert.NotEqual(t, JobID(a), JobID(b))
}

func TestFromConfig_NoExternalServices(t *testing.T) {
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	cfg := config.Defaults()

	deps, res, err := FromConfig(context.Background(), &cfg, tax, nil)
	require.NoError(t, err)
	assert.Nil(t, deps.Similarity)
	assert.Nil(t, deps.Tagger)
	assert.Nil(t, deps.Store)
	assert.NoError(t, res.Close())
}
