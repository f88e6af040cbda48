// Package ranking scores candidate profiles against job profiles and ranks them by compatibility.
package ranking

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// MatchScorer scores one candidate against one job
type MatchScorer interface {
	Score(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (*types.MatchResult, error)
}

// Scorer computes the four factor sub-scores and their weighted final score.
// It holds no per-call state and is safe for concurrent use.
type Scorer struct {
	provider SimilarityProvider
	tax      *taxonomy.Taxonomy
	logger   *zap.Logger
	newID    func() string
}

// Option configures a Scorer
type Option func(*Scorer)

// WithTaxonomy sets the taxonomy used to canonicalize skills and compare fields
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(s *Scorer) {
		if tax != nil {
			s.tax = tax
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides how match result IDs are minted
func WithIDGenerator(fn func() string) Option {
	return func(s *Scorer) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewScorer creates a scorer. A nil provider falls back to token overlap.
func NewScorer(provider SimilarityProvider, opts ...Option) *Scorer {
	if provider == nil {
		provider = NewTokenOverlapProvider()
	}
	s := &Scorer{
		provider: provider,
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tax == nil {
		s.tax = taxonomy.Default()
	}
	return s
}

// Score compares a candidate with a job. Only invalid weights or a cancelled
// context produce an error; missing data scores neutrally.
func (s *Scorer) Score(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (*types.MatchResult, error) {
	if cand == nil || job == nil {
		return nil, &ScoringError{Message: "candidate and job profiles are required"}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ScoringError{Message: "scoring cancelled", Cause: err}
	}
	weights := job.Weights
	if weights.IsZero() {
		weights = types.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	semantic, semDetails := s.semantic(ctx, cand, job)
	skillScore, skillDetails := ScoreSkills(s.tax, cand, job)
	expScore, expDetails := ScoreExperience(cand.TotalExperienceYears, cand.Level, job.MinExperienceYears, job.RequiredLevel)
	eduScore, eduDetails := ScoreEducation(s.tax, cand, job)

	scores := types.FactorScores{
		Semantic:   semantic,
		Skills:     skillScore,
		Experience: expScore,
		Education:  eduScore,
	}
	result := &types.MatchResult{
		ID:          s.newID(),
		CandidateID: cand.ID,
		JobID:       job.ID,
		FinalScore:  types.WeightedSum(scores, weights),
		Scores:      scores,
		Weights:     weights,
		Details: types.MatchDetails{
			Semantic:   semDetails,
			Skills:     skillDetails,
			Experience: expDetails,
			Education:  eduDetails,
		},
	}

	s.logger.Debug("scored match",
		zap.String("candidate_id", cand.ID),
		zap.String("job_id", job.ID),
		zap.Float64("final_score", result.FinalScore))
	return result, nil
}

func (s *Scorer) semantic(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (float64, types.SemanticDetails) {
	details := types.SemanticDetails{Provider: s.provider.Name()}
	score, err := s.provider.Similarity(ctx, cand, job)
	if err == nil && math.IsNaN(score) {
		err = &ScoringError{Message: "similarity provider returned NaN"}
	}
	if err != nil {
		s.logger.Warn("semantic similarity unavailable, using neutral score",
			zap.String("provider", details.Provider),
			zap.Error(err))
		details.Fallback = true
		return NeutralSemanticScore, details
	}
	return clamp(score, 0, 100), details
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
