// Package pipeline wires parsing, scoring, explanation and grading into end-to-end operations.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/explain"
	"github.com/jonathan/talent-match/internal/extraction"
	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/parsing"
	"github.com/jonathan/talent-match/internal/quality"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// jobIDLength is the number of hash characters in a derived job ID
const jobIDLength = 16

// Steps reported through ProgressCallback
const (
	StepCandidate = "candidate_profile"
	StepJob       = "job_profile"
	StepScore     = "match_score"
	StepExplain   = "explanation"
	StepPersist   = "persist"
	StepQuality   = "quality"
	StepRank      = "ranking"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// MatchStore persists scored matches and snapshots of the profiles behind them
type MatchStore interface {
	SaveMatch(ctx context.Context, result *types.MatchResult, explanation *types.Explanation) (*db.MatchRecord, error)
	SaveCandidate(ctx context.Context, profile *types.CandidateProfile) error
	SaveJob(ctx context.Context, job *types.JobProfile) error
}

// Deps are the collaborators of a Pipeline. Only Taxonomy is required.
type Deps struct {
	Taxonomy   *taxonomy.Taxonomy
	Config     *config.Config              // nil uses config.Defaults
	Tagger     extraction.Tagger           // nil uses the rule tagger
	Similarity ranking.SimilarityProvider  // nil uses token overlap
	Store      MatchStore                  // nil disables persistence
	Logger     *zap.Logger
	Now        func() time.Time
	OnProgress ProgressCallback
}

// Pipeline turns raw resumes and job records into explained, graded matches
type Pipeline struct {
	resumes     *parsing.ResumeParser
	jobs        *parsing.JobParser
	scorer      ranking.MatchScorer
	cache       *ranking.CachedScorer
	explainer   *explain.Explainer
	grader      *quality.Grader
	store       MatchStore
	logger      *zap.Logger
	onProgress  ProgressCallback
	concurrency int
}

// Outcome is one scored and explained match
type Outcome struct {
	Result      *types.MatchResult `json:"result"`
	Explanation *types.Explanation `json:"explanation"`
	Persisted   bool               `json:"persisted"`
}

// Evaluation is the full assessment of one resume against one job
type Evaluation struct {
	Candidate   *types.CandidateProfile `json:"candidate"`
	Job         *types.JobProfile       `json:"job"`
	Result      *types.MatchResult      `json:"result"`
	Explanation *types.Explanation      `json:"explanation"`
	Quality     *types.QualityReport    `json:"quality"`
	Persisted   bool                    `json:"persisted"`
}

// New assembles a pipeline from its dependencies
func New(deps Deps) (*Pipeline, error) {
	if deps.Taxonomy == nil {
		return nil, &types.ConfigurationError{Field: "taxonomy", Message: "taxonomy is required"}
	}
	cfg := config.Defaults()
	if deps.Config != nil {
		cfg = deps.Config.MergeWithDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	tagger := deps.Tagger
	if tagger == nil {
		tagger = extraction.NewRuleTagger(deps.Taxonomy)
	}

	extractor := extraction.New(deps.Taxonomy, tagger,
		extraction.WithWindow(cfg.Extraction.ProficiencyWindow),
		extraction.WithFuzzy(cfg.Extraction.Fuzzy),
		extraction.WithClock(now),
		extraction.WithLogger(logger.Named("extraction")),
	)

	p := &Pipeline{
		resumes: parsing.NewResumeParser(deps.Taxonomy, extractor,
			parsing.WithHeaderThreshold(cfg.Extraction.SectionThreshold),
			parsing.WithClock(now),
			parsing.WithLogger(logger.Named("parsing")),
		),
		jobs: parsing.NewJobParser(deps.Taxonomy, extractor, cfg.Extraction.SectionThreshold),
		explainer: explain.New(
			explain.WithStrengthThreshold(cfg.Explain.StrengthThreshold),
			explain.WithWeaknessThreshold(cfg.Explain.WeaknessThreshold),
			explain.WithMaxHighlights(cfg.Explain.MaxHighlights),
		),
		grader:      quality.NewGrader(deps.Taxonomy),
		store:       deps.Store,
		logger:      logger,
		onProgress:  deps.OnProgress,
		concurrency: cfg.Ranking.Concurrency,
	}

	var scorer ranking.MatchScorer = ranking.NewScorer(deps.Similarity,
		ranking.WithTaxonomy(deps.Taxonomy),
		ranking.WithLogger(logger.Named("ranking")),
	)
	if cfg.Ranking.Cache {
		p.cache = ranking.NewCachedScorer(scorer)
		scorer = p.cache
	}
	p.scorer = scorer
	return p, nil
}

// BuildCandidate parses resume text into a candidate profile
func (p *Pipeline) BuildCandidate(ctx context.Context, text string) (*types.CandidateProfile, error) {
	profile, err := p.resumes.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	p.emit(StepCandidate, fmt.Sprintf("Parsed candidate %s with %d skills", orUnnamed(profile.Contact.Name), len(profile.Skills)), profile)
	return profile, nil
}

// BuildJob builds a validated job profile. A record without an ID gets one
// derived from its title, company and description.
func (p *Pipeline) BuildJob(ctx context.Context, rec types.JobRecord) (*types.JobProfile, error) {
	if rec.ID == "" {
		rec.ID = JobID(rec)
	}
	job, err := p.jobs.Build(ctx, rec)
	if err != nil {
		return nil, err
	}
	p.emit(StepJob, fmt.Sprintf("Parsed job %q with %d required skills", job.Title, len(job.RequiredSkills)), job)
	return job, nil
}

// Match scores, explains and, when a store is configured, persists one match.
// A persistence failure is logged and reported through Outcome.Persisted only.
func (p *Pipeline) Match(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (*Outcome, error) {
	result, err := p.scorer.Score(ctx, cand, job)
	if err != nil {
		return nil, err
	}
	p.emit(StepScore, fmt.Sprintf("Scored %s: %.1f", result.CandidateID, result.FinalScore), result)

	out := &Outcome{Result: result, Explanation: p.explainer.Explain(result, cand, job)}
	p.emit(StepExplain, out.Explanation.Narrative, out.Explanation)
	out.Persisted = p.persist(ctx, out, cand, job)
	return out, nil
}

// Rank scores every candidate against job, best first, and explains each result
func (p *Pipeline) Rank(ctx context.Context, candidates []*types.CandidateProfile, job *types.JobProfile) ([]Outcome, error) {
	ranked, err := ranking.RankIndexed(ctx, p.scorer, candidates, job, p.concurrency)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(ranked))
	for i := range ranked {
		cand := candidates[ranked[i].Index]
		out := Outcome{Result: &ranked[i].Result}
		out.Explanation = p.explainer.Explain(out.Result, cand, job)
		out.Persisted = p.persist(ctx, &out, cand, job)
		outcomes = append(outcomes, out)
	}
	p.emit(StepRank, fmt.Sprintf("Ranked %d candidates for %q", len(outcomes), job.Title), nil)
	return outcomes, nil
}

// Grade scores a candidate profile's resume quality
func (p *Pipeline) Grade(profile *types.CandidateProfile) *types.QualityReport {
	report := p.grader.Grade(profile, nil)
	p.emit(StepQuality, fmt.Sprintf("Resume graded %s (%.1f)", report.Grade, report.Score), report)
	return report
}

// Evaluate runs the whole flow for one resume and one job record
func (p *Pipeline) Evaluate(ctx context.Context, resumeText string, rec types.JobRecord) (*Evaluation, error) {
	cand, err := p.BuildCandidate(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("candidate parsing failed: %w", err)
	}
	job, err := p.BuildJob(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("job parsing failed: %w", err)
	}
	out, err := p.Match(ctx, cand, job)
	if err != nil {
		return nil, fmt.Errorf("matching failed: %w", err)
	}
	return &Evaluation{
		Candidate:   cand,
		Job:         job,
		Result:      out.Result,
		Explanation: out.Explanation,
		Quality:     p.Grade(cand),
		Persisted:   out.Persisted,
	}, nil
}

// CacheStats reports match cache hits and misses; both are zero when caching is off
func (p *Pipeline) CacheStats() (hits, misses int) {
	if p.cache == nil {
		return 0, 0
	}
	return p.cache.Stats()
}

// JobID derives a stable job ID from a record's content
func JobID(rec types.JobRecord) string {
	return "job_" + ingestion.ContentHash(strings.TrimSpace(rec.Title), rec.Company, rec.Description)[:jobIDLength]
}

func (p *Pipeline) persist(ctx context.Context, out *Outcome, cand *types.CandidateProfile, job *types.JobProfile) bool {
	if p.store == nil {
		return false
	}
	// Snapshots are best effort; the match row is what Persisted reports.
	if cand != nil && cand.ID != "" {
		if err := p.store.SaveCandidate(ctx, cand); err != nil {
			p.logger.Warn("failed to save candidate snapshot", zap.String("candidate_id", cand.ID), zap.Error(err))
		}
	}
	if job != nil && job.ID != "" {
		if err := p.store.SaveJob(ctx, job); err != nil {
			p.logger.Warn("failed to save job snapshot", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	if _, err := p.store.SaveMatch(ctx, out.Result, out.Explanation); err != nil {
		p.logger.Warn("failed to persist match, continuing without persistence",
			zap.String("candidate_id", out.Result.CandidateID),
			zap.String("job_id", out.Result.JobID),
			zap.Error(err))
		return false
	}
	p.emit(StepPersist, "Saved match "+out.Result.ID, nil)
	return true
}

func (p *Pipeline) emit(step, message string, content any) {
	p.logger.Debug(message, zap.String("step", step))
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

func orUnnamed(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
