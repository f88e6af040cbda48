package ranking

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/types"
)

// DefaultConcurrency bounds parallel scoring when no limit is given
const DefaultConcurrency = 4

// Ranked is one scored candidate with its position in the input slice
type Ranked struct {
	Index  int
	Result types.MatchResult
}

// RankCandidates scores every candidate against job with at most concurrency
// scorers in flight and returns results by final score, highest first. Ties
// keep candidate ID order. The first scoring error cancels the batch.
func RankCandidates(ctx context.Context, scorer MatchScorer, candidates []*types.CandidateProfile, job *types.JobProfile, concurrency int) ([]types.MatchResult, error) {
	ranked, err := RankIndexed(ctx, scorer, candidates, job, concurrency)
	if err != nil {
		return nil, err
	}
	out := make([]types.MatchResult, len(ranked))
	for i, r := range ranked {
		out[i] = r.Result
	}
	return out, nil
}

// RankIndexed is RankCandidates keeping each result's input index, so callers can
// pair results with profiles that share or lack an ID
func RankIndexed(ctx context.Context, scorer MatchScorer, candidates []*types.CandidateProfile, job *types.JobProfile, concurrency int) ([]Ranked, error) {
	if scorer == nil || job == nil {
		return nil, &ScoringError{Message: "scorer and job profile are required"}
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	for i, cand := range candidates {
		if cand == nil {
			return nil, &ScoringError{Message: fmt.Sprintf("candidate %d is nil", i)}
		}
	}

	results := make([]*types.MatchResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cand := range candidates {
		g.Go(func() error {
			r, err := scorer.Score(gctx, cand, job)
			if err != nil {
				return &ScoringError{Message: fmt.Sprintf("failed to score candidate %q", cand.ID), Cause: err}
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Ranked, 0, len(results))
	for i, r := range results {
		out = append(out, Ranked{Index: i, Result: *r})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Result, out[j].Result
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		return a.CandidateID < b.CandidateID
	})
	return out, nil
}
