package ranking

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/types"
)

// CachedScorer memoizes match results by the content of the candidate and job.
// The cache is advisory: a key that cannot be computed bypasses it.
type CachedScorer struct {
	scorer MatchScorer

	mu      sync.Mutex
	entries map[string]types.MatchResult
	hits    int
	misses  int
}

// NewCachedScorer wraps scorer with an in-memory cache
func NewCachedScorer(scorer MatchScorer) *CachedScorer {
	return &CachedScorer{scorer: scorer, entries: make(map[string]types.MatchResult)}
}

// Score returns the cached result for identical inputs, scoring on a miss
func (c *CachedScorer) Score(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (*types.MatchResult, error) {
	key, ok := cacheKey(cand, job)
	if !ok {
		return c.scorer.Score(ctx, cand, job)
	}

	c.mu.Lock()
	if r, found := c.entries[key]; found {
		c.hits++
		c.mu.Unlock()
		return &r, nil
	}
	c.misses++
	c.mu.Unlock()

	r, err := c.scorer.Score(ctx, cand, job)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = *r
	c.mu.Unlock()
	return r, nil
}

// Stats returns the hit and miss counts
func (c *CachedScorer) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached results
func (c *CachedScorer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached result
func (c *CachedScorer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]types.MatchResult)
	c.hits, c.misses = 0, 0
}

func cacheKey(cand *types.CandidateProfile, job *types.JobProfile) (string, bool) {
	if cand == nil || job == nil {
		return "", false
	}
	cb, err := json.Marshal(cand)
	if err != nil {
		return "", false
	}
	jb, err := json.Marshal(job)
	if err != nil {
		return "", false
	}
	return ingestion.ContentHash(string(cb), cand.RawText, string(jb)), true
}
