package ranking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

func TestRankCandidates_OrdersByFinalScore(t *testing.T) {
	s := newTestScorer(t)
	j := job("Python", "Django", "PostgreSQL", "Kubernetes")
	candidates := []*types.CandidateProfile{
		candidate("c_low", "Python"),
		candidate("c_high", "Python", "Django", "PostgreSQL", "Kubernetes"),
		candidate("c_mid", "Python", "Django"),
		candidate("c_mid_twin", "Python", "Django"),
	}

	results, err := RankCandidates(context.Background(), s, candidates, j, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.CandidateID)
	}
	assert.Equal(t, []string{"c_high", "c_mid", "c_mid_twin", "c_low"}, ids)
}

func TestRankIndexed_KeepsInputIndex(t *testing.T) {
	j := job("Python", "Django")
	candidates := []*types.CandidateProfile{
		candidate("", "Python"),
		candidate("", "Python", "Django"),
		candidate("", "Excel"),
	}

	ranked, err := RankIndexed(context.Background(), newTestScorer(t), candidates, j, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	indexes := []int{ranked[0].Index, ranked[1].Index, ranked[2].Index}
	assert.Equal(t, []int{1, 0, 2}, indexes)
	assert.Greater(t, ranked[0].Result.FinalScore, ranked[1].Result.FinalScore)
}

type trackingScorer struct {
	inner    MatchScorer
	inFlight atomic.Int32
	mu       sync.Mutex
	peak     int32
}

func (t *trackingScorer) Score(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (*types.MatchResult, error) {
	n := t.inFlight.Add(1)
	defer t.inFlight.Add(-1)
	t.mu.Lock()
	t.peak = max(t.peak, n)
	t.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	return t.inner.Score(ctx, cand, job)
}

func TestRankCandidates_RespectsConcurrencyLimit(t *testing.T) {
	tracker := &trackingScorer{inner: newTestScorer(t)}
	candidates := make([]*types.CandidateProfile, 12)
	for i := range candidates {
		candidates[i] = candidate(string(rune('a'+i)), "Python")
	}

	results, err := RankCandidates(context.Background(), tracker, candidates, job("Python"), 3)
	require.NoError(t, err)

	assert.Len(t, results, 12)
	assert.LessOrEqual(t, tracker.peak, int32(3))
}

type failingScorer struct{ failID string }

func (f failingScorer) Score(_ context.Context, cand *types.CandidateProfile, _ *types.JobProfile) (*types.MatchResult, error) {
	if cand.ID == f.failID {
		return nil, errors.New("boom")
	}
	return &types.MatchResult{CandidateID: cand.ID}, nil
}

func TestRankCandidates_Errors(t *testing.T) {
	ctx := context.Background()
	candidates := []*types.CandidateProfile{candidate("ok"), candidate("bad")}

	_, err := RankCandidates(ctx, failingScorer{failID: "bad"}, candidates, job(), 0)
	require.Error(t, err)
	var scoringErr *ScoringError
	assert.True(t, errors.As(err, &scoringErr))
	assert.Contains(t, err.Error(), `"bad"`)

	_, err = RankCandidates(ctx, failingScorer{}, []*types.CandidateProfile{nil}, job(), 1)
	assert.Error(t, err)

	_, err = RankCandidates(ctx, failingScorer{}, candidates, nil, 1)
	assert.Error(t, err)
}

func TestRankCandidates_Empty(t *testing.T) {
	results, err := RankCandidates(context.Background(), newTestScorer(t), nil, job("Python"), 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}
