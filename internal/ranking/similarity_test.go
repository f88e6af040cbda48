package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/llm"
	"github.com/jonathan/talent-match/internal/types"
)

type fakeEmbedder struct {
	vectors [][]float32
	err     error
	inputs  []string
}

func (f *fakeEmbedder) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.inputs = texts
	return f.vectors, f.err
}

func (f *fakeEmbedder) Close() error { return nil }

func TestTokenOverlapProvider(t *testing.T) {
	p := NewTokenOverlapProvider()
	j := &types.JobProfile{Title: "Backend Engineer", Description: "Python Django PostgreSQL"}

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"full overlap", "Backend engineer working with Python, Django and PostgreSQL.", 100},
		{"partial overlap", "Python backend", 40},
		{"disjoint", "Pastry chef and baker", 0},
		{"empty candidate", "", NeutralSemanticScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Similarity(context.Background(), &types.CandidateProfile{RawText: tt.text}, j)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCandidateText_FallsBackToStructuredFields(t *testing.T) {
	cand := candidate("c1", "Go")
	cand.Summary = "Platform engineer"
	cand.Experience = []types.ExperienceRecord{{Title: "SRE", Achievements: []string{"Cut latency"}}}

	text := CandidateText(cand)
	for _, want := range []string{"Platform engineer", "Go", "SRE", "Cut latency"} {
		assert.Contains(t, text, want)
	}
}

func TestEmbeddingProvider(t *testing.T) {
	cand := &types.CandidateProfile{RawText: "Go developer"}
	j := &types.JobProfile{Title: "Go Engineer"}

	tests := []struct {
		name    string
		vectors [][]float32
		want    float64
	}{
		{"identical", [][]float32{{1, 0}, {1, 0}}, 100},
		{"orthogonal", [][]float32{{1, 0}, {0, 1}}, 0},
		{"opposite clamps to zero", [][]float32{{1, 0}, {-1, 0}}, 0},
		{"partial", [][]float32{{1, 1}, {1, 0}}, 70.71067811865476},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeEmbedder{vectors: tt.vectors}
			got, err := NewEmbeddingProvider(client).Similarity(context.Background(), cand, j)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-4)
			assert.Equal(t, "Go developer", client.inputs[0])
		})
	}
}

func TestEmbeddingProvider_Errors(t *testing.T) {
	cand := &types.CandidateProfile{RawText: "Go developer"}
	j := &types.JobProfile{Title: "Go Engineer"}

	tests := []struct {
		name   string
		client llm.Client
	}{
		{"no client", nil},
		{"client error", &fakeEmbedder{err: errors.New("quota")}},
		{"wrong vector count", &fakeEmbedder{vectors: [][]float32{{1}}}},
		{"zero vector", &fakeEmbedder{vectors: [][]float32{{0, 0}, {1, 0}}}},
		{"length mismatch", &fakeEmbedder{vectors: [][]float32{{1, 0, 0}, {1, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmbeddingProvider(tt.client).Similarity(context.Background(), cand, j)
			var scoringErr *ScoringError
			assert.True(t, errors.As(err, &scoringErr))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "hé", truncateRunes("héllo", 2))
}
