package ranking

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/llm"
	"github.com/jonathan/talent-match/internal/types"
)

// NeutralSemanticScore is used when similarity cannot be computed
const NeutralSemanticScore = 50.0

// maxEmbedRunes bounds the text sent to the embedding model per document
const maxEmbedRunes = 8000

// SimilarityProvider rates the semantic similarity of a candidate and a job on [0,100]
type SimilarityProvider interface {
	Name() string
	Similarity(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (float64, error)
}

// CandidateText returns the text used to represent a candidate for similarity
func CandidateText(cand *types.CandidateProfile) string {
	if strings.TrimSpace(cand.RawText) != "" {
		return cand.RawText
	}
	parts := []string{cand.Summary}
	parts = append(parts, cand.SkillNames()...)
	for _, exp := range cand.Experience {
		parts = append(parts, exp.Title)
		parts = append(parts, exp.Achievements...)
	}
	return strings.Join(parts, "\n")
}

// JobText returns the text used to represent a job for similarity
func JobText(job *types.JobProfile) string {
	parts := []string{job.Title, job.Description}
	parts = append(parts, job.RequiredSkills...)
	parts = append(parts, job.PreferredSkills...)
	return strings.Join(parts, "\n")
}

// TokenOverlapProvider scores the share of the job's vocabulary found in the candidate text
type TokenOverlapProvider struct{}

// NewTokenOverlapProvider creates a token overlap provider
func NewTokenOverlapProvider() *TokenOverlapProvider {
	return &TokenOverlapProvider{}
}

// Name returns the provider name
func (p *TokenOverlapProvider) Name() string { return "token_overlap" }

// Similarity returns 100 × |job ∩ candidate| / |job| over content tokens.
// Either side being empty yields the neutral score.
func (p *TokenOverlapProvider) Similarity(_ context.Context, cand *types.CandidateProfile, job *types.JobProfile) (float64, error) {
	jobTokens := tokenSet(JobText(job))
	candTokens := tokenSet(CandidateText(cand))
	if len(jobTokens) == 0 || len(candTokens) == 0 {
		return NeutralSemanticScore, nil
	}
	shared := 0
	for tok := range jobTokens {
		if _, ok := candTokens[tok]; ok {
			shared++
		}
	}
	return 100 * float64(shared) / float64(len(jobTokens)), nil
}

var tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9+#.]*`)

var stopwords = toSet(strings.Fields(`a an and are as at be been by for from has have in into is it its
of on or our the their this to was we were will with you your who what which about across all also
can each over per such that than them they using via work working years year experience team teams`))

func tokenSet(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		tok = strings.TrimRight(tok, ".")
		if len(tok) < 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, s := range items {
		out[s] = struct{}{}
	}
	return out
}

// EmbeddingProvider scores cosine similarity of LLM embeddings. Negative
// cosine values clamp to 0.
type EmbeddingProvider struct {
	client llm.Client
}

// NewEmbeddingProvider creates an embedding provider backed by client
func NewEmbeddingProvider(client llm.Client) *EmbeddingProvider {
	return &EmbeddingProvider{client: client}
}

// Name returns the provider name
func (p *EmbeddingProvider) Name() string { return "embedding" }

// Similarity embeds both documents and returns 100 × cosine similarity
func (p *EmbeddingProvider) Similarity(ctx context.Context, cand *types.CandidateProfile, job *types.JobProfile) (float64, error) {
	if p.client == nil {
		return 0, &ScoringError{Message: "embedding client is not configured"}
	}
	vectors, err := p.client.Embed(ctx, []string{truncateRunes(CandidateText(cand), maxEmbedRunes), truncateRunes(JobText(job), maxEmbedRunes)})
	if err != nil {
		return 0, &ScoringError{Message: "failed to embed documents", Cause: err}
	}
	if len(vectors) != 2 {
		return 0, &ScoringError{Message: "embedding client returned an unexpected number of vectors"}
	}
	cos, ok := Cosine(vectors[0], vectors[1])
	if !ok {
		return 0, &ScoringError{Message: "embeddings are empty or mismatched"}
	}
	return 100 * clamp(cos, 0, 1), nil
}

// Cosine returns the cosine similarity of two equal-length, non-zero vectors
func Cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
