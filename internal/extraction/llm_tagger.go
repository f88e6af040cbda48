package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/talent-match/internal/llm"
	"github.com/jonathan/talent-match/internal/prompts"
	"github.com/jonathan/talent-match/internal/types"
)

// LLMTagger asks a language model for entities and anchors each one in the
// source text. Entities the model returns that do not occur in the text are dropped.
type LLMTagger struct {
	client       llm.Client
	documentKind string
}

// NewLLMTagger creates a tagger for documents of the given kind, e.g. "resume"
func NewLLMTagger(client llm.Client, documentKind string) *LLMTagger {
	if documentKind == "" {
		documentKind = "resume"
	}
	return &LLMTagger{client: client, documentKind: documentKind}
}

type entityResponse struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

// Tag implements Tagger
func (t *LLMTagger) Tag(ctx context.Context, text string) ([]types.Entity, error) {
	if t.client == nil {
		return nil, &TaggerError{Message: "LLM client is required"}
	}
	description, err := prompts.Render("extraction.json", "entity-system", map[string]string{
		"DocumentKind": t.documentKind,
	})
	if err != nil {
		return nil, &TaggerError{Message: "failed to load entity prompt", Cause: err}
	}
	prompt := llm.BuildExtractionPrompt(llm.EntitySchema(description), text)

	// Use TierLite for simple tagging task
	responseText, err := t.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &TaggerError{Message: "failed to generate entities", Cause: err}
	}
	return parseEntityResponse(responseText, text)
}

// parseEntityResponse decodes the model output and locates each entity in text
func parseEntityResponse(responseText, text string) ([]types.Entity, error) {
	var resp entityResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &resp); err != nil {
		return nil, &TaggerError{Message: "failed to parse entity response", Cause: err}
	}

	lower := strings.ToLower(text)
	used := make(map[int]struct{})
	var out []types.Entity
	for _, e := range resp.Entities {
		label := strings.ToUpper(strings.TrimSpace(e.Label))
		switch label {
		case types.EntityPerson, types.EntityOrg, types.EntityGPE, types.EntityDate:
		default:
			continue
		}
		start := locate(lower, strings.ToLower(strings.TrimSpace(e.Text)), used)
		if start < 0 {
			continue
		}
		end := start + len(strings.TrimSpace(e.Text))
		used[start] = struct{}{}
		out = append(out, types.Entity{Text: text[start:end], Label: label, Start: start, End: end})
	}
	return resolveOverlaps(out), nil
}

// locate returns the first unused offset of needle in haystack, or -1
func locate(haystack, needle string, used map[int]struct{}) int {
	if needle == "" {
		return -1
	}
	for offset := 0; offset < len(haystack); {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		if _, taken := used[pos]; !taken {
			return pos
		}
		offset = pos + 1
	}
	return -1
}
