package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"prose around object", "Here are the entities:\n{\"entities\": []}\nDone.", `{"entities": []}`},
		{"prose around array", "Result: [1, 2]", `[1, 2]`},
		{"no JSON at all", "sorry", "sorry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestBuildExtractionPrompt_EntitySchema(t *testing.T) {
	prompt := BuildExtractionPrompt(EntitySchema("Find entities."), "Jane Doe worked at Acme")
	assert.Contains(t, prompt, "Find entities.")
	assert.Contains(t, prompt, `"entities"`)
	assert.Contains(t, prompt, "(required)")
	assert.Contains(t, prompt, "Jane Doe worked at Acme")
	assert.Contains(t, prompt, "character for character")
	assert.Contains(t, prompt, "No markdown fences")
}

func TestAPIError(t *testing.T) {
	err := &APIError{Message: "no candidates in response"}
	assert.Equal(t, "llm API call failed: no candidates in response", err.Error())
	assert.Nil(t, err.Unwrap())
}
