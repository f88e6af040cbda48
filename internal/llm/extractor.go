package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes a JSON extraction task: the instructions for the
// model and the fields its answer must carry.
type ExtractionSchema struct {
	Name        string
	Description string // task instructions placed ahead of the output format
	Fields      []SchemaField
	Rules       []string // extra constraints listed after the default ones
}

// SchemaField is one top-level field of the expected JSON answer
type SchemaField struct {
	Name        string
	Type        string // JSON shape hint; defaults to "string"
	Description string
	Required    bool
}

// defaultRules apply to every extraction prompt
var defaultRules = []string{
	"Copy values from the text; never invent, translate or summarize them.",
	"Answer with the JSON object only. No markdown fences and no commentary.",
}

// BuildExtractionPrompt renders the instructions, the output shape, the rules
// and the fenced input text into one prompt
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(schema.Description))
	sb.WriteString("\n\nOutput format:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, typeHint)
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n\nRules:\n")
	for _, rule := range append(append([]string{}, defaultRules...), schema.Rules...) {
		fmt.Fprintf(&sb, "- %s\n", rule)
	}

	fmt.Fprintf(&sb, "\nText:\n\"\"\"\n%s\n\"\"\"\n", inputText)
	return sb.String()
}

// EntitySchema is the named-entity tagging task. Spans must be verbatim so the
// tagger can find their offsets in the source document.
func EntitySchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "Entities",
		Description: description,
		Fields: []SchemaField{
			{
				Name:        "entities",
				Type:        `[{"text": "string", "label": "PERSON|ORG|GPE|DATE"}]`,
				Description: "every person, organization, location and date in document order",
				Required:    true,
			},
		},
		Rules: []string{
			"Each text value must appear character for character in the input.",
			"List an entity once per occurrence.",
		},
	}
}
