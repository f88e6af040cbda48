package skills

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

func TestNormalizeSkillName(t *testing.T) {
	tax := taxonomy.Default()
	tests := []struct {
		input    string
		expected string
	}{
		{"golang", "Go"},
		{"k8s", "Kubernetes"},
		{"  postgres  ", "PostgreSQL"},
		{"react.js", "React"},
		{"terraform", "Terraform"},
		{"snowflake", "Snowflake"},
		{"Event Sourcing", "Event Sourcing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tax, tt.input))
		})
	}
}

func TestNormalizeSkillName_NilTaxonomy(t *testing.T) {
	assert.Equal(t, "Golang", NormalizeSkillName(nil, "golang"))
}

func TestNormalizeSkillName_NonASCIIFirstLetter(t *testing.T) {
	got := NormalizeSkillName(nil, "élasticapi")
	assert.Equal(t, "Élasticapi", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Ørm", NormalizeSkillName(nil, "ørm"))
}

func TestBuildRequirements(t *testing.T) {
	reqs := BuildRequirements(taxonomy.Default(),
		[]string{"Python", "django", "k8s", "python"},
		[]string{"Kubernetes", "Redis", ""},
		[]string{"Python"},
	)
	assert.Equal(t, []string{"Python", "Django", "Kubernetes"}, reqs.Required)
	assert.Equal(t, []string{"Redis"}, reqs.Preferred)
	assert.Equal(t, []string{"Python"}, reqs.Critical)
}

func TestBuildRequirements_Empty(t *testing.T) {
	reqs := BuildRequirements(taxonomy.Default(), nil, nil, nil)
	assert.Empty(t, reqs.Required)
	assert.Empty(t, reqs.Preferred)
	assert.Empty(t, reqs.Critical)
}

func TestMerge(t *testing.T) {
	three, five := 3.0, 5.0
	merged := Merge([]types.ExtractedSkill{
		{Name: "Python", Source: types.SourceSection, Confidence: 0.8, Years: &three},
		{Name: "python", Source: types.SourcePattern, Confidence: 0.95},
		{Name: "Docker", Source: types.SourceContext, Confidence: 0.85},
		{Name: "Docker", Source: types.SourcePattern, Confidence: 0.85, Years: &five},
	})

	assert.Len(t, merged, 2)
	assert.Equal(t, "python", merged[0].Name)
	assert.Equal(t, 0.95, merged[0].Confidence)
	assert.Equal(t, 2, merged[0].Mentions)
	assert.Equal(t, 3.0, *merged[0].Years)

	assert.Equal(t, "Docker", merged[1].Name)
	assert.Equal(t, types.SourcePattern, merged[1].Source)
	assert.Equal(t, 5.0, *merged[1].Years)
}
