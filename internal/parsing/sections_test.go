package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderConfidence(t *testing.T) {
	s := NewSegmenter(loadTaxonomy(t), 0)

	tests := []struct {
		name     string
		line     string
		section  string
		accepted bool
	}{
		{"all caps", "EXPERIENCE", "experience", true},
		{"title case", "Work Experience", "experience", true},
		{"trailing colon", "Technical Skills:", "skills", true},
		{"decorated", "=== Education ===", "education", true},
		{"joined prefix", "Skills & Tools", "skills", true},
		{"contained caps", "RELEVANT EXPERIENCE", "experience", true},
		{"contained title case", "Relevant Experience", "experience", false},
		{"sentence", "Gained experience with distributed systems at scale", "experience", false},
		{"bullet", "• Skills", "", false},
		{"dated line", "Education 2016", "", false},
		{"no header word", "Jane Doe", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, conf := s.HeaderConfidence(tt.line)
			assert.Equal(t, tt.accepted, conf >= DefaultHeaderThreshold, "confidence %.2f", conf)
			if tt.section != "" {
				assert.Equal(t, tt.section, name)
			}
			assert.LessOrEqual(t, conf, 1.0)
		})
	}
}

func TestSegment(t *testing.T) {
	sections := NewSegmenter(loadTaxonomy(t), 0).Segment(sampleResume)

	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{SectionPreamble, "summary", "experience", "education", "skills", "certifications"}, names)
	assert.Contains(t, sections[0].Content, "jane.doe@example.com")
	assert.Equal(t, "SUMMARY", sections[1].Header)
	assert.Equal(t, "Go, Python, Docker, Kubernetes, PostgreSQL", sections[4].Content)
}

func TestSegment_ThresholdIsConfigurable(t *testing.T) {
	tax := loadTaxonomy(t)
	text := "Relevant Experience\nBuilt things"

	assert.NotContains(t, SegmentSections(tax, text), "experience")
	strict := SectionMap(NewSegmenter(tax, 0.4).Segment(text))
	require.Contains(t, strict, "experience")
	assert.Equal(t, "Built things", strict["experience"])
}

func TestSectionMap_JoinsRepeatedSections(t *testing.T) {
	got := SectionMap([]Section{
		{Name: "skills", Content: "Go"},
		{Name: "experience", Content: "Acme"},
		{Name: "skills", Content: "Rust"},
	})
	assert.Equal(t, "Go\nRust", got["skills"])
	assert.Equal(t, "Acme", got["experience"])
}
