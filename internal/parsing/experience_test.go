package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseDateRange(t *testing.T) {
	start, end, current, ok := ParseDateRange("Jan 2020 – Present", fixedNow)
	require.True(t, ok)
	assert.Equal(t, ym(2020, 1), *start)
	assert.Equal(t, ym(2024, 6), *end)
	assert.True(t, current)

	start, end, current, ok = ParseDateRange("03/2018 - 11/2019", fixedNow)
	require.True(t, ok)
	assert.Equal(t, ym(2018, 3), *start)
	assert.Equal(t, ym(2019, 11), *end)
	assert.False(t, current)

	_, _, _, ok = ParseDateRange("no dates here", fixedNow)
	assert.False(t, ok)
}

func TestParseExperience(t *testing.T) {
	section := `Senior Software Engineer | Acme Corp | San Francisco, CA | Jan 2020 – Present
• Led migration of billing services to Kubernetes
• Built APIs using Go and PostgreSQL

Software Engineer
Globex Inc, Austin, TX
Jun 2016 – Dec 2019
• Developed Django services in Python`

	records := ParseExperience(loadTaxonomy(t), section, fixedNow)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Senior Software Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "San Francisco, CA", first.Location)
	assert.True(t, first.IsCurrent)
	assert.Equal(t, ym(2020, 1), *first.StartDate)
	assert.Equal(t, ym(2024, 6), *first.EndDate)
	assert.Equal(t, 53, first.DurationMonths)
	assert.Len(t, first.Achievements, 2)

	second := records[1]
	assert.Equal(t, "Software Engineer", second.Title)
	assert.Equal(t, "Globex Inc", second.Company)
	assert.Equal(t, "Austin, TX", second.Location)
	assert.False(t, second.IsCurrent)
	assert.Equal(t, 42, second.DurationMonths)
	assert.Equal(t, []string{"Developed Django services in Python"}, second.Achievements)
}

func TestParseExperience_DateLineFirst(t *testing.T) {
	section := "2015 - 2017\nData Analyst\nInitech\n• Reporting"

	records := ParseExperience(loadTaxonomy(t), section, fixedNow)
	require.Len(t, records, 1)
	assert.Equal(t, "Data Analyst", records[0].Title)
	assert.Equal(t, "Initech", records[0].Company)
	assert.Equal(t, []string{"Reporting"}, records[0].Achievements)
}

func TestParseExperience_SentenceLinesAreNotCompanies(t *testing.T) {
	tests := []struct {
		name         string
		section      string
		achievements []string
	}{
		{
			name:    "first-person line above the dates",
			section: "Software Engineer\nI managed the payments team\nJan 2020 - Dec 2021",
		},
		{
			name:         "action verb line below the dates",
			section:      "Jan 2020 - Dec 2021\nSoftware Engineer\nDeveloped REST APIs for clients",
			achievements: []string{"Developed REST APIs for clients"},
		},
		{
			name:    "duty phrase on the date line",
			section: "Software Engineer | Responsible for backend systems | Jan 2020 - Dec 2021",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ParseExperience(loadTaxonomy(t), tt.section, fixedNow)
			require.Len(t, records, 1)
			assert.Equal(t, "Software Engineer", records[0].Title)
			assert.Empty(t, records[0].Company)
			assert.Equal(t, tt.achievements, records[0].Achievements)
		})
	}
}

func TestParseExperience_SkipsPlaceholderBlocks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	parser := NewExperienceParser(loadTaxonomy(t), zap.New(core))
	section := "Job Title | Company Name | City, State | 2019 - 2020\n" +
		"Backend Developer at Hooli | 2020 - 2022"

	records := parser.Parse(section, fixedNow)

	require.Len(t, records, 1)
	assert.Equal(t, "Backend Developer", records[0].Title)
	assert.Equal(t, "Hooli", records[0].Company)
	assert.Equal(t, 1, logs.FilterMessageSnippet("skipping experience block").Len())
}

func TestParseExperience_NoDates(t *testing.T) {
	assert.Empty(t, ParseExperience(loadTaxonomy(t), "Engineer at Acme\n• Did things", fixedNow))
}
