package quality

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/parsing"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

func newGrader(t *testing.T) *Grader {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	return NewGrader(tax)
}

func skillMap(names ...string) map[string]types.SkillEntry {
	m := make(map[string]types.SkillEntry, len(names))
	for _, n := range names {
		m[n] = types.SkillEntry{Name: n}
	}
	return m
}

func strongProfile() *types.CandidateProfile {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	role := func(title string) types.ExperienceRecord {
		return types.ExperienceRecord{
			Title:        title,
			StartDate:    &start,
			Achievements: []string{"Cut p99 latency by 40%", "Shipped billing platform"},
		}
	}
	raw := strings.Repeat("lorem ipsum dolor sit amet\n", 80) +
		"led mentored managed supervised\nscalable distributed cloud microservices\nglobal remote international"
	return &types.CandidateProfile{
		Contact: types.Contact{Name: "Jane Doe", Email: "j@example.com", Phone: "555-123-4567", Location: "Austin, TX", GitHub: "github.com/jd"},
		Summary: strings.TrimSpace(strings.Repeat("Backend engineer building reliable payment systems. ", 5)),
		Skills: skillMap("Go", "Docker", "Kubernetes", "AWS", "Python", "PostgreSQL", "Redis", "Kafka",
			"Linux", "Git", "SQL", "gRPC", "Bash", "Prometheus", "Grafana"),
		Experience:     []types.ExperienceRecord{role("Staff Engineer"), role("Senior Engineer"), role("Engineer")},
		Education:      []types.EducationRecord{{DegreeLevel: "bachelor", Institution: "State University"}},
		Certifications: []string{"CKA", "AWS SA", "CKAD"},
		Timeline:       &types.Timeline{Progression: types.ProgressionUpward, Promotions: 2},
		Sections: map[string]string{
			"header": "", "summary": "", "experience": "", "skills": "", "education": "", "certifications": "",
		},
		RawText: raw,
	}
}

func TestGrade_StrongResume(t *testing.T) {
	report := newGrader(t).Grade(strongProfile(), nil)

	for category, max := range categoryMax {
		assert.Equal(t, max, report.Breakdown[category], category)
	}
	assert.Equal(t, 80.0, report.BaseTotal())
	assert.Equal(t, MaxBonus, report.BonusTotal())
	assert.Zero(t, report.PenaltyTotal())
	assert.Equal(t, 100.0, report.Score)
	assert.Equal(t, "A+", report.Grade)
	assert.Empty(t, report.Feedback)
}

func TestGrade_EmptyResume(t *testing.T) {
	report := newGrader(t).Grade(&types.CandidateProfile{}, nil)

	assert.Zero(t, report.BaseTotal())
	assert.Equal(t, 5.0, report.Penalties[PenaltyUnquantified])
	assert.Zero(t, report.Score)
	assert.Equal(t, "F", report.Grade)
	assert.Contains(t, report.Feedback, categoryAdvice[CategoryContact])
	assert.Contains(t, report.Feedback, penaltyAdvice[PenaltyUnquantified])
}

func TestGrade_NilProfile(t *testing.T) {
	report := newGrader(t).Grade(nil, nil)
	assert.Equal(t, "F", report.Grade)
}

func TestGrade_PenaltiesAreCapped(t *testing.T) {
	p := strongProfile()
	p.Skills = skillMap("COBOL", "Perl", "jQuery")
	p.RawText += "\nsynergy rockstar ninja guru passionate motivated"
	for i := range p.Experience {
		p.Experience[i].Achievements = []string{"Owned the backlog", "Worked on services"}
	}

	report := newGrader(t).Grade(p, nil)

	assert.Equal(t, 5.0, report.Penalties[PenaltyOutdated])
	assert.Equal(t, 5.0, report.Penalties[PenaltyBuzzwords])
	assert.Equal(t, 5.0, report.Penalties[PenaltyUnquantified])
	assert.Equal(t, MaxPenalty, report.PenaltyTotal())
	assert.Zero(t, report.Breakdown[CategoryQuantification])
}

func TestGrade_ParsedResume(t *testing.T) {
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	profile, err := parsing.ParseResume(context.Background(), sampleResume, tax)
	require.NoError(t, err)

	report := NewGrader(tax).Grade(profile, profile.Sections)

	for category, value := range report.Breakdown {
		assert.GreaterOrEqual(t, value, 0.0, category)
		assert.LessOrEqual(t, value, CategoryMax(category), category)
	}
	assert.LessOrEqual(t, report.BonusTotal(), MaxBonus)
	assert.LessOrEqual(t, report.PenaltyTotal(), MaxPenalty)
	assert.Equal(t, 8.0, report.Breakdown[CategoryContact])
	assert.Greater(t, report.Breakdown[CategoryExperience], 10.0)
	assert.Greater(t, report.Score, 50.0)
	assert.NotEqual(t, "F", report.Grade)
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A+"},
		{95, "A+"},
		{94.9, "A"},
		{90, "A"},
		{85, "B+"},
		{80, "B"},
		{75, "C+"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.score), "score %v", tt.score)
	}
}

func TestCapTotal(t *testing.T) {
	got := capTotal(map[string]float64{"a": 20, "b": 20}, 25)
	assert.InDelta(t, 12.5, got["a"], 1e-9)
	assert.InDelta(t, 12.5, got["b"], 1e-9)

	unchanged := capTotal(map[string]float64{"a": 3}, 25)
	assert.Equal(t, 3.0, unchanged["a"])
}

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | San Francisco, CA
linkedin.com/in/janedoe | github.com/janedoe

SUMMARY
Backend engineer focused on distributed systems and reliable cloud platforms.

EXPERIENCE
Senior Software Engineer | Acme Corp | San Francisco, CA | Jan 2020 – Present
• Led migration of billing services to Kubernetes, cutting costs by 30%
• Built APIs using Go and PostgreSQL

Software Engineer
Globex Inc, Austin, TX
Jun 2016 – Dec 2019
• Developed Django services in Python
• Reduced deploy time from 2 hours to 15 minutes

EDUCATION
B.S. in Computer Science, Stanford University, 2016

SKILLS
Go, Python, Docker, Kubernetes, PostgreSQL

CERTIFICATIONS
AWS Certified Solutions Architect
`
