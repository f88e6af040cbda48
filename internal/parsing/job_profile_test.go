package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

const backendPosting = `About the role
We build payment systems.

Requirements
• 5+ years of experience building backend services
• Strong Go and PostgreSQL skills
• Must have production Kubernetes experience
• Docker is a plus

Nice to Have
• Terraform
• Kafka

Bachelor's or Master's degree in Computer Science or equivalent experience`

func TestBuildJobProfile_FromDescription(t *testing.T) {
	rec := types.JobRecord{ID: "job_1", Title: "Senior Backend Engineer", Description: backendPosting}

	job, err := BuildJobProfile(context.Background(), rec, loadTaxonomy(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Go", "PostgreSQL", "Kubernetes"}, job.RequiredSkills)
	assert.ElementsMatch(t, []string{"Terraform", "Kafka", "Docker"}, job.PreferredSkills)
	assert.Equal(t, []string{"Kubernetes"}, job.CriticalSkills)
	assert.Equal(t, 5.0, job.MinExperienceYears)
	assert.Equal(t, types.LevelSenior, job.RequiredLevel)
	assert.Equal(t, "bachelor", job.RequiredDegree)
	assert.Equal(t, "Computer Science", job.RequiredField)
	assert.True(t, job.AllowEquivalentExperience)
	assert.Equal(t, types.DefaultWeights(), job.Weights)
}

func TestBuildJobProfile_ExplicitFieldsWin(t *testing.T) {
	years := 2.0
	rec := types.JobRecord{
		Title:              "Senior Backend Engineer",
		Description:        backendPosting,
		RequiredSkills:     []string{"golang", "k8s"},
		PreferredSkills:    []string{"Golang", "Rust"},
		MinExperienceYears: &years,
		RequiredLevel:      "Mid",
		RequiredDegree:     "master",
	}

	job, err := BuildJobProfile(context.Background(), rec, loadTaxonomy(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Go", "Kubernetes"}, job.RequiredSkills)
	assert.Equal(t, []string{"Rust"}, job.PreferredSkills)
	assert.Equal(t, 2.0, job.MinExperienceYears)
	assert.Equal(t, types.LevelMid, job.RequiredLevel)
	assert.Equal(t, "master", job.RequiredDegree)
}

func TestBuildJobProfile_HTMLDescription(t *testing.T) {
	rec := types.JobRecord{
		Title: "Data Engineer",
		Description: `<html><body><nav>Jobs</nav><div class="job-description">` +
			`<h2>Requirements</h2><ul><li>3+ years with Python</li><li>Airflow experience</li></ul>` +
			`</div></body></html>`,
	}

	job, err := BuildJobProfile(context.Background(), rec, loadTaxonomy(t))
	require.NoError(t, err)

	assert.Contains(t, job.RequiredSkills, "Python")
	assert.Equal(t, 3.0, job.MinExperienceYears)
	assert.Equal(t, types.LevelMid, job.RequiredLevel)
	assert.NotContains(t, job.Description, "<li>")
	assert.NotContains(t, job.Description, "Jobs")
}

func TestBuildJobProfile_GenericTitleLeavesLevelOpen(t *testing.T) {
	rec := types.JobRecord{Title: "Software Engineer", Description: "Build services with Python."}

	job, err := BuildJobProfile(context.Background(), rec, loadTaxonomy(t))
	require.NoError(t, err)

	assert.Empty(t, job.RequiredLevel)
	assert.Zero(t, job.MinExperienceYears)
	assert.Empty(t, job.RequiredDegree)
}

func TestBuildJobProfile_Errors(t *testing.T) {
	tax := loadTaxonomy(t)
	tests := []struct {
		name string
		rec  types.JobRecord
	}{
		{
			name: "weights not summing to one",
			rec:  types.JobRecord{Title: "Engineer", Weights: &types.Weights{Semantic: 0.5, Skills: 0.5, Experience: 0.5}},
		},
		{
			name: "negative weight",
			rec:  types.JobRecord{Title: "Engineer", Weights: &types.Weights{Semantic: -0.2, Skills: 0.8, Experience: 0.2, Education: 0.2}},
		},
		{
			name: "unknown level",
			rec:  types.JobRecord{Title: "Engineer", RequiredLevel: "wizard"},
		},
		{
			name: "missing title",
			rec:  types.JobRecord{Description: "Python"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildJobProfile(context.Background(), tt.rec, tax)
			require.Error(t, err)
			var cfgErr *types.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestRequiredYears(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"3+ years of Go", 3},
		{"2-4 years experience, 5 yrs preferred", 5},
		{"no numbers", 0},
		{"99 years", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requiredYears(tt.text), tt.text)
	}
}
