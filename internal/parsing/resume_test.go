package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

func TestParseResume(t *testing.T) {
	p := NewResumeParser(loadTaxonomy(t), nil, WithClock(clock))

	profile, err := p.Parse(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Regexp(t, `^cand_[0-9a-f]{16}$`, profile.ID)
	assert.Equal(t, "Jane Doe", profile.Contact.Name)
	assert.Equal(t, "jane.doe@example.com", profile.Contact.Email)
	assert.Equal(t, "(555) 123-4567", profile.Contact.Phone)
	assert.Equal(t, "San Francisco, CA", profile.Contact.Location)
	assert.Contains(t, profile.Contact.LinkedIn, "linkedin.com/in/janedoe")
	assert.Contains(t, profile.Contact.GitHub, "github.com/janedoe")
	assert.Equal(t, "Backend engineer focused on distributed systems.", profile.Summary)

	for _, name := range []string{"Go", "Python", "Docker", "Kubernetes", "PostgreSQL", "Django"} {
		assert.Contains(t, profile.Skills, name)
	}

	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior Software Engineer", profile.Experience[0].Title)
	assert.Equal(t, "Acme Corp", profile.Experience[0].Company)
	assert.True(t, profile.Experience[0].IsCurrent)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "bachelor", profile.Education[0].DegreeLevel)
	assert.Equal(t, "Stanford University", profile.Education[0].Institution)

	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, profile.Certifications)

	require.NotNil(t, profile.Timeline)
	assert.Equal(t, types.ProgressionUpward, profile.Timeline.Progression)
	assert.InDelta(t, 7.9, profile.TotalExperienceYears, 0.15)
	assert.Equal(t, types.LevelSenior, profile.Level)
}

func TestParseResume_EmptyInput(t *testing.T) {
	profile, err := ParseResume(context.Background(), "   \n\n", loadTaxonomy(t))
	require.NoError(t, err)

	assert.Empty(t, profile.ID)
	assert.NotNil(t, profile.Skills)
	assert.Empty(t, profile.Skills)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)
	assert.Nil(t, profile.Timeline)
	assert.Zero(t, profile.TotalExperienceYears)
}

func TestParseResume_SameTextSameID(t *testing.T) {
	p := NewResumeParser(loadTaxonomy(t), nil, WithClock(clock))

	a, err := p.Parse(context.Background(), sampleResume)
	require.NoError(t, err)
	b, err := p.Parse(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
}

func TestParseResume_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseResume(ctx, sampleResume, loadTaxonomy(t))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, StageResume, parseErr.Stage)
	assert.ErrorIs(t, err, context.Canceled)
}
