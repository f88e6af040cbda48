package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

func newTestBuilder() *Builder {
	return New(taxonomy.Default(), WithClock(func() time.Time { return fixedNow }))
}

func role(title string, start, end time.Time) types.ExperienceRecord {
	return types.ExperienceRecord{Title: title, Company: "Acme", StartDate: &start, EndDate: &end}
}

func TestMergedYears_OverlapNotDoubleCounted(t *testing.T) {
	got := MergedYears([]Interval{
		{Start: ym(2020, time.January), End: ym(2022, time.January)},
		{Start: ym(2020, time.June), End: ym(2021, time.June)},
	})
	assert.InDelta(t, 2.0, got, 0.01)
}

func TestMergedYears_IdenticalSpans(t *testing.T) {
	span := Interval{Start: ym(2020, time.January), End: ym(2021, time.January)}
	assert.InDelta(t, 1.0, MergedYears([]Interval{span, span}), 0.01)
}

func TestMergedYears_Disjoint(t *testing.T) {
	got := MergedYears([]Interval{
		{Start: ym(2018, time.January), End: ym(2019, time.January)},
		{Start: ym(2020, time.January), End: ym(2021, time.January)},
	})
	assert.InDelta(t, 2.0, got, 0.01)
	assert.Equal(t, 0.0, MergedYears(nil))
}

func TestBuild_GapThreshold(t *testing.T) {
	firstEnd := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		gapDays  int
		reported bool
	}{
		{"ninety days is not a gap", 90, false},
		{"one hundred days is a gap", 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextStart := firstEnd.AddDate(0, 0, tt.gapDays)
			tl := newTestBuilder().Build([]types.ExperienceRecord{
				role("Engineer", ym(2018, time.January), firstEnd),
				role("Senior Engineer", nextStart, nextStart.AddDate(1, 0, 0)),
			})
			if !tt.reported {
				assert.Empty(t, tl.Gaps)
				return
			}
			require.Len(t, tl.Gaps, 1)
			gap := tl.Gaps[0]
			assert.Equal(t, tt.gapDays, gap.Days)
			assert.Equal(t, "Engineer", gap.BeforeRole)
			assert.Equal(t, "Senior Engineer", gap.AfterRole)
		})
	}
}

func TestBuild_NoGapInsideLongerConcurrentRole(t *testing.T) {
	tl := newTestBuilder().Build([]types.ExperienceRecord{
		role("Engineer", ym(2010, time.January), ym(2012, time.January)),
		role("Consultant", ym(2011, time.January), ym(2015, time.January)),
		role("Advisor", ym(2013, time.January), ym(2014, time.January)),
	})
	assert.Empty(t, tl.Gaps)
	assert.InDelta(t, 5.0, tl.TotalExperienceYears, 0.01)
}

func TestBuild_Progression(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{"upward", []string{"Junior Developer", "Software Engineer", "Senior Engineer", "Engineering Manager"}, types.ProgressionUpward},
		{"lateral", []string{"Software Engineer", "Developer", "Software Engineer", "Analyst"}, types.ProgressionLateral},
		{"mixed", []string{"Senior Engineer", "Engineer", "Senior Engineer", "Engineer"}, types.ProgressionMixed},
		{"single role", []string{"Engineer"}, types.ProgressionLateral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []types.ExperienceRecord
			for i, title := range tt.titles {
				start := ym(2010+2*i, time.January)
				records = append(records, role(title, start, start.AddDate(2, 0, 0)))
			}
			tl := newTestBuilder().Build(records)
			assert.Equal(t, tt.want, tl.Progression)
		})
	}
}

func TestJobHoppingScore(t *testing.T) {
	tests := []struct {
		months float64
		want   float64
	}{
		{0, 0.9}, {11.9, 0.9}, {12, 0.7}, {17, 0.7}, {18, 0.5}, {23.5, 0.5}, {24, 0.2}, {60, 0.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JobHoppingScore(tt.months), tt.months)
	}
}

func TestBuild_TenureAndCurrentRole(t *testing.T) {
	start := ym(2022, time.June)
	tl := newTestBuilder().Build([]types.ExperienceRecord{
		{Title: "Staff Engineer", Company: "Acme", StartDate: &start, IsCurrent: true},
	})
	require.Len(t, tl.Roles, 1)
	assert.Equal(t, today, tl.Roles[0].End)
	assert.Equal(t, 24, tl.Roles[0].DurationMonths)
	assert.Equal(t, 24.0, tl.AvgTenureMonths)
	assert.Equal(t, 0.2, tl.JobHoppingScore)
}

func TestBuild_JobHoppingUsesUnroundedTenure(t *testing.T) {
	// 11 + 12 + 12 + 12 ... averages 11.95 months, which rounds to 12.0 for display only
	var records []types.ExperienceRecord
	start := ym(2000, time.January)
	for i := 0; i < 20; i++ {
		months := 12
		if i == 0 {
			months = 11
		}
		end := start.AddDate(0, months, 0)
		records = append(records, role("Engineer", start, end))
		start = end
	}
	tl := newTestBuilder().Build(records)
	require.Len(t, tl.Roles, 25)
	assert.Equal(t, 12.0, tl.AvgTenureMonths)
	assert.Equal(t, 0.9, tl.JobHoppingScore)
}

func TestBuild_FallsBackToRawDatesAndSkipsBadRecords(t *testing.T) {
	tl := newTestBuilder().Build([]types.ExperienceRecord{
		{Title: "Engineer", RawDates: "Jan 2019 - Jan 2020"},
		{Title: "Mystery role"},
	})
	require.Len(t, tl.Roles, 1)
	assert.Equal(t, 12, tl.Roles[0].DurationMonths)
	assert.Equal(t, 0.7, tl.JobHoppingScore)
}

func TestBuild_Empty(t *testing.T) {
	tl := newTestBuilder().Build(nil)
	assert.Equal(t, 0.0, tl.TotalExperienceYears)
	assert.Empty(t, tl.Gaps)
	assert.Empty(t, tl.Roles)
}

func TestSeniorityScore(t *testing.T) {
	b := newTestBuilder()
	tests := []struct {
		title string
		want  int
	}{
		{"Software Engineering Intern", 1},
		{"Junior Developer", 1},
		{"Associate Engineer", 3},
		{"Software Engineer", 4},
		{"Sr. Software Engineer", 5},
		{"Staff Engineer", 6},
		{"Principal Architect", 7},
		{"Head of Platform", 8},
		{"Vice President, Engineering", 9},
		{"CTO", 10},
		{"Co-Founder", 10},
		{"Wizard", defaultSeniority},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, b.SeniorityScore(tt.title))
		})
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, types.LevelEntry, LevelFor(1, 0))
	assert.Equal(t, types.LevelEntry, LevelFor(4, 1))
	assert.Equal(t, types.LevelMid, LevelFor(4, 3))
	assert.Equal(t, types.LevelSenior, LevelFor(4, 7))
	assert.Equal(t, types.LevelSenior, LevelFor(5, 6))
	assert.Equal(t, types.LevelExpert, LevelFor(6, 8))
	assert.Equal(t, types.LevelLead, LevelFor(9, 15))
}

func TestMostRecent(t *testing.T) {
	tl := newTestBuilder().Build([]types.ExperienceRecord{
		role("Senior Engineer", ym(2020, time.January), ym(2022, time.January)),
		role("Engineer", ym(2016, time.January), ym(2020, time.January)),
	})
	r, ok := MostRecent(&tl)
	require.True(t, ok)
	assert.Equal(t, "Senior Engineer", r.Title)

	_, ok = MostRecent(nil)
	assert.False(t, ok)
}
