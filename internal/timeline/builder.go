// Package timeline builds a career timeline from parsed experience records: merged
// experience years, employment gaps, seniority progression and job-hopping propensity.
package timeline

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// gapThresholdDays is the longest break between roles that is not reported as a gap
const gapThresholdDays = 90

const daysPerYear = 365.25

// Interval is a closed employment period
type Interval struct {
	Start time.Time
	End   time.Time
}

// Builder computes timelines. It is safe for concurrent use.
type Builder struct {
	tax    *taxonomy.Taxonomy
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithClock sets the clock used to resolve "Present" end dates
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger sets the logger for skipped records
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Builder backed by the taxonomy's seniority lexicon
func New(tax *taxonomy.Taxonomy, opts ...Option) *Builder {
	b := &Builder{tax: tax, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build summarises experience records. Records without a usable start date are skipped.
func (b *Builder) Build(records []types.ExperienceRecord) types.Timeline {
	now := b.now()
	roles := make([]types.TimelineRole, 0, len(records))
	for i, rec := range records {
		role, ok := b.normalize(rec, now)
		if !ok {
			b.logger.Debug("skipping experience record without usable dates",
				zap.Int("index", i), zap.String("title", rec.Title), zap.String("raw_dates", rec.RawDates))
			continue
		}
		roles = append(roles, role)
	}

	sort.SliceStable(roles, func(i, j int) bool {
		if roles[i].Start.Equal(roles[j].Start) {
			return roles[i].End.Before(roles[j].End)
		}
		return roles[i].Start.Before(roles[j].Start)
	})

	tl := types.Timeline{
		Gaps:  []types.EmploymentGap{},
		Roles: roles,
	}
	if len(roles) == 0 {
		tl.Progression = types.ProgressionLateral
		return tl
	}

	intervals := make([]Interval, len(roles))
	totalMonths := 0
	for i, r := range roles {
		intervals[i] = Interval{Start: r.Start, End: r.End}
		totalMonths += r.DurationMonths
	}
	tl.TotalExperienceYears = MergedYears(intervals)
	tl.Gaps = findGaps(roles)
	tl.Promotions, tl.Regressions, tl.Progression = classifyProgression(roles)
	avgTenure := float64(totalMonths) / float64(len(roles))
	tl.AvgTenureMonths = round(avgTenure, 1)
	tl.JobHoppingScore = JobHoppingScore(avgTenure)
	return tl
}

func (b *Builder) normalize(rec types.ExperienceRecord, now time.Time) (types.TimelineRole, bool) {
	var start, end time.Time
	current := rec.IsCurrent
	if rec.StartDate != nil {
		start = *rec.StartDate
	}
	if rec.EndDate != nil {
		end = *rec.EndDate
	}
	if start.IsZero() && rec.RawDates != "" {
		if r, ok := FindRange(rec.RawDates, now); ok {
			start, end, current = r.Start, r.End, current || r.IsCurrent
		}
	}
	if start.IsZero() {
		return types.TimelineRole{}, false
	}
	if current {
		end = Today(now)
	}
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return types.TimelineRole{}, false
	}
	return types.TimelineRole{
		Title:          rec.Title,
		Company:        rec.Company,
		Start:          start,
		End:            end,
		IsCurrent:      current,
		DurationMonths: MonthsBetween(start, end),
		Seniority:      b.SeniorityScore(rec.Title),
	}, true
}

// MergedYears returns the total length of the union of intervals in years.
// Intervals are merged when the next start is on or before the current end.
func MergedYears(intervals []Interval) float64 {
	if len(intervals) == 0 {
		return 0
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var total time.Duration
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		total += cur.End.Sub(cur.Start)
		cur = next
	}
	total += cur.End.Sub(cur.Start)
	return round(total.Hours()/24/daysPerYear, 2)
}

// findGaps sweeps chronologically sorted roles and reports breaks longer than the threshold,
// ordered by gap end date
func findGaps(roles []types.TimelineRole) []types.EmploymentGap {
	gaps := []types.EmploymentGap{}
	latest := roles[0]
	for _, next := range roles[1:] {
		if next.Start.After(latest.End) {
			days := int(next.Start.Sub(latest.End).Hours() / 24)
			if days > gapThresholdDays {
				gaps = append(gaps, types.EmploymentGap{
					Start:         latest.End,
					End:           next.Start,
					Days:          days,
					Months:        round(float64(days)/(daysPerYear/12), 1),
					BeforeRole:    latest.Title,
					BeforeCompany: latest.Company,
					AfterRole:     next.Title,
					AfterCompany:  next.Company,
				})
			}
		}
		if next.End.After(latest.End) {
			latest = next
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].End.Before(gaps[j].End) })
	return gaps
}

// classifyProgression compares seniority between consecutive roles
func classifyProgression(roles []types.TimelineRole) (promotions, regressions int, progression string) {
	transitions := len(roles) - 1
	if transitions < 1 {
		return 0, 0, types.ProgressionLateral
	}
	for i := 1; i < len(roles); i++ {
		switch {
		case roles[i].Seniority > roles[i-1].Seniority:
			promotions++
		case roles[i].Seniority < roles[i-1].Seniority:
			regressions++
		}
	}
	promotionRatio := float64(promotions) / float64(transitions)
	regressionRatio := float64(regressions) / float64(transitions)
	switch {
	case promotions > regressions:
		progression = types.ProgressionUpward
	case promotionRatio < 0.3 && regressionRatio < 0.3:
		progression = types.ProgressionLateral
	default:
		progression = types.ProgressionMixed
	}
	return promotions, regressions, progression
}

// JobHoppingScore maps average tenure in months to a [0,1] propensity
func JobHoppingScore(avgTenureMonths float64) float64 {
	switch {
	case avgTenureMonths < 12:
		return 0.9
	case avgTenureMonths < 18:
		return 0.7
	case avgTenureMonths < 24:
		return 0.5
	default:
		return 0.2
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
