package parsing

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/extraction"
	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/timeline"
	"github.com/jonathan/talent-match/internal/types"
)

// Resume section names
const (
	sectionSummary        = "summary"
	sectionExperience     = "experience"
	sectionEducation      = "education"
	sectionCertifications = "certifications"
)

// candidateIDLength is the number of hash characters in a derived candidate ID
const candidateIDLength = 16

// SkillExtractor finds skills and entities in text
type SkillExtractor interface {
	ExtractContext(ctx context.Context, text string, sections map[string]string) *types.ExtractionResult
}

func defaultExtractor(tax *taxonomy.Taxonomy) SkillExtractor {
	return extraction.New(tax, extraction.NewRuleTagger(tax))
}

// ResumeParser assembles a candidate profile from resume text
type ResumeParser struct {
	tax        *taxonomy.Taxonomy
	segmenter  *Segmenter
	extractor  SkillExtractor
	experience *ExperienceParser
	education  *EducationParser
	timeline   *timeline.Builder
	now        func() time.Time
	logger     *zap.Logger
	threshold  float64
}

// ResumeOption configures a ResumeParser
type ResumeOption func(*ResumeParser)

// WithHeaderThreshold sets the section header confidence threshold
func WithHeaderThreshold(threshold float64) ResumeOption {
	return func(p *ResumeParser) { p.threshold = threshold }
}

// WithClock overrides the clock used for "Present" dates
func WithClock(now func() time.Time) ResumeOption {
	return func(p *ResumeParser) { p.now = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ResumeOption {
	return func(p *ResumeParser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewResumeParser creates a resume parser. A nil extractor uses the rule-based one.
func NewResumeParser(tax *taxonomy.Taxonomy, extractor SkillExtractor, opts ...ResumeOption) *ResumeParser {
	p := &ResumeParser{
		tax:       tax,
		extractor: extractor,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.extractor == nil {
		p.extractor = defaultExtractor(tax)
	}
	p.segmenter = NewSegmenter(tax, p.threshold)
	p.experience = NewExperienceParser(tax, p.logger)
	p.education = NewEducationParser(tax)
	p.timeline = timeline.New(tax, timeline.WithClock(p.now), timeline.WithLogger(p.logger))
	return p
}

// ParseResume parses resume text with a default parser
func ParseResume(ctx context.Context, text string, tax *taxonomy.Taxonomy) (*types.CandidateProfile, error) {
	return NewResumeParser(tax, nil).Parse(ctx, text)
}

// Parse builds a candidate profile. Empty text yields an empty profile; only
// a cancelled context is an error.
func (p *ResumeParser) Parse(ctx context.Context, text string) (*types.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ParseError{Stage: StageResume, Message: "resume parsing cancelled", Cause: err}
	}
	text = ingestion.CleanText(text)
	profile := &types.CandidateProfile{
		Skills:     map[string]types.SkillEntry{},
		Experience: []types.ExperienceRecord{},
		Education:  []types.EducationRecord{},
		RawText:    text,
	}
	if strings.TrimSpace(text) == "" {
		return profile, nil
	}
	profile.ID = "cand_" + ingestion.ContentHash(text)[:candidateIDLength]

	sections := SectionMap(p.segmenter.Segment(text))
	profile.Sections = sections
	now := p.now()

	result := p.extractor.ExtractContext(ctx, text, sections)
	profile.Skills = result.SkillMap()
	profile.Organizations = result.EntitiesByLabel(types.EntityOrg)

	contactText, ok := sections[SectionPreamble]
	if !ok {
		contactText = text
	}
	profile.Contact = ExtractContact(contactText, headerEntities(result.Entities, len(contactText)))
	profile.Summary = strings.Join(strings.Fields(sections[sectionSummary]), " ")

	if exp, ok := sections[sectionExperience]; ok {
		profile.Experience = p.experience.Parse(exp, now)
	}
	if edu, ok := sections[sectionEducation]; ok {
		profile.Education = p.education.Parse(edu, now)
	}
	profile.Certifications = listItems(sections[sectionCertifications])

	if len(profile.Experience) > 0 {
		tl := p.timeline.Build(profile.Experience)
		profile.Timeline = &tl
		profile.TotalExperienceYears = tl.TotalExperienceYears
		if role, ok := timeline.MostRecent(&tl); ok {
			profile.Level = timeline.LevelFor(role.Seniority, tl.TotalExperienceYears)
		}
	}

	p.logger.Debug("parsed resume",
		zap.String("id", profile.ID),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("roles", len(profile.Experience)),
		zap.Int("degrees", len(profile.Education)))
	return profile, nil
}

// headerEntities keeps entities that start inside the preamble
func headerEntities(entities []types.Entity, limit int) []types.Entity {
	var out []types.Entity
	for _, e := range entities {
		if e.Start < limit {
			out = append(out, e)
		}
	}
	return out
}

// listItems splits a section into one item per line with bullets removed
func listItems(section string) []string {
	var items []string
	for _, line := range strings.Split(section, "\n") {
		if item := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")); item != "" {
			items = append(items, item)
		}
	}
	return items
}
