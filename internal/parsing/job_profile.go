package parsing

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-match/internal/ingestion"
	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/timeline"
	"github.com/jonathan/talent-match/internal/types"
)

// Section names read from job postings
const (
	sectionRequirements = "requirements"
	sectionPreferred    = "preferred"
)

// genericSeniority is the score of titles with no seniority keyword beyond the role noun
const genericSeniority = 4

var (
	requiredYearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:(?:-|–|to)\s*\d{1,2}\s*)?(?:years?|yrs?)\b`)
	preferredLineRe = regexp.MustCompile(`(?i)\b(?:nice to have|nice-to-have|preferred|bonus|a plus|is a plus|desirable|ideally)\b`)
	criticalLineRe  = regexp.MustCompile(`(?i)\b(?:must|critical|essential|mandatory)\b`)
	equivalentRe    = regexp.MustCompile(`(?i)\bequivalent\s+(?:practical\s+|work\s+|professional\s+|industry\s+)?experience\b|\bor\s+equivalent\b`)
	degreeFieldRe   = regexp.MustCompile(`(?i)\b(?:degree|bachelor'?s?|master'?s?|b\.?s\.?|m\.?s\.?|ph\.?d\.?)\b[^.\n]{0,40}?\bin\s+([A-Za-z][A-Za-z ]*?)(?:\s+or\b|\s+and\b|[,.;()]|$)`)
	degreeWordRe    = regexp.MustCompile(`(?i)\bdegree\b`)
)

// JobParser builds job profiles from raw job records
type JobParser struct {
	tax       *taxonomy.Taxonomy
	segmenter *Segmenter
	extractor SkillExtractor
	timeline  *timeline.Builder
}

// NewJobParser creates a job parser. A nil extractor uses a default one without entity tagging.
func NewJobParser(tax *taxonomy.Taxonomy, extractor SkillExtractor, threshold float64) *JobParser {
	if extractor == nil {
		extractor = defaultExtractor(tax)
	}
	return &JobParser{
		tax:       tax,
		segmenter: NewSegmenter(tax, threshold),
		extractor: extractor,
		timeline:  timeline.New(tax),
	}
}

// BuildJobProfile builds a validated job profile with a default parser
func BuildJobProfile(ctx context.Context, rec types.JobRecord, tax *taxonomy.Taxonomy) (*types.JobProfile, error) {
	return NewJobParser(tax, nil, 0).Build(ctx, rec)
}

// Build turns a raw job record into a validated job profile. Explicit fields on
// the record win over anything read from the description.
func (p *JobParser) Build(ctx context.Context, rec types.JobRecord) (*types.JobProfile, error) {
	rec.RequiredLevel = strings.ToLower(strings.TrimSpace(rec.RequiredLevel))
	rec.RequiredDegree = strings.ToLower(strings.TrimSpace(rec.RequiredDegree))
	if err := types.ValidateRecord(&rec); err != nil {
		return nil, err
	}

	description := rec.Description
	if ingestion.LooksLikeHTML(description) {
		text, err := ingestion.ExtractHTMLText(description, ingestion.JobPostingSelectors()...)
		if err != nil {
			return nil, &ParseError{Stage: StageJob, Message: "failed to extract job description text", Cause: err}
		}
		description = text
	}
	description = ingestion.CleanText(description)
	sections := SectionMap(p.segmenter.Segment(description))

	profile := types.JobProfile{
		ID:              rec.ID,
		Title:           strings.TrimSpace(rec.Title),
		Company:         rec.Company,
		Description:     description,
		RequiredSkills:  p.canonical(rec.RequiredSkills),
		PreferredSkills: p.canonical(rec.PreferredSkills),
		CriticalSkills:  p.canonical(rec.CriticalSkills),
		RequiredLevel:   rec.RequiredLevel,
		RequiredDegree:  rec.RequiredDegree,
		RequiredField:   rec.RequiredField,
	}
	if rec.Weights != nil {
		profile.Weights = *rec.Weights
	}

	requiredText, preferredText := p.splitRequirements(description, sections)
	if len(profile.RequiredSkills) == 0 {
		profile.RequiredSkills = p.skillNames(ctx, requiredText)
	}
	if len(profile.PreferredSkills) == 0 {
		profile.PreferredSkills = without(p.skillNames(ctx, preferredText), profile.RequiredSkills)
	}
	if len(rec.CriticalSkills) == 0 {
		profile.CriticalSkills = p.criticalSkills(ctx, requiredText, profile.RequiredSkills)
	}

	reqs := skills.BuildRequirements(p.tax, profile.RequiredSkills, profile.PreferredSkills, profile.CriticalSkills)
	profile.RequiredSkills, profile.PreferredSkills, profile.CriticalSkills = reqs.Required, reqs.Preferred, reqs.Critical

	if rec.MinExperienceYears != nil {
		profile.MinExperienceYears = *rec.MinExperienceYears
	} else {
		profile.MinExperienceYears = requiredYears(requiredText)
	}
	if profile.RequiredLevel == "" {
		if score := p.timeline.SeniorityScore(profile.Title); score != genericSeniority || profile.MinExperienceYears > 0 {
			profile.RequiredLevel = timeline.LevelFor(score, profile.MinExperienceYears)
		}
	}
	if profile.RequiredDegree == "" {
		profile.RequiredDegree = p.minimumDegree(description)
	}
	if profile.RequiredField == "" {
		if m := degreeFieldRe.FindStringSubmatch(description); m != nil {
			profile.RequiredField = strings.TrimSpace(m[1])
		}
	}
	profile.AllowEquivalentExperience = equivalentRe.MatchString(description)

	return types.NewJobProfile(profile)
}

// splitRequirements separates required text from nice-to-have text. Without a
// requirements section the whole description counts as required, minus any
// preferred section and lines flagged as optional.
func (p *JobParser) splitRequirements(description string, sections map[string]string) (string, string) {
	required, ok := sections[sectionRequirements]
	preferred := sections[sectionPreferred]
	if !ok || strings.TrimSpace(required) == "" {
		required = description
		if preferred != "" {
			required = strings.Replace(required, preferred, "", 1)
		}
	}

	var keep, optional []string
	for _, line := range strings.Split(required, "\n") {
		if preferredLineRe.MatchString(line) {
			optional = append(optional, line)
			continue
		}
		keep = append(keep, line)
	}
	if len(optional) > 0 {
		preferred = strings.TrimSpace(preferred + "\n" + strings.Join(optional, "\n"))
	}
	return strings.Join(keep, "\n"), preferred
}

func (p *JobParser) skillNames(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	result := p.extractor.ExtractContext(ctx, text, nil)
	names := make([]string, 0, len(result.Skills))
	for _, s := range result.Skills {
		names = append(names, s.Name)
	}
	return names
}

// criticalSkills marks required skills named on a line that says they are a must
func (p *JobParser) criticalSkills(ctx context.Context, requiredText string, required []string) []string {
	var lines []string
	for _, line := range strings.Split(requiredText, "\n") {
		if criticalLineRe.MatchString(line) {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	var critical []string
	for _, name := range p.skillNames(ctx, strings.Join(lines, "\n")) {
		if containsFold(required, name) {
			critical = append(critical, name)
		}
	}
	return critical
}

// requiredYears returns the largest lower bound among "N+ years" phrases
func requiredYears(text string) float64 {
	best := 0
	for _, m := range requiredYearsRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > best && n <= 60 {
			best = n
		}
	}
	return float64(best)
}

// minimumDegree returns the lowest degree level mentioned, so "BS or MS" requires a bachelor's.
// Short keywords such as "bs" only count on a line that also says "degree".
func (p *JobParser) minimumDegree(text string) string {
	bestName, bestRank := "", 0
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		hasDegreeWord := degreeWordRe.MatchString(line)
		for _, level := range p.tax.DegreeLevels() {
			for _, kw := range level.Keywords {
				if (len(kw) <= 3 || kw == "associate") && !hasDegreeWord {
					continue
				}
				if containsDegreeKeyword(line, kw) && (bestRank == 0 || level.Rank < bestRank) {
					bestName, bestRank = level.Name, level.Rank
				}
			}
		}
	}
	return bestName
}

func (p *JobParser) canonical(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if name := skills.NormalizeSkillName(p.tax, n); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func without(list, remove []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if !containsFold(remove, item) {
			out = append(out, item)
		}
	}
	return out
}
