package parsing

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/timeline"
	"github.com/jonathan/talent-match/internal/types"
)

// maxHeaderFragments is the number of lines above a date line that can hold
// the title and company
const maxHeaderFragments = 2

var (
	fragmentSplitRe = regexp.MustCompile(`\s*\|\s*|\s+[–—-]\s+|\s+at\s+|\s+@\s+`)
	roleLocationRe  = regexp.MustCompile(`\b(?:[A-Z][a-zA-Z]+(?:[ .][A-Z][a-zA-Z]+)*,[ \t]*[A-Z]{2}\b|Remote\b)`)
	bulletPrefixRe  = regexp.MustCompile(`^(?:•|-|\*|–)\s*`)
)

// sentenceOpeners start achievement lines and never a company name
var sentenceOpeners = map[string]struct{}{
	"i": {}, "we": {}, "my": {}, "our": {}, "me": {},
	"responsible": {}, "worked": {}, "working": {}, "helped": {}, "assisted": {},
	"collaborated": {}, "participated": {}, "supported": {},
}

// ParseDateRange resolves a date range such as "Jan 2020 – Present".
// ok is false when text carries no range.
func ParseDateRange(text string, now time.Time) (start, end *time.Time, isCurrent, ok bool) {
	r, found := timeline.FindRange(text, now)
	if !found {
		return nil, nil, false, false
	}
	s, e := r.Start, r.End
	return &s, &e, r.IsCurrent, true
}

// ExperienceParser parses the experience section of a resume
type ExperienceParser struct {
	tax    *taxonomy.Taxonomy
	titles []string
	logger *zap.Logger
}

// NewExperienceParser creates an experience parser. A nil logger discards output.
func NewExperienceParser(tax *taxonomy.Taxonomy, logger *zap.Logger) *ExperienceParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	var titles []string
	for _, words := range tax.Lexicon().Seniority {
		titles = append(titles, words...)
	}
	return &ExperienceParser{tax: tax, titles: titles, logger: logger}
}

// ParseExperience parses an experience section with a default parser
func ParseExperience(tax *taxonomy.Taxonomy, section string, now time.Time) []types.ExperienceRecord {
	return NewExperienceParser(tax, nil).Parse(section, now)
}

type expLine struct {
	text   string
	bullet bool
	rng    timeline.Range
	dated  bool
}

// Parse splits a section into roles anchored on lines carrying a date range.
// The title and company come from the date line itself and up to two lines
// above it. Blocks without a title or company are skipped.
func (p *ExperienceParser) Parse(section string, now time.Time) []types.ExperienceRecord {
	var lines []expLine
	for _, raw := range strings.Split(section, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		l := expLine{text: text, bullet: bulletPrefixRe.MatchString(text)}
		if r, ok := timeline.FindRange(text, now); ok {
			l.rng, l.dated = r, true
		}
		lines = append(lines, l)
	}

	var anchors []int
	for i, l := range lines {
		if l.dated {
			anchors = append(anchors, i)
		}
	}

	// headerStart[k] is the first line belonging to anchor k's header
	headerStart := make([]int, len(anchors))
	for k, a := range anchors {
		lower := 0
		if k > 0 {
			lower = anchors[k-1] + 1
		}
		start := a
		for start > lower && a-start < maxHeaderFragments && !lines[start-1].bullet && !lines[start-1].dated {
			start--
		}
		headerStart[k] = start
	}

	records := make([]types.ExperienceRecord, 0, len(anchors))
	for k, a := range anchors {
		end := len(lines)
		if k+1 < len(anchors) {
			end = headerStart[k+1]
		}
		var header []string
		for i := headerStart[k]; i < a; i++ {
			header = append(header, lines[i].text)
		}
		loc := lines[a].rng.Loc
		anchorRest := strings.TrimSpace(lines[a].text[:loc[0]] + " " + lines[a].text[loc[1]:])
		if anchorRest != "" {
			header = append(header, anchorRest)
		}
		body := lines[a+1 : end]

		// a date line at the top of a block may be followed by its title and company
		if len(header) == 0 {
			for len(body) > 0 && !body[0].bullet && !p.sentenceLike(body[0].text) && len(header) < maxHeaderFragments {
				header = append(header, body[0].text)
				body = body[1:]
			}
		}

		rec, ok := p.buildRecord(header, body, lines[a].rng)
		if !ok {
			p.logger.Debug("skipping experience block without title or company",
				zap.Int("block", k), zap.String("raw_dates", lines[a].rng.Raw))
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (p *ExperienceParser) buildRecord(header []string, body []expLine, rng timeline.Range) (types.ExperienceRecord, bool) {
	joined := strings.Join(header, " | ")
	location := roleLocationRe.FindString(joined)
	if location != "" {
		joined = strings.Replace(joined, location, " ", 1)
	}

	var fragments []string
	for _, f := range fragmentSplitRe.Split(joined, -1) {
		if p.isPlaceholder(f) {
			continue
		}
		for _, part := range strings.Split(f, ",") {
			part = strings.Trim(part, " ()[]–—-|")
			if part != "" && !p.isPlaceholder(part) {
				fragments = append(fragments, part)
			}
		}
	}

	var title, company string
	for _, f := range fragments {
		if title == "" && p.looksLikeTitle(f) {
			title = f
			continue
		}
		if company == "" && p.plausibleCompany(f) {
			company = f
		}
	}
	if title == "" && company != "" && len(fragments) > 1 {
		// no recognised title word, so read the header as "Title | Company"
		for _, f := range fragments {
			if f != company && p.plausibleCompany(f) {
				title = company
				company = f
				break
			}
		}
	}
	if title == "" && company == "" {
		return types.ExperienceRecord{}, false
	}

	start, end := rng.Start, rng.End
	rec := types.ExperienceRecord{
		Title:          title,
		Company:        company,
		Location:       strings.TrimSpace(location),
		StartDate:      &start,
		EndDate:        &end,
		IsCurrent:      rng.IsCurrent,
		DurationMonths: timeline.MonthsBetween(start, end),
		RawDates:       rng.Raw,
	}
	for _, l := range body {
		if a := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(l.text, "")); a != "" {
			rec.Achievements = append(rec.Achievements, a)
		}
	}
	return rec, true
}

func (p *ExperienceParser) looksLikeTitle(fragment string) bool {
	lower := strings.ToLower(fragment)
	for _, t := range p.titles {
		if containsWord(lower, t) {
			return true
		}
	}
	return false
}

func (p *ExperienceParser) isPlaceholder(fragment string) bool {
	lower := strings.ToLower(strings.Trim(fragment, " ()[]–—-|"))
	for _, ph := range p.tax.Lexicon().Placeholders {
		if lower == ph {
			return true
		}
	}
	return false
}

// plausibleCompany drops sentence-like fragments
func (p *ExperienceParser) plausibleCompany(fragment string) bool {
	words := strings.Fields(fragment)
	if len(words) == 0 || len(words) > 6 || strings.HasSuffix(fragment, ".") {
		return false
	}
	first := fragment[0]
	if first >= 'a' && first <= 'z' {
		return false
	}
	return !p.sentenceLike(fragment)
}

// sentenceLike reports whether a line opens like an achievement rather than a name:
// a first-person pronoun, an action verb, or a duty phrase such as "Responsible for"
func (p *ExperienceParser) sentenceLike(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ",;:"))
	if _, ok := sentenceOpeners[first]; ok {
		return true
	}
	for _, verb := range p.tax.Lexicon().ActionVerbs {
		if first == verb {
			return true
		}
	}
	for _, verb := range p.tax.Lexicon().Leadership {
		if first == verb {
			return true
		}
	}
	return false
}
