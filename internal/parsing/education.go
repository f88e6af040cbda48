package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/timeline"
	"github.com/jonathan/talent-match/internal/types"
)

var (
	fieldInRe     = regexp.MustCompile(`\bin\s+([A-Z][A-Za-z&/ ]*[A-Za-z])`)
	fieldOfRe     = regexp.MustCompile(`\bof\s+([A-Z][A-Za-z&/ ]*[A-Za-z])`)
	gpaRe         = regexp.MustCompile(`(?i)\bgpa\b[:\s]*([0-4]\.\d{1,2})|\b([0-4]\.\d{1,2})\s*/\s*4(?:\.0+)?\b`)
	eduFragmentRe = regexp.MustCompile(`\s*[,|]\s*|\s+[–—-]\s+`)
	fieldStopRe   = regexp.MustCompile(`\s+(?:from|at|with|and minor|minor)\b.*$`)
)

// EducationParser parses the education section of a resume
type EducationParser struct {
	tax *taxonomy.Taxonomy
}

// NewEducationParser creates an education parser
func NewEducationParser(tax *taxonomy.Taxonomy) *EducationParser {
	return &EducationParser{tax: tax}
}

// ParseEducation parses an education section with a default parser
func ParseEducation(tax *taxonomy.Taxonomy, section string, now time.Time) []types.EducationRecord {
	return NewEducationParser(tax).Parse(section, now)
}

// Parse groups lines into entries, starting a new entry when a second degree
// or a second institution appears, and reads each entry's fields
func (p *EducationParser) Parse(section string, now time.Time) []types.EducationRecord {
	var blocks [][]string
	var current []string
	hasDegree, hasInstitution := false, false
	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(raw), ""))
		if line == "" {
			continue
		}
		_, _, degree := p.degree(line)
		institution := p.institution(line) != ""
		if (degree && hasDegree) || (institution && hasInstitution) {
			blocks = append(blocks, current)
			current, hasDegree, hasInstitution = nil, false, false
		}
		current = append(current, line)
		hasDegree = hasDegree || degree
		hasInstitution = hasInstitution || institution
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	records := make([]types.EducationRecord, 0, len(blocks))
	for _, block := range blocks {
		if rec, ok := p.parseBlock(block, now); ok {
			records = append(records, rec)
		}
	}
	return records
}

func (p *EducationParser) parseBlock(lines []string, now time.Time) (types.EducationRecord, bool) {
	var rec types.EducationRecord
	text := strings.Join(lines, "\n")
	for _, line := range lines {
		if rec.Degree == "" {
			if fragment, level, ok := p.degree(line); ok {
				rec.Degree, rec.DegreeLevel = fragment, level
				rec.Field = fieldOf(fragment)
			}
		}
		if rec.Institution == "" {
			rec.Institution = p.institution(line)
		}
	}
	if rec.Degree == "" && rec.Institution == "" {
		return rec, false
	}

	if m := gpaRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			rec.GPA = &v
		}
	}
	rec.Honors = p.honors(text)

	if r, ok := timeline.FindRange(text, now); ok {
		start, end := r.Start, r.End
		rec.StartDate, rec.EndDate = &start, &end
	} else if y, ok := timeline.FindYear(text, now); ok {
		rec.EndDate = &y
	}
	return rec, true
}

// degree finds the fragment of line naming a degree and its level. Levels are
// tried highest first so "PhD" is not read as a master's keyword.
func (p *EducationParser) degree(line string) (string, string, bool) {
	for _, fragment := range eduFragmentRe.Split(line, -1) {
		lower := strings.ToLower(fragment)
		for _, level := range p.tax.DegreeLevels() {
			for _, kw := range level.Keywords {
				if containsDegreeKeyword(lower, kw) {
					return strings.TrimSpace(fragment), level.Name, true
				}
			}
		}
	}
	return "", "", false
}

// containsDegreeKeyword matches keywords such as "b.s." that end on punctuation
func containsDegreeKeyword(s, kw string) bool {
	if strings.HasSuffix(kw, ".") {
		idx := strings.Index(s, kw)
		return idx >= 0 && (idx == 0 || !isWordByte(s[idx-1]))
	}
	return containsWord(s, kw)
}

func (p *EducationParser) institution(line string) string {
	for _, fragment := range eduFragmentRe.Split(line, -1) {
		lower := strings.ToLower(fragment)
		for _, kw := range p.tax.InstitutionKeywords() {
			if containsWord(lower, kw) {
				return strings.TrimSpace(fragment)
			}
		}
	}
	return ""
}

// honors lists recognised honors, skipping ones contained in a longer match
func (p *EducationParser) honors(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, h := range p.tax.Honors() {
		if !strings.Contains(lower, h) {
			continue
		}
		covered := false
		for _, f := range found {
			if strings.Contains(f, h) {
				covered = true
				break
			}
		}
		if !covered {
			found = append(found, h)
		}
	}
	return found
}

// fieldOf reads the field of study after "in", falling back to "of"
func fieldOf(degree string) string {
	m := fieldInRe.FindStringSubmatch(degree)
	if m == nil {
		m = fieldOfRe.FindStringSubmatch(degree)
	}
	if m == nil {
		return ""
	}
	return strings.TrimSpace(fieldStopRe.ReplaceAllString(m[1], ""))
}
