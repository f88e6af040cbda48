// Package parsing turns cleaned resume and job posting text into structured profiles.
package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/talent-match/internal/taxonomy"
)

// DefaultHeaderThreshold is the minimum confidence for a line to start a section
const DefaultHeaderThreshold = 0.5

// SectionPreamble holds content that appears before the first recognised header
const SectionPreamble = "header"

// maxHeaderLength excludes long lines from header scoring
const maxHeaderLength = 100

// Header match weights by position of the header phrase in the line
const (
	exactMatch    = 1.0
	prefixMatch   = 0.7
	containsMatch = 0.4
	positionScale = 0.5
)

var (
	decorationRe = regexp.MustCompile(`^[\s\-=_*#|~•]+|[\s\-=_*#|~:]+$`)
	decoratedRe  = regexp.MustCompile(`^[\-=_*#|~]{2,}|[\-=_*#|~]{2,}$|^[|#*]|[|#*]$`)
	headerDateRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// Section is one segment of a document
type Section struct {
	Name       string  `json:"name"`
	Header     string  `json:"header,omitempty"`
	Confidence float64 `json:"confidence"`
	Content    string  `json:"content"`
}

// Segmenter splits documents into named sections
type Segmenter struct {
	tax       *taxonomy.Taxonomy
	threshold float64
}

// NewSegmenter creates a segmenter. A threshold of zero uses DefaultHeaderThreshold.
func NewSegmenter(tax *taxonomy.Taxonomy, threshold float64) *Segmenter {
	if threshold <= 0 {
		threshold = DefaultHeaderThreshold
	}
	return &Segmenter{tax: tax, threshold: threshold}
}

// SegmentSections splits text with the default threshold and joins repeated
// sections, keyed by section name
func SegmentSections(tax *taxonomy.Taxonomy, text string) map[string]string {
	return SectionMap(NewSegmenter(tax, 0).Segment(text))
}

// SectionMap joins sections that share a name, in document order
func SectionMap(sections []Section) map[string]string {
	out := make(map[string]string, len(sections))
	for _, s := range sections {
		if prev, ok := out[s.Name]; ok && prev != "" {
			out[s.Name] = prev + "\n" + s.Content
			continue
		}
		out[s.Name] = s.Content
	}
	return out
}

// Segment splits text at lines that score as section headers
func (s *Segmenter) Segment(text string) []Section {
	var sections []Section
	current := Section{Name: SectionPreamble, Confidence: 1}
	var body []string

	flush := func() {
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Header != "" || current.Content != "" {
			sections = append(sections, current)
		}
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if name, conf := s.HeaderConfidence(line); conf >= s.threshold {
			flush()
			current = Section{Name: name, Header: strings.TrimSpace(line), Confidence: conf}
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// HeaderConfidence scores a line as a section header and names the best
// matching family. Lines that are long, bulleted or dated score zero.
func (s *Segmenter) HeaderConfidence(line string) (string, float64) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeaderLength {
		return "", 0
	}
	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "- ") || headerDateRe.MatchString(trimmed) {
		return "", 0
	}
	normalized := strings.ToLower(strings.TrimSpace(decorationRe.ReplaceAllString(trimmed, "")))
	if normalized == "" {
		return "", 0
	}

	bestName, bestPos := "", 0.0
	for _, name := range s.tax.SectionNames() {
		for _, header := range s.tax.SectionHeaders(name) {
			if pos := matchPosition(normalized, header); pos > bestPos {
				bestName, bestPos = name, pos
			}
		}
	}
	if bestPos == 0 {
		return "", 0
	}

	conf := bestPos * positionScale
	if isAllCaps(trimmed) {
		conf += 0.15
	}
	if strings.HasSuffix(trimmed, ":") || decoratedRe.MatchString(trimmed) {
		conf += 0.1
	}
	if len(strings.Fields(normalized)) <= 4 {
		conf += 0.15
	}
	switch {
	case len(trimmed) <= 30:
		conf += 0.1
	case len(trimmed) <= 60:
		conf += 0.05
	}
	return bestName, min(conf, 1)
}

// matchPosition grades where header occurs in line. A prefix only counts when
// the header is joined to more header words, as in "Skills & Tools".
func matchPosition(line, header string) float64 {
	if line == header {
		return exactMatch
	}
	if rest, ok := strings.CutPrefix(line, header); ok {
		rest = strings.TrimSpace(rest)
		for _, joiner := range []string{"&", "and ", "/", "("} {
			if strings.HasPrefix(rest, joiner) {
				return prefixMatch
			}
		}
	}
	if containsWord(line, header) {
		return containsMatch
	}
	return 0
}

// containsWord reports whether phrase occurs in s on word boundaries
func containsWord(s, phrase string) bool {
	for offset := 0; offset < len(s); {
		idx := strings.Index(s[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(phrase)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}
