package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/types"
)

// Proficiency confidences by signal
const (
	CueConfidence      = 0.8
	InferredConfidence = 0.6
)

// maxPlausibleYears caps years parsed from text
const maxPlausibleYears = 50

var (
	yearsRe     = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\+?\s*(?:years?|yrs?)\b`)
	yearSpanRe  = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|to)\s*((?:19|20)\d{2}|present|current|now)\b`)
	wordBoundRe = regexp.MustCompile(`[\w+#]`)
)

// InferProficiency maps years of use to a proficiency level when no explicit cue is present
func InferProficiency(years *float64) (string, float64) {
	if years == nil {
		return types.DefaultProficiency, types.DefaultProficiencyConfidence
	}
	switch y := *years; {
	case y >= 4:
		return types.ProficiencyExpert, InferredConfidence
	case y >= 2:
		return types.ProficiencyAdvanced, InferredConfidence
	case y >= 1:
		return types.ProficiencyIntermediate, InferredConfidence
	default:
		return types.DefaultProficiency, types.DefaultProficiencyConfidence
	}
}

// annotate fills mentions, years and proficiency from the text around every
// occurrence of the skill
func (e *Extractor) annotate(skill *types.ExtractedSkill, text, lower string) {
	positions := e.find(text, lower, skill.Raw)
	if !strings.EqualFold(skill.Raw, skill.Name) {
		positions = append(positions, e.find(text, lower, skill.Name)...)
	}
	if len(positions) > 0 {
		skill.Mentions = len(dedupeSpans(positions))
	} else if skill.Mentions == 0 {
		skill.Mentions = 1
	}

	level := ""
	for _, pos := range positions {
		win := window(text, pos[0], pos[1], e.window)
		if level == "" {
			level = e.cueLevel(win)
		}
		if y, ok := e.yearsIn(win); ok && (skill.Years == nil || y > *skill.Years) {
			v := y
			skill.Years = &v
		}
	}

	if level != "" {
		skill.Proficiency, skill.ProficiencyConfidence = level, CueConfidence
		return
	}
	skill.Proficiency, skill.ProficiencyConfidence = InferProficiency(skill.Years)
}

// cueLevel returns the strongest proficiency level whose cue appears in win
func (e *Extractor) cueLevel(win string) string {
	for _, cue := range e.tax.ProficiencyCues() {
		for _, re := range cue.Patterns {
			if re.MatchString(win) {
				return cue.Level
			}
		}
	}
	return ""
}

// yearsIn reads "N years" or "YYYY-YYYY" cues, keeping the largest value
func (e *Extractor) yearsIn(win string) (float64, bool) {
	best, found := 0.0, false
	for _, m := range yearsRe.FindAllStringSubmatch(win, -1) {
		if y, err := strconv.ParseFloat(m[1], 64); err == nil && y > 0 && y <= maxPlausibleYears && y > best {
			best, found = y, true
		}
	}
	for _, m := range yearSpanRe.FindAllStringSubmatch(win, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := e.now().Year()
		if n, err := strconv.Atoi(m[2]); err == nil {
			end = n
		}
		if y := float64(end - start); y > 0 && y <= maxPlausibleYears && y > best {
			best, found = y, true
		}
	}
	return best, found
}

// find locates a term case-insensitively, or exactly as written when the term
// doubles as an ordinary word
func (e *Extractor) find(text, lower, term string) [][2]int {
	if e.tax.IsAmbiguous(term) {
		return occurrences(text, term)
	}
	return occurrences(lower, strings.ToLower(term))
}

// occurrences finds term in s at token boundaries
func occurrences(s, term string) [][2]int {
	if term == "" {
		return nil
	}
	var out [][2]int
	for offset := 0; offset < len(s); {
		idx := strings.Index(s[offset:], term)
		if idx < 0 {
			break
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			out = append(out, [2]int{start, end})
		}
		offset = start + max(1, len(term))
	}
	return out
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !wordBoundRe.MatchString(string(r))
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !wordBoundRe.MatchString(string(r))
}

func dedupeSpans(spans [][2]int) [][2]int {
	seen := make(map[int]struct{}, len(spans))
	out := spans[:0]
	for _, s := range spans {
		if _, ok := seen[s[0]]; ok {
			continue
		}
		seen[s[0]] = struct{}{}
		out = append(out, s)
	}
	return out
}

// window returns up to n bytes either side of [start,end), cut on rune boundaries
func window(text string, start, end, n int) string {
	lo := max(0, start-n)
	hi := min(len(text), end+n)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
