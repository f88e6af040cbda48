package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/types"
)

var contextRe = regexp.MustCompile(`(?i)\b(?:using|with|in|including)\s+([A-Za-z.][\w.+#/-]*(?:\s+[\w.+#/-]+){0,2})`)

var leadingStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "our": {}, "my": {}, "their": {}, "its": {}, "both": {}, "various": {},
}

// contextSkills scans phrases such as "built services using Go and Kafka". The
// longest prefix of up to three words that validates is kept. Ambiguous
// aliases count only when written capitalized, and unknown technical terms
// are accepted only as single words.
func (e *Extractor) contextSkills(text string) []types.ExtractedSkill {
	var out []types.ExtractedSkill
	for _, m := range contextRe.FindAllStringSubmatch(text, -1) {
		words := strings.Fields(m[1])
		if len(words) > 0 {
			if _, stop := leadingStopwords[strings.ToLower(words[0])]; stop {
				words = words[1:]
			}
		}
		for n := len(words); n > 0; n-- {
			phrase := strings.TrimRight(strings.Join(words[:n], " "), ".,;:")
			skill, ok := e.validate(phrase, types.SourceContext)
			if !ok {
				continue
			}
			if n > 1 && skill.Category == CategoryOther {
				continue
			}
			if e.tax.IsAmbiguous(phrase) && !startsUpper(phrase) {
				continue
			}
			out = append(out, skill)
			break
		}
	}
	return out
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
