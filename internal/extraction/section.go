package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

var (
	// a hyphen only splits when spaced or leading the line, so "scikit-learn" survives
	sectionSplitRe = regexp.MustCompile(`[,;|•]|\s+-\s+|^\s*-\s*`)
	parentheticRe  = regexp.MustCompile(`\([^)]*\)`)
	labelRe        = regexp.MustCompile(`^[A-Za-z][A-Za-z /&]{0,30}:\s*`)
)

// sectionSkills splits a skills section into tokens and validates each one
func (e *Extractor) sectionSkills(section string) []types.ExtractedSkill {
	var out []types.ExtractedSkill
	for _, line := range strings.Split(section, "\n") {
		// "Languages: Python, Go" labels a group of skills
		line = labelRe.ReplaceAllString(strings.TrimSpace(line), "")
		for _, token := range sectionSplitRe.Split(line, -1) {
			token = strings.TrimSpace(parentheticRe.ReplaceAllString(token, " "))
			token = strings.Trim(token, ".:*")
			if token == "" {
				continue
			}
			if skill, ok := e.validate(token, types.SourceSection); ok {
				out = append(out, skill)
			}
		}
	}
	return out
}
