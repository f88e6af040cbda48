// Package ingestion turns raw resume and job documents into clean text ready for parsing.
package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\x{00A0}\x{2000}-\x{200A}\x{3000}]+`)
	blankLines   = regexp.MustCompile(`\n\n\n+`)
	invisibles   = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "", "\u00ad", "")
	bulletGlyphs = strings.NewReplacer("\u25aa", "•", "\u25cf", "•", "\u25e6", "•", "\u2023", "•", "\u2219", "•", "\u2043", "•", "\uf0b7", "•")
	dashGlyphs   = strings.NewReplacer("\u2012", "–", "\u2014", "–", "\u2015", "–")
)

// CleanText normalizes text content while preserving line structure.
// Unicode is folded to NFKC so ligatures and full-width forms compare equal.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = norm.NFKC.String(content)
	content = invisibles.Replace(content)
	content = bulletGlyphs.Replace(content)
	content = dashGlyphs.Replace(content)

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a single line and collapses inner runs of spaces
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if isBulletLine(trimmed) {
		return "• " + strings.TrimSpace(spaceRun.ReplaceAllString(trimmed[bulletWidth(trimmed):], " "))
	}
	return spaceRun.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return bulletWidth(line) > 0
}

func bulletWidth(line string) int {
	for _, prefix := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, prefix) {
			return len(prefix)
		}
	}
	return 0
}
