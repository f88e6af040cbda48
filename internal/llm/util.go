package llm

import (
	"regexp"
	"strings"
)

// fenceRe matches a response wrapped in a markdown code fence with an optional language tag
var fenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \\t]*\\n?(.*?)\\s*```$")

// CleanJSONBlock strips a markdown code fence from a model response. When prose
// still surrounds the payload, the outermost JSON object or array is kept.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if text == "" || text[0] == '{' || text[0] == '[' {
		return text
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return text
	}
	return text[start : end+1]
}
