package parsing

import "fmt"

// Parse stages reported in ParseError
const (
	StageResume = "resume"
	StageJob    = "job"
)

// ParseError reports a document that cannot be parsed at all. Bad blocks
// inside a document are skipped and logged instead.
type ParseError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	prefix := "parse error"
	if e.Stage != "" {
		prefix = "parse " + e.Stage
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
