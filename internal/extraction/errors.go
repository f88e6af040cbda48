package extraction

import "fmt"

// TaggerError reports a failure of an entity tagger.
// The extractor logs it and continues without entities.
type TaggerError struct {
	Message string
	Cause   error
}

func (e *TaggerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("entity tagging failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("entity tagging failed: %s", e.Message)
}

func (e *TaggerError) Unwrap() error {
	return e.Cause
}
