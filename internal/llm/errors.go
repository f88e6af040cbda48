package llm

import "fmt"

// APIError represents an error from the LLM provider
type APIError struct {
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm API call failed: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
