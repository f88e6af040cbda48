package taxonomy

import "fmt"

// LoadError represents a failure to read, validate or compile a taxonomy resource
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy %s: %s", e.File, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
