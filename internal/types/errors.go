// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// ConfigurationError reports structurally invalid configuration such as bad weights.
// It is the only error the matching core surfaces for otherwise well-formed input.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	prefix := "configuration error"
	if e.Field != "" {
		prefix = fmt.Sprintf("configuration error in %s", e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
