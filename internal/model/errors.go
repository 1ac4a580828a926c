package model

import "fmt"

// ValidationError describes a single field that failed validation.  Handlers
// report it to the client with a 400 status before any persistence call is
// attempted; it never triggers a retry.
type ValidationError struct {
	Field  string // offending field, JSON name
	Reason string // human readable reason
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
