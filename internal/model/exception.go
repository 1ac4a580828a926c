package model

import "strings"

// CancellationException suppresses one occurrence of a recurring class on one
// date.  Its identity is the composite (ClassID, Date) key, so at most one
// exception can exist per class occurrence; saving the same key twice
// overwrites the reason instead of duplicating the record.
//
// Exceptions reference their class weakly by ID.  Deleting a class leaves its
// exceptions behind as history of suppressed occurrences; the materializer
// ignores exceptions whose class no longer exists, so they are inert.
type CancellationException struct {
	ClassID uint64 `json:"class_id"`
	Date    Date   `json:"date"`
	Reason  string `json:"reason"`
}

// Validate checks the fields required before an exception may be saved.
func (x CancellationException) Validate() error {
	if x.ClassID == 0 {
		return &ValidationError{Field: "class_id", Reason: "class reference is required"}
	}
	if x.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "date is required"}
	}
	if strings.TrimSpace(x.Reason) == "" {
		return &ValidationError{Field: "reason", Reason: "a cancellation reason is required"}
	}
	return nil
}
