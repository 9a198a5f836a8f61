package helper

import "fmt"

// NewError wraps an error with the operation that failed.
// The operation string should be a short lowercase description
// (e.g. "load nodes sql", "scan").
func NewError(operation string, err error) error {
	return fmt.Errorf("error in %s: %w", operation, err)
}
