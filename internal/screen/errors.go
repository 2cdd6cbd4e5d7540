package screen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("operation not allowed in current view")
	ErrNoDetail     = errors.New("resource has no detail view")
	// ErrRefresh means the mutation went through but the list could not be reloaded.
	ErrRefresh = errors.New("refresh failed")
)

// ValidationError lists required fields left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}
