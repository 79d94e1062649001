package types

import (
	"errors"
	"fmt"
	"strings"
)

// Draft and option operation errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidData   = errors.New("invalid data")
	ErrLimitExceeded = errors.New("option limit exceeded")
	ErrNoOptions     = errors.New("draft has no saved options")
)

// Persistence errors.
var (
	ErrRemote       = errors.New("remote store failure")
	ErrSaveInFlight = errors.New("a save is already in flight")
	ErrMapping      = errors.New("required field missing in wire payload")
)

// Cache lifecycle errors. The local cache follows an attach/detach lifecycle;
// operations on a detached cache fail with ErrCacheDetached.
var (
	ErrCacheDetached   = errors.New("cache is detached")
	ErrAlreadyAttached = errors.New("cache is already attached")
)

// ValidationError reports every required field that is missing before a
// remote write. All violations are collected in one pass so callers can
// render complete feedback instead of fixing fields one at a time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Has reports whether the named field is among the violations.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
