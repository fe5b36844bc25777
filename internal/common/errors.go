// Package common defines the error taxonomy and small shared helpers used
// across the SkillLink client layers. Callers match sentinel errors with
// errors.Is and typed errors with errors.As.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports that a required single-row fetch matched zero rows.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthenticated reports an auth-requiring operation attempted
	// without a live session. No network call is made in this case.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ErrorClass partitions backend failures for retry and presentation
// decisions. Only transient-class errors are ever retried.
type ErrorClass int

const (
	ClassOther ErrorClass = iota
	ClassUnauthorized
	ClassTransient
)

func (c ErrorClass) String() string {
	switch c {
	case ClassUnauthorized:
		return "unauthorized"
	case ClassTransient:
		return "transient"
	default:
		return "error"
	}
}

// RemoteError is a structured failure returned by the backend. Message is
// safe to surface to the acting user.
type RemoteError struct {
	Message string
	Class   ErrorClass
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend: %s (%s)", e.Message, e.Class)
}

// IsUnauthorized reports whether err is an authentication-rejection class
// failure. These are terminal and must never be retried.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}
	var re *RemoteError
	return errors.As(err, &re) && re.Class == ClassUnauthorized
}

// IsTransient reports whether err is a network/availability class failure
// that a bounded retry policy may attempt again.
func IsTransient(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Class == ClassTransient
}

// ValidationError is a client-side precondition failure raised before any
// network call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// ConfigError reports missing mandatory configuration. It is the only fatal
// error in the system: the process must not proceed past startup with it.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}
