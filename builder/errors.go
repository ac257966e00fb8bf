package builder

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// BuildError is a structured error from the builder package. It records
// which collection and key the failing call targeted so the error is
// actionable after a long method chain.
type BuildError struct {
	// Collection is the document collection the call targeted, for
	// example "servers" or "components.messages".
	Collection string
	// Key is the entry key passed to the failing call.
	Key string
	// Message describes the error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	var sb strings.Builder
	sb.WriteString("builder")
	if e.Collection != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Collection)
	}
	if e.Key != "" {
		fmt.Fprintf(&sb, " %q", e.Key)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is classifies every BuildError as a configuration error, so callers can
// detect builder misuse with errors.Is(err, aaserrors.ErrConfig). Key
// format violations additionally match aaserrors.ErrKeyFormat through
// the wrapped cause.
func (e *BuildError) Is(target error) bool {
	return target == aaserrors.ErrConfig
}

// newKeyError wraps a key format violation from a collection insert.
func newKeyError(collection, key string, cause error) *BuildError {
	return &BuildError{
		Collection: collection,
		Key:        key,
		Message:    "invalid key",
		Cause:      cause,
	}
}

// newNilValueError reports a nil value passed to an Add method.
func newNilValueError(collection, key string) *BuildError {
	return &BuildError{
		Collection: collection,
		Key:        key,
		Message:    "value cannot be nil",
	}
}

// newMissingTargetError reports a reference to an entry that has not been
// added yet.
func newMissingTargetError(collection, key, message string) *BuildError {
	return &BuildError{
		Collection: collection,
		Key:        key,
		Message:    message,
	}
}

// BuildErrors is a collection of BuildError with formatting support.
type BuildErrors []*BuildError

// Error implements the error interface with a formatted multi-error
// message.
func (errs BuildErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		if errs[0] == nil {
			return ""
		}
		return errs[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "builder: %d error(s):\n", len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		sb.WriteString("  - ")
		sb.WriteString(strings.TrimPrefix(e.Error(), "builder: "))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Unwrap returns the contained errors, enabling errors.Is and errors.As
// across the whole collection.
func (errs BuildErrors) Unwrap() []error {
	result := make([]error, 0, len(errs))
	for _, e := range errs {
		if e == nil {
			continue
		}
		result = append(result, e)
	}
	return result
}
