// Package aaserrors provides structured error types for asyncapitools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - KeyFormatError: patterned object keys violating the identifier pattern
//   - MissingKeyError: lookups or deletions of absent patterned keys
//   - ReferenceError: $ref resolution failures, malformed pointers, cycles
//   - ValidationError: AsyncAPI specification violations
//   - ResourceLimitError: Resource exhaustion (depth, size, count limits)
//   - GenerateError: Code generation failures
//   - ConfigError: Invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	if err != nil {
//	    var refErr *aaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        if refErr.IsCircular {
//	            // Handle circular reference specifically
//	        }
//	    }
//	}
package aaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrKeyFormat indicates a patterned object key violated its pattern.
	ErrKeyFormat = errors.New("key format error")

	// ErrMissingKey indicates a patterned container operation on an absent key.
	ErrMissingKey = errors.New("missing key")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrUnresolvedRef indicates an internal $ref with no live target.
	ErrUnresolvedRef = errors.New("unresolved reference")

	// ErrMalformedRef indicates an internal $ref that does not match the pointer grammar.
	ErrMalformedRef = errors.New("malformed reference")

	// ErrCircularRef indicates a circular $ref chain was detected.
	ErrCircularRef = errors.New("circular reference")

	// ErrValidation indicates a specification validation failure.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrGenerate indicates a code generation failure.
	ErrGenerate = errors.New("generate error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an AsyncAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// KeyFormatError represents a patterned object key that violates its
// configured identifier pattern. It is raised at container construction or
// mutation time, never deferred to a later validation pass.
type KeyFormatError struct {
	// Container names the patterned collection the key was destined for
	// (e.g. "servers", "components.messages")
	Container string
	// Key is the offending key
	Key string
	// Rule is the human-readable description of the allowed key shape
	Rule string
}

// Error returns a human-readable error message.
func (e *KeyFormatError) Error() string {
	msg := "key format error"
	if e.Container != "" {
		msg += " in " + e.Container
	}
	msg += fmt.Sprintf(": field '%s' does not match patterned object key pattern", e.Key)
	if e.Rule != "" {
		msg += ". Keys must contain " + e.Rule
	}
	return msg
}

// Unwrap returns nil as KeyFormatError has no underlying cause.
func (e *KeyFormatError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// KeyFormatError also matches ErrValidation since a bad key makes the
// containing document invalid.
func (e *KeyFormatError) Is(target error) bool {
	return target == ErrKeyFormat || target == ErrValidation
}

// MissingKeyError represents a get or delete of a key that is not present
// in a patterned container.
type MissingKeyError struct {
	// Container names the patterned collection
	Container string
	// Key is the absent key
	Key string
}

// Error returns a human-readable error message.
func (e *MissingKeyError) Error() string {
	msg := "missing key"
	if e.Container != "" {
		msg += " in " + e.Container
	}
	msg += fmt.Sprintf(": '%s'", e.Key)
	return msg
}

// Unwrap returns nil as MissingKeyError has no underlying cause.
func (e *MissingKeyError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// ReferenceError represents a failure to resolve a $ref.
// This includes unresolved references, malformed pointers, and circular chains.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Path is the document location holding the reference
	// (e.g. "operations.orderCreated.reply.channel")
	Path string
	// Category is the expected target category (e.g. "messages", "channels")
	Category string
	// IsCircular is true if this error is due to a circular reference chain
	IsCircular bool
	// IsMalformed is true if the reference does not match the pointer grammar
	IsMalformed bool
	// IsUnresolved is true if the reference points at a nonexistent target
	IsUnresolved bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCircular:
		msg = "circular reference"
	case e.IsMalformed:
		msg = "malformed reference"
	case e.IsUnresolved:
		msg = "unresolved reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularRef, ErrMalformedRef, or
// ErrUnresolvedRef when the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrCircularRef && e.IsCircular {
		return true
	}
	if target == ErrMalformedRef && e.IsMalformed {
		return true
	}
	if target == ErrUnresolvedRef && e.IsUnresolved {
		return true
	}
	return false
}

// ValidationError represents an AsyncAPI specification violation.
type ValidationError struct {
	// Path is the document path to the problematic field (e.g., "channels.orders.messages")
	Path string
	// Field is the specific field name with the issue
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the validation failure
	Message string
	// SpecRef is a URL to the relevant AsyncAPI specification section
	SpecRef string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when parsing or resolution exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "document size", "reference depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// GenerateError represents a failure during code generation.
type GenerateError struct {
	// TypeName is the Go type being generated when the failure occurred
	TypeName string
	// Path is the document path of the source schema
	Path string
	// Message describes the generation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerateError) Error() string {
	msg := "generate error"
	if e.TypeName != "" {
		msg += " for " + e.TypeName
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerateError) Is(target error) bool {
	return target == ErrGenerate
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
