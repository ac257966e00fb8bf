// Package aaserrors provides structured error types for the asyncapitools library.
//
// Import path: github.com/erraggy/asyncapitools/aaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides eight core error types:
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [KeyFormatError]: patterned object keys violating their identifier pattern
//   - [MissingKeyError]: operations on absent patterned keys
//   - [ReferenceError]: $ref resolution failures, malformed pointers, circular chains
//   - [ValidationError]: AsyncAPI specification violations
//   - [ResourceLimitError]: Resource exhaustion (depth, size, count limits)
//   - [GenerateError]: Code generation failures
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrKeyFormat]: Matches any [KeyFormatError]
//   - [ErrMissingKey]: Matches any [MissingKeyError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrUnresolvedRef]: Matches [ReferenceError] with IsUnresolved=true
//   - [ErrMalformedRef]: Matches [ReferenceError] with IsMalformed=true
//   - [ErrCircularRef]: Matches [ReferenceError] with IsCircular=true
//   - [ErrValidation]: Matches any [ValidationError] (and any [KeyFormatError])
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrGenerate]: Matches any [GenerateError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// External references are deliberately NOT an error category: a $ref pointing
// outside the current document is assumed valid and is surfaced by the
// validator as a warning-severity finding, never as an error value.
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	if errors.Is(err, aaserrors.ErrParse) {
//	    // Handle parse error
//	}
//
// Extract error details with errors.As():
//
//	var refErr *aaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	    if refErr.IsCircular {
//	        // Handle circular reference specifically
//	    }
//	}
//
// Check for specific conditions:
//
//	if errors.Is(err, aaserrors.ErrKeyFormat) {
//	    // A map key broke the patterned-key rule
//	}
//	if errors.Is(err, aaserrors.ErrUnresolvedRef) {
//	    // An internal $ref pointed at nothing
//	}
//
// # Error Chaining
//
// Error types with a Cause field support error chaining via Unwrap(), so
// root causes remain reachable through the standard error chain:
//
//	var parseErr *aaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    if errors.Is(parseErr.Cause, os.ErrNotExist) {
//	        // The document file doesn't exist
//	    }
//	}
package aaserrors
