// Package validator provides AsyncAPI 3.0 document validation.
//
// This package checks parsed AsyncAPI documents against the specification
// rules this toolkit enforces: required fields and enumerated values,
// string formats (URLs, emails, media types, runtime expressions),
// specification extension names, and — most importantly — reference
// resolution: that every internal $ref points at an existing object of the
// expected kind, either under components.* or in a root collection.
//
// # Validation Model
//
// Validation is an explicit, caller-invoked step over an immutable
// document. A pass builds a reference index of every target the document
// defines and then runs a fixed set of rules, each a single traversal over
// the document graph driven by the walker package:
//
//   - semantics: required fields, enumerated values, string formats
//   - references: $ref classification and resolution
//   - extensions: specification extension name grammar
//
// Rules are idempotent and never mutate the document: validating a valid
// document twice produces identical results. Additional rules can be
// attached through Validator.Rules or the WithRule option; they implement
// the Rule interface and run after the builtin set.
//
// # Reference Resolution
//
// Internal references must take one of exactly two shapes:
//
//	#/components/{category}/{key}
//	#/{kind}/{key}              (kind: servers, channels, operations)
//
// The walker's reference-edge table declares, for every location a $ref
// may appear, where it must point. The references rule checks each
// occurrence against its declared target: a reference with the wrong
// prefix ("must point to #/components/messages/ but points elsewhere"),
// a missing terminal key ("component 'x' does not exist in
// #/components/messages"), and a malformed pointer are all distinct
// errors carrying the document path of the offending field.
//
// External references — anything not starting with "#" — cannot be
// resolved against the local document. They produce warnings, never
// errors, and do not suppress validation of sibling fields.
//
// # Aggregation and Fail-Fast
//
// By default a pass aggregates every finding so one run reports all
// problems. ValidationResult.FirstError returns the first error in
// document order for callers wanting the fail-fast view without
// re-running. Setting Validator.FailFast (or the WithFailFast option)
// aborts the pass at the first error instead.
//
// # Severity Levels
//
//   - SeverityError: specification violations that make the document invalid
//   - SeverityWarning: external references, unused parameters, unknown
//     binding protocols, and other findings that do not invalidate the
//     document
//
// Warnings can be suppressed by setting IncludeWarnings to false.
//
// # Basic Usage
//
// For one-off validation of a file, use the convenience function:
//
//	result, err := validator.Validate("asyncapi.yaml")
//	if err != nil {
//		log.Fatalf("validation failed to run: %v", err)
//	}
//	if !result.Valid {
//		fmt.Printf("Found %d error(s):\n", result.ErrorCount)
//		for _, e := range result.Errors {
//			fmt.Printf("  %s\n", e.String())
//		}
//	}
//
// For validating multiple documents with the same configuration, create a
// Validator instance:
//
//	v := validator.New()
//	v.IncludeWarnings = false
//
//	result1, err := v.Validate("orders.yaml")
//	result2, err := v.Validate("payments.yaml")
//
// Documents already parsed (or built programmatically) validate without
// touching the filesystem:
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithParsed(*parsed),
//		validator.WithFailFast(true),
//	)
//
// # Error Path Format
//
// Findings carry the document path in dotted form, matching how authors
// navigate the document:
//
//   - "info.title" — missing title
//   - "operations.orderCreated.reply.channel" — unresolved reply channel
//   - "components.messages.orderEvent.payload" — bad payload schema ref
//
// # Limitations
//
//   - External references are reported but never fetched or followed
//   - Schema contents are validated for reference targets only, not
//     evaluated as JSON Schema
//   - Binding payloads are free-form; only the protocol names are checked
//     against the bindings catalog
package validator
