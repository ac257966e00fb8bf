// Package severity provides severity level constants and utilities
// for issues reported by the validator, fixer, and generator packages.
//
// All severity levels are re-exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Best-practice violations, external references, recommendations
//   - SeverityError: Spec violations that make documents invalid
//   - SeverityCritical: Features that cannot be processed (data loss)
package severity

// Severity indicates the severity level of an issue found during validation,
// normalization, or code generation.
type Severity int

const (
	// SeverityError indicates a spec violation that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates findings that don't prevent processing but
	// should be addressed. External references resolve to warnings because
	// they cannot be checked against the local document.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates features that cannot be processed without data loss.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
