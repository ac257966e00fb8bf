package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/asyncapitools/aaserrors"
	"github.com/erraggy/asyncapitools/internal/issues"
	"github.com/erraggy/asyncapitools/internal/severity"
	"github.com/erraggy/asyncapitools/parser"
)

// ValidationError represents a single validation finding with its document
// path and context.
type ValidationError = issues.Issue

// Severity indicates how serious a validation finding is.
type Severity = severity.Severity

// Severity levels for validation findings.
const (
	SeverityError    = severity.SeverityError
	SeverityWarning  = severity.SeverityWarning
	SeverityInfo     = severity.SeverityInfo
	SeverityCritical = severity.SeverityCritical
)

// ValidationResult contains the results of validating an AsyncAPI document
type ValidationResult struct {
	// Valid indicates whether the document passed validation
	Valid bool
	// Version is the AsyncAPI version string declared by the document
	Version string
	// AsyncAPIVersion is the enumerated specification version
	AsyncAPIVersion parser.AsyncAPIVersion
	// Errors contains all validation errors found
	Errors []ValidationError
	// Warnings contains all validation warnings found
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats parser.DocumentStats
	// Document is the validated document model
	Document *parser.AsyncAPIDocument
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the path the document was read from
	SourcePath string
}

// FirstError returns the first error in document order, or nil when the
// document has none. This is the fail-fast view of an aggregated result.
func (vr *ValidationResult) FirstError() *ValidationError {
	if vr == nil || len(vr.Errors) == 0 {
		return nil
	}
	return &vr.Errors[0]
}

// ToParseResult converts the validation result back into a
// parser.ParseResult so downstream tooling can consume a validated
// document without re-parsing.
func (vr *ValidationResult) ToParseResult() *parser.ParseResult {
	if vr == nil {
		return nil
	}
	pr := &parser.ParseResult{
		SourcePath:      vr.SourcePath,
		SourceFormat:    vr.SourceFormat,
		Version:         vr.Version,
		AsyncAPIVersion: vr.AsyncAPIVersion,
		Document:        vr.Document,
		LoadTime:        vr.LoadTime,
		SourceSize:      vr.SourceSize,
		Stats:           vr.Stats,
	}
	for i := range vr.Errors {
		pr.Errors = append(pr.Errors, errors.New(vr.Errors[i].String()))
	}
	for i := range vr.Warnings {
		pr.Warnings = append(pr.Warnings, vr.Warnings[i].String())
	}
	return pr
}

// Validator validates AsyncAPI documents against the 3.0 specification
type Validator struct {
	// IncludeWarnings determines whether warning findings are collected
	// Default: true
	IncludeWarnings bool
	// FailFast stops validation at the first error instead of aggregating
	// every finding in one pass
	// Default: false
	FailFast bool
	// ValidateStructure determines whether the parser performs its early
	// structure checks when loading documents from a file
	// Default: true
	ValidateStructure bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
	// Rules holds additional rules to run after the builtin set
	Rules []Rule
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings:   true,
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (v *Validator) log() parser.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return parser.NopLogger{}
}

// Validate validates an AsyncAPI document from a local file path.
func (v *Validator) Validate(docPath string) (*ValidationResult, error) {
	p := parser.New()
	p.ValidateStructure = v.ValidateStructure
	p.Logger = v.Logger
	parsed, err := p.Parse(docPath)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to parse document: %w", err)
	}
	return v.ValidateParsed(*parsed)
}

// ValidateParsed validates an already-parsed document. Findings collected
// during parsing carry over into the result ahead of rule findings.
func (v *Validator) ValidateParsed(parsed parser.ParseResult) (*ValidationResult, error) {
	if parsed.Document == nil {
		return nil, fmt.Errorf("validator: ParseResult contains no document")
	}

	result := &ValidationResult{
		Version:         parsed.Version,
		AsyncAPIVersion: parsed.AsyncAPIVersion,
		LoadTime:        parsed.LoadTime,
		SourceSize:      parsed.SourceSize,
		Stats:           parsed.Stats,
		Document:        parsed.Document,
		SourceFormat:    parsed.SourceFormat,
		SourcePath:      parsed.SourcePath,
	}

	ctx := newContext(v, &parsed, result)

	for _, parseErr := range parsed.Errors {
		ctx.AddError(parseIssuePath(parseErr), parseErr.Error())
	}
	for _, warn := range parsed.Warnings {
		ctx.AddWarning("document", warn)
	}

	for _, rule := range v.rules() {
		if ctx.Stopped() {
			break
		}
		v.log().Debug("running validation rule", "rule", rule.Name())
		if err := rule.Apply(ctx); err != nil {
			return nil, fmt.Errorf("validator: rule %s: %w", rule.Name(), err)
		}
	}

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
	v.log().Debug("validation complete",
		"valid", result.Valid,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
	)
	return result, nil
}

// rules returns the builtin rule set followed by any attached rules, in
// the order they run.
func (v *Validator) rules() []Rule {
	builtin := []Rule{
		semanticsRule{},
		referencesRule{},
		extensionsRule{},
	}
	return append(builtin, v.Rules...)
}

// parseIssuePath extracts the document path from parse findings that carry
// one, falling back to the document root.
func parseIssuePath(err error) string {
	var pe *aaserrors.ParseError
	if errors.As(err, &pe) && pe.Path != "" {
		return pe.Path
	}
	return "document"
}

// Validate is a convenience function that validates a document from a
// local file path using default settings.
func Validate(docPath string) (*ValidationResult, error) {
	return New().Validate(docPath)
}

// ValidateWithOptions validates a document using functional options.
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	v := &Validator{
		IncludeWarnings:   cfg.includeWarnings,
		FailFast:          cfg.failFast,
		ValidateStructure: cfg.validateStructure,
		Logger:            cfg.logger,
		Rules:             cfg.rules,
	}

	if cfg.filePath != nil {
		return v.Validate(*cfg.filePath)
	}
	return v.ValidateParsed(*cfg.parsed)
}
