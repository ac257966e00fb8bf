package validator

import (
	"github.com/erraggy/asyncapitools/parser"
)

// Rule is a single validation pass over a document. The builtin rules
// cover the specification; additional rules can be attached through
// Validator.Rules or the WithRule option.
//
// Apply must be idempotent and must not mutate the document: its only
// output is findings added through the Context. Rules run in a fixed
// order and must not depend on findings from other rules.
type Rule interface {
	// Name identifies the rule in logs and wrapped errors.
	Name() string
	// Apply runs the rule, reporting findings through ctx. The returned
	// error is for mechanical failures only; a finding is never an error.
	Apply(ctx *Context) error
}

// Context carries one validation pass: the document under validation, the
// reference index built for it, and the result that findings are added to.
type Context struct {
	v      *Validator
	parsed *parser.ParseResult
	result *ValidationResult

	// validRefs indexes every reference target the document defines, as
	// "#/components/{category}/{key}" and "#/{kind}/{key}" strings.
	validRefs map[string]bool

	stopped bool
}

func newContext(v *Validator, parsed *parser.ParseResult, result *ValidationResult) *Context {
	return &Context{
		v:         v,
		parsed:    parsed,
		result:    result,
		validRefs: buildValidRefs(parsed.Document),
	}
}

// Document returns the document under validation. Rules must treat it as
// read-only.
func (c *Context) Document() *parser.AsyncAPIDocument {
	return c.parsed.Document
}

// Parsed returns the full parse result for rules that need source
// metadata alongside the document.
func (c *Context) Parsed() *parser.ParseResult {
	return c.parsed
}

// ValidRef reports whether ref resolves to an existing component or root
// entry. Only the two internal reference shapes can probe true; external
// and malformed references always report false.
func (c *Context) ValidRef(ref string) bool {
	return c.validRefs[ref]
}

// ComponentExists reports whether the named component category defines key.
func (c *Context) ComponentExists(category, key string) bool {
	return c.Document().Components.HasKey(category, key)
}

// RootEntryExists reports whether the root collection kind defines key.
// Kind is one of parser.RootServers, parser.RootChannels, and
// parser.RootOperations.
func (c *Context) RootEntryExists(kind, key string) bool {
	doc := c.Document()
	switch kind {
	case parser.RootServers:
		return doc.Servers.Has(key)
	case parser.RootChannels:
		return doc.Channels.Has(key)
	case parser.RootOperations:
		return doc.Operations.Has(key)
	default:
		return false
	}
}

// Stopped reports whether validation should halt. It turns true after the
// first error when fail-fast is enabled; rules should return promptly
// once it does.
func (c *Context) Stopped() bool {
	return c.stopped
}

// AddError records an error finding at the given document path.
func (c *Context) AddError(path, message string, opts ...func(*ValidationError)) {
	ve := ValidationError{Path: path, Message: message, Severity: SeverityError}
	for _, opt := range opts {
		opt(&ve)
	}
	c.AddIssue(ve)
}

// AddWarning records a warning finding at the given document path.
// Warnings are dropped when the validator runs with IncludeWarnings
// disabled.
func (c *Context) AddWarning(path, message string, opts ...func(*ValidationError)) {
	ve := ValidationError{Path: path, Message: message, Severity: SeverityWarning}
	for _, opt := range opts {
		opt(&ve)
	}
	c.AddIssue(ve)
}

// AddIssue records a fully populated finding, routing it by severity.
func (c *Context) AddIssue(issue ValidationError) {
	switch issue.Severity {
	case SeverityWarning, SeverityInfo:
		if !c.v.IncludeWarnings {
			return
		}
		c.result.Warnings = append(c.result.Warnings, issue)
	default:
		c.result.Errors = append(c.result.Errors, issue)
		if c.v.FailFast {
			c.stopped = true
		}
	}
}

// withField sets the field name on a finding.
func withField(field string) func(*ValidationError) {
	return func(ve *ValidationError) { ve.Field = field }
}

// withValue attaches the offending value to a finding.
func withValue(value any) func(*ValidationError) {
	return func(ve *ValidationError) { ve.Value = value }
}

// withSpecRef links a finding to the relevant specification section.
func withSpecRef(ref string) func(*ValidationError) {
	return func(ve *ValidationError) { ve.SpecRef = ref }
}

// withCategory records the reference category or root collection a
// finding concerns.
func withCategory(category string) func(*ValidationError) {
	return func(ve *ValidationError) { ve.Category = category }
}
