package fixer

import (
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeComponentizeServers indicates an inline root server was moved
	// to components.servers
	FixTypeComponentizeServers FixType = "componentize-servers"
	// FixTypeComponentizeMessages indicates an inline channel message was
	// moved to components.messages
	FixTypeComponentizeMessages FixType = "componentize-messages"
	// FixTypeComponentizeTags indicates an inline tag was moved to
	// components.tags or a duplicate tag was removed
	FixTypeComponentizeTags FixType = "componentize-tags"
)

// allFixTypes lists every fix in pipeline order. Messages run before tags
// so tags on hoisted messages are visible to the tag pass.
var allFixTypes = []FixType{
	FixTypeComponentizeServers,
	FixTypeComponentizeMessages,
	FixTypeComponentizeTags,
}

// Fix represents a single fix applied to the document
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the dotted path to the fixed location (e.g., "channels.orders.messages.created")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the state before the fix (nil if adding a new element)
	Before any
	// After is the value that was added or changed
	After any
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Document is the normalized document; the input document is never
	// mutated
	Document *parser.AsyncAPIDocument
	// SourceVersion is the declared asyncapi version string of the source
	SourceVersion string
	// SourceAsyncAPIVersion is the enumerated source version
	SourceAsyncAPIVersion parser.AsyncAPIVersion
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the path to the source file
	SourcePath string
	// Fixes contains all fixes applied
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
	// Warnings contains non-fatal findings, such as same-name tags with
	// differing content resolved in favor of the first definition
	Warnings []string
	// Success is true if fixing completed without errors
	Success bool
	// Stats describes the normalized document
	Stats parser.DocumentStats
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// ToParseResult converts the fix result into a parser.ParseResult so the
// normalized document can feed APIs that accept parsed input, such as the
// validator and the generator. The raw Data map is not reconstructed.
func (r *FixResult) ToParseResult() *parser.ParseResult {
	return &parser.ParseResult{
		SourcePath:      r.SourcePath,
		SourceFormat:    r.SourceFormat,
		Version:         r.SourceVersion,
		AsyncAPIVersion: r.SourceAsyncAPIVersion,
		Document:        r.Document,
		Stats:           r.Stats,
	}
}

// Fixer normalizes AsyncAPI documents into the components-first layout
type Fixer struct {
	// EnabledFixes specifies which fix types to apply.
	// If nil or empty, all fix types are enabled.
	EnabledFixes []FixType
}

// New creates a new Fixer instance with default settings
func New() *Fixer {
	return &Fixer{
		EnabledFixes: nil, // all fixes enabled
	}
}

// Option is a function that configures a fix operation
type Option func(*fixConfig) error

// fixConfig holds configuration for a fix operation
type fixConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	enabledFixes []FixType
}

// FixWithOptions normalizes an AsyncAPI document using functional options,
// combining input source selection and configuration in a single call.
//
// Example:
//
//	result, err := fixer.FixWithOptions(
//	    fixer.WithFilePath("asyncapi.yaml"),
//	    fixer.WithEnabledFixes(fixer.FixTypeComponentizeServers),
//	)
func FixWithOptions(opts ...Option) (*FixResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("fixer: invalid options: %w", err)
	}

	f := &Fixer{
		EnabledFixes: cfg.enabledFixes,
	}

	if cfg.filePath != nil {
		return f.Fix(*cfg.filePath)
	}
	if cfg.parsed != nil {
		return f.FixParsed(*cfg.parsed)
	}

	// Unreachable: applyOptions requires exactly one source
	return nil, fmt.Errorf("fixer: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*fixConfig, error) {
	cfg := &fixConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.parsed != nil {
		sources++
	}

	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePath or WithParsed")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePath or WithParsed")
	}

	return cfg, nil
}

// WithFilePath specifies the file path to normalize
func WithFilePath(path string) Option {
	return func(cfg *fixConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already-parsed document to normalize
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *fixConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithEnabledFixes specifies which fix types to apply
func WithEnabledFixes(fixes ...FixType) Option {
	return func(cfg *fixConfig) error {
		cfg.enabledFixes = fixes
		return nil
	}
}

// Fix normalizes an AsyncAPI document file and returns the result
func (f *Fixer) Fix(docPath string) (*FixResult, error) {
	p := parser.New()

	parseResult, err := p.Parse(docPath)
	if err != nil {
		return nil, fmt.Errorf("fixer: failed to parse document: %w", err)
	}

	return f.FixParsed(*parseResult)
}

// FixParsed normalizes an already-parsed AsyncAPI document. The fixer
// operates on a copy of the parsed structure and does not require a valid
// document; it applies what it can even when validation findings exist.
func (f *Fixer) FixParsed(parseResult parser.ParseResult) (*FixResult, error) {
	if parseResult.Document == nil {
		return nil, fmt.Errorf("fixer: document could not be parsed (nil document)")
	}

	result := &FixResult{
		SourceVersion:         parseResult.Version,
		SourceAsyncAPIVersion: parseResult.AsyncAPIVersion,
		SourceFormat:          parseResult.SourceFormat,
		SourcePath:            parseResult.SourcePath,
		Fixes:                 make([]Fix, 0),
		Warnings:              make([]string, 0),
		Success:               true,
	}

	doc, err := copyDocument(parseResult.Document)
	if err != nil {
		return nil, fmt.Errorf("fixer: failed to copy document: %w", err)
	}

	if f.isFixEnabled(FixTypeComponentizeServers) {
		if err := componentizeServers(doc, result); err != nil {
			return nil, err
		}
	}
	if f.isFixEnabled(FixTypeComponentizeMessages) {
		if err := componentizeMessages(doc, result); err != nil {
			return nil, err
		}
	}
	if f.isFixEnabled(FixTypeComponentizeTags) {
		componentizeTags(doc, result)
	}

	result.Document = doc
	result.FixCount = len(result.Fixes)
	result.Stats = parser.GetDocumentStats(doc)

	return result, nil
}

// isFixEnabled checks if a fix type is enabled
func (f *Fixer) isFixEnabled(fixType FixType) bool {
	if len(f.EnabledFixes) == 0 {
		return true // all fixes enabled by default
	}
	for _, ft := range f.EnabledFixes {
		if ft == fixType {
			return true
		}
	}
	return false
}
