package validator

import (
	"fmt"

	"github.com/erraggy/asyncapitools/internal/options"
	"github.com/erraggy/asyncapitools/parser"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	// Configuration options
	includeWarnings   bool
	failFast          bool
	validateStructure bool
	logger            parser.Logger
	rules             []Rule
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings:   true,
		failFast:          false,
		validateStructure: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithDocument wraps an in-memory document as the input source. Use this
// when the document was built programmatically rather than parsed from a
// file; source metadata in the result stays empty.
func WithDocument(doc *parser.AsyncAPIDocument) Option {
	return func(cfg *validateConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		version, _ := parser.ParseVersion(doc.AsyncAPI)
		cfg.parsed = &parser.ParseResult{
			Version:         doc.AsyncAPI,
			AsyncAPIVersion: version,
			Document:        doc,
		}
		return nil
	}
}

// WithIncludeWarnings enables or disables warning findings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithFailFast stops validation at the first error instead of aggregating
// every finding in one pass
// Default: false
func WithFailFast(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.failFast = enabled
		return nil
	}
}

// WithValidateStructure enables or disables parser structure validation.
// When enabled (default), the parser validates required fields and correct
// types while loading. Only used when the input source is a file path.
// Default: true
func WithValidateStructure(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithLogger sets the structured logger used during validation
// Default: nil (logging disabled)
func WithLogger(logger parser.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithRule attaches an additional rule to run after the builtin set.
// May be given multiple times; rules run in the order they were added.
func WithRule(rule Rule) Option {
	return func(cfg *validateConfig) error {
		if rule == nil {
			return fmt.Errorf("rule cannot be nil")
		}
		cfg.rules = append(cfg.rules, rule)
		return nil
	}
}
