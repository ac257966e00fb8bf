package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/asyncapitools/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	validateStructure bool
	preserveOrder     bool
	maxDocumentSize   int64
	maxRefDepth       int
	logger            Logger

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses an AsyncAPI document using functional options.
// This combines input source selection and configuration in a single call.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("asyncapi.yaml"),
//	    parser.WithPreserveOrder(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		ValidateStructure: cfg.validateStructure,
		PreserveOrder:     cfg.preserveOrder,
		MaxDocumentSize:   cfg.maxDocumentSize,
		MaxRefDepth:       cfg.maxRefDepth,
		Logger:            cfg.logger,
	}

	// Route to the appropriate parsing method based on input source
	var result *ParseResult
	var parseErr error
	switch {
	case cfg.filePath != nil:
		result, parseErr = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, parseErr = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, parseErr = p.ParseBytes(cfg.bytes)
	default:
		// Unreachable: applyOptions validates the input source
		return nil, fmt.Errorf("parser: no input source specified")
	}

	if parseErr != nil {
		return result, parseErr
	}

	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		validateStructure: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithValidateStructure controls the basic structure checks performed
// during parsing (enabled by default)
func WithValidateStructure(validate bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validateStructure = validate
		return nil
	}
}

// WithPreserveOrder enables order-preserving marshaling. See
// Parser.PreserveOrder.
func WithPreserveOrder(preserve bool) Option {
	return func(cfg *parseConfig) error {
		cfg.preserveOrder = preserve
		return nil
	}
}

// WithMaxDocumentSize overrides the maximum accepted source size in bytes
func WithMaxDocumentSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: max document size cannot be negative")
		}
		cfg.maxDocumentSize = size
		return nil
	}
}

// WithMaxRefDepth overrides the maximum reference chain depth for the
// resolver
func WithMaxRefDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return fmt.Errorf("parser: max ref depth cannot be negative")
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithLogger sets the structured logger used during parsing
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithSourceName overrides the SourcePath recorded in the result. Useful
// when parsing from bytes or readers that originate from a named source
// such as stdin.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
