package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/asyncapitools/internal/issues"
	"github.com/erraggy/asyncapitools/internal/severity"
	"github.com/erraggy/asyncapitools/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates features that may not generate perfectly
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates validation errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates features that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating code from an AsyncAPI document
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourceVersion is the detected source AsyncAPI version string
	SourceVersion string
	// SourceAsyncAPIVersion is the enumerated source AsyncAPI version
	SourceAsyncAPIVersion parser.AsyncAPIVersion
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all generation issues grouped by severity
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the source document
	Stats parser.DocumentStats
	// GeneratedTypes is the count of types generated
	GeneratedTypes int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator handles Go type generation from AsyncAPI documents
type Generator struct {
	// PackageName is the Go package name for generated code
	// If empty, defaults to "asyncapi"
	PackageName string

	// JSONTags adds json struct tags to generated fields
	// Default: true
	JSONTags bool

	// YAMLTags adds yaml struct tags to generated fields
	// Default: false
	YAMLTags bool

	// StrictMode causes generation to fail on any issues (even warnings)
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName: "asyncapi",
		JSONTags:    true,
		YAMLTags:    false,
		StrictMode:  false,
		IncludeInfo: true,
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	// Configuration options
	packageName string
	jsonTags    bool
	yamlTags    bool
	strictMode  bool
	includeInfo bool
}

// GenerateWithOptions generates Go types from an AsyncAPI document using
// functional options. This provides a flexible, extensible API that combines
// input source selection and configuration in a single function call.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("asyncapi.yaml"),
//	    generator.WithPackageName("events"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName: cfg.packageName,
		JSONTags:    cfg.jsonTags,
		YAMLTags:    cfg.yamlTags,
		StrictMode:  cfg.strictMode,
		IncludeInfo: cfg.includeInfo,
	}

	// Route to appropriate generation method based on input source
	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	if cfg.parsed != nil {
		return g.GenerateParsed(*cfg.parsed)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("generator: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		// Set defaults
		packageName: "asyncapi",
		jsonTags:    true,
		yamlTags:    false,
		strictMode:  false,
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	sourceCount := 0
	if cfg.filePath != nil {
		sourceCount++
	}
	if cfg.parsed != nil {
		sourceCount++
	}

	if sourceCount == 0 {
		return nil, fmt.Errorf("generator: must specify an input source (use WithFilePath or WithParsed)")
	}
	if sourceCount > 1 {
		return nil, fmt.Errorf("generator: must specify exactly one input source")
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code
// Default: "asyncapi"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("generator: package name cannot be empty")
		}
		cfg.packageName = name
		return nil
	}
}

// WithJSONTags enables or disables json struct tags on generated fields
// Default: true
func WithJSONTags(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.jsonTags = enabled
		return nil
	}
}

// WithYAMLTags enables or disables yaml struct tags on generated fields
// Default: false
func WithYAMLTags(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.yamlTags = enabled
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on any issues)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// Generate generates Go types from an AsyncAPI document file
func (g *Generator) Generate(docPath string) (*GenerateResult, error) {
	p := parser.New()

	// Parse the source document
	parseResult, err := p.Parse(docPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse document: %w", err)
	}

	// Check for parse errors
	if len(parseResult.Errors) > 0 {
		return nil, fmt.Errorf("generator: source document has %d parse error(s), cannot generate", len(parseResult.Errors))
	}

	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates Go types from an already-parsed AsyncAPI document
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()

	if parseResult.Document == nil {
		return nil, fmt.Errorf("generator: parse result has no document")
	}

	// Initialize result
	result := &GenerateResult{
		Files:                 make([]GeneratedFile, 0),
		SourceVersion:         parseResult.Version,
		SourceAsyncAPIVersion: parseResult.AsyncAPIVersion,
		SourceFormat:          parseResult.SourceFormat,
		PackageName:           g.PackageName,
		Issues:                make([]GenerateIssue, 0),
		LoadTime:              parseResult.LoadTime,
		SourceSize:            parseResult.SourceSize,
		Stats:                 parseResult.Stats,
	}

	// Ensure package name
	if result.PackageName == "" {
		result.PackageName = "asyncapi"
	}

	tg := newTypeGenerator(g, parseResult.Document, result)
	if err := tg.generateTypes(); err != nil {
		return nil, fmt.Errorf("generator: failed to generate types: %w", err)
	}

	// Update counts and timing
	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	// In strict mode, fail on any issues
	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	// Filter info messages if not included
	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}
