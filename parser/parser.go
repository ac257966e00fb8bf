package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// Default resource limits. Zero values on Parser fall back to these.
const (
	// DefaultMaxDocumentSize is the maximum accepted source size in bytes.
	DefaultMaxDocumentSize = 50 * 1024 * 1024
	// DefaultMaxRefDepth is the maximum reference chain length the
	// resolver follows before giving up.
	DefaultMaxRefDepth = 100
)

// Parser handles AsyncAPI document parsing
type Parser struct {
	// ValidateStructure determines whether to perform basic structure
	// validation (required root fields) during parsing. Findings are
	// collected in ParseResult.Errors rather than failing the parse.
	// The validator package performs the full rule set.
	ValidateStructure bool
	// PreserveOrder enables order-preserving marshaling.
	// When enabled, ParseResult stores the original yaml.Node structure,
	// allowing MarshalOrderedJSON/MarshalOrderedYAML to emit fields
	// in the same order as the source document.
	PreserveOrder bool
	// MaxDocumentSize is the maximum source size in bytes.
	// Default: 50MB
	MaxDocumentSize int64
	// MaxRefDepth is the maximum depth for resolving chained $ref pointers.
	// Default: 100
	MaxRefDepth int
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxDocumentSize() int64 {
	if p.MaxDocumentSize > 0 {
		return p.MaxDocumentSize
	}
	return DefaultMaxDocumentSize
}

// ParseResult contains the parsed AsyncAPI document and metadata.
//
// Callers should treat ParseResult as read-only after parsing. For
// modification use cases, create a deep copy first using the Copy method.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name
	// of the input method and end in '.yaml' or '.json' based on the
	// detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the version string declared by the document (e.g., "3.0.0")
	Version string
	// AsyncAPIVersion is the enumerated AsyncAPI specification version
	AsyncAPIVersion AsyncAPIVersion
	// Document is the typed document model
	Document *AsyncAPIDocument
	// Data contains the raw parsed data as a map
	Data map[string]any
	// Errors contains parsing and structure findings
	Errors []error
	// Warnings contains non-fatal notes gathered while parsing
	Warnings []string
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
	// sourceNode holds the original yaml.Node tree for order-preserving
	// marshaling. Only populated when Parser.PreserveOrder is true.
	sourceNode *yaml.Node
}

// HasErrors reports whether any parse or structure findings were collected.
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// Copy creates a deep copy of the ParseResult, including the document
// model. The document is copied through a JSON round trip, which the
// model's codecs make lossless (specification extensions included).
func (pr *ParseResult) Copy() (*ParseResult, error) {
	if pr == nil {
		return nil, nil
	}
	result := &ParseResult{
		SourcePath:      pr.SourcePath,
		SourceFormat:    pr.SourceFormat,
		Version:         pr.Version,
		AsyncAPIVersion: pr.AsyncAPIVersion,
		LoadTime:        pr.LoadTime,
		SourceSize:      pr.SourceSize,
		Stats:           pr.Stats,
		sourceNode:      pr.sourceNode,
	}
	if pr.Document != nil {
		doc, err := pr.Document.Copy()
		if err != nil {
			return nil, err
		}
		result.Document = doc
	}
	if pr.Data != nil {
		var err error
		result.Data, err = deepCopyMap(pr.Data)
		if err != nil {
			return nil, err
		}
	}
	if pr.Errors != nil {
		result.Errors = make([]error, len(pr.Errors))
		copy(result.Errors, pr.Errors)
	}
	if pr.Warnings != nil {
		result.Warnings = make([]string, len(pr.Warnings))
		copy(result.Warnings, pr.Warnings)
	}
	return result, nil
}

// Parse parses an AsyncAPI document from a local file path.
func (p *Parser) Parse(docPath string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := os.ReadFile(docPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &aaserrors.ParseError{Path: docPath, Message: "failed to read file", Cause: err}
	}

	format := detectFormatFromPath(docPath)
	res, err := p.parseBytes(data, format)
	if err != nil {
		return nil, err
	}
	res.SourcePath = docPath
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an AsyncAPI document from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "bytes." + string(res.SourceFormat)
	return res, nil
}

// ParseReader parses an AsyncAPI document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxDocumentSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, &aaserrors.ParseError{Message: "failed to read input", Cause: err}
	}

	res, err := p.parseBytes(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "reader." + string(res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// parseBytes is the shared parse path: format detection, version
// detection, decoding, structure checks, and stats.
func (p *Parser) parseBytes(data []byte, format SourceFormat) (*ParseResult, error) {
	if int64(len(data)) > p.maxDocumentSize() {
		return nil, &aaserrors.ResourceLimitError{
			ResourceType: "document size",
			Limit:        p.maxDocumentSize(),
			Actual:       int64(len(data)),
			Message:      "document exceeds the maximum size",
		}
	}
	if len(data) == 0 {
		return nil, &aaserrors.ParseError{Message: "document is empty"}
	}

	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	res := &ParseResult{
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}

	versionStr, err := sniffVersion(data, format)
	if err != nil {
		return nil, err
	}
	res.Version = versionStr

	ver, ok := ParseVersion(versionStr)
	if !ok {
		return nil, &aaserrors.ParseError{
			Message: fmt.Sprintf("unknown AsyncAPI version %q", versionStr),
		}
	}
	res.AsyncAPIVersion = ver
	if !ver.IsSupported() {
		return nil, &aaserrors.ParseError{
			Message: fmt.Sprintf("AsyncAPI %s documents are not supported; this toolkit handles the 3.0 series", ver),
		}
	}

	p.log().Debug("parsing document", "format", format, "version", versionStr, "bytes", len(data))

	doc, rawData, node, err := p.decode(data, format)
	if err != nil {
		return nil, err
	}
	doc.Version = ver
	res.Document = doc
	res.Data = rawData
	if p.PreserveOrder {
		res.sourceNode = node
	}

	if p.ValidateStructure {
		res.Errors = append(res.Errors, checkStructure(doc)...)
	}

	res.Stats = GetDocumentStats(doc)
	res.Stats.InternalRefCount, res.Stats.ExternalRefCount = CountRefs(rawData)
	p.log().Debug("parsed document",
		"channels", res.Stats.ChannelCount,
		"operations", res.Stats.OperationCount,
		"servers", res.Stats.ServerCount,
		"components", res.Stats.ComponentCount,
		"refs", res.Stats.InternalRefCount+res.Stats.ExternalRefCount,
	)
	return res, nil
}

// checkStructure reports missing required root fields. The validator
// package covers the full rule set; this is the cheap early signal for
// callers that parse without validating.
func checkStructure(doc *AsyncAPIDocument) []error {
	var errs []error
	if doc.Info == nil {
		errs = append(errs, &aaserrors.ParseError{Path: "info", Message: "missing required field 'info'"})
		return errs
	}
	if doc.Info.Title == "" {
		errs = append(errs, &aaserrors.ParseError{Path: "info.title", Message: "missing required field 'title'"})
	}
	if doc.Info.Version == "" {
		errs = append(errs, &aaserrors.ParseError{Path: "info.version", Message: "missing required field 'version'"})
	}
	return errs
}
