// Package commands provides CLI command handlers for asyncapitools.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools"
	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	// Refuse to clobber any input file
	for _, inputPath := range inputPaths {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Check if output file already exists and warn (but don't error)
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// File doesn't exist yet, safe to write.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// MarshalDocument marshals a document to bytes in the specified format
func MarshalDocument(doc any, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputSpecHeader outputs the common document header to stderr.
// This includes asyncapitools version, document path, and AsyncAPI version.
func OutputSpecHeader(specPath, version string) {
	cliutil.Writef(os.Stderr, "asyncapitools version: %s\n", asyncapitools.Version())
	cliutil.Writef(os.Stderr, "Document: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(os.Stderr, "AsyncAPI Version: %s\n", version)
}

// OutputSpecStats outputs the common document statistics to stderr.
// This includes source size, entity counts, and load time.
func OutputSpecStats(sourceSize int64, stats parser.DocumentStats, loadTime any) {
	cliutil.Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(sourceSize))
	cliutil.Writef(os.Stderr, "Servers: %d\n", stats.ServerCount)
	cliutil.Writef(os.Stderr, "Channels: %d\n", stats.ChannelCount)
	cliutil.Writef(os.Stderr, "Operations: %d\n", stats.OperationCount)
	cliutil.Writef(os.Stderr, "Messages: %d\n", stats.MessageCount)
	cliutil.Writef(os.Stderr, "Schemas: %d\n", stats.SchemaCount)
	cliutil.Writef(os.Stderr, "Load Time: %v\n", loadTime)
}

// parseInput parses specPath, reading stdin when it is StdinFilePath.
func parseInput(specPath string) (*parser.ParseResult, error) {
	if specPath == StdinFilePath {
		p := parser.New()
		result, err := p.ParseReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return result, nil
	}
	result, err := parser.ParseWithOptions(parser.WithFilePath(specPath))
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return result, nil
}
