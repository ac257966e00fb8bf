package parser

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// SourceFormat represents the format of the source AsyncAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content
// bytes. JSON documents start with '{' (an AsyncAPI root is always an
// object), everything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// sniffVersion extracts the "asyncapi" version string without decoding the
// whole document model. JSON sources use a gjson field lookup; YAML sources
// decode into a single-field struct.
func sniffVersion(data []byte, format SourceFormat) (string, error) {
	if format == SourceFormatJSON {
		if !gjson.ValidBytes(data) {
			return "", &aaserrors.ParseError{Message: "invalid JSON"}
		}
		field := gjson.GetBytes(data, "asyncapi")
		if !field.Exists() {
			return "", &aaserrors.ParseError{Message: "missing required field 'asyncapi'"}
		}
		if field.Type != gjson.String {
			return "", &aaserrors.ParseError{Path: "asyncapi", Message: "field 'asyncapi' must be a string"}
		}
		return field.String(), nil
	}

	var head struct {
		AsyncAPI *string `yaml:"asyncapi"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", &aaserrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	if head.AsyncAPI == nil {
		return "", &aaserrors.ParseError{Message: "missing required field 'asyncapi'"}
	}
	return *head.AsyncAPI, nil
}
