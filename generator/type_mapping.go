// This file implements JSON Schema type/format to Go type mapping for code generation.

package generator

import (
	"github.com/erraggy/asyncapitools/internal/schemautil"
	"github.com/erraggy/asyncapitools/parser"
)

// getSchemaType extracts the type from a schema, handling both the single
// string form and the draft-07 type array form.
func getSchemaType(schema *parser.Schema) string {
	if schema == nil {
		return ""
	}

	// Use schemautil for type extraction
	if primaryType := schemautil.GetPrimaryType(schema); primaryType != "" {
		return primaryType
	}

	// Infer type from other fields when no explicit type is set
	if schema.Properties != nil {
		return "object"
	}
	if schema.Items != nil {
		return "array"
	}
	if len(schema.Enum) > 0 {
		return "string"
	}

	return ""
}

// stringFormatToGoType maps JSON Schema string formats to Go types.
func stringFormatToGoType(format string) string {
	switch format {
	case "date-time":
		return "time.Time"
	case "date":
		return "string" // Could use time.Time with custom parsing
	case "time":
		return "string"
	case "byte":
		return "[]byte"
	case "binary":
		return "[]byte"
	default:
		return "string"
	}
}

// integerFormatToGoType maps JSON Schema integer formats to Go types.
func integerFormatToGoType(format string) string {
	switch format {
	case "int32":
		return "int32"
	case "int64":
		return "int64"
	default:
		return "int64"
	}
}

// numberFormatToGoType maps JSON Schema number formats to Go types.
func numberFormatToGoType(format string) string {
	switch format {
	case "float":
		return "float32"
	case "double":
		return "float64"
	default:
		return "float64"
	}
}

// needsTimeImport recursively checks if a schema requires the "time" package.
func needsTimeImport(schema *parser.Schema) bool {
	if schema == nil {
		return false
	}

	schemaType := getSchemaType(schema)
	if schemaType == "string" && schema.Format == "date-time" {
		return true
	}

	// Check properties
	for _, prop := range schema.Properties {
		if needsTimeImport(prop) {
			return true
		}
	}

	// Check items
	if items, ok := schema.Items.(*parser.Schema); ok {
		if needsTimeImport(items) {
			return true
		}
	}

	// Check additionalProperties
	if addProps, ok := schema.AdditionalProperties.(*parser.Schema); ok {
		if needsTimeImport(addProps) {
			return true
		}
	}

	// Check compositions
	for _, sub := range schema.AllOf {
		if needsTimeImport(sub) {
			return true
		}
	}

	return false
}

// schemaTypeFromMap returns the Go type string for a schema represented as a
// raw map. This handles cases where the document model carries items or
// additionalProperties as a map[string]any rather than a *parser.Schema.
func schemaTypeFromMap(m map[string]any) string {
	if typeVal, ok := m["type"]; ok {
		if typeStr, ok := typeVal.(string); ok {
			switch typeStr {
			case "string":
				if format, ok := m["format"].(string); ok {
					return stringFormatToGoType(format)
				}
				return "string"
			case "integer":
				if format, ok := m["format"].(string); ok {
					return integerFormatToGoType(format)
				}
				return "int64"
			case "number":
				if format, ok := m["format"].(string); ok {
					return numberFormatToGoType(format)
				}
				return "float64"
			case "boolean":
				return "bool"
			case "array":
				return "[]any"
			case "object":
				return "map[string]any"
			}
		}
	}
	return "any"
}
