// Package schemautil provides utilities for working with AsyncAPI schema types.
//
// AsyncAPI schemas are a superset of JSON Schema Draft 07, where the type
// keyword holds either a single string or an array of strings (commonly to
// admit "null"). This package centralizes the type assertions for that
// polymorphic field.
package schemautil

import "github.com/erraggy/asyncapitools/parser"

// GetSchemaTypes returns the type(s) from a schema, handling both the
// string and array representations.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *parser.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// GetPrimaryType returns the first non-null type from a schema.
//
// Returns an empty string if the schema is nil or has no types.
func GetPrimaryType(schema *parser.Schema) string {
	types := GetSchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable checks if the schema's type array includes "null".
func IsNullable(schema *parser.Schema) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasType checks if the schema includes the specified type.
func HasType(schema *parser.Schema, targetType string) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}

// IsSingleType returns true if the schema has exactly one type (not counting null).
func IsSingleType(schema *parser.Schema) bool {
	types := GetSchemaTypes(schema)
	nonNullCount := 0
	for _, t := range types {
		if t != "null" {
			nonNullCount++
		}
	}
	return nonNullCount == 1
}
