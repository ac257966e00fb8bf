package generator

import (
	"strings"

	"github.com/erraggy/asyncapitools/parser"
	"golang.org/x/tools/imports"
)

// isRequired checks if a property name is in the required list.
func isRequired(required []string, name string) bool {
	for _, r := range required {
		if r == name {
			return true
		}
	}
	return false
}

// formatAndFixImports formats Go source code and automatically fixes imports.
// It adds missing imports and removes unused ones using goimports-equivalent processing.
// This ensures generated code is immediately compilable without requiring users to run goimports.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

// isSelfReference checks if a schema property references its parent type.
// This is used to detect recursive type definitions that need pointer indirection.
// It handles both direct $ref and allOf compositions.
func isSelfReference(propSchema *parser.Schema, parentTypeName string) bool {
	if propSchema == nil {
		return false
	}

	// Check direct $ref
	if propSchema.Ref != "" {
		parts := strings.Split(propSchema.Ref, "/")
		if len(parts) > 0 {
			refTypeName := toTypeName(parts[len(parts)-1])
			if refTypeName == parentTypeName {
				return true
			}
		}
	}

	// Check allOf compositions for self-reference
	for _, subSchema := range propSchema.AllOf {
		if isSelfReference(subSchema, parentTypeName) {
			return true
		}
	}

	return false
}
