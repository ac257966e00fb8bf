// This file implements name conversion from AsyncAPI document keys to valid
// Go identifiers, including reserved word escaping, PascalCase conversion,
// and description formatting.

package generator

import (
	"strings"
	"unicode"
)

// maxDescriptionLength is the maximum length for descriptions in Go comments
// before truncation. This keeps generated code readable and prevents excessively
// long comment lines.
const maxDescriptionLength = 200

// goReservedWords contains Go reserved keywords that cannot be used as identifiers.
// Note: We only include actual keywords, not predeclared identifiers like "error",
// because those can be shadowed and are commonly used as type names (e.g., "Error").
var goReservedWords = map[string]bool{
	// Keywords (these are truly reserved and cannot be used)
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// escapeReservedWord checks if a name is a Go reserved keyword and escapes it
// by appending an underscore if necessary. The check is case-insensitive because
// PascalCase names like "Range" or "Type" should still be escaped.
func escapeReservedWord(name string) string {
	if goReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// toTypeName converts a document key to a valid Go type name (PascalCase).
// It handles special characters, ensures the name starts with a letter,
// and escapes Go reserved words.
func toTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	// Split on non-alphanumeric and capitalize each part
	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if capitalizeNext {
				result.WriteRune(unicode.ToUpper(r))
				capitalizeNext = false
			} else {
				result.WriteRune(r)
			}
		} else {
			capitalizeNext = true
		}
	}

	name := result.String()

	// Ensure starts with a letter
	if len(name) > 0 && !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}

	return escapeReservedWord(name)
}

// toFieldName converts a schema property name to a valid Go field name (PascalCase).
// It handles special characters, ensures the name starts with a letter,
// and escapes Go reserved words.
func toFieldName(s string) string {
	return toTypeName(s)
}

// toConstName converts an enum value to a valid Go constant name suffix.
// Values that produce no usable identifier fall back to "Value".
func toConstName(s string) string {
	if s == "" {
		return "Value"
	}
	if name := toTypeName(s); name != "" {
		return name
	}
	return "Value"
}

// cleanDescription prepares a schema description for use in Go comments.
// It removes newlines, trims whitespace, and truncates long descriptions.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) > maxDescriptionLength {
		// Truncate at rune boundary to avoid splitting multi-byte characters
		runes := []rune(s)
		if len(runes) > maxDescriptionLength-3 {
			s = string(runes[:maxDescriptionLength-3]) + "..."
		}
	}
	return s
}
