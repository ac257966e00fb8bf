package generator

import (
	"testing"

	"github.com/erraggy/asyncapitools/parser"
	"github.com/stretchr/testify/assert"
)

func TestGetSchemaType(t *testing.T) {
	tests := []struct {
		name     string
		schema   *parser.Schema
		expected string
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: "",
		},
		{
			name:     "explicit string",
			schema:   &parser.Schema{Type: "string"},
			expected: "string",
		},
		{
			name:     "type array with null",
			schema:   &parser.Schema{Type: []any{"null", "integer"}},
			expected: "integer",
		},
		{
			name:     "inferred object from properties",
			schema:   &parser.Schema{Properties: map[string]*parser.Schema{"id": {Type: "string"}}},
			expected: "object",
		},
		{
			name:     "inferred array from items",
			schema:   &parser.Schema{Items: &parser.Schema{Type: "string"}},
			expected: "array",
		},
		{
			name:     "inferred string from enum",
			schema:   &parser.Schema{Enum: []any{"a", "b"}},
			expected: "string",
		},
		{
			name:     "no type information",
			schema:   &parser.Schema{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getSchemaType(tt.schema))
		})
	}
}

func TestStringFormatToGoType(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{"date-time", "time.Time"},
		{"date", "string"},
		{"time", "string"},
		{"byte", "[]byte"},
		{"binary", "[]byte"},
		{"email", "string"},
		{"", "string"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, stringFormatToGoType(tt.format), "format %q", tt.format)
	}
}

func TestIntegerFormatToGoType(t *testing.T) {
	assert.Equal(t, "int32", integerFormatToGoType("int32"))
	assert.Equal(t, "int64", integerFormatToGoType("int64"))
	assert.Equal(t, "int64", integerFormatToGoType(""))
	assert.Equal(t, "int64", integerFormatToGoType("unknown"))
}

func TestNumberFormatToGoType(t *testing.T) {
	assert.Equal(t, "float32", numberFormatToGoType("float"))
	assert.Equal(t, "float64", numberFormatToGoType("double"))
	assert.Equal(t, "float64", numberFormatToGoType(""))
}

func TestNeedsTimeImport(t *testing.T) {
	tests := []struct {
		name     string
		schema   *parser.Schema
		expected bool
	}{
		{
			name:     "nil schema",
			schema:   nil,
			expected: false,
		},
		{
			name:     "plain string",
			schema:   &parser.Schema{Type: "string"},
			expected: false,
		},
		{
			name:     "date-time string",
			schema:   &parser.Schema{Type: "string", Format: "date-time"},
			expected: true,
		},
		{
			name: "date-time in property",
			schema: &parser.Schema{
				Type: "object",
				Properties: map[string]*parser.Schema{
					"createdAt": {Type: "string", Format: "date-time"},
				},
			},
			expected: true,
		},
		{
			name: "date-time in items",
			schema: &parser.Schema{
				Type:  "array",
				Items: &parser.Schema{Type: "string", Format: "date-time"},
			},
			expected: true,
		},
		{
			name: "date-time in additionalProperties",
			schema: &parser.Schema{
				Type:                 "object",
				AdditionalProperties: &parser.Schema{Type: "string", Format: "date-time"},
			},
			expected: true,
		},
		{
			name: "date-time in allOf member",
			schema: &parser.Schema{
				AllOf: []*parser.Schema{
					{Type: "object", Properties: map[string]*parser.Schema{
						"at": {Type: "string", Format: "date-time"},
					}},
				},
			},
			expected: true,
		},
		{
			name:     "date format does not need time",
			schema:   &parser.Schema{Type: "string", Format: "date"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, needsTimeImport(tt.schema))
		})
	}
}

func TestSchemaTypeFromMap(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected string
	}{
		{"string", map[string]any{"type": "string"}, "string"},
		{"date-time", map[string]any{"type": "string", "format": "date-time"}, "time.Time"},
		{"integer", map[string]any{"type": "integer"}, "int64"},
		{"int32", map[string]any{"type": "integer", "format": "int32"}, "int32"},
		{"number", map[string]any{"type": "number"}, "float64"},
		{"boolean", map[string]any{"type": "boolean"}, "bool"},
		{"array", map[string]any{"type": "array"}, "[]any"},
		{"object", map[string]any{"type": "object"}, "map[string]any"},
		{"no type", map[string]any{}, "any"},
		{"non-string type", map[string]any{"type": 42}, "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schemaTypeFromMap(tt.input))
		})
	}
}

func TestIsRequired(t *testing.T) {
	required := []string{"id", "status"}
	assert.True(t, isRequired(required, "id"))
	assert.True(t, isRequired(required, "status"))
	assert.False(t, isRequired(required, "total"))
	assert.False(t, isRequired(nil, "id"))
}

func TestIsSelfReference(t *testing.T) {
	tests := []struct {
		name     string
		schema   *parser.Schema
		parent   string
		expected bool
	}{
		{
			name:     "nil schema",
			schema:   nil,
			parent:   "Category",
			expected: false,
		},
		{
			name:     "direct self ref",
			schema:   &parser.Schema{Ref: "#/components/schemas/category"},
			parent:   "Category",
			expected: true,
		},
		{
			name:     "other ref",
			schema:   &parser.Schema{Ref: "#/components/schemas/order"},
			parent:   "Category",
			expected: false,
		},
		{
			name: "self ref through allOf",
			schema: &parser.Schema{
				AllOf: []*parser.Schema{{Ref: "#/components/schemas/category"}},
			},
			parent:   "Category",
			expected: true,
		},
		{
			name:     "no ref",
			schema:   &parser.Schema{Type: "string"},
			parent:   "Category",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isSelfReference(tt.schema, tt.parent))
		})
	}
}
