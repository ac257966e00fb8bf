package parser

// Schema represents an AsyncAPI Schema Object: a superset of JSON Schema
// Draft 07 with AsyncAPI-specific additions (discriminator, externalDocs,
// deprecated).
//
// A Schema also covers the Multi Format Schema Object: when SchemaFormat is
// set, Payload holds the schema definition in that format and the JSON
// Schema fields are unused. IsMultiFormat reports which shape is in play.
type Schema struct {
	// JSON Reference
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Multi Format Schema Object
	SchemaFormat string `yaml:"schemaFormat,omitempty" json:"schemaFormat,omitempty"`
	Payload      any    `yaml:"schema,omitempty" json:"schema,omitempty"` // Schema definition in SchemaFormat

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Examples    []any  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Comment     string `yaml:"$comment,omitempty" json:"$comment,omitempty"`

	// Type validation
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"` // string or []string
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const  any    `yaml:"const,omitempty" json:"const,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum *float64 `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum *float64 `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items           any     `yaml:"items,omitempty" json:"items,omitempty"` // *Schema when built programmatically; raw map or slice form when decoded
	AdditionalItems any     `yaml:"additionalItems,omitempty" json:"additionalItems,omitempty"`
	MaxItems        *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems        *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems     bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`
	Contains        *Schema `yaml:"contains,omitempty" json:"contains,omitempty"`

	// Object validation
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	PatternProperties    map[string]*Schema `yaml:"patternProperties,omitempty" json:"patternProperties,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // bool, *Schema, or raw map form when decoded
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	PropertyNames        *Schema            `yaml:"propertyNames,omitempty" json:"propertyNames,omitempty"`
	MaxProperties        *int               `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int               `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`

	// Conditional schemas
	If   *Schema `yaml:"if,omitempty" json:"if,omitempty"`
	Then *Schema `yaml:"then,omitempty" json:"then,omitempty"`
	Else *Schema `yaml:"else,omitempty" json:"else,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// Content
	ContentEncoding  string `yaml:"contentEncoding,omitempty" json:"contentEncoding,omitempty"`
	ContentMediaType string `yaml:"contentMediaType,omitempty" json:"contentMediaType,omitempty"`

	// Reusable definitions
	Definitions map[string]*Schema `yaml:"definitions,omitempty" json:"definitions,omitempty"`

	// Annotations
	ReadOnly  bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly bool `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`

	// AsyncAPI additions
	Discriminator string        `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	ExternalDocs  *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Deprecated    bool          `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IsMultiFormat reports whether the schema is a Multi Format Schema Object
// carrying its definition in a non-default format.
func (s *Schema) IsMultiFormat() bool {
	return s != nil && s.SchemaFormat != ""
}

// TypeString returns the schema's type when it is a single string, or ""
// for absent and array-valued types.
func (s *Schema) TypeString() string {
	if s == nil {
		return ""
	}
	if t, ok := s.Type.(string); ok {
		return t
	}
	return ""
}
