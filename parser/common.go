package parser

// AsyncAPI 3.0 object model.
//
// Model structs mirror the specification's object definitions:
// https://www.asyncapi.com/docs/reference/specification/v3.0.0
//
// Fields that the specification marks REQUIRED carry no omitempty tag.
// Objects that may be replaced by a Reference Object carry a Ref field
// ($ref); when Ref is non-empty, the remaining fields are ignored during
// resolution and validation.

// Reference is a JSON Reference object used in positions where only a $ref
// is allowed (for example a channel's servers list or an operation's
// channel field).
type Reference struct {
	Ref string `yaml:"$ref" json:"$ref"`
}

// IsExternal reports whether the reference points outside the document.
func (r *Reference) IsExternal() bool {
	return IsExternalRef(r.Ref)
}

// Info provides metadata about the API
type Info struct {
	Title          string        `yaml:"title" json:"title"`     // Required
	Version        string        `yaml:"version" json:"version"` // Required: version of the application API, not the AsyncAPI version
	Description    string        `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string        `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact      `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License      `yaml:"license,omitempty" json:"license,omitempty"`
	Tags           []*Tag        `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs   *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	// and any other fields not explicitly defined in the struct
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Contact information for the exposed API
type Contact struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// License information for the exposed API
type License struct {
	Name string `yaml:"name" json:"name"` // Required
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Tag adds metadata to a single tag. Tags appear on the info object,
// servers, operations, and messages, and as reusable components.
type Tag struct {
	Ref          string        `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name         string        `yaml:"name,omitempty" json:"name,omitempty"` // Required unless Ref is set
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	ExternalDocs *ExternalDocs `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ExternalDocs allows referencing an external resource for extended
// documentation.
type ExternalDocs struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"` // Required unless Ref is set; must be an absolute URL
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
