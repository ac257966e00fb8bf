package parser

// Message describes a message received on a given channel and operation.
type Message struct {
	Ref           string            `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Headers       *Schema           `yaml:"headers,omitempty" json:"headers,omitempty"` // Must resolve to a schema of type "object"
	Payload       *Schema           `yaml:"payload,omitempty" json:"payload,omitempty"`
	CorrelationID *CorrelationID    `yaml:"correlationId,omitempty" json:"correlationId,omitempty"`
	ContentType   string            `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Name          string            `yaml:"name,omitempty" json:"name,omitempty"`
	Title         string            `yaml:"title,omitempty" json:"title,omitempty"`
	Summary       string            `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	Tags          []*Tag            `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs  *ExternalDocs     `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings      *Bindings         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Examples      []*MessageExample `yaml:"examples,omitempty" json:"examples,omitempty"`
	Traits        []*MessageTrait   `yaml:"traits,omitempty" json:"traits,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// MessageTrait describes a trait that may be applied to a Message. It holds
// the same fields as Message except payload and traits.
type MessageTrait struct {
	Ref           string            `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Headers       *Schema           `yaml:"headers,omitempty" json:"headers,omitempty"`
	CorrelationID *CorrelationID    `yaml:"correlationId,omitempty" json:"correlationId,omitempty"`
	ContentType   string            `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Name          string            `yaml:"name,omitempty" json:"name,omitempty"`
	Title         string            `yaml:"title,omitempty" json:"title,omitempty"`
	Summary       string            `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	Tags          []*Tag            `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs  *ExternalDocs     `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings      *Bindings         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Examples      []*MessageExample `yaml:"examples,omitempty" json:"examples,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// MessageExample is an example of a message's headers and payload.
type MessageExample struct {
	Headers map[string]any `yaml:"headers,omitempty" json:"headers,omitempty"`
	Payload any            `yaml:"payload,omitempty" json:"payload,omitempty"`
	Name    string         `yaml:"name,omitempty" json:"name,omitempty"`
	Summary string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
