package parser

// Server represents a message broker, server, or any other kind of computer
// program capable of sending and/or receiving data.
type Server struct {
	Ref             string                         `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Host            string                         `yaml:"host,omitempty" json:"host,omitempty"`         // Required unless Ref is set; may include the port and {variable} templates
	Protocol        string                         `yaml:"protocol,omitempty" json:"protocol,omitempty"` // Required unless Ref is set
	ProtocolVersion string                         `yaml:"protocolVersion,omitempty" json:"protocolVersion,omitempty"`
	Pathname        string                         `yaml:"pathname,omitempty" json:"pathname,omitempty"`
	Title           string                         `yaml:"title,omitempty" json:"title,omitempty"`
	Summary         string                         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description     string                         `yaml:"description,omitempty" json:"description,omitempty"`
	Variables       *PatternedMap[*ServerVariable] `yaml:"variables,omitempty" json:"variables,omitempty"`
	Security        []*SecurityScheme              `yaml:"security,omitempty" json:"security,omitempty"`
	Tags            []*Tag                         `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs    *ExternalDocs                  `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings        *Bindings                      `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// ServerVariable is a variable for server host or pathname template
// substitution.
type ServerVariable struct {
	Ref         string   `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default     string   `yaml:"default,omitempty" json:"default,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Examples    []string `yaml:"examples,omitempty" json:"examples,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
