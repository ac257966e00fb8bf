package parser

// Channel describes a shared communication channel through which messages
// are exchanged: a topic, queue, routing key, path, or similar.
type Channel struct {
	Ref          string                    `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Address      string                    `yaml:"address,omitempty" json:"address,omitempty"` // May contain {parameter} templates; null means unknown address
	Title        string                    `yaml:"title,omitempty" json:"title,omitempty"`
	Summary      string                    `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string                    `yaml:"description,omitempty" json:"description,omitempty"`
	Messages     *PatternedMap[*Message]   `yaml:"messages,omitempty" json:"messages,omitempty"`
	Servers      []*Reference              `yaml:"servers,omitempty" json:"servers,omitempty"` // Reference Objects only, pointing to #/servers/{key}
	Parameters   *PatternedMap[*Parameter] `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Tags         []*Tag                    `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs             `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings     *Bindings                 `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Parameter describes a parameter included in a channel address.
type Parameter struct {
	Ref         string   `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Enum        []string `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default     string   `yaml:"default,omitempty" json:"default,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Examples    []string `yaml:"examples,omitempty" json:"examples,omitempty"`
	Location    string   `yaml:"location,omitempty" json:"location,omitempty"` // Runtime expression, e.g. "$message.header#/userId"
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
