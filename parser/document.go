package parser

// AsyncAPIDocument is the root document object of an AsyncAPI 3.0 document.
// Reference: https://www.asyncapi.com/docs/reference/specification/v3.0.0
type AsyncAPIDocument struct {
	AsyncAPI           string                    `yaml:"asyncapi" json:"asyncapi"` // Required: "3.0.0"
	ID                 string                    `yaml:"id,omitempty" json:"id,omitempty"`
	Info               *Info                     `yaml:"info" json:"info"` // Required
	Servers            *PatternedMap[*Server]    `yaml:"servers,omitempty" json:"servers,omitempty"`
	DefaultContentType string                    `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`
	Channels           *PatternedMap[*Channel]   `yaml:"channels,omitempty" json:"channels,omitempty"`
	Operations         *PatternedMap[*Operation] `yaml:"operations,omitempty" json:"operations,omitempty"`
	Components         *Components               `yaml:"components,omitempty" json:"components,omitempty"`
	Version            AsyncAPIVersion           `yaml:"-" json:"-"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// RootKeys returns the defined keys of the named root collection in
// document order. Unknown kinds and absent maps return an empty slice.
func (d *AsyncAPIDocument) RootKeys(kind string) []string {
	if d == nil {
		return []string{}
	}
	switch kind {
	case RootServers:
		return d.Servers.Keys()
	case RootChannels:
		return d.Channels.Keys()
	case RootOperations:
		return d.Operations.Keys()
	default:
		return []string{}
	}
}

// HasRootKey reports whether the named root collection defines key.
func (d *AsyncAPIDocument) HasRootKey(kind, key string) bool {
	if d == nil {
		return false
	}
	switch kind {
	case RootServers:
		return d.Servers.Has(key)
	case RootChannels:
		return d.Channels.Has(key)
	case RootOperations:
		return d.Operations.Has(key)
	default:
		return false
	}
}

// ResolveRoot returns the entry stored under the named root collection as
// an untyped value.
func (d *AsyncAPIDocument) ResolveRoot(kind, key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	switch kind {
	case RootServers:
		return valueOrNothing(d.Servers.Get(key))
	case RootChannels:
		return valueOrNothing(d.Channels.Get(key))
	case RootOperations:
		return valueOrNothing(d.Operations.Get(key))
	default:
		return nil, false
	}
}
