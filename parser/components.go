package parser

// Components holds reusable objects for different aspects of the AsyncAPI
// specification. Objects defined here have no effect on the API unless they
// are explicitly referenced from outside the components object.
//
// Every field is a patterned object: its keys must match
// PatternedKeyPattern so they can be addressed by component references of
// the form "#/components/{category}/{key}".
type Components struct {
	Schemas           *PatternedMap[*Schema]                `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Servers           *PatternedMap[*Server]                `yaml:"servers,omitempty" json:"servers,omitempty"`
	Channels          *PatternedMap[*Channel]               `yaml:"channels,omitempty" json:"channels,omitempty"`
	Operations        *PatternedMap[*Operation]             `yaml:"operations,omitempty" json:"operations,omitempty"`
	Messages          *PatternedMap[*Message]               `yaml:"messages,omitempty" json:"messages,omitempty"`
	SecuritySchemes   *PatternedMap[*SecurityScheme]        `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
	ServerVariables   *PatternedMap[*ServerVariable]        `yaml:"serverVariables,omitempty" json:"serverVariables,omitempty"`
	Parameters        *PatternedMap[*Parameter]             `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	CorrelationIDs    *PatternedMap[*CorrelationID]         `yaml:"correlationIds,omitempty" json:"correlationIds,omitempty"`
	Replies           *PatternedMap[*OperationReply]        `yaml:"replies,omitempty" json:"replies,omitempty"`
	ReplyAddresses    *PatternedMap[*OperationReplyAddress] `yaml:"replyAddresses,omitempty" json:"replyAddresses,omitempty"`
	ExternalDocs      *PatternedMap[*ExternalDocs]          `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Tags              *PatternedMap[*Tag]                   `yaml:"tags,omitempty" json:"tags,omitempty"`
	OperationTraits   *PatternedMap[*OperationTrait]        `yaml:"operationTraits,omitempty" json:"operationTraits,omitempty"`
	MessageTraits     *PatternedMap[*MessageTrait]          `yaml:"messageTraits,omitempty" json:"messageTraits,omitempty"`
	ServerBindings    *PatternedMap[*Bindings]              `yaml:"serverBindings,omitempty" json:"serverBindings,omitempty"`
	ChannelBindings   *PatternedMap[*Bindings]              `yaml:"channelBindings,omitempty" json:"channelBindings,omitempty"`
	OperationBindings *PatternedMap[*Bindings]              `yaml:"operationBindings,omitempty" json:"operationBindings,omitempty"`
	MessageBindings   *PatternedMap[*Bindings]              `yaml:"messageBindings,omitempty" json:"messageBindings,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// CategoryKeys returns the defined keys of the named component category in
// document order. Unknown categories and absent maps return an empty slice.
func (c *Components) CategoryKeys(category string) []string {
	if c == nil {
		return []string{}
	}
	switch category {
	case CategorySchemas:
		return c.Schemas.Keys()
	case CategoryServers:
		return c.Servers.Keys()
	case CategoryChannels:
		return c.Channels.Keys()
	case CategoryOperations:
		return c.Operations.Keys()
	case CategoryMessages:
		return c.Messages.Keys()
	case CategorySecuritySchemes:
		return c.SecuritySchemes.Keys()
	case CategoryServerVariables:
		return c.ServerVariables.Keys()
	case CategoryParameters:
		return c.Parameters.Keys()
	case CategoryCorrelationIDs:
		return c.CorrelationIDs.Keys()
	case CategoryReplies:
		return c.Replies.Keys()
	case CategoryReplyAddresses:
		return c.ReplyAddresses.Keys()
	case CategoryExternalDocs:
		return c.ExternalDocs.Keys()
	case CategoryTags:
		return c.Tags.Keys()
	case CategoryOperationTraits:
		return c.OperationTraits.Keys()
	case CategoryMessageTraits:
		return c.MessageTraits.Keys()
	case CategoryServerBindings:
		return c.ServerBindings.Keys()
	case CategoryChannelBindings:
		return c.ChannelBindings.Keys()
	case CategoryOperationBindings:
		return c.OperationBindings.Keys()
	case CategoryMessageBindings:
		return c.MessageBindings.Keys()
	default:
		return []string{}
	}
}

// HasKey reports whether the named category defines key.
func (c *Components) HasKey(category, key string) bool {
	if c == nil {
		return false
	}
	switch category {
	case CategorySchemas:
		return c.Schemas.Has(key)
	case CategoryServers:
		return c.Servers.Has(key)
	case CategoryChannels:
		return c.Channels.Has(key)
	case CategoryOperations:
		return c.Operations.Has(key)
	case CategoryMessages:
		return c.Messages.Has(key)
	case CategorySecuritySchemes:
		return c.SecuritySchemes.Has(key)
	case CategoryServerVariables:
		return c.ServerVariables.Has(key)
	case CategoryParameters:
		return c.Parameters.Has(key)
	case CategoryCorrelationIDs:
		return c.CorrelationIDs.Has(key)
	case CategoryReplies:
		return c.Replies.Has(key)
	case CategoryReplyAddresses:
		return c.ReplyAddresses.Has(key)
	case CategoryExternalDocs:
		return c.ExternalDocs.Has(key)
	case CategoryTags:
		return c.Tags.Has(key)
	case CategoryOperationTraits:
		return c.OperationTraits.Has(key)
	case CategoryMessageTraits:
		return c.MessageTraits.Has(key)
	case CategoryServerBindings:
		return c.ServerBindings.Has(key)
	case CategoryChannelBindings:
		return c.ChannelBindings.Has(key)
	case CategoryOperationBindings:
		return c.OperationBindings.Has(key)
	case CategoryMessageBindings:
		return c.MessageBindings.Has(key)
	default:
		return false
	}
}

// Resolve returns the component stored under category/key as an untyped
// value, for callers that do not need the concrete model type.
func (c *Components) Resolve(category, key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch category {
	case CategorySchemas:
		return valueOrNothing(c.Schemas.Get(key))
	case CategoryServers:
		return valueOrNothing(c.Servers.Get(key))
	case CategoryChannels:
		return valueOrNothing(c.Channels.Get(key))
	case CategoryOperations:
		return valueOrNothing(c.Operations.Get(key))
	case CategoryMessages:
		return valueOrNothing(c.Messages.Get(key))
	case CategorySecuritySchemes:
		return valueOrNothing(c.SecuritySchemes.Get(key))
	case CategoryServerVariables:
		return valueOrNothing(c.ServerVariables.Get(key))
	case CategoryParameters:
		return valueOrNothing(c.Parameters.Get(key))
	case CategoryCorrelationIDs:
		return valueOrNothing(c.CorrelationIDs.Get(key))
	case CategoryReplies:
		return valueOrNothing(c.Replies.Get(key))
	case CategoryReplyAddresses:
		return valueOrNothing(c.ReplyAddresses.Get(key))
	case CategoryExternalDocs:
		return valueOrNothing(c.ExternalDocs.Get(key))
	case CategoryTags:
		return valueOrNothing(c.Tags.Get(key))
	case CategoryOperationTraits:
		return valueOrNothing(c.OperationTraits.Get(key))
	case CategoryMessageTraits:
		return valueOrNothing(c.MessageTraits.Get(key))
	case CategoryServerBindings:
		return valueOrNothing(c.ServerBindings.Get(key))
	case CategoryChannelBindings:
		return valueOrNothing(c.ChannelBindings.Get(key))
	case CategoryOperationBindings:
		return valueOrNothing(c.OperationBindings.Get(key))
	case CategoryMessageBindings:
		return valueOrNothing(c.MessageBindings.Get(key))
	default:
		return nil, false
	}
}

// valueOrNothing widens a typed Get result to any, keeping nil for misses
// so callers cannot confuse a miss with a nil component.
func valueOrNothing[V any](v V, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}
