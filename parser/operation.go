package parser

// Operation actions. An application either sends messages to a channel or
// receives messages from it.
const (
	ActionSend    = "send"
	ActionReceive = "receive"
)

// Operation describes a specific operation the application performs on a
// channel.
type Operation struct {
	Ref          string            `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Action       string            `yaml:"action,omitempty" json:"action,omitempty"`   // Required unless Ref is set: "send" or "receive"
	Channel      *Reference        `yaml:"channel,omitempty" json:"channel,omitempty"` // Required unless Ref is set; Reference Object only
	Title        string            `yaml:"title,omitempty" json:"title,omitempty"`
	Summary      string            `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Security     []*SecurityScheme `yaml:"security,omitempty" json:"security,omitempty"`
	Tags         []*Tag            `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs     `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings     *Bindings         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Traits       []*OperationTrait `yaml:"traits,omitempty" json:"traits,omitempty"`
	Messages     []*Reference      `yaml:"messages,omitempty" json:"messages,omitempty"` // Reference Objects only, pointing into the channel's messages
	Reply        *OperationReply   `yaml:"reply,omitempty" json:"reply,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// OperationTrait describes a trait that may be applied to an Operation. It
// holds the same fields as Operation except action, channel, messages, and
// reply.
type OperationTrait struct {
	Ref          string            `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Title        string            `yaml:"title,omitempty" json:"title,omitempty"`
	Summary      string            `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Security     []*SecurityScheme `yaml:"security,omitempty" json:"security,omitempty"`
	Tags         []*Tag            `yaml:"tags,omitempty" json:"tags,omitempty"`
	ExternalDocs *ExternalDocs     `yaml:"externalDocs,omitempty" json:"externalDocs,omitempty"`
	Bindings     *Bindings         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// OperationReply describes the reply part of a request-reply operation.
type OperationReply struct {
	Ref      string                 `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Address  *OperationReplyAddress `yaml:"address,omitempty" json:"address,omitempty"`
	Channel  *Reference             `yaml:"channel,omitempty" json:"channel,omitempty"`   // Reference Object only
	Messages []*Reference           `yaml:"messages,omitempty" json:"messages,omitempty"` // Reference Objects only
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// OperationReplyAddress specifies where a reply has to be sent.
type OperationReplyAddress struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"` // Required unless Ref is set; runtime expression
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
