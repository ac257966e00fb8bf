package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each AsyncAPI node type. Each handler receives the walk
// context and the node, and returns an Action.

// DocumentHandler is called for the root document.
type DocumentHandler func(wc *WalkContext, doc *parser.AsyncAPIDocument) Action

// InfoHandler is called for the Info object.
type InfoHandler func(wc *WalkContext, info *parser.Info) Action

// ServerHandler is called for each Server, with the server key in wc.Name.
type ServerHandler func(wc *WalkContext, server *parser.Server) Action

// ServerVariableHandler is called for each ServerVariable.
type ServerVariableHandler func(wc *WalkContext, v *parser.ServerVariable) Action

// ChannelHandler is called for each Channel, with the channel key in
// wc.ChannelKey.
type ChannelHandler func(wc *WalkContext, ch *parser.Channel) Action

// ParameterHandler is called for each channel Parameter.
type ParameterHandler func(wc *WalkContext, param *parser.Parameter) Action

// OperationHandler is called for each Operation, with the operation key in
// wc.OperationKey.
type OperationHandler func(wc *WalkContext, op *parser.Operation) Action

// OperationTraitHandler is called for each OperationTrait.
type OperationTraitHandler func(wc *WalkContext, trait *parser.OperationTrait) Action

// ReplyHandler is called for each OperationReply.
type ReplyHandler func(wc *WalkContext, reply *parser.OperationReply) Action

// ReplyAddressHandler is called for each OperationReplyAddress.
type ReplyAddressHandler func(wc *WalkContext, addr *parser.OperationReplyAddress) Action

// MessageHandler is called for each Message, including channel messages and
// component messages.
type MessageHandler func(wc *WalkContext, msg *parser.Message) Action

// MessageTraitHandler is called for each MessageTrait.
type MessageTraitHandler func(wc *WalkContext, trait *parser.MessageTrait) Action

// SchemaHandler is called for each Schema, including nested schemas.
type SchemaHandler func(wc *WalkContext, schema *parser.Schema) Action

// SecuritySchemeHandler is called for each SecurityScheme.
type SecuritySchemeHandler func(wc *WalkContext, scheme *parser.SecurityScheme) Action

// CorrelationIDHandler is called for each CorrelationID.
type CorrelationIDHandler func(wc *WalkContext, cid *parser.CorrelationID) Action

// TagHandler is called for each Tag.
type TagHandler func(wc *WalkContext, tag *parser.Tag) Action

// ExternalDocsHandler is called for each ExternalDocs.
type ExternalDocsHandler func(wc *WalkContext, extDocs *parser.ExternalDocs) Action

// BindingsHandler is called for each Bindings object on servers, channels,
// operations, and messages.
type BindingsHandler func(wc *WalkContext, bindings *parser.Bindings) Action

// SchemaSkippedHandler is called when a schema is skipped due to depth limit
// or cycle detection. The reason parameter is either "depth" when the schema
// exceeds the maximum depth, or "cycle" when the schema was already visited.
type SchemaSkippedHandler func(wc *WalkContext, reason string, schema *parser.Schema)

// Walker traverses AsyncAPI documents and calls handlers for each node type.
type Walker struct {
	// Handlers
	onDocument       DocumentHandler
	onInfo           InfoHandler
	onServer         ServerHandler
	onServerVariable ServerVariableHandler
	onChannel        ChannelHandler
	onParameter      ParameterHandler
	onOperation      OperationHandler
	onOperationTrait OperationTraitHandler
	onReply          ReplyHandler
	onReplyAddress   ReplyAddressHandler
	onMessage        MessageHandler
	onMessageTrait   MessageTraitHandler
	onSchema         SchemaHandler
	onSecurityScheme SecuritySchemeHandler
	onCorrelationID  CorrelationIDHandler
	onTag            TagHandler
	onExternalDocs   ExternalDocsHandler
	onBindings       BindingsHandler
	onSchemaSkipped  SchemaSkippedHandler
	onRef            RefHandler

	// Configuration
	maxDepth  int
	trackRefs bool
	userCtx   context.Context
	filePath  *string
	parsed    *parser.ParseResult

	// Internal state
	visitedSchemas map[*parser.Schema]bool
	stopped        bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: 100,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithDocumentHandler sets the handler for the root document.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithInfoHandler sets the handler for Info objects.
func WithInfoHandler(fn InfoHandler) Option {
	return func(w *Walker) { w.onInfo = fn }
}

// WithServerHandler sets the handler for Server objects.
func WithServerHandler(fn ServerHandler) Option {
	return func(w *Walker) { w.onServer = fn }
}

// WithServerVariableHandler sets the handler for ServerVariable objects.
func WithServerVariableHandler(fn ServerVariableHandler) Option {
	return func(w *Walker) { w.onServerVariable = fn }
}

// WithChannelHandler sets the handler for Channel objects.
func WithChannelHandler(fn ChannelHandler) Option {
	return func(w *Walker) { w.onChannel = fn }
}

// WithParameterHandler sets the handler for Parameter objects.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithOperationHandler sets the handler for Operation objects.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithOperationTraitHandler sets the handler for OperationTrait objects.
func WithOperationTraitHandler(fn OperationTraitHandler) Option {
	return func(w *Walker) { w.onOperationTrait = fn }
}

// WithReplyHandler sets the handler for OperationReply objects.
func WithReplyHandler(fn ReplyHandler) Option {
	return func(w *Walker) { w.onReply = fn }
}

// WithReplyAddressHandler sets the handler for OperationReplyAddress objects.
func WithReplyAddressHandler(fn ReplyAddressHandler) Option {
	return func(w *Walker) { w.onReplyAddress = fn }
}

// WithMessageHandler sets the handler for Message objects.
func WithMessageHandler(fn MessageHandler) Option {
	return func(w *Walker) { w.onMessage = fn }
}

// WithMessageTraitHandler sets the handler for MessageTrait objects.
func WithMessageTraitHandler(fn MessageTraitHandler) Option {
	return func(w *Walker) { w.onMessageTrait = fn }
}

// WithSchemaHandler sets the handler for Schema objects.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithSecuritySchemeHandler sets the handler for SecurityScheme objects.
func WithSecuritySchemeHandler(fn SecuritySchemeHandler) Option {
	return func(w *Walker) { w.onSecurityScheme = fn }
}

// WithCorrelationIDHandler sets the handler for CorrelationID objects.
func WithCorrelationIDHandler(fn CorrelationIDHandler) Option {
	return func(w *Walker) { w.onCorrelationID = fn }
}

// WithTagHandler sets the handler for Tag objects.
func WithTagHandler(fn TagHandler) Option {
	return func(w *Walker) { w.onTag = fn }
}

// WithExternalDocsHandler sets the handler for ExternalDocs objects.
func WithExternalDocsHandler(fn ExternalDocsHandler) Option {
	return func(w *Walker) { w.onExternalDocs = fn }
}

// WithBindingsHandler sets the handler for Bindings objects.
func WithBindingsHandler(fn BindingsHandler) Option {
	return func(w *Walker) { w.onBindings = fn }
}

// WithSchemaSkippedHandler sets the handler called when schemas are skipped.
// This handler is invoked when a schema is skipped due to depth limit
// ("depth") or cycle detection ("cycle").
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}

// Walk traverses the parsed document and calls registered handlers for each node.
func Walk(result *parser.ParseResult, opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.walk(result)
}

// walk performs the actual traversal.
func (w *Walker) walk(result *parser.ParseResult) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}

	w.visitedSchemas = make(map[*parser.Schema]bool)
	w.stopped = false

	state := &walkState{ctx: w.userCtx}
	return w.walkDocument(result.Document, state)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
