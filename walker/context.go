package walker

import "context"

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// JSONPath is the full JSON path to the current node.
	// Always populated. Example: "$.channels['orderEvents'].messages['orderCreated']"
	JSONPath string

	// ChannelKey is the channel map key when walking within a channel scope,
	// under the root channels map or under components.channels.
	// Empty when not in channel scope. Example: "orderEvents"
	ChannelKey string

	// OperationKey is the operation map key when walking within an operation
	// scope. Empty when not in operation scope. Example: "sendOrderCreated"
	OperationKey string

	// Name is the map key for named items like servers, messages, parameters,
	// schemas, and component entries. Empty for array items and nested schemas.
	Name string

	// IsComponent is true when the current node is within the components section.
	IsComponent bool

	// CurrentRef is the reference being reported when a RefHandler is invoked.
	// It is nil for all other handlers.
	CurrentRef *RefInfo

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InChannelScope returns true if currently walking within a channel entry.
func (wc *WalkContext) InChannelScope() bool {
	return wc.ChannelKey != ""
}

// InOperationScope returns true if currently walking within an operation entry.
func (wc *WalkContext) InOperationScope() bool {
	return wc.OperationKey != ""
}

// walkState tracks context as we descend through the document.
// This is internal to the walker and used to build WalkContext instances.
type walkState struct {
	channelKey   string
	operationKey string
	name         string
	isComponent  bool
	ctx          context.Context
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext(jsonPath string) *WalkContext {
	return &WalkContext{
		JSONPath:     jsonPath,
		ChannelKey:   s.channelKey,
		OperationKey: s.operationKey,
		Name:         s.name,
		IsComponent:  s.isComponent,
		ctx:          s.ctx,
	}
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	return &walkState{
		channelKey:   s.channelKey,
		operationKey: s.operationKey,
		name:         s.name,
		isComponent:  s.isComponent,
		ctx:          s.ctx,
	}
}
