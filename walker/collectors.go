package walker

import (
	"github.com/erraggy/asyncapitools/parser"
)

// SchemaInfo contains information about a collected schema.
type SchemaInfo struct {
	// Schema is the collected schema.
	Schema *parser.Schema

	// Name is the component key for component schemas, or the property name
	// for schemas nested under properties. Empty for other inline schemas.
	Name string

	// JSONPath is the full JSON path to the schema.
	JSONPath string

	// IsComponent is true when the schema sits under components.
	IsComponent bool
}

// SchemaCollector holds schemas collected during a walk.
type SchemaCollector struct {
	// All contains all schemas in traversal order.
	All []*SchemaInfo

	// Components contains only component schemas.
	Components []*SchemaInfo

	// Inline contains only inline schemas (message payloads, headers, and
	// their nested schemas).
	Inline []*SchemaInfo

	// ByPath provides lookup by JSON path.
	ByPath map[string]*SchemaInfo

	// ByName provides lookup by name for schemas in the components section.
	// Note: If multiple schemas have the same name, only the last one is stored.
	ByName map[string]*SchemaInfo
}

// CollectSchemas walks the document and collects all schemas.
// It returns a SchemaCollector containing all schemas organized by various criteria.
func CollectSchemas(result *parser.ParseResult) (*SchemaCollector, error) {
	collector := &SchemaCollector{
		All:        make([]*SchemaInfo, 0),
		Components: make([]*SchemaInfo, 0),
		Inline:     make([]*SchemaInfo, 0),
		ByPath:     make(map[string]*SchemaInfo),
		ByName:     make(map[string]*SchemaInfo),
	}

	err := Walk(result,
		WithSchemaHandler(func(wc *WalkContext, schema *parser.Schema) Action {
			info := &SchemaInfo{
				Schema:      schema,
				Name:        wc.Name,
				JSONPath:    wc.JSONPath,
				IsComponent: wc.IsComponent,
			}

			collector.All = append(collector.All, info)
			collector.ByPath[wc.JSONPath] = info

			if wc.IsComponent {
				collector.Components = append(collector.Components, info)
				if wc.Name != "" {
					collector.ByName[wc.Name] = info
				}
			} else {
				collector.Inline = append(collector.Inline, info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// OperationInfo contains information about a collected operation.
type OperationInfo struct {
	// Operation is the collected operation.
	Operation *parser.Operation

	// Key is the operation's map key (e.g., "sendOrderCreated").
	Key string

	// Action is the operation action: "send" or "receive".
	Action string

	// ChannelRef is the raw channel reference (e.g., "#/channels/orders").
	// Empty when the operation declares no channel.
	ChannelRef string

	// JSONPath is the full JSON path to the operation.
	JSONPath string

	// IsComponent is true when the operation sits under components.
	IsComponent bool
}

// OperationCollector holds operations collected during a walk.
type OperationCollector struct {
	// All contains all operations in traversal order.
	All []*OperationInfo

	// ByAction groups operations by action ("send" or "receive").
	ByAction map[string][]*OperationInfo

	// ByChannel groups operations by their raw channel reference.
	// Operations without a channel are not included in this map.
	ByChannel map[string][]*OperationInfo

	// ByKey provides lookup by operation key.
	// Note: component operations can shadow root operations of the same key.
	ByKey map[string]*OperationInfo
}

// CollectOperations walks the document and collects all operations.
// It returns an OperationCollector containing all operations organized by various criteria.
func CollectOperations(result *parser.ParseResult) (*OperationCollector, error) {
	collector := &OperationCollector{
		All:       make([]*OperationInfo, 0),
		ByAction:  make(map[string][]*OperationInfo),
		ByChannel: make(map[string][]*OperationInfo),
		ByKey:     make(map[string]*OperationInfo),
	}

	err := Walk(result,
		WithOperationHandler(func(wc *WalkContext, op *parser.Operation) Action {
			info := &OperationInfo{
				Operation:   op,
				Key:         wc.OperationKey,
				Action:      op.Action,
				JSONPath:    wc.JSONPath,
				IsComponent: wc.IsComponent,
			}
			if op.Channel != nil {
				info.ChannelRef = op.Channel.Ref
			}

			collector.All = append(collector.All, info)
			collector.ByKey[info.Key] = info
			if info.Action != "" {
				collector.ByAction[info.Action] = append(collector.ByAction[info.Action], info)
			}
			if info.ChannelRef != "" {
				collector.ByChannel[info.ChannelRef] = append(collector.ByChannel[info.ChannelRef], info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// MessageInfo contains information about a collected message.
type MessageInfo struct {
	// Message is the collected message.
	Message *parser.Message

	// Name is the message's map key (e.g., "orderCreated").
	Name string

	// ChannelKey is the containing channel's key. Empty for component
	// messages defined outside a channel.
	ChannelKey string

	// JSONPath is the full JSON path to the message.
	JSONPath string

	// IsComponent is true when the message sits under components.
	IsComponent bool
}

// MessageCollector holds messages collected during a walk.
type MessageCollector struct {
	// All contains all messages in traversal order.
	All []*MessageInfo

	// ByChannel groups channel messages by channel key. Component messages
	// defined outside a channel are not included in this map.
	ByChannel map[string][]*MessageInfo

	// ByName groups messages by map key. Distinct channels may reuse a key,
	// so values are slices.
	ByName map[string][]*MessageInfo

	// Components contains only component messages.
	Components []*MessageInfo
}

// CollectMessages walks the document and collects all messages.
// It returns a MessageCollector containing all messages organized by various criteria.
func CollectMessages(result *parser.ParseResult) (*MessageCollector, error) {
	collector := &MessageCollector{
		All:        make([]*MessageInfo, 0),
		ByChannel:  make(map[string][]*MessageInfo),
		ByName:     make(map[string][]*MessageInfo),
		Components: make([]*MessageInfo, 0),
	}

	err := Walk(result,
		WithMessageHandler(func(wc *WalkContext, msg *parser.Message) Action {
			info := &MessageInfo{
				Message:     msg,
				Name:        wc.Name,
				ChannelKey:  wc.ChannelKey,
				JSONPath:    wc.JSONPath,
				IsComponent: wc.IsComponent,
			}

			collector.All = append(collector.All, info)
			if info.Name != "" {
				collector.ByName[info.Name] = append(collector.ByName[info.Name], info)
			}
			if info.ChannelKey != "" {
				collector.ByChannel[info.ChannelKey] = append(collector.ByChannel[info.ChannelKey], info)
			}
			if info.IsComponent {
				collector.Components = append(collector.Components, info)
			}

			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return collector, nil
}

// CollectRefs walks the document with ref tracking enabled and returns every
// reference in traversal order.
func CollectRefs(result *parser.ParseResult) ([]*RefInfo, error) {
	refs := make([]*RefInfo, 0)

	err := Walk(result,
		WithRefHandler(func(wc *WalkContext, ref *RefInfo) Action {
			refs = append(refs, ref)
			return Continue
		}),
	)

	if err != nil {
		return nil, err
	}

	return refs, nil
}
