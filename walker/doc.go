// Package walker provides a document traversal API for AsyncAPI documents.
//
// The walker enables single-pass traversal of AsyncAPI 3.0 documents, allowing
// handlers to receive and optionally mutate nodes. This is useful for analysis,
// transformation, and validation tasks that need to inspect or modify multiple
// parts of a document in a consistent way.
//
// # Quick Start
//
// Walk a document and collect all message names:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//
//	var names []string
//	err := walker.Walk(result,
//	    walker.WithMessageHandler(func(wc *walker.WalkContext, msg *parser.Message) walker.Action {
//	        names = append(names, wc.Name)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example using SkipChildren to avoid internal channels:
//
//	walker.Walk(result,
//	    walker.WithChannelHandler(func(wc *walker.WalkContext, ch *parser.Channel) walker.Action {
//	        if strings.HasPrefix(wc.ChannelKey, "internal") {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Handler Types
//
// The walker provides typed handlers for all major AsyncAPI node types:
//
//   - [DocumentHandler]: root document
//   - [InfoHandler]: API metadata
//   - [ServerHandler]: server definitions
//   - [ServerVariableHandler]: server host and pathname variables
//   - [ChannelHandler]: channel definitions
//   - [ParameterHandler]: channel address parameters
//   - [OperationHandler]: send and receive operations
//   - [OperationTraitHandler]: reusable operation fragments
//   - [ReplyHandler]: request-reply definitions
//   - [ReplyAddressHandler]: dynamic reply addresses
//   - [MessageHandler]: channel and component messages
//   - [MessageTraitHandler]: reusable message fragments
//   - [SchemaHandler]: all schemas including nested schemas
//   - [SecuritySchemeHandler]: security scheme definitions
//   - [CorrelationIDHandler]: message correlation identifiers
//   - [TagHandler]: tag definitions
//   - [ExternalDocsHandler]: external documentation references
//   - [BindingsHandler]: protocol bindings on servers, channels, operations, and messages
//
// # Traversal Order
//
// The walk is deterministic. Root sections follow document field order (info,
// servers, channels, operations, components), patterned maps iterate in
// document order, and plain maps such as schema properties iterate in sorted
// key order. Component categories follow the Components Object field order of
// the specification.
//
// # Reference Tracking
//
// Use [WithRefHandler] to receive callbacks when $ref values are encountered:
//
//	walker.Walk(result,
//	    walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	        fmt.Printf("Found ref: %s at %s\n", ref.Ref, ref.SourcePath)
//	        return walker.Continue
//	    }),
//	)
//
// Every reported reference carries a [RefEdge] naming the model location that
// held it, and [EdgeTarget] maps each edge to the component category or root
// collection the reference must point at. The full edge table is available
// through [Edges]; reference validation is layered directly on top of it.
//
// Polymorphic schema keywords (items, additionalItems, additionalProperties)
// decode as raw maps rather than typed schemas. Ref tracking descends into
// those maps, so "$ref" values inside them are reported like any other.
//
// # Mutation Support
//
// Handlers receive pointers to the actual nodes, so mutations are applied directly:
//
//	walker.Walk(result,
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, schema *parser.Schema) walker.Action {
//	        if schema.Extra == nil {
//	            schema.Extra = make(map[string]any)
//	        }
//	        schema.Extra["x-processed"] = true
//	        return walker.Continue
//	    }),
//	)
//
// # WalkContext
//
// Every handler receives a [WalkContext] as its first parameter, providing
// contextual information about the current node:
//
//   - JSONPath: Full JSON path to the node (always populated)
//   - ChannelKey: Channel map key when in channel scope
//   - OperationKey: Operation map key when in operation scope
//   - Name: Map key for named items (servers, messages, schemas, etc.)
//   - IsComponent: True when in the components section
//
// Example JSON paths:
//
//	$.info                                       // Info object
//	$.servers['production']                      // Server entry
//	$.channels['orders'].messages['created']     // Channel message
//	$.operations['sendOrder'].reply.channel      // Reply channel reference
//	$.components.schemas['order']                // Component schema
//
// Use helper methods like [WalkContext.InChannelScope] and
// [WalkContext.InOperationScope] for scope checks.
//
// # Context Propagation
//
// Pass a [context.Context] for cancellation and timeout support:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	walker.Walk(result,
//	    walker.WithUserContext(ctx),
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, schema *parser.Schema) walker.Action {
//	        if wc.Context().Err() != nil {
//	            return walker.Stop
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Performance Considerations
//
// The walker uses the Parse-Once pattern. Always prefer passing a pre-parsed
// [parser.ParseResult] rather than re-parsing:
//
//	// Good: parse once, walk multiple times
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	walker.Walk(result, handlers1...)
//	walker.Walk(result, handlers2...)
//
// # Built-in Collectors
//
// For common collection patterns, the walker provides pre-built helpers that
// reduce boilerplate:
//
//   - [CollectSchemas]: Returns a [SchemaCollector] with all schemas indexed by name
//   - [CollectOperations]: Returns an [OperationCollector] with operations grouped by action and channel
//   - [CollectMessages]: Returns a [MessageCollector] with messages grouped by channel
//   - [CollectRefs]: Returns every reference in traversal order
//
// Example:
//
//	ops, err := walker.CollectOperations(result)
//	for _, info := range ops.All {
//	    fmt.Printf("%s %s -> %s\n", info.Key, info.Action, info.ChannelRef)
//	}
//
// # Schema Cycle Detection
//
// The walker automatically detects circular schema references and avoids infinite loops.
// Use [WithMaxSchemaDepth] to limit recursion depth for deeply nested schemas (default: 100).
//
// # Related Packages
//
//   - [github.com/erraggy/asyncapitools/parser] - Parse documents before walking
//   - [github.com/erraggy/asyncapitools/validator] - Validate AsyncAPI documents
//   - [github.com/erraggy/asyncapitools/fixer] - Automatically fix common issues
package walker
