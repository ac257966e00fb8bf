package validator

import (
	"fmt"

	"github.com/erraggy/asyncapitools/internal/maputil"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/walker"
)

// extensionsRule checks every captured extra field against the
// specification extension grammar. YAML decoding collects all unknown
// fields of an object into its Extra map, so this rule is also where
// misspelled standard fields surface: anything that is neither a declared
// field nor a well-formed "x-" extension is reported here.
//
// Sub-objects the walker does not visit on their own (contact, license,
// OAuth flows, message examples) are checked through their parent's
// handler.
type extensionsRule struct{}

func (extensionsRule) Name() string { return "extensions" }

func (extensionsRule) Apply(ctx *Context) error {
	return walker.Walk(ctx.Parsed(),
		walker.WithDocumentHandler(func(wc *walker.WalkContext, doc *parser.AsyncAPIDocument) walker.Action {
			checkExtensions(ctx, "", doc.Extra)
			if doc.Components != nil {
				checkExtensions(ctx, "components", doc.Components.Extra)
			}
			return next(ctx)
		}),
		walker.WithInfoHandler(func(wc *walker.WalkContext, info *parser.Info) walker.Action {
			base := dottedPath(wc.JSONPath)
			checkExtensions(ctx, base, info.Extra)
			if info.Contact != nil {
				checkExtensions(ctx, joinPath(base, "contact"), info.Contact.Extra)
			}
			if info.License != nil {
				checkExtensions(ctx, joinPath(base, "license"), info.License.Extra)
			}
			return next(ctx)
		}),
		walker.WithServerHandler(func(wc *walker.WalkContext, server *parser.Server) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), server.Extra)
			return next(ctx)
		}),
		walker.WithServerVariableHandler(func(wc *walker.WalkContext, v *parser.ServerVariable) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), v.Extra)
			return next(ctx)
		}),
		walker.WithChannelHandler(func(wc *walker.WalkContext, ch *parser.Channel) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), ch.Extra)
			return next(ctx)
		}),
		walker.WithParameterHandler(func(wc *walker.WalkContext, param *parser.Parameter) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), param.Extra)
			return next(ctx)
		}),
		walker.WithOperationHandler(func(wc *walker.WalkContext, op *parser.Operation) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), op.Extra)
			return next(ctx)
		}),
		walker.WithOperationTraitHandler(func(wc *walker.WalkContext, trait *parser.OperationTrait) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), trait.Extra)
			return next(ctx)
		}),
		walker.WithReplyHandler(func(wc *walker.WalkContext, reply *parser.OperationReply) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), reply.Extra)
			return next(ctx)
		}),
		walker.WithReplyAddressHandler(func(wc *walker.WalkContext, addr *parser.OperationReplyAddress) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), addr.Extra)
			return next(ctx)
		}),
		walker.WithMessageHandler(func(wc *walker.WalkContext, msg *parser.Message) walker.Action {
			base := dottedPath(wc.JSONPath)
			checkExtensions(ctx, base, msg.Extra)
			for i, example := range msg.Examples {
				if example != nil {
					checkExtensions(ctx, fmt.Sprintf("%s.examples[%d]", base, i), example.Extra)
				}
			}
			return next(ctx)
		}),
		walker.WithMessageTraitHandler(func(wc *walker.WalkContext, trait *parser.MessageTrait) walker.Action {
			base := dottedPath(wc.JSONPath)
			checkExtensions(ctx, base, trait.Extra)
			for i, example := range trait.Examples {
				if example != nil {
					checkExtensions(ctx, fmt.Sprintf("%s.examples[%d]", base, i), example.Extra)
				}
			}
			return next(ctx)
		}),
		walker.WithSchemaHandler(func(wc *walker.WalkContext, schema *parser.Schema) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), schema.Extra)
			return next(ctx)
		}),
		walker.WithSecuritySchemeHandler(func(wc *walker.WalkContext, scheme *parser.SecurityScheme) walker.Action {
			base := dottedPath(wc.JSONPath)
			checkExtensions(ctx, base, scheme.Extra)
			if scheme.Flows != nil {
				flowsBase := joinPath(base, "flows")
				checkExtensions(ctx, flowsBase, scheme.Flows.Extra)
				flows := []struct {
					name string
					flow *parser.OAuthFlow
				}{
					{"implicit", scheme.Flows.Implicit},
					{"password", scheme.Flows.Password},
					{"clientCredentials", scheme.Flows.ClientCredentials},
					{"authorizationCode", scheme.Flows.AuthorizationCode},
				}
				for _, f := range flows {
					if f.flow != nil {
						checkExtensions(ctx, joinPath(flowsBase, f.name), f.flow.Extra)
					}
				}
			}
			return next(ctx)
		}),
		walker.WithCorrelationIDHandler(func(wc *walker.WalkContext, cid *parser.CorrelationID) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), cid.Extra)
			return next(ctx)
		}),
		walker.WithTagHandler(func(wc *walker.WalkContext, tag *parser.Tag) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), tag.Extra)
			return next(ctx)
		}),
		walker.WithExternalDocsHandler(func(wc *walker.WalkContext, docs *parser.ExternalDocs) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), docs.Extra)
			return next(ctx)
		}),
		walker.WithBindingsHandler(func(wc *walker.WalkContext, b *parser.Bindings) walker.Action {
			checkExtensions(ctx, dottedPath(wc.JSONPath), b.Extra)
			return next(ctx)
		}),
	)
}

// checkExtensions reports every key of extra that does not match the
// extension grammar. Keys are visited in sorted order so findings are
// deterministic.
func checkExtensions(ctx *Context, base string, extra map[string]any) {
	for _, key := range maputil.SortedKeys(extra) {
		if ctx.Stopped() {
			return
		}
		if parser.IsValidExtensionKey(key) {
			continue
		}
		path := base
		if path == "" {
			path = key
		}
		ctx.AddError(path,
			fmt.Sprintf("Field '%s' does not match specification extension pattern. Extensions must start with 'x-' and contain only word characters, digits, dots, hyphens, and underscores.", key),
			withField(key), withValue(key), withSpecRef(specRef("specificationExtensions")))
	}
}
