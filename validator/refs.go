package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/aaserrors"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/walker"
)

// referencesRule resolves every $ref in the document against the
// reference index. The walker's edge table declares where references at
// each location must point; the rule classifies the reference string,
// matches it against the declared target, and probes the index for the
// terminal key.
//
// External references (anything not starting with "#") cannot be resolved
// by this engine and report a warning, never an error.
type referencesRule struct{}

func (referencesRule) Name() string { return "references" }

func (referencesRule) Apply(ctx *Context) error {
	return walker.Walk(ctx.Parsed(),
		walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
			checkRef(ctx, ref)
			return next(ctx)
		}),
	)
}

// checkRef validates a single reference occurrence.
func checkRef(ctx *Context, ref *walker.RefInfo) {
	path := dottedPath(ref.SourcePath)
	label := edgeLabel(ref.Edge)

	parsed, err := parser.ParseRef(ref.Ref)
	if err != nil {
		ctx.AddError(path,
			fmt.Sprintf("%s reference '%s' is malformed: %s", label, ref.Ref, malformedReason(err)),
			withField("$ref"), withValue(ref.Ref), withSpecRef(specRef("referenceObject")))
		return
	}

	if parsed.Class == parser.RefExternal {
		ctx.AddWarning(path,
			fmt.Sprintf("%s contains external reference '%s'. Cannot validate external references.", label, ref.Ref),
			withField("$ref"), withValue(ref.Ref), withSpecRef(specRef("referenceObject")))
		return
	}

	target, ok := ref.Target()
	if !ok {
		// Every edge the walker emits is declared in its table.
		return
	}

	if target.IsRoot() {
		if parsed.Class != parser.RefRoot || parsed.Kind != target.Root {
			ctx.AddError(path,
				fmt.Sprintf("%s reference '%s' must point to #/%s/ but points elsewhere", label, ref.Ref, target.Root),
				withField("$ref"), withValue(ref.Ref), withCategory(target.Root), withSpecRef(specRef("referenceObject")))
			return
		}
		if !ctx.ValidRef(ref.Ref) {
			ctx.AddError(path,
				fmt.Sprintf("%s references '%s' but %s '%s' does not exist in root %s",
					label, ref.Ref, singular(target.Root), parsed.Key, target.Root),
				withField("$ref"), withValue(ref.Ref), withCategory(target.Root), withSpecRef(specRef("referenceObject")))
		}
		return
	}

	if parsed.Class != parser.RefComponent || parsed.Category != target.Category {
		ctx.AddError(path,
			fmt.Sprintf("%s reference '%s' must point to #/components/%s/ but points elsewhere", label, ref.Ref, target.Category),
			withField("$ref"), withValue(ref.Ref), withCategory(target.Category), withSpecRef(specRef("referenceObject")))
		return
	}
	if !ctx.ValidRef(ref.Ref) {
		ctx.AddError(path,
			fmt.Sprintf("%s references '%s' but component '%s' does not exist in #/components/%s",
				label, ref.Ref, parsed.Key, target.Category),
			withField("$ref"), withValue(ref.Ref), withCategory(target.Category), withSpecRef(specRef("referenceObject")))
	}
}

// buildValidRefs indexes every reference target the document defines: one
// entry per component under "#/components/{category}/{key}" plus one per
// root server, channel, and operation under "#/{kind}/{key}". One map
// probe answers any resolution question for the pass.
func buildValidRefs(doc *parser.AsyncAPIDocument) map[string]bool {
	validRefs := make(map[string]bool)
	if doc == nil {
		return validRefs
	}
	for _, kind := range parser.RootRefKinds() {
		var keys []string
		switch kind {
		case parser.RootServers:
			keys = doc.Servers.Keys()
		case parser.RootChannels:
			keys = doc.Channels.Keys()
		case parser.RootOperations:
			keys = doc.Operations.Keys()
		}
		for _, key := range keys {
			validRefs[parser.RootRef(kind, key)] = true
		}
	}
	for _, category := range parser.ComponentCategories() {
		for _, key := range doc.Components.CategoryKeys(category) {
			validRefs[parser.ComponentRef(category, key)] = true
		}
	}
	return validRefs
}

// malformedReason extracts the grammar failure from a ParseRef error.
func malformedReason(err error) string {
	var refErr *aaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.Message != "" {
		return refErr.Message
	}
	return "does not match '#/components/{category}/{key}' or '#/{kind}/{key}'"
}

// edgeLabel returns the human-readable name of a reference location, used
// as the subject of finding messages.
func edgeLabel(edge walker.RefEdge) string {
	switch edge {
	case walker.EdgeServerRef:
		return "Server"
	case walker.EdgeServerVariableRef:
		return "Server variable"
	case walker.EdgeChannelRef:
		return "Channel"
	case walker.EdgeParameterRef:
		return "Parameter"
	case walker.EdgeOperationRef:
		return "Operation"
	case walker.EdgeOperationTraitRef:
		return "Operation trait"
	case walker.EdgeReplyRef:
		return "Operation reply"
	case walker.EdgeReplyAddressRef:
		return "Reply address"
	case walker.EdgeMessageRef:
		return "Message"
	case walker.EdgeMessageTraitRef:
		return "Message trait"
	case walker.EdgeSchemaRef:
		return "Schema"
	case walker.EdgeSecuritySchemeRef:
		return "Security scheme"
	case walker.EdgeCorrelationIDRef:
		return "Correlation ID"
	case walker.EdgeTagRef:
		return "Tag"
	case walker.EdgeExternalDocsRef:
		return "External docs"
	case walker.EdgeServerBindingsRef:
		return "Server bindings"
	case walker.EdgeChannelBindingsRef:
		return "Channel bindings"
	case walker.EdgeOperationBindingsRef:
		return "Operation bindings"
	case walker.EdgeMessageBindingsRef:
		return "Message bindings"
	case walker.EdgeChannelServers:
		return "Channel server"
	case walker.EdgeOperationChannel:
		return "Operation channel"
	case walker.EdgeOperationMessages:
		return "Operation message"
	case walker.EdgeReplyChannel:
		return "Reply channel"
	case walker.EdgeReplyMessages:
		return "Reply message"
	default:
		return "Reference"
	}
}

// singular trims the collection plural for root kinds ("channels" to
// "channel") in finding messages.
func singular(kind string) string {
	return strings.TrimSuffix(kind, "s")
}
