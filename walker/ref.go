package walker

import (
	"sort"

	"github.com/erraggy/asyncapitools/parser"
)

// RefEdge identifies a reference-bearing location in the document model.
// The walker reports one edge with every $ref it encounters, and the edge
// determines where the reference must point. Keeping the complete set of
// edges in one table makes traversal coverage checkable: the reference
// validator consumes the same table, so a location missing here is a
// location neither visited nor validated.
type RefEdge string

// Edges where a node's own $ref replaces its definition. These follow the
// node type wherever it appears: inline, under a root collection, or under
// components. One edge exists per component category.
const (
	EdgeServerRef            RefEdge = "server.$ref"
	EdgeServerVariableRef    RefEdge = "serverVariable.$ref"
	EdgeChannelRef           RefEdge = "channel.$ref"
	EdgeParameterRef         RefEdge = "parameter.$ref"
	EdgeOperationRef         RefEdge = "operation.$ref"
	EdgeOperationTraitRef    RefEdge = "operationTrait.$ref"
	EdgeReplyRef             RefEdge = "reply.$ref"
	EdgeReplyAddressRef      RefEdge = "replyAddress.$ref"
	EdgeMessageRef           RefEdge = "message.$ref"
	EdgeMessageTraitRef      RefEdge = "messageTrait.$ref"
	EdgeSchemaRef            RefEdge = "schema.$ref"
	EdgeSecuritySchemeRef    RefEdge = "securityScheme.$ref"
	EdgeCorrelationIDRef     RefEdge = "correlationId.$ref"
	EdgeTagRef               RefEdge = "tag.$ref"
	EdgeExternalDocsRef      RefEdge = "externalDocs.$ref"
	EdgeServerBindingsRef    RefEdge = "server.bindings.$ref"
	EdgeChannelBindingsRef   RefEdge = "channel.bindings.$ref"
	EdgeOperationBindingsRef RefEdge = "operation.bindings.$ref"
	EdgeMessageBindingsRef   RefEdge = "message.bindings.$ref"
)

// Edges for fields that hold Reference Objects. These follow the position,
// not the node type: an operation's channel field and a reply's channel
// field are distinct edges even though both target the root channels map.
const (
	EdgeChannelServers    RefEdge = "channel.servers[]"
	EdgeOperationChannel  RefEdge = "operation.channel"
	EdgeOperationMessages RefEdge = "operation.messages[]"
	EdgeReplyChannel      RefEdge = "reply.channel"
	EdgeReplyMessages     RefEdge = "reply.messages[]"
)

// RefTarget describes where references at an edge must point: a component
// category under "#/components/", or a root collection for the
// "#/{kind}/{key}" shape. Exactly one of Category and Root is set.
type RefTarget struct {
	// Category is the component category the reference must name, e.g.
	// "messages" for "#/components/messages/{key}".
	Category string
	// Root is the root collection the reference must name, e.g. "channels"
	// for "#/channels/{key}".
	Root string
}

// IsRoot reports whether the target is a root collection rather than a
// component category.
func (t RefTarget) IsRoot() bool {
	return t.Root != ""
}

// Describe returns the reference shape expected at the target, e.g.
// "#/components/messages/{key}" or "#/channels/{key}".
func (t RefTarget) Describe() string {
	if t.IsRoot() {
		return "#/" + t.Root + "/{key}"
	}
	return "#/components/" + t.Category + "/{key}"
}

// refEdges declares the target for every reference-bearing location the
// walker visits. The traversal code and the reference validator both read
// from this table; tests assert it covers every component category.
var refEdges = map[RefEdge]RefTarget{
	EdgeServerRef:            {Category: parser.CategoryServers},
	EdgeServerVariableRef:    {Category: parser.CategoryServerVariables},
	EdgeChannelRef:           {Category: parser.CategoryChannels},
	EdgeParameterRef:         {Category: parser.CategoryParameters},
	EdgeOperationRef:         {Category: parser.CategoryOperations},
	EdgeOperationTraitRef:    {Category: parser.CategoryOperationTraits},
	EdgeReplyRef:             {Category: parser.CategoryReplies},
	EdgeReplyAddressRef:      {Category: parser.CategoryReplyAddresses},
	EdgeMessageRef:           {Category: parser.CategoryMessages},
	EdgeMessageTraitRef:      {Category: parser.CategoryMessageTraits},
	EdgeSchemaRef:            {Category: parser.CategorySchemas},
	EdgeSecuritySchemeRef:    {Category: parser.CategorySecuritySchemes},
	EdgeCorrelationIDRef:     {Category: parser.CategoryCorrelationIDs},
	EdgeTagRef:               {Category: parser.CategoryTags},
	EdgeExternalDocsRef:      {Category: parser.CategoryExternalDocs},
	EdgeServerBindingsRef:    {Category: parser.CategoryServerBindings},
	EdgeChannelBindingsRef:   {Category: parser.CategoryChannelBindings},
	EdgeOperationBindingsRef: {Category: parser.CategoryOperationBindings},
	EdgeMessageBindingsRef:   {Category: parser.CategoryMessageBindings},

	EdgeChannelServers:    {Root: parser.RootServers},
	EdgeOperationChannel:  {Root: parser.RootChannels},
	EdgeOperationMessages: {Category: parser.CategoryMessages},
	EdgeReplyChannel:      {Root: parser.RootChannels},
	EdgeReplyMessages:     {Category: parser.CategoryMessages},
}

// EdgeTarget returns the declared target for edge, and whether the edge is
// declared at all.
func EdgeTarget(edge RefEdge) (RefTarget, bool) {
	t, ok := refEdges[edge]
	return t, ok
}

// Edges returns every declared reference edge sorted by name.
func Edges() []RefEdge {
	out := make([]RefEdge, 0, len(refEdges))
	for e := range refEdges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/components/messages/orderCreated")
	Ref string

	// SourcePath is the JSON path where the ref was encountered
	SourcePath string

	// Edge identifies the model location carrying the ref
	Edge RefEdge
}

// Target returns where references at this location must point.
func (ri *RefInfo) Target() (RefTarget, bool) {
	return EdgeTarget(ri.Edge)
}

// RefHandler is called when a $ref is encountered during traversal.
// Return Stop to halt traversal, Continue to proceed.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action
