package parser

import (
	"strings"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// Component category segments that may appear under "#/components/".
// Order follows the Components Object field order in the AsyncAPI 3.0
// specification.
const (
	CategorySchemas           = "schemas"
	CategoryServers           = "servers"
	CategoryChannels          = "channels"
	CategoryOperations        = "operations"
	CategoryMessages          = "messages"
	CategorySecuritySchemes   = "securitySchemes"
	CategoryServerVariables   = "serverVariables"
	CategoryParameters        = "parameters"
	CategoryCorrelationIDs    = "correlationIds"
	CategoryReplies           = "replies"
	CategoryReplyAddresses    = "replyAddresses"
	CategoryExternalDocs      = "externalDocs"
	CategoryTags              = "tags"
	CategoryOperationTraits   = "operationTraits"
	CategoryMessageTraits     = "messageTraits"
	CategoryServerBindings    = "serverBindings"
	CategoryChannelBindings   = "channelBindings"
	CategoryOperationBindings = "operationBindings"
	CategoryMessageBindings   = "messageBindings"
)

// Root-level collections that internal references may target directly,
// e.g. "#/servers/production" from a channel's servers list.
const (
	RootServers    = "servers"
	RootChannels   = "channels"
	RootOperations = "operations"
)

var componentCategories = []string{
	CategorySchemas,
	CategoryServers,
	CategoryChannels,
	CategoryOperations,
	CategoryMessages,
	CategorySecuritySchemes,
	CategoryServerVariables,
	CategoryParameters,
	CategoryCorrelationIDs,
	CategoryReplies,
	CategoryReplyAddresses,
	CategoryExternalDocs,
	CategoryTags,
	CategoryOperationTraits,
	CategoryMessageTraits,
	CategoryServerBindings,
	CategoryChannelBindings,
	CategoryOperationBindings,
	CategoryMessageBindings,
}

var componentCategorySet = func() map[string]bool {
	m := make(map[string]bool, len(componentCategories))
	for _, c := range componentCategories {
		m[c] = true
	}
	return m
}()

var rootRefKinds = []string{RootServers, RootChannels, RootOperations}

var rootRefKindSet = func() map[string]bool {
	m := make(map[string]bool, len(rootRefKinds))
	for _, k := range rootRefKinds {
		m[k] = true
	}
	return m
}()

// ComponentCategories returns every component category in specification
// order. The returned slice is a copy.
func ComponentCategories() []string {
	out := make([]string, len(componentCategories))
	copy(out, componentCategories)
	return out
}

// IsComponentCategory reports whether name is a known component category.
func IsComponentCategory(name string) bool {
	return componentCategorySet[name]
}

// RootRefKinds returns the root collections resolvable by internal
// references. The returned slice is a copy.
func RootRefKinds() []string {
	out := make([]string, len(rootRefKinds))
	copy(out, rootRefKinds)
	return out
}

// IsRootRefKind reports whether name is a root collection resolvable by
// internal references.
func IsRootRefKind(name string) bool {
	return rootRefKindSet[name]
}

// RefClass classifies where a $ref string points.
type RefClass int

const (
	// RefInvalid marks a reference that fits none of the allowed shapes.
	RefInvalid RefClass = iota
	// RefComponent is an internal reference of the form
	// "#/components/{category}/{key}".
	RefComponent
	// RefRoot is an internal reference to a root collection, of the form
	// "#/{kind}/{key}" where kind is servers, channels, or operations.
	RefRoot
	// RefExternal is any reference that does not start with "#": URLs,
	// relative file paths, and file paths with fragments.
	RefExternal
)

func (c RefClass) String() string {
	switch c {
	case RefComponent:
		return "component"
	case RefRoot:
		return "root"
	case RefExternal:
		return "external"
	default:
		return "invalid"
	}
}

// Ref is a classified reference target.
type Ref struct {
	// Raw is the reference string exactly as written in the document.
	Raw string
	// Class tells which of the allowed reference shapes Raw matched.
	Class RefClass
	// Category holds the component category for RefComponent references.
	Category string
	// Kind holds the root collection name for RefRoot references.
	Kind string
	// Key is the terminal key for RefComponent and RefRoot references.
	Key string
}

// String returns the raw reference.
func (r *Ref) String() string {
	return r.Raw
}

// IsExternalRef reports whether ref points outside the containing document.
// Anything that does not begin with "#" is external. External references are
// never resolved; validation reports them as warnings and moves on.
func IsExternalRef(ref string) bool {
	return !strings.HasPrefix(ref, "#")
}

// ComponentRef builds an internal reference to a named component, e.g.
// ComponentRef(CategoryMessages, "orderCreated") returns
// "#/components/messages/orderCreated".
func ComponentRef(category, key string) string {
	return "#/components/" + category + "/" + key
}

// RootRef builds an internal reference to an entry of a root collection,
// e.g. RootRef(RootChannels, "orders") returns "#/channels/orders".
func RootRef(kind, key string) string {
	return "#/" + kind + "/" + key
}

// Typed convenience constructors over ComponentRef and RootRef, one per
// reference target. Prefer these over hand-assembled strings when the
// category is known at the call site.

// ComponentSchemaRef builds "#/components/schemas/{key}".
func ComponentSchemaRef(key string) string { return ComponentRef(CategorySchemas, key) }

// ComponentServerRef builds "#/components/servers/{key}".
func ComponentServerRef(key string) string { return ComponentRef(CategoryServers, key) }

// ComponentChannelRef builds "#/components/channels/{key}".
func ComponentChannelRef(key string) string { return ComponentRef(CategoryChannels, key) }

// ComponentOperationRef builds "#/components/operations/{key}".
func ComponentOperationRef(key string) string { return ComponentRef(CategoryOperations, key) }

// ComponentMessageRef builds "#/components/messages/{key}".
func ComponentMessageRef(key string) string { return ComponentRef(CategoryMessages, key) }

// ComponentSecuritySchemeRef builds "#/components/securitySchemes/{key}".
func ComponentSecuritySchemeRef(key string) string { return ComponentRef(CategorySecuritySchemes, key) }

// ComponentServerVariableRef builds "#/components/serverVariables/{key}".
func ComponentServerVariableRef(key string) string { return ComponentRef(CategoryServerVariables, key) }

// ComponentParameterRef builds "#/components/parameters/{key}".
func ComponentParameterRef(key string) string { return ComponentRef(CategoryParameters, key) }

// ComponentCorrelationIDRef builds "#/components/correlationIds/{key}".
func ComponentCorrelationIDRef(key string) string { return ComponentRef(CategoryCorrelationIDs, key) }

// ComponentReplyRef builds "#/components/replies/{key}".
func ComponentReplyRef(key string) string { return ComponentRef(CategoryReplies, key) }

// ComponentReplyAddressRef builds "#/components/replyAddresses/{key}".
func ComponentReplyAddressRef(key string) string { return ComponentRef(CategoryReplyAddresses, key) }

// ComponentExternalDocsRef builds "#/components/externalDocs/{key}".
func ComponentExternalDocsRef(key string) string { return ComponentRef(CategoryExternalDocs, key) }

// ComponentTagRef builds "#/components/tags/{key}".
func ComponentTagRef(key string) string { return ComponentRef(CategoryTags, key) }

// ComponentOperationTraitRef builds "#/components/operationTraits/{key}".
func ComponentOperationTraitRef(key string) string { return ComponentRef(CategoryOperationTraits, key) }

// ComponentMessageTraitRef builds "#/components/messageTraits/{key}".
func ComponentMessageTraitRef(key string) string { return ComponentRef(CategoryMessageTraits, key) }

// ComponentServerBindingsRef builds "#/components/serverBindings/{key}".
func ComponentServerBindingsRef(key string) string { return ComponentRef(CategoryServerBindings, key) }

// ComponentChannelBindingsRef builds "#/components/channelBindings/{key}".
func ComponentChannelBindingsRef(key string) string { return ComponentRef(CategoryChannelBindings, key) }

// ComponentOperationBindingsRef builds "#/components/operationBindings/{key}".
func ComponentOperationBindingsRef(key string) string { return ComponentRef(CategoryOperationBindings, key) }

// ComponentMessageBindingsRef builds "#/components/messageBindings/{key}".
func ComponentMessageBindingsRef(key string) string { return ComponentRef(CategoryMessageBindings, key) }

// RootServerRef builds "#/servers/{key}".
func RootServerRef(key string) string { return RootRef(RootServers, key) }

// RootChannelRef builds "#/channels/{key}".
func RootChannelRef(key string) string { return RootRef(RootChannels, key) }

// RootOperationRef builds "#/operations/{key}".
func RootOperationRef(key string) string { return RootRef(RootOperations, key) }

// ParseRef classifies raw against the reference grammar.
//
// Internal references must take one of exactly two shapes:
//
//	#/components/{category}/{key}
//	#/{kind}/{key}            (kind: servers, channels, operations)
//
// Anything not starting with "#" is classified as RefExternal without
// further inspection. Internal references that fit neither shape (a deeper
// pointer such as "#/channels/orders/messages/created", an unknown category,
// or a missing key) return a reference error that matches
// aaserrors.ErrMalformedRef.
func ParseRef(raw string) (*Ref, error) {
	if raw == "" {
		return nil, malformedRef(raw, "reference is empty")
	}
	if IsExternalRef(raw) {
		return &Ref{Raw: raw, Class: RefExternal}, nil
	}
	if !strings.HasPrefix(raw, "#/") {
		return nil, malformedRef(raw, "internal reference must start with '#/'")
	}

	segs := strings.Split(raw[2:], "/")
	switch {
	case segs[0] == "components":
		switch {
		case len(segs) < 3 || segs[len(segs)-1] == "":
			return nil, malformedRef(raw, "component reference is missing a key: expected #/components/{category}/{key}")
		case !IsComponentCategory(segs[1]):
			return nil, malformedRef(raw, "unknown component category '"+segs[1]+"'")
		case len(segs) > 3:
			return nil, malformedRef(raw, "reference nests below a component: expected #/components/{category}/{key}")
		}
		return &Ref{Raw: raw, Class: RefComponent, Category: segs[1], Key: segs[2]}, nil

	case IsRootRefKind(segs[0]):
		switch {
		case len(segs) < 2 || segs[len(segs)-1] == "":
			return nil, malformedRef(raw, "root reference is missing a key: expected #/"+segs[0]+"/{key}")
		case len(segs) > 2:
			return nil, malformedRef(raw, "reference nests below a root entry: expected #/"+segs[0]+"/{key}")
		}
		return &Ref{Raw: raw, Class: RefRoot, Kind: segs[0], Key: segs[1]}, nil

	default:
		return nil, malformedRef(raw, "internal reference must point to #/components/{category}/{key} or a root collection (servers, channels, operations)")
	}
}

// ClassifyRef returns the RefClass for raw, swallowing the grammar error.
// Use ParseRef when the reason for a malformed reference is needed.
func ClassifyRef(raw string) RefClass {
	r, err := ParseRef(raw)
	if err != nil {
		return RefInvalid
	}
	return r.Class
}

func malformedRef(ref, msg string) error {
	return &aaserrors.ReferenceError{
		Ref:         ref,
		IsMalformed: true,
		Message:     msg,
	}
}
