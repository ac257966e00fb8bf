package parser

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// Resolver navigates reference pointers through a parsed document's raw
// data. Unlike validation, which admits only the two canonical reference
// shapes, the resolver follows arbitrary internal pointers such as
// "#/channels/orders/messages/orderCreated", chasing chained references
// with cycle detection. This is the machinery behind the resolve tooling;
// it never fetches external documents.
type Resolver struct {
	// MaxDepth is the maximum reference chain length to follow.
	// Default: DefaultMaxRefDepth
	MaxDepth int
	// Logger is the structured logger for debug output
	Logger Logger

	data map[string]any
}

// NewResolver builds a Resolver over a parse result's raw data.
func NewResolver(res *ParseResult) *Resolver {
	var data map[string]any
	if res != nil {
		data = res.Data
	}
	return &Resolver{data: data}
}

// Resolution is the outcome of following a reference to its target.
type Resolution struct {
	// Ref is the reference that directly produced the value: the last
	// link of the chain when references are chained.
	Ref string
	// Value is the raw data found at the target location.
	Value any
	// Path is the dotted access path of the target, e.g.
	// "document.components.messages.orderCreated".
	Path string
	// Depth is the number of chained references followed.
	Depth int
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxRefDepth
}

func (r *Resolver) log() Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return NopLogger{}
}

// Resolve follows ref to its target value. External references and
// references whose path does not exist in the document return an error;
// reference chains are followed through intermediate Reference Objects
// until a concrete value is reached.
func (r *Resolver) Resolve(ref string) (*Resolution, error) {
	return r.resolve(ref, make(map[string]bool), 0)
}

func (r *Resolver) resolve(ref string, visited map[string]bool, depth int) (*Resolution, error) {
	if visited[ref] {
		return nil, &aaserrors.ReferenceError{Ref: ref, IsCircular: true}
	}
	visited[ref] = true

	if depth > r.maxDepth() {
		return nil, &aaserrors.ResourceLimitError{
			ResourceType: "reference depth",
			Limit:        int64(r.maxDepth()),
			Actual:       int64(depth),
			Message:      fmt.Sprintf("reference chain starting at '%s' is too deep", ref),
		}
	}

	if IsExternalRef(ref) {
		return nil, &aaserrors.ReferenceError{Ref: ref, Message: "external references cannot be resolved locally"}
	}

	parts := splitRefPath(ref)
	if len(parts) == 0 {
		return nil, &aaserrors.ReferenceError{Ref: ref, IsMalformed: true, Message: "invalid reference path"}
	}

	current := any(r.data)
	path := "document"
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, &aaserrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("cannot navigate to '%s' in %s (not an object)", part, path),
			}
		}
		v, ok := m[part]
		if !ok {
			return nil, &aaserrors.ReferenceError{
				Ref:          ref,
				IsUnresolved: true,
				Message:      fmt.Sprintf("key '%s' not found in %s", part, path),
			}
		}
		current = v
		path += "." + part
	}

	// A target that is itself a Reference Object chains to the next hop.
	if m, ok := current.(map[string]any); ok {
		if next, ok := m["$ref"].(string); ok && next != "" {
			r.log().Debug("following chained reference", "from", ref, "to", next, "depth", depth)
			return r.resolve(next, visited, depth+1)
		}
	}

	return &Resolution{Ref: ref, Value: current, Path: path, Depth: depth}, nil
}

// splitRefPath splits an internal reference into its path segments,
// dropping empty segments produced by leading or trailing slashes.
func splitRefPath(ref string) []string {
	if !strings.HasPrefix(ref, "#") {
		return nil
	}
	trimmed := strings.Trim(ref[1:], "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
