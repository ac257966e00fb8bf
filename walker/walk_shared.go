package walker

import (
	"fmt"
	"sort"

	"github.com/erraggy/asyncapitools/parser"
)

// sortedMapKeys returns sorted keys from any map with string keys.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rangePatterned iterates a patterned map in document order, stopping when
// the callback errors or the walker stops. Nil maps iterate zero times.
func rangePatterned[V any](w *Walker, m *parser.PatternedMap[V], fn func(key string, v V) error) error {
	if m == nil {
		return nil
	}
	var err error
	m.Range(func(key string, v V) bool {
		if w.stopped {
			return false
		}
		err = fn(key, v)
		return err == nil && !w.stopped
	})
	return err
}

// handleRef processes a $ref if ref tracking is enabled.
// It calls the ref handler if set, and returns Stop if the handler requests it.
func (w *Walker) handleRef(ref string, jsonPath string, edge RefEdge, state *walkState) Action {
	if !w.trackRefs || ref == "" {
		return Continue
	}

	refInfo := &RefInfo{
		Ref:        ref,
		SourcePath: jsonPath,
		Edge:       edge,
	}

	if w.onRef != nil {
		wc := state.buildContext(jsonPath)
		wc.CurrentRef = refInfo
		action := w.onRef(wc, refInfo)
		if action == Stop {
			w.stopped = true
			return Stop
		}
	}

	return Continue
}

// walkMessage walks a single Message.
func (w *Walker) walkMessage(msg *parser.Message, basePath string, state *walkState) error {
	if msg == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(msg.Ref, basePath, EdgeMessageRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onMessage != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onMessage(wc, msg))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Headers
	if msg.Headers != nil {
		if err := w.walkSchema(msg.Headers, basePath+".headers", 0, nested); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}

	// Payload
	if msg.Payload != nil {
		if err := w.walkSchema(msg.Payload, basePath+".payload", 0, nested); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}

	// CorrelationID
	if err := w.walkCorrelationID(msg.CorrelationID, basePath+".correlationId", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Tags
	if err := w.walkTags(msg.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(msg.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	if err := w.walkBindings(msg.Bindings, basePath+".bindings", EdgeMessageBindingsRef, nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Traits
	for i, trait := range msg.Traits {
		if w.stopped {
			return nil
		}
		if trait == nil {
			continue
		}
		if err := w.walkMessageTrait(trait, fmt.Sprintf("%s.traits[%d]", basePath, i), nested); err != nil {
			return err
		}
	}

	return nil
}

// walkMessageTrait walks a single MessageTrait.
func (w *Walker) walkMessageTrait(trait *parser.MessageTrait, basePath string, state *walkState) error {
	if trait == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(trait.Ref, basePath, EdgeMessageTraitRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onMessageTrait != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onMessageTrait(wc, trait))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Headers
	if trait.Headers != nil {
		if err := w.walkSchema(trait.Headers, basePath+".headers", 0, nested); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}

	// CorrelationID
	if err := w.walkCorrelationID(trait.CorrelationID, basePath+".correlationId", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Tags
	if err := w.walkTags(trait.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(trait.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	return w.walkBindings(trait.Bindings, basePath+".bindings", EdgeMessageBindingsRef, nested)
}

// walkParameter walks a channel Parameter.
func (w *Walker) walkParameter(param *parser.Parameter, basePath string, state *walkState) error {
	if param == nil {
		return nil
	}

	if w.handleRef(param.Ref, basePath, EdgeParameterRef, state) == Stop {
		return nil
	}

	if w.onParameter != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onParameter(wc, param))
	}
	return nil
}

// walkSecurityScheme walks a single SecurityScheme.
func (w *Walker) walkSecurityScheme(scheme *parser.SecurityScheme, basePath string, state *walkState) error {
	if scheme == nil {
		return nil
	}

	if w.handleRef(scheme.Ref, basePath, EdgeSecuritySchemeRef, state) == Stop {
		return nil
	}

	if w.onSecurityScheme != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onSecurityScheme(wc, scheme))
	}
	return nil
}

// walkCorrelationID walks a single CorrelationID.
func (w *Walker) walkCorrelationID(cid *parser.CorrelationID, basePath string, state *walkState) error {
	if cid == nil {
		return nil
	}

	if w.handleRef(cid.Ref, basePath, EdgeCorrelationIDRef, state) == Stop {
		return nil
	}

	if w.onCorrelationID != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onCorrelationID(wc, cid))
	}
	return nil
}

// walkTags walks a slice of Tags.
func (w *Walker) walkTags(tags []*parser.Tag, basePath string, state *walkState) error {
	for i, tag := range tags {
		if w.stopped {
			return nil
		}
		if tag == nil {
			continue
		}
		if err := w.walkTag(tag, fmt.Sprintf("%s[%d]", basePath, i), state); err != nil {
			return err
		}
	}
	return nil
}

// walkTag walks a single Tag and its external docs.
func (w *Walker) walkTag(tag *parser.Tag, basePath string, state *walkState) error {
	if tag == nil {
		return nil
	}

	if w.handleRef(tag.Ref, basePath, EdgeTagRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onTag != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onTag(wc, tag))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	return w.walkExternalDocs(tag.ExternalDocs, basePath+".externalDocs", nested)
}

// walkExternalDocs walks an ExternalDocs object.
func (w *Walker) walkExternalDocs(extDocs *parser.ExternalDocs, basePath string, state *walkState) error {
	if extDocs == nil {
		return nil
	}

	if w.handleRef(extDocs.Ref, basePath, EdgeExternalDocsRef, state) == Stop {
		return nil
	}

	if w.onExternalDocs != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onExternalDocs(wc, extDocs))
	}
	return nil
}

// walkBindings walks a Bindings object. The edge names the attachment point
// (server, channel, operation, or message bindings) so a $ref here targets
// the matching component category. Binding payloads are free-form maps and
// have no children to walk.
func (w *Walker) walkBindings(b *parser.Bindings, basePath string, edge RefEdge, state *walkState) error {
	if b == nil {
		return nil
	}

	if w.handleRef(b.Ref, basePath, edge, state) == Stop {
		return nil
	}

	if w.onBindings != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onBindings(wc, b))
	}
	return nil
}

// walkSchema walks a Schema and all its nested schemas.
func (w *Walker) walkSchema(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	if schema == nil {
		return nil
	}

	// Check for $ref before anything else
	if w.handleRef(schema.Ref, basePath, EdgeSchemaRef, state) == Stop {
		return nil
	}

	// Check depth limit
	if depth > w.maxDepth {
		if w.onSchemaSkipped != nil {
			wc := state.buildContext(basePath)
			w.onSchemaSkipped(wc, "depth", schema)
		}
		return nil
	}

	// Check for cycle
	if w.visitedSchemas[schema] {
		if w.onSchemaSkipped != nil {
			wc := state.buildContext(basePath)
			w.onSchemaSkipped(wc, "cycle", schema)
		}
		return nil
	}

	w.visitedSchemas[schema] = true
	defer delete(w.visitedSchemas, schema)

	if w.onSchema != nil {
		wc := state.buildContext(basePath)
		continueToChildren := w.handleAction(w.onSchema(wc, schema))
		if !continueToChildren {
			return nil
		}
	}

	// Multi-format payloads carry their definition in a foreign format and
	// are opaque to the walker.
	if schema.IsMultiFormat() {
		return nil
	}

	// Walk nested schemas in groups - clear name for nested schemas
	nestedState := state.clone()
	nestedState.name = ""

	if err := w.walkSchemaProperties(schema, basePath, depth, nestedState); err != nil {
		return err
	}
	if err := w.walkSchemaArrayKeywords(schema, basePath, depth, nestedState); err != nil {
		return err
	}
	if err := w.walkSchemaComposition(schema, basePath, depth, nestedState); err != nil {
		return err
	}
	if err := w.walkSchemaConditionals(schema, basePath, depth, nestedState); err != nil {
		return err
	}
	return w.walkSchemaMisc(schema, basePath, depth, nestedState)
}

// walkSchemaProperties walks object-related schema keywords.
func (w *Walker) walkSchemaProperties(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	// Properties
	for _, name := range sortedMapKeys(schema.Properties) {
		if w.stopped {
			return nil
		}
		if prop := schema.Properties[name]; prop != nil {
			propState := state.clone()
			propState.name = name
			if err := w.walkSchema(prop, basePath+".properties['"+name+"']", depth+1, propState); err != nil {
				return err
			}
		}
	}

	// PatternProperties
	for _, pattern := range sortedMapKeys(schema.PatternProperties) {
		if w.stopped {
			return nil
		}
		if prop := schema.PatternProperties[pattern]; prop != nil {
			if err := w.walkSchema(prop, basePath+".patternProperties['"+pattern+"']", depth+1, state); err != nil {
				return err
			}
		}
	}

	// AdditionalProperties holds *Schema when built programmatically, a raw
	// map when parsed, or a bool.
	switch addProps := schema.AdditionalProperties.(type) {
	case *parser.Schema:
		if err := w.walkSchema(addProps, basePath+".additionalProperties", depth+1, state); err != nil {
			return err
		}
	case map[string]any:
		if w.walkRawSchema(addProps, basePath+".additionalProperties", depth+1, state) == Stop {
			return nil
		}
	}

	// PropertyNames
	if schema.PropertyNames != nil {
		if err := w.walkSchema(schema.PropertyNames, basePath+".propertyNames", depth+1, state); err != nil {
			return err
		}
	}

	return nil
}

// walkSchemaArrayKeywords walks array-related schema keywords.
func (w *Walker) walkSchemaArrayKeywords(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	// Items holds *Schema or []*Schema when built programmatically, a raw
	// map or slice when parsed.
	switch items := schema.Items.(type) {
	case *parser.Schema:
		if err := w.walkSchema(items, basePath+".items", depth+1, state); err != nil {
			return err
		}
	case []*parser.Schema:
		for i, item := range items {
			if w.stopped {
				return nil
			}
			if item != nil {
				if err := w.walkSchema(item, fmt.Sprintf("%s.items[%d]", basePath, i), depth+1, state); err != nil {
					return err
				}
			}
		}
	default:
		if w.walkRawSchema(items, basePath+".items", depth+1, state) == Stop {
			return nil
		}
	}

	// AdditionalItems
	switch addItems := schema.AdditionalItems.(type) {
	case *parser.Schema:
		if err := w.walkSchema(addItems, basePath+".additionalItems", depth+1, state); err != nil {
			return err
		}
	case map[string]any:
		if w.walkRawSchema(addItems, basePath+".additionalItems", depth+1, state) == Stop {
			return nil
		}
	}

	// Contains
	if schema.Contains != nil {
		if err := w.walkSchema(schema.Contains, basePath+".contains", depth+1, state); err != nil {
			return err
		}
	}

	return nil
}

// walkSchemaComposition walks allOf/anyOf/oneOf/not keywords.
func (w *Walker) walkSchemaComposition(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	// AllOf
	for i, sub := range schema.AllOf {
		if w.stopped {
			return nil
		}
		if sub != nil {
			if err := w.walkSchema(sub, fmt.Sprintf("%s.allOf[%d]", basePath, i), depth+1, state); err != nil {
				return err
			}
		}
	}

	// AnyOf
	for i, sub := range schema.AnyOf {
		if w.stopped {
			return nil
		}
		if sub != nil {
			if err := w.walkSchema(sub, fmt.Sprintf("%s.anyOf[%d]", basePath, i), depth+1, state); err != nil {
				return err
			}
		}
	}

	// OneOf
	for i, sub := range schema.OneOf {
		if w.stopped {
			return nil
		}
		if sub != nil {
			if err := w.walkSchema(sub, fmt.Sprintf("%s.oneOf[%d]", basePath, i), depth+1, state); err != nil {
				return err
			}
		}
	}

	// Not
	if schema.Not != nil {
		if err := w.walkSchema(schema.Not, basePath+".not", depth+1, state); err != nil {
			return err
		}
	}

	return nil
}

// walkSchemaConditionals walks if/then/else keywords.
func (w *Walker) walkSchemaConditionals(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	if schema.If != nil {
		if err := w.walkSchema(schema.If, basePath+".if", depth+1, state); err != nil {
			return err
		}
	}
	if schema.Then != nil {
		if err := w.walkSchema(schema.Then, basePath+".then", depth+1, state); err != nil {
			return err
		}
	}
	if schema.Else != nil {
		if err := w.walkSchema(schema.Else, basePath+".else", depth+1, state); err != nil {
			return err
		}
	}
	return nil
}

// walkSchemaMisc walks miscellaneous schema keywords.
func (w *Walker) walkSchemaMisc(schema *parser.Schema, basePath string, depth int, state *walkState) error {
	// Definitions
	for _, name := range sortedMapKeys(schema.Definitions) {
		if w.stopped {
			return nil
		}
		if def := schema.Definitions[name]; def != nil {
			defState := state.clone()
			defState.name = name
			if err := w.walkSchema(def, basePath+".definitions['"+name+"']", depth+1, defState); err != nil {
				return err
			}
		}
	}

	// ExternalDocs
	return w.walkExternalDocs(schema.ExternalDocs, basePath+".externalDocs", state)
}

// Raw-map schema keys whose values are themselves schemas, schema maps, or
// schema lists. Keys outside this set (enum, examples, default, const) may
// hold arbitrary values and are never descended into.
var (
	rawSchemaDirectKeys = []string{
		"items", "additionalItems", "additionalProperties", "contains",
		"propertyNames", "if", "then", "else", "not",
	}
	rawSchemaMapKeys  = []string{"properties", "patternProperties", "definitions"}
	rawSchemaListKeys = []string{"allOf", "anyOf", "oneOf"}
)

// walkRawSchema reports $refs inside schemas that were decoded as raw maps.
// Polymorphic keywords (items, additionalItems, additionalProperties) land
// as map[string]any when parsed from a document, so their refs are invisible
// to typed traversal. Only ref reporting happens here: raw subtrees produce
// no SchemaHandler calls.
func (w *Walker) walkRawSchema(v any, basePath string, depth int, state *walkState) Action {
	if depth > w.maxDepth {
		return Continue
	}

	switch node := v.(type) {
	case map[string]any:
		if ref, ok := node["$ref"].(string); ok && ref != "" {
			if w.handleRef(ref, basePath, EdgeSchemaRef, state) == Stop {
				return Stop
			}
		}
		for _, key := range rawSchemaDirectKeys {
			if sub, ok := node[key]; ok {
				if w.walkRawSchema(sub, basePath+"."+key, depth+1, state) == Stop {
					return Stop
				}
			}
		}
		for _, key := range rawSchemaMapKeys {
			subMap, ok := node[key].(map[string]any)
			if !ok {
				continue
			}
			for _, name := range sortedMapKeys(subMap) {
				if w.walkRawSchema(subMap[name], basePath+"."+key+"['"+name+"']", depth+1, state) == Stop {
					return Stop
				}
			}
		}
		for _, key := range rawSchemaListKeys {
			subList, ok := node[key].([]any)
			if !ok {
				continue
			}
			for i, sub := range subList {
				if w.walkRawSchema(sub, fmt.Sprintf("%s.%s[%d]", basePath, key, i), depth+1, state) == Stop {
					return Stop
				}
			}
		}
	case []any:
		// Tuple form of items
		for i, sub := range node {
			if w.walkRawSchema(sub, fmt.Sprintf("%s[%d]", basePath, i), depth+1, state) == Stop {
				return Stop
			}
		}
	}
	return Continue
}
