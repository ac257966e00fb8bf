package parser

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// MarshalOrderedJSON marshals the parsed document to JSON with fields in
// the same order as the original source document.
//
// This requires PreserveOrder to have been enabled during parsing. Without
// it the method falls back to marshaling the typed document, which emits
// struct fields in declaration order and patterned collections in
// insertion order.
//
// Ordered output is useful for:
//   - Hash-based caching where roundtrip identity matters
//   - Minimizing diffs when editing and re-serializing documents
//   - Maintaining human-friendly key ordering
//
// Example:
//
//	p := parser.New()
//	p.PreserveOrder = true
//	result, _ := p.Parse("asyncapi.yaml")
//	orderedJSON, _ := result.MarshalOrderedJSON()
func (pr *ParseResult) MarshalOrderedJSON() ([]byte, error) {
	if pr.sourceNode == nil {
		return json.Marshal(pr.Document)
	}

	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, pr.sourceNode, pr.Data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalOrderedJSONIndent marshals the parsed document to indented JSON
// with fields in the same order as the original source document.
//
// This requires PreserveOrder to have been enabled during parsing.
func (pr *ParseResult) MarshalOrderedJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := pr.MarshalOrderedJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalOrderedYAML marshals the parsed document to YAML with fields in
// the same order as the original source document.
//
// This requires PreserveOrder to have been enabled during parsing. Without
// it the method falls back to marshaling the typed document.
//
// Example:
//
//	p := parser.New()
//	p.PreserveOrder = true
//	result, _ := p.Parse("asyncapi.yaml")
//	orderedYAML, _ := result.MarshalOrderedYAML()
func (pr *ParseResult) MarshalOrderedYAML() ([]byte, error) {
	if pr.sourceNode == nil {
		return yaml.Marshal(pr.Document)
	}

	node, err := orderedNode(pr.sourceNode, pr.Data)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// HasPreservedOrder returns true if this ParseResult retained the original
// field ordering from the source document, i.e. PreserveOrder was enabled
// during parsing.
func (pr *ParseResult) HasPreservedOrder() bool {
	return pr.sourceNode != nil
}

// writeNodeJSON writes data to buf as JSON, taking key order from node
// wherever the node and data structures still line up.
func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node, data any) error {
	if node == nil {
		return writeJSONValue(buf, data)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return writeNodeJSON(buf, node.Content[0], data)
		}
		return writeJSONValue(buf, data)

	case yaml.MappingNode:
		dataMap, ok := data.(map[string]any)
		if !ok {
			// Data diverged from the source shape, use the data as-is.
			return writeJSONValue(buf, data)
		}

		children := mappingChildren(node)
		buf.WriteByte('{')
		first := true
		for _, key := range orderedKeys(node, dataMap) {
			val, exists := dataMap[key]
			if !exists {
				// Key was in the source but has since been removed.
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false

			keyJSON, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, children[key], val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		dataSlice, ok := data.([]any)
		if !ok {
			return writeJSONValue(buf, data)
		}

		buf.WriteByte('[')
		for i, item := range dataSlice {
			if i > 0 {
				buf.WriteByte(',')
			}
			var child *yaml.Node
			if i < len(node.Content) {
				child = node.Content[i]
			}
			if err := writeNodeJSON(buf, child, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		// Scalar, alias, and anything else: the data value wins.
		return writeJSONValue(buf, data)
	}
}

// orderedNode builds a yaml.Node tree carrying the values from data in the
// key order of source.
func orderedNode(source *yaml.Node, data any) (*yaml.Node, error) {
	if source == nil {
		return valueNode(data)
	}

	switch source.Kind {
	case yaml.DocumentNode:
		if len(source.Content) > 0 {
			child, err := orderedNode(source.Content[0], data)
			if err != nil {
				return nil, err
			}
			return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{child}}, nil
		}
		return valueNode(data)

	case yaml.MappingNode:
		dataMap, ok := data.(map[string]any)
		if !ok {
			return valueNode(data)
		}

		children := mappingChildren(source)
		result := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range orderedKeys(source, dataMap) {
			val, exists := dataMap[key]
			if !exists {
				continue
			}
			valNode, err := orderedNode(children[key], val)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, strNode(key), valNode)
		}
		return result, nil

	case yaml.SequenceNode:
		dataSlice, ok := data.([]any)
		if !ok {
			return valueNode(data)
		}

		result := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(dataSlice)),
		}
		for i, item := range dataSlice {
			var child *yaml.Node
			if i < len(source.Content) {
				child = source.Content[i]
			}
			itemNode, err := orderedNode(child, item)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, itemNode)
		}
		return result, nil

	default:
		return valueNode(data)
	}
}

// orderedKeys returns the data map's keys in source-node order, with keys
// added after parsing appended in sorted order for determinism.
func orderedKeys(node *yaml.Node, dataMap map[string]any) []string {
	sourceKeys := make([]string, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			key := node.Content[i].Value
			sourceKeys = append(sourceKeys, key)
			seen[key] = true
		}
	}

	var extra []string
	for k := range dataMap {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(sourceKeys, extra...)
}

// mappingChildren indexes a MappingNode's value nodes by key for O(1)
// child lookup while walking large documents.
func mappingChildren(node *yaml.Node) map[string]*yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	children := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			children[node.Content[i].Value] = node.Content[i+1]
		}
	}
	return children
}

// writeJSONValue marshals v and appends it to buf.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// valueNode converts a raw data value to a yaml.Node, sorting map keys
// since no source order is available for it.
func valueNode(v any) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}

	switch val := v.(type) {
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(val)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val, 10)}, nil
	case uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(val, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(val, 'f', -1, 64)}, nil
	case string:
		return strNode(val), nil
	case []any:
		node := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}
		for _, item := range val {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		node := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, 2*len(val)),
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			valNode, err := valueNode(val[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, strNode(k), valNode)
		}
		return node, nil
	default:
		// Unknown types take a JSON round trip into plain data first.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %T to yaml.Node: %w", v, err)
		}
		var plain any
		if err := json.Unmarshal(data, &plain); err != nil {
			return nil, err
		}
		return valueNode(plain)
	}
}
