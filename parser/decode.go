package parser

import (
	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// decode produces the typed document, the raw data map, and (for the YAML
// path) the source node tree.
//
// JSON sources without order preservation take a fast path through goccy's
// encoder-compatible Unmarshal. Everything else goes through the YAML node
// tree, which also accepts JSON since JSON is a YAML subset; that is what
// makes PreserveOrder work uniformly for both formats.
func (p *Parser) decode(data []byte, format SourceFormat) (*AsyncAPIDocument, map[string]any, *yaml.Node, error) {
	if format == SourceFormatJSON && !p.PreserveOrder {
		return decodeJSON(data)
	}
	return decodeYAML(data)
}

func decodeJSON(data []byte) (*AsyncAPIDocument, map[string]any, *yaml.Node, error) {
	var doc AsyncAPIDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, wrapDecodeErr(err)
	}
	var rawData map[string]any
	if err := json.Unmarshal(data, &rawData); err != nil {
		return nil, nil, nil, wrapDecodeErr(err)
	}
	return &doc, rawData, nil, nil
}

func decodeYAML(data []byte) (*AsyncAPIDocument, map[string]any, *yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, nil, nil, wrapDecodeErr(err)
	}

	root := &node
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		root = node.Content[0]
	}

	var doc AsyncAPIDocument
	if err := root.Decode(&doc); err != nil {
		return nil, nil, nil, wrapDecodeErr(err)
	}
	var rawData map[string]any
	if err := root.Decode(&rawData); err != nil {
		return nil, nil, nil, wrapDecodeErr(err)
	}
	return &doc, rawData, &node, nil
}

// wrapDecodeErr wraps decode failures as parse errors while leaving the
// original error on the chain, so errors.Is still observes specific causes
// such as aaserrors.ErrKeyFormat.
func wrapDecodeErr(err error) error {
	return &aaserrors.ParseError{Message: "failed to decode document", Cause: err}
}

// Copy creates a deep copy of the document through a JSON round trip. The
// model's codecs carry specification extensions through, so the copy is
// lossless apart from raw YAML node identity.
func (d *AsyncAPIDocument) Copy() (*AsyncAPIDocument, error) {
	if d == nil {
		return nil, nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out AsyncAPIDocument
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out.Version = d.Version
	return &out, nil
}

// deepCopyMap copies a raw data map through a JSON round trip.
func deepCopyMap(m map[string]any) (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
