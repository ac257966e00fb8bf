package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
	"github.com/erraggy/asyncapitools/internal/maputil"
)

// Binding protocol names registered by the AsyncAPI bindings catalog:
// https://github.com/asyncapi/bindings
var knownBindingProtocols = []string{
	"amqp",
	"amqp1",
	"anypointmq",
	"googlepubsub",
	"http",
	"ibmmq",
	"jms",
	"kafka",
	"mercure",
	"mqtt",
	"mqtt5",
	"nats",
	"pulsar",
	"redis",
	"sns",
	"solace",
	"sqs",
	"stomp",
	"ws",
	"websockets",
}

var knownBindingProtocolSet = func() map[string]bool {
	m := make(map[string]bool, len(knownBindingProtocols))
	for _, p := range knownBindingProtocols {
		m[p] = true
	}
	return m
}()

// BindingProtocols returns the binding protocol names from the AsyncAPI
// bindings catalog. The returned slice is a copy.
func BindingProtocols() []string {
	out := make([]string, len(knownBindingProtocols))
	copy(out, knownBindingProtocols)
	return out
}

// IsKnownBindingProtocol reports whether name is a registered binding
// protocol.
func IsKnownBindingProtocol(name string) bool {
	return knownBindingProtocolSet[name]
}

// Bindings is a map of protocol names to protocol-specific definitions,
// attached to servers, channels, operations, and messages. A bindings
// object may instead be a single Reference Object; in that case Ref is set
// and Protocols is empty.
//
// Binding payloads are kept free-form. The catalog of per-protocol binding
// fields evolves independently of the core specification, so payloads are
// not modeled field by field.
type Bindings struct {
	Ref       string
	Protocols *PatternedMap[map[string]any]
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any
}

// Protocol returns the binding payload for the named protocol.
func (b *Bindings) Protocol(name string) (map[string]any, bool) {
	if b == nil {
		return nil, false
	}
	return b.Protocols.Get(name)
}

// ProtocolNames returns the bound protocol names in document order.
func (b *Bindings) ProtocolNames() []string {
	if b == nil {
		return []string{}
	}
	return b.Protocols.Keys()
}

// UnmarshalYAML decodes either a Reference Object or a protocol map.
// Keys starting with "x-" are collected as specification extensions.
func (b *Bindings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping for bindings, got %s", value.Line, yamlKindName(value.Kind))
	}
	b.Protocols = NewPatternedMap[map[string]any]()
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		valNode := value.Content[i+1]
		switch {
		case key == "$ref":
			if err := valNode.Decode(&b.Ref); err != nil {
				return fmt.Errorf("bindings $ref: %w", err)
			}
		case strings.HasPrefix(key, "x-"):
			var v any
			if err := valNode.Decode(&v); err != nil {
				return fmt.Errorf("bindings extension %q: %w", key, err)
			}
			if b.Extra == nil {
				b.Extra = make(map[string]any)
			}
			b.Extra[key] = v
		default:
			if !IsValidPatternedKey(key) {
				return &aaserrors.KeyFormatError{Container: "bindings", Key: key, Rule: patternedKeyRule}
			}
			var payload map[string]any
			if err := valNode.Decode(&payload); err != nil {
				return fmt.Errorf("binding %q: %w", key, err)
			}
			if payload == nil {
				payload = map[string]any{}
			}
			b.Protocols.set(key, payload)
		}
	}
	return nil
}

// MarshalYAML encodes the bindings back to a Reference Object or protocol
// map, preserving protocol order.
func (b *Bindings) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if b.Ref != "" {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "$ref"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: b.Ref},
		)
		return node, nil
	}
	if b.Protocols != nil {
		pm, err := b.Protocols.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = pm.(*yaml.Node).Content
	}
	for _, k := range maputil.SortedKeys(b.Extra) {
		valNode := &yaml.Node{}
		if err := valNode.Encode(b.Extra[k]); err != nil {
			return nil, fmt.Errorf("bindings extension %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			valNode,
		)
	}
	return node, nil
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON sources.
func (b *Bindings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object for bindings, got %v", tok)
	}
	b.Protocols = NewPatternedMap[map[string]any]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", keyTok)
		}
		switch {
		case key == "$ref":
			if err := dec.Decode(&b.Ref); err != nil {
				return fmt.Errorf("bindings $ref: %w", err)
			}
		case strings.HasPrefix(key, "x-"):
			var v any
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("bindings extension %q: %w", key, err)
			}
			if b.Extra == nil {
				b.Extra = make(map[string]any)
			}
			b.Extra[key] = v
		default:
			if !IsValidPatternedKey(key) {
				return &aaserrors.KeyFormatError{Container: "bindings", Key: key, Rule: patternedKeyRule}
			}
			var payload map[string]any
			if err := dec.Decode(&payload); err != nil {
				return fmt.Errorf("binding %q: %w", key, err)
			}
			if payload == nil {
				payload = map[string]any{}
			}
			b.Protocols.set(key, payload)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON mirrors MarshalYAML for JSON output.
func (b *Bindings) MarshalJSON() ([]byte, error) {
	if b.Ref != "" {
		return json.Marshal(map[string]string{"$ref": b.Ref})
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if b.Protocols != nil {
		for _, k := range b.Protocols.keys {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := json.Marshal(b.Protocols.values[k])
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", k, err)
			}
			buf.Write(vb)
		}
	}
	for _, k := range maputil.SortedKeys(b.Extra) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(b.Extra[k])
		if err != nil {
			return nil, fmt.Errorf("bindings extension %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
