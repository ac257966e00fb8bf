package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
)

// PatternedKeyPattern is the regular expression every key of a patterned
// object (channels, operations, servers, component categories, and the
// maps nested inside them) must match.
//
// Reference: https://www.asyncapi.com/docs/reference/specification/v3.0.0#patternedObjectKeys
var PatternedKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// patternedKeyRule is the human-readable description of PatternedKeyPattern
// used when reporting key format errors.
const patternedKeyRule = "letters, digits, hyphens, and underscores"

// IsValidPatternedKey reports whether key is a legal patterned object key.
func IsValidPatternedKey(key string) bool {
	return PatternedKeyPattern.MatchString(key)
}

// ExtensionKeyPattern is the regular expression specification extension
// field names must match: an "x-" prefix followed by word characters,
// dots, and hyphens.
//
// Reference: https://www.asyncapi.com/docs/reference/specification/v3.0.0#specificationExtensions
var ExtensionKeyPattern = regexp.MustCompile(`^x-[\w.\-]+$`)

// IsValidExtensionKey reports whether key is a legal specification
// extension field name.
func IsValidExtensionKey(key string) bool {
	return ExtensionKeyPattern.MatchString(key)
}

// KeyPattern pairs a compiled key expression with the human-readable rule
// reported when a key violates it. Rule is phrased to complete the error
// sentence "Keys must contain ...".
type KeyPattern struct {
	Pattern *regexp.Regexp
	Rule    string
}

// DefaultKeyPattern is the AsyncAPI patterned object key rule, applied by
// every PatternedMap built without an explicit pattern.
var DefaultKeyPattern = KeyPattern{Pattern: PatternedKeyPattern, Rule: patternedKeyRule}

// PatternedMap is a string-keyed map that preserves document order and
// enforces a key pattern on every insert.
//
// AsyncAPI models named collections (channels, operations, servers, the
// component categories) as "patterned objects": JSON objects whose keys must
// match PatternedKeyPattern. Go's built-in map loses the author's key order,
// which matters when a document is re-serialized, so PatternedMap keeps an
// insertion-ordered key slice alongside the value map.
//
// The key rule is per-instance configuration: NewPatternedMapWithPattern
// accepts any compiled pattern, and everything else, including the zero
// value the decoder starts from, enforces DefaultKeyPattern.
//
// The zero value is an empty map ready for use. PatternedMap implements
// yaml and json marshalling in both directions; decoding a key that violates
// the pattern fails with an error that matches aaserrors.ErrKeyFormat.
type PatternedMap[V any] struct {
	keys    []string
	values  map[string]V
	pattern *KeyPattern
}

// NewPatternedMap returns an empty PatternedMap enforcing DefaultKeyPattern.
func NewPatternedMap[V any]() *PatternedMap[V] {
	return &PatternedMap[V]{values: make(map[string]V)}
}

// NewPatternedMapWithPattern returns an empty PatternedMap whose keys must
// match pattern instead of the AsyncAPI default.
func NewPatternedMapWithPattern[V any](pattern KeyPattern) *PatternedMap[V] {
	return &PatternedMap[V]{values: make(map[string]V), pattern: &pattern}
}

// keyPattern returns the effective key rule for this map.
func (m *PatternedMap[V]) keyPattern() KeyPattern {
	if m != nil && m.pattern != nil {
		return *m.pattern
	}
	return DefaultKeyPattern
}

// checkKey validates key against the effective pattern.
func (m *PatternedMap[V]) checkKey(key string) error {
	kp := m.keyPattern()
	if !kp.Pattern.MatchString(key) {
		return &aaserrors.KeyFormatError{Key: key, Rule: kp.Rule}
	}
	return nil
}

// Len returns the number of entries.
func (m *PatternedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present.
func (m *PatternedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored under key.
func (m *PatternedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// MustGet returns the value stored under key, panicking when it is absent.
// Use it for keys the caller has already verified, typically in tests.
func (m *PatternedMap[V]) MustGet(key string) V {
	v, ok := m.Get(key)
	if !ok {
		panic(&aaserrors.MissingKeyError{Key: key})
	}
	return v
}

// Set stores value under key, appending the key to the document order when it
// is new. Setting an existing key replaces its value in place. Keys that do
// not match the map's pattern are rejected with a key format error.
func (m *PatternedMap[V]) Set(key string, value V) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	m.set(key, value)
	return nil
}

// set inserts without key validation. Callers must have validated key.
func (m *PatternedMap[V]) set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key, leaving the document order of the remaining keys
// untouched. Deleting an absent key fails with an error that matches
// aaserrors.ErrMissingKey.
func (m *PatternedMap[V]) Delete(key string) error {
	if m == nil || !m.Has(key) {
		return &aaserrors.MissingKeyError{Key: key}
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Keys returns the keys in document order. The returned slice is a copy.
func (m *PatternedMap[V]) Keys() []string {
	if m == nil || len(m.keys) == 0 {
		return []string{}
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the values in document order.
func (m *PatternedMap[V]) Values() []V {
	if m == nil || len(m.keys) == 0 {
		return []V{}
	}
	values := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.values[k])
	}
	return values
}

// Range calls fn for each entry in document order until fn returns false.
func (m *PatternedMap[V]) Range(fn func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Replace atomically swaps the contents for entries. Every key is validated
// up front; if any key violates the pattern the map is left unchanged. The
// new entries are ordered by sorted key, since a plain map carries no
// document order of its own.
func (m *PatternedMap[V]) Replace(entries map[string]V) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		if err := m.checkKey(k); err != nil {
			return err
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	values := make(map[string]V, len(entries))
	for k, v := range entries {
		values[k] = v
	}
	m.keys = keys
	m.values = values
	return nil
}

// Equal reports whether m and other hold the same keys in the same document
// order with values equal under eq.
func (m *PatternedMap[V]) Equal(other *PatternedMap[V], eq func(a, b V) bool) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil || other == nil {
		return true
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !eq(m.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// UnmarshalYAML decodes a YAML mapping node, preserving key order and
// validating every key exactly as Set would.
func (m *PatternedMap[V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping for patterned object, got %s", value.Line, yamlKindName(value.Kind))
	}
	m.keys = nil
	m.values = make(map[string]V, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		key := keyNode.Value
		if err := m.checkKey(key); err != nil {
			return err
		}
		var v V
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}
		m.set(key, v)
	}
	return nil
}

// MarshalYAML encodes the map as a YAML mapping node in document order.
func (m *PatternedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object token by token so that key order
// survives the round trip. Keys are validated exactly as Set would.
func (m *PatternedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object for patterned object, got %v", tok)
	}
	m.keys = nil
	m.values = make(map[string]V)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", keyTok)
		}
		if err := m.checkKey(key); err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}
		m.set(key, v)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in document order.
func (m *PatternedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// yamlKindName returns a readable name for a yaml.Kind in error messages.
func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
