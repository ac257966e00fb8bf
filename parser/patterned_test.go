package parser

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/aaserrors"
)

func TestIsValidPatternedKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"simple lowercase", "orders", true},
		{"mixed case", "userSignedUp", true},
		{"digits", "channel2", true},
		{"hyphens", "user-signed-up", true},
		{"underscores", "user_signed_up", true},
		{"single character", "a", true},
		{"empty", "", false},
		{"dot", "user.signed.up", false},
		{"slash", "user/signedup", false},
		{"space", "user signedup", false},
		{"unicode", "usér", false},
		{"curly braces", "{userId}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPatternedKey(tt.key))
		})
	}
}

func TestPatternedMapSetGet(t *testing.T) {
	m := NewPatternedMap[int]()

	require.NoError(t, m.Set("first", 1))
	require.NoError(t, m.Set("second", 2))

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Has("first"))
	assert.False(t, m.Has("third"))

	v, ok := m.Get("second")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	// Replacing an existing key keeps its position.
	require.NoError(t, m.Set("first", 10))
	assert.Equal(t, 2, m.Len())
	v, _ = m.Get("first")
	assert.Equal(t, 10, v)
	assert.Equal(t, []string{"first", "second"}, m.Keys())
}

func TestPatternedMapSetInvalidKey(t *testing.T) {
	m := NewPatternedMap[string]()

	err := m.Set("bad.key", "value")
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrKeyFormat))

	var keyErr *aaserrors.KeyFormatError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "bad.key", keyErr.Key)
	assert.Equal(t, 0, m.Len())
}

func TestPatternedMapCustomPattern(t *testing.T) {
	extensions := NewPatternedMapWithPattern[string](KeyPattern{
		Pattern: ExtensionKeyPattern,
		Rule:    "an x- prefix followed by word characters, dots, and hyphens",
	})

	// Dots are legal under the extension pattern, unlike the default.
	require.NoError(t, extensions.Set("x-internal.id", "abc123"))

	err := extensions.Set("internal", "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrKeyFormat))

	var keyErr *aaserrors.KeyFormatError
	require.ErrorAs(t, err, &keyErr)
	assert.Contains(t, keyErr.Rule, "x- prefix")
}

func TestPatternedMapOrder(t *testing.T) {
	m := NewPatternedMap[int]()
	keys := []string{"zebra", "apple", "mango", "banana"}
	for i, k := range keys {
		require.NoError(t, m.Set(k, i))
	}

	assert.Equal(t, keys, m.Keys())
	assert.Equal(t, []int{0, 1, 2, 3}, m.Values())

	// Keys() returns a copy; mutating it must not affect the map.
	got := m.Keys()
	got[0] = "mutated"
	assert.Equal(t, keys, m.Keys())
}

func TestPatternedMapDelete(t *testing.T) {
	m := NewPatternedMap[int]()
	require.NoError(t, m.Set("a", 1))
	require.NoError(t, m.Set("b", 2))
	require.NoError(t, m.Set("c", 3))

	require.NoError(t, m.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	// Deleting again fails; the survivors keep their order.
	err := m.Delete("b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrMissingKey))
	assert.Equal(t, []string{"a", "c"}, m.Keys())
}

func TestPatternedMapMustGet(t *testing.T) {
	m := NewPatternedMap[int]()
	require.NoError(t, m.Set("a", 1))

	assert.Equal(t, 1, m.MustGet("a"))
	assert.Panics(t, func() { m.MustGet("missing") })
}

func TestPatternedMapReplace(t *testing.T) {
	m := NewPatternedMap[int]()
	require.NoError(t, m.Set("old", 1))

	require.NoError(t, m.Replace(map[string]int{"beta": 2, "alpha": 1}))
	assert.Equal(t, []string{"alpha", "beta"}, m.Keys())
	assert.False(t, m.Has("old"))

	// An invalid key rejects the whole replacement; contents are untouched.
	err := m.Replace(map[string]int{"ok": 1, "bad.key": 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrKeyFormat))
	assert.Equal(t, []string{"alpha", "beta"}, m.Keys())
}

func TestPatternedMapRange(t *testing.T) {
	m := NewPatternedMap[int]()
	require.NoError(t, m.Set("a", 1))
	require.NoError(t, m.Set("b", 2))
	require.NoError(t, m.Set("c", 3))

	var visited []string
	m.Range(func(key string, value int) bool {
		visited = append(visited, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestPatternedMapNilReceiver(t *testing.T) {
	var m *PatternedMap[int]

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Error(t, m.Delete("a"))
	assert.Empty(t, m.Keys())
	assert.Empty(t, m.Values())
	m.Range(func(string, int) bool {
		t.Fatal("range over nil map should not call fn")
		return false
	})
}

func TestPatternedMapEqual(t *testing.T) {
	intEq := func(a, b int) bool { return a == b }

	a := NewPatternedMap[int]()
	require.NoError(t, a.Set("x", 1))
	require.NoError(t, a.Set("y", 2))

	b := NewPatternedMap[int]()
	require.NoError(t, b.Set("x", 1))
	require.NoError(t, b.Set("y", 2))

	assert.True(t, a.Equal(b, intEq))

	// Same entries in a different order are not equal.
	c := NewPatternedMap[int]()
	require.NoError(t, c.Set("y", 2))
	require.NoError(t, c.Set("x", 1))
	assert.False(t, a.Equal(c, intEq))

	// Different value.
	d := NewPatternedMap[int]()
	require.NoError(t, d.Set("x", 1))
	require.NoError(t, d.Set("y", 99))
	assert.False(t, a.Equal(d, intEq))

	// Nil and empty are equal.
	var nilMap *PatternedMap[int]
	assert.True(t, nilMap.Equal(NewPatternedMap[int](), intEq))
}

func TestPatternedMapUnmarshalYAML(t *testing.T) {
	input := []byte("zebra: 1\napple: 2\nmango: 3\n")

	var m PatternedMap[int]
	require.NoError(t, yaml.Unmarshal(input, &m))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	v, ok := m.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestPatternedMapUnmarshalYAMLInvalidKey(t *testing.T) {
	input := []byte("good-key: 1\nbad.key: 2\n")

	var m PatternedMap[int]
	err := yaml.Unmarshal(input, &m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrKeyFormat))
}

func TestPatternedMapUnmarshalYAMLNotMapping(t *testing.T) {
	var m PatternedMap[int]
	err := yaml.Unmarshal([]byte("- 1\n- 2\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestPatternedMapMarshalYAMLOrder(t *testing.T) {
	m := NewPatternedMap[int]()
	require.NoError(t, m.Set("zebra", 1))
	require.NoError(t, m.Set("apple", 2))

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\napple: 2\n", string(out))
}

func TestPatternedMapJSONRoundTrip(t *testing.T) {
	input := []byte(`{"zebra":1,"apple":2,"mango":3}`)

	var m PatternedMap[int]
	require.NoError(t, json.Unmarshal(input, &m))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(out))
}

func TestPatternedMapUnmarshalJSONInvalidKey(t *testing.T) {
	var m PatternedMap[int]
	err := json.Unmarshal([]byte(`{"bad key":1}`), &m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, aaserrors.ErrKeyFormat))
}

func TestPatternedMapMarshalJSONEmpty(t *testing.T) {
	var nilMap *PatternedMap[int]
	out, err := json.Marshal(nilMap)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(NewPatternedMap[int]())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
