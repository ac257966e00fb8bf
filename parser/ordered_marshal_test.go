package parser

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// assertKeyOrder verifies that keys appear in the expected order within the
// output string.
func assertKeyOrder(t *testing.T, output string, keys []string, format string) {
	t.Helper()
	for i := 0; i < len(keys)-1; i++ {
		idx1 := strings.Index(output, keys[i])
		idx2 := strings.Index(output, keys[i+1])
		require.GreaterOrEqual(t, idx1, 0, "%s: %q missing from output", format, keys[i])
		require.GreaterOrEqual(t, idx2, 0, "%s: %q missing from output", format, keys[i+1])
		assert.True(t, idx1 < idx2, "%s: expected %q before %q", format, keys[i], keys[i+1])
	}
}

func TestMarshalOrderedJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		checkOrder []string
	}{
		{
			name: "preserves extension field order",
			input: `{
				"asyncapi": "3.0.0",
				"info": {
					"title": "Order Test",
					"version": "1.0.0",
					"x-zebra": "should come first",
					"x-alpha": "should come second"
				}
			}`,
			checkOrder: []string{"x-zebra", "x-alpha"},
		},
		{
			name: "preserves channel order",
			input: `{
				"asyncapi": "3.0.0",
				"info": {"title": "Test", "version": "1.0.0"},
				"channels": {
					"zebraEvents": {"address": "zebra"},
					"alphaEvents": {"address": "alpha"},
					"middleEvents": {"address": "middle"}
				}
			}`,
			checkOrder: []string{"zebraEvents", "alphaEvents", "middleEvents"},
		},
		{
			name: "handles arrays and empty objects",
			input: `{
				"asyncapi": "3.0.0",
				"info": {"title": "Test", "version": "1.0.0"},
				"servers": {},
				"channels": {
					"events": {
						"address": "events",
						"servers": []
					}
				}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseWithOptions(
				WithBytes([]byte(tt.input)),
				WithPreserveOrder(true),
			)
			require.NoError(t, err)
			assert.True(t, result.HasPreservedOrder())

			output, err := result.MarshalOrderedJSON()
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(output, &decoded))
			assertKeyOrder(t, string(output), tt.checkOrder, "json key order")
		})
	}
}

func TestMarshalOrderedJSONFromYAMLSource(t *testing.T) {
	result, err := ParseWithOptions(
		WithFilePath("../testdata/order-service.yaml"),
		WithPreserveOrder(true),
	)
	require.NoError(t, err)
	require.True(t, result.HasPreservedOrder())

	output, err := result.MarshalOrderedJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Equal(t, "3.0.0", decoded["asyncapi"])

	// Root keys come out in source order for both formats.
	assertKeyOrder(t, string(output), []string{
		`"asyncapi"`, `"id"`, `"defaultContentType"`, `"info"`,
		`"servers"`, `"channels"`, `"operations"`, `"components"`,
	}, "json root order")
	assertKeyOrder(t, string(output), []string{"production", "development"}, "server order")
	assertKeyOrder(t, string(output), []string{"orderCreated", "orderCancelled"}, "message order")
}

func TestMarshalOrderedJSONIndent(t *testing.T) {
	result, err := ParseWithOptions(
		WithBytes([]byte(`{"asyncapi":"3.0.0","info":{"title":"T","version":"1.0.0"}}`)),
		WithPreserveOrder(true),
	)
	require.NoError(t, err)

	output, err := result.MarshalOrderedJSONIndent("", "  ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), "{\n  \"asyncapi\""), "got: %s", output)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Equal(t, "3.0.0", decoded["asyncapi"])
}

func TestMarshalOrderedYAML(t *testing.T) {
	result, err := ParseWithOptions(
		WithFilePath("../testdata/order-service.yaml"),
		WithPreserveOrder(true),
	)
	require.NoError(t, err)

	output, err := result.MarshalOrderedYAML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(output), "asyncapi:"), "got: %s", output[:40])

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(output, &decoded))
	assert.Equal(t, "3.0.0", decoded["asyncapi"])

	assertKeyOrder(t, string(output), []string{"production", "development"}, "yaml server order")
	assertKeyOrder(t, string(output), []string{"sendOrderCreated", "receiveOrderCancelled"}, "yaml operation order")
}

func TestMarshalOrderedFallback(t *testing.T) {
	// Without PreserveOrder there is no source node; marshaling still
	// works, it just does not honor source ordering.
	result, err := New().Parse("../testdata/order-service.yaml")
	require.NoError(t, err)
	assert.False(t, result.HasPreservedOrder())

	jsonOut, err := result.MarshalOrderedJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonOut, &decoded))
	assert.Equal(t, "3.0.0", decoded["asyncapi"])

	yamlOut, err := result.MarshalOrderedYAML()
	require.NoError(t, err)
	var decodedYAML map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut, &decodedYAML))
	assert.Equal(t, "3.0.0", decodedYAML["asyncapi"])
}

func TestMarshalOrderedCrossFormatRoundTrip(t *testing.T) {
	// YAML in, ordered JSON out, parse the JSON again: the document
	// survives the trip with extensions intact.
	result, err := ParseWithOptions(
		WithFilePath("../testdata/order-service.yaml"),
		WithPreserveOrder(true),
	)
	require.NoError(t, err)

	jsonOut, err := result.MarshalOrderedJSON()
	require.NoError(t, err)

	reparsed, err := ParseWithOptions(WithBytes(jsonOut))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, reparsed.SourceFormat)
	assert.Equal(t, "Order Service", reparsed.Document.Info.Title)
	assert.Equal(t, "checkout", reparsed.Document.Info.Extra["x-team"])
	assert.Equal(t, result.Stats, reparsed.Stats)
	assert.Equal(t, result.Document.Channels.Keys(), reparsed.Document.Channels.Keys())
}
