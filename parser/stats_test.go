package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentStats(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want DocumentStats
	}{
		{
			name: "minimal document",
			doc: `
asyncapi: 3.0.0
info:
  title: Minimal
  version: 1.0.0
`,
			want: DocumentStats{},
		},
		{
			name: "channels and operations",
			doc: `
asyncapi: 3.0.0
info:
  title: Counts
  version: 1.0.0
servers:
  broker:
    host: localhost:4222
    protocol: nats
channels:
  events:
    address: events
    messages:
      created: {}
      updated: {}
  audit:
    address: audit
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/channels/events'
  sendUpdated:
    action: send
    channel:
      $ref: '#/channels/events'
  receiveAudit:
    action: receive
    channel:
      $ref: '#/channels/audit'
components:
  schemas:
    event:
      type: object
  messages:
    created: {}
`,
			want: DocumentStats{
				ServerCount:      1,
				ChannelCount:     2,
				OperationCount:   3,
				SendCount:        2,
				ReceiveCount:     1,
				MessageCount:     2,
				SchemaCount:      1,
				ComponentCount:   2,
				InternalRefCount: 3,
				Protocols:        []string{"nats"},
			},
		},
		{
			name: "null entries do not panic",
			doc: `
asyncapi: 3.0.0
info:
  title: Nulls
  version: 1.0.0
channels:
  events:
operations:
  sendCreated:
`,
			want: DocumentStats{
				ChannelCount:   1,
				OperationCount: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().ParseBytes([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Stats)
		})
	}
}

func TestGetDocumentStatsNilDocument(t *testing.T) {
	assert.Equal(t, DocumentStats{}, GetDocumentStats(nil))
}

func TestGetDocumentStatsEmptyDocument(t *testing.T) {
	doc := &AsyncAPIDocument{AsyncAPI: "3.0.0", Info: &Info{Title: "T", Version: "1.0.0"}}
	assert.Equal(t, DocumentStats{}, GetDocumentStats(doc))
}

func TestGetDocumentStatsConstructed(t *testing.T) {
	ops := NewPatternedMap[*Operation]()
	require.NoError(t, ops.Set("sendA", &Operation{Action: ActionSend}))
	require.NoError(t, ops.Set("receiveB", &Operation{Action: ActionReceive}))
	require.NoError(t, ops.Set("refOnly", &Operation{Ref: "#/components/operations/refOnly"}))

	doc := &AsyncAPIDocument{
		AsyncAPI:   "3.0.0",
		Info:       &Info{Title: "T", Version: "1.0.0"},
		Operations: ops,
	}

	stats := GetDocumentStats(doc)
	assert.Equal(t, 3, stats.OperationCount)
	assert.Equal(t, 1, stats.SendCount)
	assert.Equal(t, 1, stats.ReceiveCount)
}

func TestGetDocumentStatsProtocols(t *testing.T) {
	servers := NewPatternedMap[*Server]()
	require.NoError(t, servers.Set("prod", &Server{Host: "b1", Protocol: "kafka"}))
	require.NoError(t, servers.Set("edge", &Server{Host: "b2", Protocol: "mqtt"}))

	compServers := NewPatternedMap[*Server]()
	require.NoError(t, compServers.Set("backup", &Server{Host: "b3", Protocol: "kafka"}))
	require.NoError(t, compServers.Set("ws", &Server{Host: "b4", Protocol: "ws"}))

	doc := &AsyncAPIDocument{
		AsyncAPI:   "3.0.0",
		Info:       &Info{Title: "T", Version: "1.0.0"},
		Servers:    servers,
		Components: &Components{Servers: compServers},
	}

	// Deduplicated across root and component servers, sorted.
	assert.Equal(t, []string{"kafka", "mqtt", "ws"}, GetDocumentStats(doc).Protocols)
}

func TestCountRefs(t *testing.T) {
	tree := map[string]any{
		"$ref": "#/components/messages/created",
		"nested": map[string]any{
			"$ref": "https://example.com/common.yaml#/components/schemas/id",
		},
		"list": []any{
			map[string]any{"$ref": "#/channels/orders"},
			map[string]any{"label": "no ref here"},
		},
	}

	internal, external := CountRefs(tree)
	assert.Equal(t, 2, internal)
	assert.Equal(t, 1, external)

	internal, external = CountRefs(nil)
	assert.Equal(t, 0, internal)
	assert.Equal(t, 0, external)
}
