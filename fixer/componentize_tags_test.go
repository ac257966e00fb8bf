package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
)

func TestComponentizeTags_InfoTags(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
  tags:
    - name: orders
      description: Order lifecycle
    - name: payments
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 2, result.FixCount)
	assert.Equal(t, "info.tags[0]", result.Fixes[0].Path)
	assert.Equal(t, "info.tags[1]", result.Fixes[1].Path)

	require.Len(t, doc.Info.Tags, 2)
	assert.Equal(t, "#/components/tags/orders", doc.Info.Tags[0].Ref)
	assert.Equal(t, "#/components/tags/payments", doc.Info.Tags[1].Ref)

	hoisted, ok := doc.Components.Tags.Get("orders")
	require.True(t, ok)
	assert.Equal(t, "Order lifecycle", hoisted.Description)
}

func TestComponentizeTags_DropsDuplicates(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
  tags:
    - name: orders
    - name: orders
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Len(t, doc.Info.Tags, 1, "duplicate within one list is dropped")
	assert.Equal(t, "#/components/tags/orders", doc.Info.Tags[0].Ref)

	require.Equal(t, 2, result.FixCount)
	assert.Contains(t, result.Fixes[0].Description, "moved inline tag")
	assert.Contains(t, result.Fixes[1].Description, "removed duplicate tag")
}

func TestComponentizeTags_SharedAcrossLocations(t *testing.T) {
	// The same tag on a channel and an operation resolves to one
	// components entry with no warning
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
    tags:
      - name: orders
        description: Order lifecycle
operations:
  sendOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    tags:
      - name: orders
        description: Order lifecycle
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, doc.Components.Tags.Len())

	ch, _ := doc.Channels.Get("orders")
	require.Len(t, ch.Tags, 1)
	assert.Equal(t, "#/components/tags/orders", ch.Tags[0].Ref)

	op, _ := doc.Operations.Get("sendOrder")
	require.Len(t, op.Tags, 1)
	assert.Equal(t, "#/components/tags/orders", op.Tags[0].Ref)
}

func TestComponentizeTags_ConflictWarnsAndReusesFirst(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
  tags:
    - name: orders
      description: First definition
channels:
  orders:
    address: orders
    tags:
      - name: orders
        description: Second definition
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "tag name conflict")
	assert.Contains(t, result.Warnings[0], `"orders"`)

	hoisted, ok := doc.Components.Tags.Get("orders")
	require.True(t, ok)
	assert.Equal(t, "First definition", hoisted.Description)

	ch, _ := doc.Channels.Get("orders")
	require.Len(t, ch.Tags, 1)
	assert.Equal(t, "#/components/tags/orders", ch.Tags[0].Ref)
}

func TestComponentizeTags_OperationTraits(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  sendOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    traits:
      - tags:
          - name: kafka
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 1, result.FixCount)
	assert.Equal(t, "operations.sendOrder.traits[0].tags[0]", result.Fixes[0].Path)

	op, _ := doc.Operations.Get("sendOrder")
	require.Len(t, op.Traits, 1)
	require.Len(t, op.Traits[0].Tags, 1)
	assert.Equal(t, "#/components/tags/kafka", op.Traits[0].Tags[0].Ref)
}

func TestComponentizeTags_ComponentsMessages(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
components:
  messages:
    orderCreated:
      name: OrderCreated
      tags:
        - name: orders
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 1, result.FixCount)
	assert.Equal(t, "components.messages.orderCreated.tags[0]", result.Fixes[0].Path)

	msg, _ := doc.Components.Messages.Get("orderCreated")
	require.Len(t, msg.Tags, 1)
	assert.Equal(t, "#/components/tags/orders", msg.Tags[0].Ref)
}

func TestComponentizeTags_SanitizedKey(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
  tags:
    - name: Order Events
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 1, result.FixCount)
	assert.Equal(t, "#/components/tags/Order_Events", doc.Info.Tags[0].Ref)

	hoisted, ok := doc.Components.Tags.Get("Order_Events")
	require.True(t, ok)
	assert.Equal(t, "Order Events", hoisted.Name, "the tag keeps its original display name")
}

func TestComponentizeTags_NamelessStaysInline(t *testing.T) {
	doc := &parser.AsyncAPIDocument{
		AsyncAPI: "3.0.0",
		Info: &parser.Info{
			Title:   "Test",
			Version: "1.0.0",
			Tags:    []*parser.Tag{{Description: "no name"}},
		},
	}

	result := &FixResult{}
	componentizeTags(doc, result)

	assert.Empty(t, result.Fixes)
	require.Len(t, doc.Info.Tags, 1)
	assert.Empty(t, doc.Info.Tags[0].Ref)
	assert.Equal(t, "no name", doc.Info.Tags[0].Description)
}

func TestTagKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "orders", "orders"},
		{"hyphen kept", "order-events", "order-events"},
		{"space replaced", "Order Events", "Order_Events"},
		{"punctuation replaced", "orders/payments!", "orders_payments_"},
		{"unicode replaced", "événement", "_v_nement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tagKey(tt.input))
		})
	}
}
