package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentizeMessages_HoistsInline(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        name: OrderCreated
        payload:
          type: object
      cancelled:
        name: OrderCancelled
        payload:
          type: object
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 2, result.FixCount)
	assert.Equal(t, "channels.orders.messages.created", result.Fixes[0].Path)
	assert.Equal(t, "channels.orders.messages.cancelled", result.Fixes[1].Path)

	ch, ok := doc.Channels.Get("orders")
	require.True(t, ok)
	created, ok := ch.Messages.Get("created")
	require.True(t, ok)
	assert.Equal(t, "#/components/messages/created", created.Ref)
	assert.Nil(t, created.Payload, "channel entry should be a bare reference")

	hoisted, ok := doc.Components.Messages.Get("created")
	require.True(t, ok)
	assert.Equal(t, "OrderCreated", hoisted.Name)
	assert.True(t, doc.Components.Messages.Has("cancelled"))
}

func TestComponentizeMessages_SkipsReferences(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        $ref: '#/components/messages/created'
components:
  messages:
    created:
      name: OrderCreated
`)

	result := fixParsed(t, parsed)
	assert.Zero(t, result.FixCount)
}

func TestComponentizeMessages_IdenticalSharesEntry(t *testing.T) {
	// Two channels carry byte-identical inline messages: one components
	// entry serves both
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        name: Created
        payload:
          type: object
  audit:
    address: audit
    messages:
      created:
        name: Created
        payload:
          type: object
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 2, result.FixCount)
	assert.Equal(t, 1, doc.Components.Messages.Len())

	for _, chKey := range []string{"orders", "audit"} {
		ch, ok := doc.Channels.Get(chKey)
		require.True(t, ok)
		msg, ok := ch.Messages.Get("created")
		require.True(t, ok)
		assert.Equal(t, "#/components/messages/created", msg.Ref)
	}
}

func TestComponentizeMessages_CollisionQualifiesKey(t *testing.T) {
	// Same message key with different content in two channels: the second
	// hoists under "{channelKey}-{messageKey}"
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        name: OrderCreated
  payments:
    address: payments
    messages:
      created:
        name: PaymentCreated
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 2, result.FixCount)
	assert.Contains(t, result.Fixes[1].Description, `as "payments-created"`)

	ordersCh, _ := doc.Channels.Get("orders")
	ordersMsg, ok := ordersCh.Messages.Get("created")
	require.True(t, ok)
	assert.Equal(t, "#/components/messages/created", ordersMsg.Ref)

	paymentsCh, _ := doc.Channels.Get("payments")
	paymentsMsg, ok := paymentsCh.Messages.Get("created")
	require.True(t, ok)
	assert.Equal(t, "#/components/messages/payments-created", paymentsMsg.Ref)

	hoisted, ok := doc.Components.Messages.Get("payments-created")
	require.True(t, ok)
	assert.Equal(t, "PaymentCreated", hoisted.Name)
}

func TestComponentizeMessages_ConflictOnQualifiedKeyFails(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
channels:
  payments:
    address: payments
    messages:
      created:
        name: PaymentCreated
components:
  messages:
    created:
      name: OrderCreated
    payments-created:
      name: SomethingElse
`)

	_, err := New().FixParsed(parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message name conflict")
	assert.Contains(t, err.Error(), `"payments-created"`)
}

func TestComponentizeMessages_ComponentsChannels(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Test
  version: 1.0.0
components:
  channels:
    orders:
      address: orders
      messages:
        created:
          name: OrderCreated
`)

	result := fixParsed(t, parsed)
	doc := result.Document

	require.Equal(t, 1, result.FixCount)
	assert.Equal(t, "components.channels.orders.messages.created", result.Fixes[0].Path)

	ch, ok := doc.Components.Channels.Get("orders")
	require.True(t, ok)
	msg, ok := ch.Messages.Get("created")
	require.True(t, ok)
	assert.Equal(t, "#/components/messages/created", msg.Ref)
	assert.True(t, doc.Components.Messages.Has("created"))
}
