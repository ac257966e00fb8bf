package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/walker"
)

// TestRefValidation tests reference resolution against the two internal
// reference shapes
func TestRefValidation(t *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectError   bool
		errorPath     string
		errorContains string
	}{
		{
			name: "Valid component and root references",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        $ref: '#/components/messages/orderCreated'
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/channels/orders'
components:
  messages:
    orderCreated:
      name: OrderCreated
      payload:
        type: object
`,
			expectError: false,
		},
		{
			name: "Unresolved component reference",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        $ref: '#/components/messages/nope'
components:
  messages:
    orderCreated:
      name: OrderCreated
`,
			expectError:   true,
			errorPath:     "channels.orders.messages.created",
			errorContains: "component 'nope' does not exist in #/components/messages",
		},
		{
			name: "Unresolved root server reference",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
servers:
  production:
    host: broker.example.com:9092
    protocol: kafka
channels:
  orders:
    address: orders
    servers:
      - $ref: '#/servers/missing'
`,
			expectError:   true,
			errorPath:     "channels.orders.servers[0]",
			errorContains: "server 'missing' does not exist in root servers",
		},
		{
			name: "Deep pointer below a root entry is malformed",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        name: OrderCreated
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/channels/orders/messages/created'
`,
			expectError:   true,
			errorPath:     "operations.sendCreated.channel",
			errorContains: "is malformed: reference nests below a root entry",
		},
		{
			name: "Unknown component category is malformed",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
components:
  schemas:
    order:
      type: object
      properties:
        widget:
          $ref: '#/components/widgets/thing'
`,
			expectError:   true,
			errorPath:     "components.schemas.order.properties.widget",
			errorContains: "unknown component category 'widgets'",
		},
		{
			name: "Operation channel must target a root channel",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/components/channels/orders'
components:
  channels:
    orders:
      address: orders
`,
			expectError:   true,
			errorPath:     "operations.sendCreated.channel",
			errorContains: "must point to #/channels/ but points elsewhere",
		},
		{
			name: "Channel message must target a component message",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        $ref: '#/channels/orders'
`,
			expectError:   true,
			errorPath:     "channels.orders.messages.created",
			errorContains: "must point to #/components/messages/ but points elsewhere",
		},
		{
			name: "Reply messages resolve against component messages",
			content: `
asyncapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/channels/orders'
    reply:
      channel:
        $ref: '#/channels/orders'
      messages:
        - $ref: '#/components/messages/ack'
`,
			expectError:   true,
			errorPath:     "operations.sendCreated.reply.messages[0]",
			errorContains: "component 'ack' does not exist in #/components/messages",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := parseYAML(t, tc.content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			if !tc.expectError {
				if !result.Valid {
					for _, e := range result.Errors {
						t.Logf("  Error: %s", e.String())
					}
				}
				assert.True(t, result.Valid)
				return
			}

			assert.False(t, result.Valid)
			if !hasFinding(result.Errors, tc.errorPath, tc.errorContains) {
				t.Errorf("Expected error at %q containing %q", tc.errorPath, tc.errorContains)
				for _, e := range result.Errors {
					t.Logf("  Error: %s at %s", e.Message, e.Path)
				}
			}
		})
	}
}

// TestRefValidationTagComponents resolves tag references against the tags
// component category
func TestRefValidationTagComponents(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Tagged
  version: 1.0.0
components:
  messages:
    audit:
      name: Audit
      tags:
        - $ref: '#/components/tags/existing'
        - $ref: '#/components/tags/missing'
  tags:
    existing:
      name: existing
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	e := result.Errors[0]
	assert.Equal(t, "components.messages.audit.tags[1]", e.Path)
	assert.Equal(t,
		"Tag references '#/components/tags/missing' but component 'missing' does not exist in #/components/tags",
		e.Message)
	assert.Equal(t, "tags", e.Category)
}

// TestRefValidationSecuritySchemes resolves operation security entries
func TestRefValidationSecuritySchemes(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Secured
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  sendCreated:
    action: send
    channel:
      $ref: '#/channels/orders'
    security:
      - $ref: '#/components/securitySchemes/missing'
components:
  securitySchemes:
    sasl:
      type: scramSha512
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "operations.sendCreated.security[0]",
		"component 'missing' does not exist in #/components/securitySchemes"))
}

// TestBuildValidRefs indexes every root entry and component the document
// defines
func TestBuildValidRefs(t *testing.T) {
	p := parser.New()
	parsed, err := p.Parse("../testdata/order-service.yaml")
	require.NoError(t, err)

	validRefs := buildValidRefs(parsed.Document)

	expected := []string{
		"#/servers/production",
		"#/servers/development",
		"#/channels/orders",
		"#/channels/orderReplies",
		"#/operations/sendOrderCreated",
		"#/operations/receiveOrderCancelled",
		"#/components/schemas/orderId",
		"#/components/schemas/order",
		"#/components/messages/orderCreated",
		"#/components/messages/orderCancelled",
		"#/components/messages/orderAck",
		"#/components/parameters/orderType",
		"#/components/correlationIds/orderCorrelation",
		"#/components/securitySchemes/saslScram",
		"#/components/operationTraits/kafkaDefaults",
		"#/components/messageTraits/commonHeaders",
		"#/components/replyAddresses/orderReply",
		"#/components/tags/kafka",
		"#/components/serverBindings/kafkaCluster",
	}
	for _, ref := range expected {
		assert.True(t, validRefs[ref], "expected %s in the reference index", ref)
	}
	assert.Len(t, validRefs, len(expected))

	assert.False(t, validRefs["#/components/messages/missing"])
	assert.False(t, validRefs["#/channels/missing"])
}

// TestBuildValidRefsNilDocument returns an empty index for a nil document
func TestBuildValidRefsNilDocument(t *testing.T) {
	validRefs := buildValidRefs(nil)
	require.NotNil(t, validRefs)
	assert.Empty(t, validRefs)
}

// TestEdgeLabel names every declared reference location
func TestEdgeLabel(t *testing.T) {
	testCases := []struct {
		edge     walker.RefEdge
		expected string
	}{
		{walker.EdgeServerRef, "Server"},
		{walker.EdgeChannelRef, "Channel"},
		{walker.EdgeMessageRef, "Message"},
		{walker.EdgeSchemaRef, "Schema"},
		{walker.EdgeSecuritySchemeRef, "Security scheme"},
		{walker.EdgeCorrelationIDRef, "Correlation ID"},
		{walker.EdgeChannelServers, "Channel server"},
		{walker.EdgeOperationChannel, "Operation channel"},
		{walker.EdgeOperationMessages, "Operation message"},
		{walker.EdgeReplyChannel, "Reply channel"},
		{walker.EdgeReplyMessages, "Reply message"},
		{walker.RefEdge("bogus"), "Reference"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, edgeLabel(tc.edge))
		})
	}
}

// TestSingular trims the collection plural for finding messages
func TestSingular(t *testing.T) {
	assert.Equal(t, "server", singular(parser.RootServers))
	assert.Equal(t, "channel", singular(parser.RootChannels))
	assert.Equal(t, "operation", singular(parser.RootOperations))
}
