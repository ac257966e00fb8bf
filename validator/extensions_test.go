package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtensionsValid accepts well-formed x- extensions at every level
func TestExtensionsValid(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
x-internal-id: platform-7
info:
  title: Extensions
  version: 1.0.0
  x-team: payments
  contact:
    name: Platform
    x-slack: '#platform'
channels:
  orders:
    address: orders
    x-owner.region_eu: 'true'
    messages:
      created:
        name: OrderCreated
        x-schema-registry: confluent
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 0, result.WarningCount)
}

// TestExtensionsMisspelledField reports unknown fields caught by the
// inline Extra map
func TestExtensionsMisspelledField(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Typos
  version: 1.0.0
  titel: Typos
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	finding := result.Errors[0]
	assert.Equal(t, "info", finding.Path)
	assert.Equal(t, "Field 'titel' does not match specification extension pattern. Extensions must start with 'x-' and contain only word characters, digits, dots, hyphens, and underscores.", finding.Message)
	assert.Equal(t, "titel", finding.Field)
	assert.Equal(t, "titel", finding.Value)
}

// TestExtensionsRootLevel uses the offending key itself as the path for
// document-level extras
func TestExtensionsRootLevel(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Root
  version: 1.0.0
channnels:
  orders:
    address: orders
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "channnels", result.Errors[0].Path)
	assert.Contains(t, result.Errors[0].Message, "Field 'channnels' does not match specification extension pattern")
}

// TestExtensionsMessageExamples checks extras nested inside message
// examples
func TestExtensionsMessageExamples(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Examples
  version: 1.0.0
channels:
  orders:
    address: orders
    messages:
      created:
        name: OrderCreated
        examples:
          - name: minimal
            payload:
              orderId: '123'
          - name: annotated
            payload:
              orderId: '456'
            notes: should have been x-notes
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	finding := result.Errors[0]
	assert.Equal(t, "channels.orders.messages.created.examples[1]", finding.Path)
	assert.Equal(t, "notes", finding.Field)
}

// TestExtensionsOAuthFlow checks extras inside OAuth flow objects
func TestExtensionsOAuthFlow(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: OAuth
  version: 1.0.0
components:
  securitySchemes:
    auth:
      type: oauth2
      flows:
        clientCredentials:
          tokenUrl: https://auth.example.com/token
          availableScopes: {}
          audience: orders-api
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	finding := result.Errors[0]
	assert.Equal(t, "components.securitySchemes.auth.flows.clientCredentials", finding.Path)
	assert.Equal(t, "audience", finding.Field)
}

// TestExtensionsSortedOrder reports multiple extras of one object in key
// order
func TestExtensionsSortedOrder(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Order
  version: 1.0.0
servers:
  prod:
    host: broker.example.com
    protocol: kafka
    zone: eu-west-1
    datacenter: dub2
    x-fine: keep
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, "datacenter", result.Errors[0].Field)
	assert.Equal(t, "zone", result.Errors[1].Field)
	for _, e := range result.Errors {
		assert.Equal(t, "servers.prod", e.Path)
	}
}

// TestExtensionsBareDash rejects the x- prefix with no name after it
func TestExtensionsBareDash(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Bare
  version: 1.0.0
  x-: empty name
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "x-", result.Errors[0].Field)
}
