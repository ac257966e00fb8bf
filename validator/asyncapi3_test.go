package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
)

// TestCheckDocument_MissingRootFields reports the required root fields of a
// hand-built empty document
func TestCheckDocument_MissingRootFields(t *testing.T) {
	parsed := parser.ParseResult{
		Document: &parser.AsyncAPIDocument{},
	}

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "asyncapi", "Document must declare an asyncapi version"))
	assert.True(t, hasFinding(result.Errors, "info", "Document must have an info object"))
}

// TestCheckDocument_FieldFormats validates the id URI and the default
// content type
func TestCheckDocument_FieldFormats(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
id: 'not a uri'
defaultContentType: json
info:
  title: Formats
  version: 1.0.0
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "id", "Invalid URI format: not a uri"))
	assert.True(t, hasFinding(result.Errors, "defaultContentType", "Invalid media type: json"))

	finding := findingAt(result.Errors, "id")
	require.NotNil(t, finding)
	assert.Equal(t, "id", finding.Field)
	assert.Equal(t, "not a uri", finding.Value)
	assert.Contains(t, finding.SpecRef, "asyncapi.com")
}

// TestCheckInfo covers the info object's required fields and formats
func TestCheckInfo(t *testing.T) {
	testCases := []struct {
		name         string
		content      string
		wantPath     string
		wantContains string
	}{
		{
			name: "missing title",
			content: `
asyncapi: 3.0.0
info:
  version: 1.0.0
`,
			wantPath:     "info.title",
			wantContains: "Info object must have a title",
		},
		{
			name: "missing version",
			content: `
asyncapi: 3.0.0
info:
  title: No Version
`,
			wantPath:     "info.version",
			wantContains: "Info object must have a version",
		},
		{
			name: "invalid terms of service",
			content: `
asyncapi: 3.0.0
info:
  title: Terms
  version: 1.0.0
  termsOfService: not-a-url
`,
			wantPath:     "info.termsOfService",
			wantContains: "Invalid URL format: not-a-url",
		},
		{
			name: "invalid contact url",
			content: `
asyncapi: 3.0.0
info:
  title: Contact
  version: 1.0.0
  contact:
    url: '://bad'
`,
			wantPath:     "info.contact.url",
			wantContains: "Invalid URL format",
		},
		{
			name: "invalid contact email",
			content: `
asyncapi: 3.0.0
info:
  title: Contact
  version: 1.0.0
  contact:
    email: not-an-email
`,
			wantPath:     "info.contact.email",
			wantContains: "Invalid email format: not-an-email",
		},
		{
			name: "license missing name",
			content: `
asyncapi: 3.0.0
info:
  title: License
  version: 1.0.0
  license:
    url: https://www.apache.org/licenses/LICENSE-2.0
`,
			wantPath:     "info.license.name",
			wantContains: "License object must have a name",
		},
		{
			name: "invalid license url",
			content: `
asyncapi: 3.0.0
info:
  title: License
  version: 1.0.0
  license:
    name: Apache 2.0
    url: not-a-url
`,
			wantPath:     "info.license.url",
			wantContains: "Invalid URL format: not-a-url",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := parseYAML(t, tc.content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			if !hasFinding(result.Errors, tc.wantPath, tc.wantContains) {
				t.Errorf("Expected error at %q containing %q", tc.wantPath, tc.wantContains)
				for _, e := range result.Errors {
					t.Logf("  Error: %s at %s", e.Message, e.Path)
				}
			}
		})
	}
}

// TestCheckServer requires host and protocol on every server
func TestCheckServer(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Servers
  version: 1.0.0
servers:
  broken:
    description: neither host nor protocol
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "servers.broken.host", "Server object must have a host"))
	assert.True(t, hasFinding(result.Errors, "servers.broken.protocol", "Server object must have a protocol"))
}

// TestCheckServerVariable warns when the default is not one of the enum
// values
func TestCheckServerVariable(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Variables
  version: 1.0.0
servers:
  prod:
    host: '{region}.broker.example.com'
    protocol: kafka
    variables:
      region:
        enum:
          - eu-west-1
          - us-east-1
        default: ap-south-1
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.True(t, result.Valid, "enum mismatch is a warning, not an error")
	warning := findingAt(result.Warnings, "servers.prod.variables.region.default")
	require.NotNil(t, warning)
	assert.Equal(t, "Server variable default 'ap-south-1' is not one of the enum values", warning.Message)
	assert.Equal(t, SeverityWarning, warning.Severity)
}

// TestCheckChannel validates address parameter expressions against the
// declared parameters
func TestCheckChannel(t *testing.T) {
	testCases := []struct {
		name         string
		content      string
		wantPath     string
		wantContains string
		wantWarning  bool
	}{
		{
			name: "unterminated parameter expression",
			content: `
asyncapi: 3.0.0
info:
  title: Channels
  version: 1.0.0
channels:
  orders:
    address: 'orders.{type'
`,
			wantPath:     "channels.orders.address",
			wantContains: "has an unterminated parameter expression",
		},
		{
			name: "empty parameter expression",
			content: `
asyncapi: 3.0.0
info:
  title: Channels
  version: 1.0.0
channels:
  orders:
    address: 'orders.{}'
`,
			wantPath:     "channels.orders.address",
			wantContains: "has an empty parameter expression",
		},
		{
			name: "undeclared parameter",
			content: `
asyncapi: 3.0.0
info:
  title: Channels
  version: 1.0.0
channels:
  orders:
    address: 'orders.{type}'
`,
			wantPath:     "channels.orders.address",
			wantContains: "references parameter '{type}' but it is not declared in parameters",
		},
		{
			name: "unused parameter",
			content: `
asyncapi: 3.0.0
info:
  title: Channels
  version: 1.0.0
channels:
  orders:
    address: orders
    parameters:
      type:
        enum: [standard, priority]
`,
			wantPath:     "channels.orders.parameters.type",
			wantContains: "Channel parameter 'type' is not used in the channel address",
			wantWarning:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := parseYAML(t, tc.content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			findings := result.Errors
			if tc.wantWarning {
				findings = result.Warnings
				assert.True(t, result.Valid)
			} else {
				assert.False(t, result.Valid)
			}
			if !hasFinding(findings, tc.wantPath, tc.wantContains) {
				t.Errorf("Expected finding at %q containing %q", tc.wantPath, tc.wantContains)
				for _, e := range findings {
					t.Logf("  Finding: %s at %s", e.Message, e.Path)
				}
			}
		})
	}
}

// TestCheckChannelCleanAddress accepts declared and used parameters without
// findings
func TestCheckChannelCleanAddress(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Channels
  version: 1.0.0
channels:
  orders:
    address: 'orders.{type}.{region}'
    parameters:
      type:
        enum: [standard, priority]
        default: standard
      region:
        description: Deployment region.
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 0, result.WarningCount)
}

// TestCheckParameter validates parameter locations and defaults
func TestCheckParameter(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Parameters
  version: 1.0.0
components:
  parameters:
    userId:
      location: '$bogus.header#/userId'
    env:
      enum: [dev, prod]
      default: staging
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "components.parameters.userId.location",
		"Invalid runtime expression: $bogus.header#/userId"))
	assert.True(t, hasFinding(result.Warnings, "components.parameters.env.default",
		"Parameter default 'staging' is not one of the enum values"))
}

// TestCheckOperation requires an action and a channel on every operation
func TestCheckOperation(t *testing.T) {
	testCases := []struct {
		name         string
		operation    string
		wantPath     string
		wantContains string
	}{
		{
			name:         "missing action",
			operation:    "channel:\n      $ref: '#/channels/orders'",
			wantPath:     "operations.op.action",
			wantContains: "Operation object must have an action",
		},
		{
			name:         "invalid action",
			operation:    "action: publish\n    channel:\n      $ref: '#/channels/orders'",
			wantPath:     "operations.op.action",
			wantContains: `Operation action must be "send" or "receive", got "publish"`,
		},
		{
			name:         "missing channel",
			operation:    "action: send",
			wantPath:     "operations.op.channel",
			wantContains: "Operation object must have a channel",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := fmt.Sprintf(`
asyncapi: 3.0.0
info:
  title: Operations
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  op:
    %s
`, tc.operation)
			parsed := parseYAML(t, content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			if !hasFinding(result.Errors, tc.wantPath, tc.wantContains) {
				t.Errorf("Expected error at %q containing %q", tc.wantPath, tc.wantContains)
				for _, e := range result.Errors {
					t.Logf("  Error: %s at %s", e.Message, e.Path)
				}
			}
		})
	}
}

// TestCheckReplyAddress requires a location holding a runtime expression
func TestCheckReplyAddress(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Replies
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  ask:
    action: send
    channel:
      $ref: '#/channels/orders'
    reply:
      address:
        description: no location
      channel:
        $ref: '#/channels/orders'
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "operations.ask.reply.address.location",
		"Operation reply address must have a location"))
}

// TestCheckContentType validates message content types as media types
func TestCheckContentType(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Messages
  version: 1.0.0
channels:
  logs:
    address: logs
    messages:
      entry:
        name: Entry
        contentType: beep
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "channels.logs.messages.entry.contentType",
		"Invalid media type: beep"))
}

// TestCheckCorrelationID requires a location holding a runtime expression
func TestCheckCorrelationID(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Correlation
  version: 1.0.0
components:
  correlationIds:
    missingLocation:
      description: no location
    wrongSource:
      location: '$request.header#/id'
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "components.correlationIds.missingLocation.location",
		"Correlation ID must have a location"))
	assert.True(t, hasFinding(result.Errors, "components.correlationIds.wrongSource.location",
		"Invalid runtime expression: $request.header#/id"))
}

// TestCheckSecurityScheme covers the per-type requirements
func TestCheckSecurityScheme(t *testing.T) {
	testCases := []struct {
		name         string
		scheme       string
		wantPath     string
		wantContains string
	}{
		{
			name:         "missing type",
			scheme:       "description: no type",
			wantPath:     "components.securitySchemes.auth.type",
			wantContains: "Security scheme must have a type",
		},
		{
			name:         "unknown type",
			scheme:       "type: magic",
			wantPath:     "components.securitySchemes.auth.type",
			wantContains: "Invalid security scheme type: magic",
		},
		{
			name:         "apiKey with transport location",
			scheme:       "type: apiKey\n      in: header",
			wantPath:     "components.securitySchemes.auth.in",
			wantContains: `requires 'in' to be "user" or "password", got "header"`,
		},
		{
			name:         "httpApiKey missing name",
			scheme:       "type: httpApiKey\n      in: query",
			wantPath:     "components.securitySchemes.auth.name",
			wantContains: "Security scheme type 'httpApiKey' must have a name",
		},
		{
			name:         "httpApiKey bad in",
			scheme:       "type: httpApiKey\n      name: token\n      in: body",
			wantPath:     "components.securitySchemes.auth.in",
			wantContains: `requires 'in' to be "query", "header", or "cookie", got "body"`,
		},
		{
			name:         "http missing scheme",
			scheme:       "type: http",
			wantPath:     "components.securitySchemes.auth.scheme",
			wantContains: "Security scheme type 'http' must have a scheme",
		},
		{
			name:         "oauth2 missing flows",
			scheme:       "type: oauth2",
			wantPath:     "components.securitySchemes.auth.flows",
			wantContains: "Security scheme type 'oauth2' must have flows",
		},
		{
			name:         "openIdConnect missing url",
			scheme:       "type: openIdConnect",
			wantPath:     "components.securitySchemes.auth.openIdConnectUrl",
			wantContains: "Security scheme type 'openIdConnect' must have an openIdConnectUrl",
		},
		{
			name:         "openIdConnect invalid url",
			scheme:       "type: openIdConnect\n      openIdConnectUrl: not-a-url",
			wantPath:     "components.securitySchemes.auth.openIdConnectUrl",
			wantContains: "Invalid URL format: not-a-url",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := fmt.Sprintf(`
asyncapi: 3.0.0
info:
  title: Security
  version: 1.0.0
components:
  securitySchemes:
    auth:
      %s
`, tc.scheme)
			parsed := parseYAML(t, content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			if !hasFinding(result.Errors, tc.wantPath, tc.wantContains) {
				t.Errorf("Expected error at %q containing %q", tc.wantPath, tc.wantContains)
				for _, e := range result.Errors {
					t.Logf("  Error: %s at %s", e.Message, e.Path)
				}
			}
		})
	}
}

// TestCheckOAuthFlows walks each configured flow with its own URL
// requirements
func TestCheckOAuthFlows(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: OAuth
  version: 1.0.0
components:
  securitySchemes:
    broken:
      type: oauth2
      flows:
        implicit:
          availableScopes:
            read: Read access
        password:
          authorizationUrl: https://auth.example.com/authorize
          availableScopes: {}
        clientCredentials:
          tokenUrl: not-a-url
          availableScopes: {}
        authorizationCode:
          authorizationUrl: https://auth.example.com/authorize
          tokenUrl: https://auth.example.com/token
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	base := "components.securitySchemes.broken.flows"
	assert.True(t, hasFinding(result.Errors, base+".implicit.authorizationUrl",
		"OAuth flow 'implicit' must have an authorizationUrl"))
	assert.True(t, hasFinding(result.Errors, base+".password.tokenUrl",
		"OAuth flow 'password' must have a tokenUrl"))
	assert.True(t, hasFinding(result.Errors, base+".clientCredentials.tokenUrl",
		"Invalid URL format: not-a-url"))
	assert.True(t, hasFinding(result.Errors, base+".authorizationCode.availableScopes",
		"OAuth flow 'authorizationCode' must define availableScopes"))
	assert.Equal(t, 4, result.ErrorCount)
}

// TestCheckOAuthFlowsValid accepts a fully specified authorization code flow
func TestCheckOAuthFlowsValid(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: OAuth
  version: 1.0.0
components:
  securitySchemes:
    good:
      type: oauth2
      flows:
        authorizationCode:
          authorizationUrl: https://auth.example.com/authorize
          tokenUrl: https://auth.example.com/token
          refreshUrl: https://auth.example.com/refresh
          availableScopes:
            'orders:read': Read orders
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.ErrorCount)
}

// TestCheckTag requires a name on inline tags
func TestCheckTag(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Tags
  version: 1.0.0
channels:
  orders:
    address: orders
    tags:
      - description: unnamed
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.True(t, hasFinding(result.Errors, "channels.orders.tags[0].name",
		"Tag object must have a name"))
}

// TestCheckExternalDocs requires an absolute url
func TestCheckExternalDocs(t *testing.T) {
	testCases := []struct {
		name         string
		docs         string
		wantContains string
	}{
		{
			name:         "missing url",
			docs:         "description: docs without url",
			wantContains: "External documentation must have a url",
		},
		{
			name:         "invalid url",
			docs:         "url: not-a-url",
			wantContains: "Invalid URL format: not-a-url",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := fmt.Sprintf(`
asyncapi: 3.0.0
info:
  title: Docs
  version: 1.0.0
channels:
  orders:
    address: orders
    externalDocs:
      %s
`, tc.docs)
			parsed := parseYAML(t, content)
			v := New()
			result, err := v.ValidateParsed(parsed)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			assert.True(t, hasFinding(result.Errors, "channels.orders.externalDocs.url", tc.wantContains))
		})
	}
}

// TestCheckBindings warns on protocols outside the bindings catalog
func TestCheckBindings(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Bindings
  version: 1.0.0
channels:
  events:
    address: events
    bindings:
      kafka:
        topic: events
      carrierpigeon:
        coop: north
`)

	v := New()
	result, err := v.ValidateParsed(parsed)
	require.NoError(t, err)

	assert.True(t, result.Valid, "unknown binding protocols are warnings")
	require.Equal(t, 1, result.WarningCount)
	warning := result.Warnings[0]
	assert.Equal(t, "channels.events.bindings.carrierpigeon", warning.Path)
	assert.Equal(t, "Binding protocol 'carrierpigeon' is not in the AsyncAPI bindings catalog", warning.Message)
}
