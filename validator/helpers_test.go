package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDottedPath tests JSON path to document path conversion
func TestDottedPath(t *testing.T) {
	testCases := []struct {
		name     string
		jsonPath string
		want     string
	}{
		{name: "root", jsonPath: "$", want: ""},
		{name: "plain field", jsonPath: "$.info", want: "info"},
		{name: "single key", jsonPath: "$.channels['orders']", want: "channels.orders"},
		{name: "nested keys", jsonPath: "$.channels['orders'].messages['created']", want: "channels.orders.messages.created"},
		{name: "key then fields", jsonPath: "$.operations['op'].reply.channel", want: "operations.op.reply.channel"},
		{name: "array index preserved", jsonPath: "$.channels['orders'].servers[0]", want: "channels.orders.servers[0]"},
		{name: "tag index", jsonPath: "$.components.messages['audit'].tags[1]", want: "components.messages.audit.tags[1]"},
		{name: "component key", jsonPath: "$.components.schemas['order'].properties['status']", want: "components.schemas.order.properties.status"},
		{name: "key with separators", jsonPath: "$.channels['order-events_v2']", want: "channels.order-events_v2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dottedPath(tc.jsonPath))
		})
	}
}

// TestJoinPath tests document path joining
func TestJoinPath(t *testing.T) {
	assert.Equal(t, "info", joinPath("", "info"))
	assert.Equal(t, "info.title", joinPath("info", "title"))
	assert.Equal(t, "channels.orders.address", joinPath("channels.orders", "address"))
}

// TestSpecRef tests specification anchor URLs
func TestSpecRef(t *testing.T) {
	assert.Equal(t,
		"https://www.asyncapi.com/docs/reference/specification/v3.0.0#messageObject",
		specRef("messageObject"))
}
