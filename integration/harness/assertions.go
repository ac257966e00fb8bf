//go:build integration

package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/asyncapitools/parser"
)

// AssertAsyncAPIVersion checks that the parse result detected the expected
// specification version.
func AssertAsyncAPIVersion(t *testing.T, result *parser.ParseResult, expected parser.AsyncAPIVersion) {
	t.Helper()
	assert.Equal(t, expected, result.AsyncAPIVersion,
		"expected AsyncAPI version %s, got %s", expected, result.AsyncAPIVersion)
}

// AssertNoParseErrors checks that parsing produced no findings.
func AssertNoParseErrors(t *testing.T, result *parser.ParseResult) {
	t.Helper()
	assert.Empty(t, result.Errors, "expected no parse errors")
}

// AssertDocumentStats checks the headline counts of a parsed document.
func AssertDocumentStats(t *testing.T, result *parser.ParseResult, channels, operations, messages int) {
	t.Helper()
	assert.Equal(t, channels, result.Stats.ChannelCount, "channel count")
	assert.Equal(t, operations, result.Stats.OperationCount, "operation count")
	assert.Equal(t, messages, result.Stats.MessageCount, "message count")
}
