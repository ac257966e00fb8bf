package validator

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
)

// TestValidateWithOptionsFilePath validates from a file path
func TestValidateWithOptionsFilePath(t *testing.T) {
	result, err := ValidateWithOptions(WithFilePath("../testdata/order-service.yaml"))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "../testdata/order-service.yaml", result.SourcePath)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
}

// TestValidateWithOptionsParsed validates an already-parsed document
func TestValidateWithOptionsParsed(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Parsed Input
  version: 1.0.0
`)

	result, err := ValidateWithOptions(WithParsed(parsed))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

// TestValidateWithOptionsDocument wraps an in-memory document
func TestValidateWithOptionsDocument(t *testing.T) {
	doc := &parser.AsyncAPIDocument{
		AsyncAPI: "3.0.0",
		Info: &parser.Info{
			Title:   "In Memory",
			Version: "1.0.0",
		},
	}

	result, err := ValidateWithOptions(WithDocument(doc))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "3.0.0", result.Version)
	assert.Equal(t, parser.AsyncAPIVersion300, result.AsyncAPIVersion)
	assert.Empty(t, result.SourcePath)
}

// TestValidateWithOptionsNilDocument rejects a nil document
func TestValidateWithOptionsNilDocument(t *testing.T) {
	_, err := ValidateWithOptions(WithDocument(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document cannot be nil")
}

// TestValidateWithOptionsNoSource requires an input source
func TestValidateWithOptionsNoSource(t *testing.T) {
	_, err := ValidateWithOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source (use WithFilePath or WithParsed)")
}

// TestValidateWithOptionsMultipleSources rejects more than one input source
func TestValidateWithOptionsMultipleSources(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Extra Source
  version: 1.0.0
`)

	_, err := ValidateWithOptions(
		WithFilePath("../testdata/minimal.yaml"),
		WithParsed(parsed),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify exactly one input source")
}

// TestValidateWithOptionsNilRule rejects a nil rule
func TestValidateWithOptionsNilRule(t *testing.T) {
	_, err := ValidateWithOptions(
		WithFilePath("../testdata/minimal.yaml"),
		WithRule(nil),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule cannot be nil")
}

// TestValidateWithOptionsWarningsDisabled drops warnings when disabled
func TestValidateWithOptionsWarningsDisabled(t *testing.T) {
	doc := `
asyncapi: 3.0.0
info:
  title: Warnings
  version: 1.0.0
channels:
  events:
    address: events
    messages:
      imported:
        $ref: './shared/messages.yaml#/Imported'
`

	parsed := parseYAML(t, doc)
	withWarnings, err := ValidateWithOptions(WithParsed(parsed))
	require.NoError(t, err)
	assert.True(t, withWarnings.Valid)
	assert.Equal(t, 1, withWarnings.WarningCount)

	parsed = parseYAML(t, doc)
	noWarnings, err := ValidateWithOptions(WithParsed(parsed), WithIncludeWarnings(false))
	require.NoError(t, err)
	assert.True(t, noWarnings.Valid)
	assert.Equal(t, 0, noWarnings.WarningCount)
}

// TestValidateWithOptionsFailFast stops at the first error
func TestValidateWithOptionsFailFast(t *testing.T) {
	result, err := ValidateWithOptions(
		WithFilePath("../testdata/unresolved-refs.yaml"),
		WithFailFast(true),
	)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.ErrorCount)
}

// TestValidateWithOptionsValidateStructure controls the parser's early
// structure checks for file inputs
func TestValidateWithOptionsValidateStructure(t *testing.T) {
	content := `
asyncapi: 3.0.0
info:
  title: Structure Flag
`
	tmpDir := t.TempDir()
	tmpfile := filepath.Join(tmpDir, "no-version.yaml")
	require.NoError(t, os.WriteFile(tmpfile, []byte(content), 0600))

	strict, err := ValidateWithOptions(WithFilePath(tmpfile))
	require.NoError(t, err)
	assert.False(t, strict.Valid)
	assert.True(t, hasFinding(strict.Errors, "info.version", "missing required field 'version'"),
		"structure finding should carry over from the parser")
	assert.True(t, hasFinding(strict.Errors, "info.version", "Info object must have a version"))

	relaxed, err := ValidateWithOptions(WithFilePath(tmpfile), WithValidateStructure(false))
	require.NoError(t, err)
	assert.False(t, relaxed.Valid)
	assert.Equal(t, 1, relaxed.ErrorCount)
	assert.Equal(t, "Info object must have a version", relaxed.Errors[0].Message)
}

// TestValidateWithOptionsCustomRule appends rules after the builtin set
func TestValidateWithOptionsCustomRule(t *testing.T) {
	parsed := parseYAML(t, `
asyncapi: 3.0.0
info:
  title: Custom Rule
  version: 1.0.0
`)

	rule := namedRule{
		name: "naming",
		apply: func(ctx *Context) error {
			ctx.AddWarning("info.title", "Titles should mention the owning team")
			return nil
		},
	}

	result, err := ValidateWithOptions(WithParsed(parsed), WithRule(rule))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	require.Equal(t, 1, result.WarningCount)
	assert.Equal(t, "Titles should mention the owning team", result.Warnings[0].Message)
}

// TestValidateWithOptionsLogger wires a structured logger through the run
func TestValidateWithOptionsLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	result, err := ValidateWithOptions(
		WithFilePath("../testdata/minimal.yaml"),
		WithLogger(parser.NewSlogAdapter(slog.New(handler))),
	)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Contains(t, buf.String(), "running validation rule")
	assert.Contains(t, buf.String(), "validation complete")
}
