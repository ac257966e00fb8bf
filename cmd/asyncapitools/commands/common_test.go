package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncapitools/parser"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"empty", "", true},
		{"unknown", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "asyncapi.yaml", FormatSpecPath("asyncapi.yaml"))
}

func TestMarshalDocument(t *testing.T) {
	doc := map[string]any{"asyncapi": "3.0.0"}

	t.Run("json", func(t *testing.T) {
		data, err := MarshalDocument(doc, parser.SourceFormatJSON)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"asyncapi": "3.0.0"`)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := MarshalDocument(doc, parser.SourceFormatYAML)
		require.NoError(t, err)
		assert.Contains(t, string(data), "asyncapi: 3.0.0")
	})
}

func TestOutputStructured_InvalidFormat(t *testing.T) {
	err := OutputStructured(map[string]any{}, FormatText)
	assert.Error(t, err)
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(input, []byte("asyncapi: 3.0.0\n"), 0600))

	t.Run("output overwrites input", func(t *testing.T) {
		err := ValidateOutputPath(input, []string{input})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("distinct output is fine", func(t *testing.T) {
		err := ValidateOutputPath(filepath.Join(dir, "out.yaml"), []string{input})
		assert.NoError(t, err)
	})
}

func TestRejectSymlinkOutput(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is fine", func(t *testing.T) {
		assert.NoError(t, RejectSymlinkOutput(filepath.Join(dir, "new.yaml")))
	})

	t.Run("regular file is fine", func(t *testing.T) {
		path := filepath.Join(dir, "plain.yaml")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
		assert.NoError(t, RejectSymlinkOutput(path))
	})

	t.Run("symlink is rejected", func(t *testing.T) {
		target := filepath.Join(dir, "target.yaml")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0600))
		link := filepath.Join(dir, "link.yaml")
		require.NoError(t, os.Symlink(target, link))

		err := RejectSymlinkOutput(link)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "refusing to write to symlink")
	})
}

func TestParseInput_File(t *testing.T) {
	result, err := parseInput("../../../testdata/order-service.yaml")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", result.Version)
}

func TestParseInput_MissingFile(t *testing.T) {
	_, err := parseInput("does-not-exist.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing file")
}
