package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero bytes", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024, "1.0 KiB"},
		{"kilobytes decimal", 1536, "1.5 KiB"},
		{"megabytes", 1048576, "1.0 MiB"},
		{"megabytes decimal", 5242880, "5.0 MiB"},
		{"gigabytes", 1073741824, "1.0 GiB"},
		{"terabytes", 1099511627776, "1.0 TiB"},
		{"petabytes", 1125899906842624, "1.0 PiB"},
		{"exabytes", 1152921504606846976, "1.0 EiB"},
		{"negative bytes", -1024, "-1024 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestDetectFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected SourceFormat
	}{
		{"api.json", SourceFormatJSON},
		{"api.yaml", SourceFormatYAML},
		{"api.yml", SourceFormatYAML},
		{"dir/nested/api.yaml", SourceFormatYAML},
		{"api.txt", SourceFormatUnknown},
		{"api", SourceFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectFormatFromPath(tt.path))
		})
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected SourceFormat
	}{
		{
			name:     "JSON object",
			input:    []byte(`{"asyncapi": "3.0.0"}`),
			expected: SourceFormatJSON,
		},
		{
			name:     "JSON with leading whitespace",
			input:    []byte("  \n\t  {\"asyncapi\": \"3.0.0\"}"),
			expected: SourceFormatJSON,
		},
		{
			name:     "YAML content",
			input:    []byte("asyncapi: 3.0.0\ninfo:\n  title: Test"),
			expected: SourceFormatYAML,
		},
		{
			name:     "YAML with leading whitespace",
			input:    []byte("  \n  asyncapi: 3.0.0"),
			expected: SourceFormatYAML,
		},
		{
			name:     "empty content",
			input:    []byte(""),
			expected: SourceFormatUnknown,
		},
		{
			name:     "only whitespace",
			input:    []byte("   \n\t  \r\n  "),
			expected: SourceFormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectFormatFromContent(tt.input))
		})
	}
}

func TestSniffVersion(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   SourceFormat
		expected string
		wantErr  string
	}{
		{
			name:     "JSON document",
			data:     `{"asyncapi": "3.0.0", "info": {}}`,
			format:   SourceFormatJSON,
			expected: "3.0.0",
		},
		{
			name:    "JSON malformed",
			data:    `{"asyncapi": `,
			format:  SourceFormatJSON,
			wantErr: "invalid JSON",
		},
		{
			name:    "JSON missing field",
			data:    `{"info": {}}`,
			format:  SourceFormatJSON,
			wantErr: "missing required field 'asyncapi'",
		},
		{
			name:    "JSON non-string field",
			data:    `{"asyncapi": 3}`,
			format:  SourceFormatJSON,
			wantErr: "field 'asyncapi' must be a string",
		},
		{
			name:     "YAML document",
			data:     "asyncapi: 3.0.0\ninfo:\n  title: Test",
			format:   SourceFormatYAML,
			expected: "3.0.0",
		},
		{
			name:     "YAML quoted version",
			data:     `asyncapi: "3.0.0"`,
			format:   SourceFormatYAML,
			expected: "3.0.0",
		},
		{
			name:    "YAML malformed",
			data:    "asyncapi: [unclosed",
			format:  SourceFormatYAML,
			wantErr: "invalid YAML",
		},
		{
			name:    "YAML missing field",
			data:    "info:\n  title: Test",
			format:  SourceFormatYAML,
			wantErr: "missing required field 'asyncapi'",
		},
		{
			name:    "YAML null field",
			data:    "asyncapi:\ninfo: {}",
			format:  SourceFormatYAML,
			wantErr: "missing required field 'asyncapi'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := sniffVersion([]byte(tt.data), tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, version)
		})
	}
}
