package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple address", "dev@example.com", true},
		{"subdomain", "dev@mail.example.com", true},
		{"plus tag", "dev+tag@example.com", true},
		{"dotted local part", "first.last@example.com", true},
		{"consecutive dots rejected", "first..last@example.com", false},
		{"missing at", "example.com", false},
		{"missing tld", "dev@example", false},
		{"empty", "", false},
		{"spaces", "dev @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email), "IsValidEmail(%q)", tt.email)
		})
	}
}

func TestIsValidURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want bool
	}{
		{"https URL", "https://example.com/docs", true},
		{"urn", "urn:example:com:smartylighting:streetlights:server", true},
		{"mailto", "mailto:dev@example.com", true},
		{"scheme with plus", "coap+tcp://host", true},
		{"no scheme", "example.com/docs", false},
		{"empty", "", false},
		{"colon only", ":", false},
		{"trailing colon", "https:", false},
		{"digit-leading scheme", "1http://x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURI(tt.uri), "IsValidURI(%q)", tt.uri)
		})
	}
}
