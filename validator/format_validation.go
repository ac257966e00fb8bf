// Format validation helpers for the media types, URLs, email addresses,
// and runtime expressions that appear in AsyncAPI documents.

package validator

import (
	"mime"
	"net/url"
	"strings"
)

// isValidMediaType reports whether mediaType parses as an RFC 2045 media
// type with an explicit type/subtype pair. Vendor trees, suffixes, and
// parameters are accepted ("application/vnd.apache.avro+json;version=1.9.0").
func isValidMediaType(mediaType string) bool {
	if mediaType == "" {
		return false
	}
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	// mime.ParseMediaType accepts bare tokens for Content-Disposition use;
	// media types here must carry both halves.
	typePart, subPart, found := strings.Cut(parsed, "/")
	return found && typePart != "" && subPart != ""
}

// isValidURL reports whether s is an absolute URL. Relative values are
// rejected; http and https additionally require a host.
func isValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.Host != ""
	}
	return true
}

// isValidRuntimeExpression reports whether s is an AsyncAPI runtime
// expression: "$message.header" or "$message.payload", optionally followed
// by a "#/"-rooted JSON pointer fragment such as
// "$message.header#/correlationId".
func isValidRuntimeExpression(s string) bool {
	rest, ok := strings.CutPrefix(s, "$message.")
	if !ok {
		return false
	}
	source, fragment, hasFragment := strings.Cut(rest, "#")
	if source != "header" && source != "payload" {
		return false
	}
	return !hasFragment || strings.HasPrefix(fragment, "/")
}
