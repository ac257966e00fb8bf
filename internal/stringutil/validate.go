package stringutil

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail checks if s is a valid email address.
// Consecutive dots are rejected even though the character class allows
// single dots anywhere.
func IsValidEmail(s string) bool {
	if strings.Contains(s, "..") {
		return false
	}
	return emailRegex.MatchString(s)
}

// IsValidURI performs a light-weight shape check for the URI-formatted
// fields of an AsyncAPI document (id, externalDocs.url, server hosts are
// checked elsewhere). It requires a scheme followed by ':' and at least
// one more character.
func IsValidURI(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return false
	}
	// Scheme: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	for pos, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case pos > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
