package validator

import (
	"strings"

	"github.com/erraggy/asyncapitools/walker"
)

// specBaseURL is the root of the AsyncAPI 3.0 specification sections
// linked from findings.
const specBaseURL = "https://www.asyncapi.com/docs/reference/specification/v3.0.0"

// specRef returns the URL of a specification section anchor.
func specRef(anchor string) string {
	return specBaseURL + "#" + anchor
}

// dottedPath converts a walker JSON path into the dotted document-path
// form used in findings: "$.operations['orderCreated'].reply.channel"
// becomes "operations.orderCreated.reply.channel". Array positions keep
// their bracket form ("servers.production.security[0]").
func dottedPath(jsonPath string) string {
	s := strings.TrimPrefix(jsonPath, "$")
	s = strings.TrimPrefix(s, ".")
	if !strings.Contains(s, "['") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '[' && i+1 < len(s) && s[i+1] == '\'' {
			end := strings.Index(s[i+2:], "']")
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s[i+2 : i+2+end])
			i += end + 4
		} else {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// joinPath appends a field to a document path.
func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// next translates the fail-fast state into a walk action so rule handlers
// can stop traversal once validation is halted.
func next(ctx *Context) walker.Action {
	if ctx.Stopped() {
		return walker.Stop
	}
	return walker.Continue
}
