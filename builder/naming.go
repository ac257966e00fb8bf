package builder

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes the first letter of each word without lowering
// the rest, so camelCase segments keep their interior capitals.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Identifier derives a PascalCase identifier from a channel address or
// collection key. Separator characters and parameter braces split words:
//
//	Identifier("user/signedup")             // "UserSignedup"
//	Identifier("orders.{orderId}.events")   // "OrdersOrderIdEvents"
//	Identifier("payment_authorized")        // "PaymentAuthorized"
func Identifier(s string) string {
	words := strings.FieldsFunc(s, isWordSeparator)
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(titleCaser.String(w))
	}
	return sb.String()
}

// OperationKey derives a camelCase operation key from an action and a
// channel address:
//
//	OperationKey(parser.ActionSend, "user/signedup") // "sendUserSignedup"
func OperationKey(action, address string) string {
	id := Identifier(address)
	if action == "" {
		return id
	}
	return strings.ToLower(action) + id
}

// isWordSeparator reports whether r separates words in channel addresses
// and keys. Braces count so address parameter expressions ("{orderId}")
// contribute their name as a word.
func isWordSeparator(r rune) bool {
	switch r {
	case '/', '.', '-', '_', '{', '}', ':', ' ':
		return true
	}
	return false
}
