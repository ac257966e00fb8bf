// Package fixer normalizes AsyncAPI 3.0 documents into the
// components-first layout: inline definitions move under components and
// their original locations become references. The fixer preserves the
// input file format (JSON or YAML) in the FixResult.SourceFormat field,
// allowing tools to maintain format consistency when writing output.
//
// # Quick Start
//
// Normalize a file using functional options:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("asyncapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//
// Or use a reusable Fixer instance:
//
//	f := fixer.New()
//	result1, _ := f.Fix("orders.yaml")
//	result2, _ := f.Fix("payments.yaml")
//
// # Supported Fixes
//
//   - Componentize servers: inline root servers move to
//     components.servers and the root entries become
//     "#/components/servers/{key}" references. A root server whose key
//     already names a different components server is a conflict and
//     fails the run.
//
//   - Componentize messages: inline channel messages (root channels and
//     components.channels) move to components.messages and the channel
//     entries become references. When a message key already names a
//     different components message, the hoisted copy is stored under
//     "{channelKey}-{messageKey}" instead.
//
//   - Componentize tags: tags on the info object, root collections,
//     and components entries are hoisted to components.tags keyed by a
//     sanitized tag name, duplicates within one list are dropped, and
//     same-name tags with differing content reuse the first definition
//     with a warning.
//
// # Idempotency
//
// Every fix skips entries that are already references, so running the
// fixer over its own output changes nothing.
//
// # Related Packages
//
// The fixer integrates with the rest of the toolkit:
//   - [github.com/erraggy/asyncapitools/parser] - Parse documents before fixing
//   - [github.com/erraggy/asyncapitools/validator] - Validate the normalized output
package fixer
