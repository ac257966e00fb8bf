// Package parser provides parsing for AsyncAPI specification documents.
//
// The parser supports the AsyncAPI 3.0 series in YAML and JSON formats. It
// decodes documents into a typed model, validates patterned object keys at
// decode time, preserves unknown fields and specification extensions, and
// can retain source ordering for faithful re-serialization. Documents load
// from local files, byte slices, or io.Readers.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("asyncapi.yaml"),
//		parser.WithValidateStructure(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.HasErrors() {
//		fmt.Printf("Parse errors: %d\n", len(result.Errors))
//	}
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	result1, _ := p.Parse("orders.yaml")
//	result2, _ := p.Parse("payments.json")
//
// # Patterned Keys
//
// AsyncAPI names servers, channels, operations, and every component entry
// with user-chosen keys restricted to letters, digits, hyphens, and
// underscores. The model stores these collections as PatternedMap values,
// which enforce the key shape on every insert and during decoding. A
// document carrying a malformed key fails to parse with a
// [aaserrors.KeyFormatError]:
//
//	_, err := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	if errors.Is(err, aaserrors.ErrKeyFormat) {
//		fmt.Println("document uses an invalid collection key")
//	}
//
// # References
//
// Reference Objects are modeled, classified, and resolved on demand, never
// expanded in place. ParseRef classifies a reference string as a component
// reference (#/components/{category}/{key}), a root collection reference
// (#/servers/{key}, #/channels/{key}, #/operations/{key}), or an external
// reference. External references are never fetched; the validator reports
// them as warnings and the Resolver refuses them.
//
// Resolver follows arbitrary internal pointers through the raw document
// data, chasing chained Reference Objects with cycle detection:
//
//	res, _ := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	r := parser.NewResolver(res)
//	resolution, err := r.Resolve("#/channels/orders/messages/orderCreated")
//
// # Resource Limits
//
// The parser enforces configurable limits:
//
//   - MaxDocumentSize: Maximum input size in bytes (default: 50MB)
//   - MaxRefDepth: Maximum reference chain length for the Resolver (default: 100)
//
// Configure limits using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("asyncapi.yaml"),
//		parser.WithMaxDocumentSize(10*1024*1024),
//		parser.WithMaxRefDepth(50),
//	)
//
// # Order Preservation
//
// With PreserveOrder enabled, the parser retains the source document's
// field ordering so MarshalOrderedJSON and MarshalOrderedYAML can emit
// fields exactly as they appeared in the input:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("asyncapi.yaml"),
//		parser.WithPreserveOrder(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.MarshalOrderedYAML()
//
// # ParseResult Fields
//
// ParseResult includes the detected Version and AsyncAPIVersion, the
// SourceFormat (JSON or YAML), the typed Document, the raw Data map used
// for reference resolution, document Stats, and any structural Errors or
// Warnings. See the exported fields for complete details.
//
// # Related Packages
//
// After parsing, use these packages for additional operations:
//   - [github.com/erraggy/asyncapitools/validator] - Validate documents against AsyncAPI rules
//   - [github.com/erraggy/asyncapitools/walker] - Traverse documents with typed callbacks
//   - [github.com/erraggy/asyncapitools/fixer] - Normalize documents and fix common issues
//   - [github.com/erraggy/asyncapitools/builder] - Programmatically build documents
//   - [github.com/erraggy/asyncapitools/generator] - Generate Go code from message schemas
package parser
