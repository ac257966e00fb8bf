// Package generator provides Go type generation from AsyncAPI documents.
//
// The generator creates idiomatic Go payload types from component schemas
// and message payloads. Generated code is formatted and import-fixed through
// golang.org/x/tools/imports, so output compiles without a goimports pass.
//
// # Quick Start
//
// Generate types using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("asyncapi.yaml"),
//		generator.WithPackageName("events"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./generated"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.PackageName = "events"
//	result, _ := g.Generate("asyncapi.yaml")
//	result.WriteFiles("./generated")
//
// # Generated Types
//
// One type is emitted per named schema under components.schemas, in document
// order. Component messages with inline payloads additionally produce a
// "{MessageName}Payload" struct; message payloads that are plain $refs reuse
// the referenced schema type instead.
//
// # Type Mapping
//
// JSON Schema types are mapped to Go types as follows:
//   - string → string (with format handling: date-time→time.Time, byte→[]byte)
//   - integer → int64 (int32 for format: int32)
//   - number → float64 (float32 for format: float)
//   - boolean → bool
//   - array → []T
//   - object → struct or map[string]T
//
// String schemas with an enum produce a defined string type plus one constant
// per enum value. Schemas composed with oneOf or anyOf flatten to any and
// report an informational issue. Multi-format payloads (schemaFormat set to
// Avro, Protobuf, etc.) cannot be expressed as Go types and are skipped with
// a warning.
//
// See the exported GenerateResult and GenerateIssue types for complete details.
package generator
