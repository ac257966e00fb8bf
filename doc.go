// Package asyncapitools provides tools for working with AsyncAPI specification documents.
//
// asyncapitools offers packages for parsing, validating, normalizing, building, and
// generating code from AsyncAPI 3.0 documents.
//
// # Overview
//
// The library consists of the following primary packages:
//
//   - parser: Parse AsyncAPI documents and resolve internal references
//   - validator: Validate documents, including every $ref and patterned key
//   - walker: Traverse the document graph with typed handlers
//   - builder: Construct AsyncAPI documents programmatically
//   - fixer: Normalize documents (hoist inline objects into components)
//   - generator: Generate Go types from message payload schemas
//
// The supported specification version is AsyncAPI 3.0:
// https://www.asyncapi.com/docs/reference/specification/v3.0.0
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/asyncapitools
//
// # Quick Start
//
// Parse an AsyncAPI document:
//
//	import "github.com/erraggy/asyncapitools/parser"
//
//	p := parser.New()
//	result, err := p.Parse("asyncapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Version: %s\n", result.Version)
//
// Validate an AsyncAPI document:
//
//	import "github.com/erraggy/asyncapitools/validator"
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("asyncapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		fmt.Printf("Found %d errors\n", result.ErrorCount)
//	}
//
// Build a document from scratch:
//
//	import "github.com/erraggy/asyncapitools/builder"
//
//	doc, err := builder.New("Orders API", "1.0.0").
//		AddServer("production", &parser.Server{Host: "kafka.example.com", Protocol: "kafka"}).
//		AddChannel("orders", &parser.Channel{Address: "orders.v1"}).
//		Build()
//
// # Parser Package
//
// The parser package decodes AsyncAPI documents from YAML or JSON, detects the
// source format and specification version, models every map with
// specification-patterned keys as an order-preserving container, and resolves
// internal JSON-pointer references (including chained references, with cycle
// detection).
//
// # Validator Package
//
// The validator package checks a parsed document against the AsyncAPI 3.0
// rules this library enforces: patterned object keys, specification extension
// names, required fields, and - most importantly - that every internal $ref
// points at an existing object of the expected kind, either under
// components.* or in a root collection. External references are reported as
// warnings and otherwise skipped. Results aggregate all findings; use
// WithFailFast to abort on the first error instead.
//
// # Errors
//
// All packages report failures using the structured error types in the
// aaserrors package, which support errors.Is and errors.As:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("asyncapi.yaml"))
//	if err != nil {
//		var refErr *aaserrors.ReferenceError
//		if errors.As(err, &refErr) && refErr.IsCircular {
//			// handle circular reference
//		}
//	}
//
// # MCP Server
//
// The asyncapitools CLI can run as a Model Context Protocol server
// (asyncapitools mcp), exposing validate, stats, and reference-resolution
// tools to MCP clients.
package asyncapitools
