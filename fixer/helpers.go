package fixer

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/parser"
)

// copyDocument deep-copies a document by round-tripping it through the
// YAML codec, so the fixer never mutates the caller's parse result. The
// version enum is rebuilt afterwards because it does not serialize.
func copyDocument(doc *parser.AsyncAPIDocument) (*parser.AsyncAPIDocument, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot copy nil document")
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	cp := &parser.AsyncAPIDocument{}
	if err := yaml.Unmarshal(data, cp); err != nil {
		return nil, err
	}
	cp.Version = doc.Version
	return cp, nil
}

// sameDefinition reports whether two document nodes serialize to the same
// YAML. Serialized comparison covers nested maps, slices, and extension
// fields, which struct equality cannot.
func sameDefinition(a, b any) bool {
	da, errA := yaml.Marshal(a)
	db, errB := yaml.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(da, db)
}

// ensureComponents returns the document's components object, creating it
// when absent.
func ensureComponents(doc *parser.AsyncAPIDocument) *parser.Components {
	if doc.Components == nil {
		doc.Components = &parser.Components{}
	}
	return doc.Components
}
