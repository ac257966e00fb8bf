// This file implements the types.go emitter: one Go type per component
// schema plus one per inline component message payload.

package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/internal/maputil"
	"github.com/erraggy/asyncapitools/internal/schemautil"
	"github.com/erraggy/asyncapitools/parser"
)

// typeGenerator renders Go payload types for a single document
type typeGenerator struct {
	g      *Generator
	doc    *parser.AsyncAPIDocument
	result *GenerateResult
	// schemaNames maps component schema refs to generated type names
	schemaNames map[string]string
	// usedNames guards against distinct document keys colliding on the
	// same Go identifier (e.g. "order-placed" and "orderPlaced")
	usedNames map[string]string
}

// schemaEntry holds one type to generate and where it came from
type schemaEntry struct {
	// name is the Go type name
	name string
	// key is the document key the type was derived from
	key string
	// origin is the document path, used in issues
	// (e.g. "components.schemas.order")
	origin string
	schema *parser.Schema
}

func newTypeGenerator(g *Generator, doc *parser.AsyncAPIDocument, result *GenerateResult) *typeGenerator {
	return &typeGenerator{
		g:           g,
		doc:         doc,
		result:      result,
		schemaNames: make(map[string]string),
		usedNames:   make(map[string]string),
	}
}

// generateTypes renders the types.go file from component schemas and
// inline message payloads
func (tg *typeGenerator) generateTypes() error {
	entries := tg.collectEntries()
	if len(entries) == 0 {
		tg.addIssue("components", "document has no component schemas or inline message payloads; nothing to generate", SeverityInfo)
		return nil
	}

	src := tg.renderTypesFile(entries)

	formatted, err := formatAndFixImports("types.go", src)
	if err != nil {
		// Keep the unformatted source so the problem is inspectable.
		tg.addIssue("types.go", fmt.Sprintf("failed to format generated code: %v", err), SeverityWarning)
		formatted = src
	}

	tg.result.Files = append(tg.result.Files, GeneratedFile{
		Name:    "types.go",
		Content: formatted,
	})

	return nil
}

// collectEntries gathers the schemas to generate in document order:
// component schemas first, then inline payloads of component messages.
func (tg *typeGenerator) collectEntries() []schemaEntry {
	comps := tg.doc.Components
	if comps == nil {
		return nil
	}

	var entries []schemaEntry

	for _, key := range comps.Schemas.Keys() {
		schema, ok := comps.Schemas.Get(key)
		if !ok || schema == nil {
			continue
		}
		origin := "components.schemas." + key
		name := tg.claimName(toTypeName(key), origin)
		if name == "" {
			continue
		}
		tg.schemaNames[parser.ComponentSchemaRef(key)] = name
		entries = append(entries, schemaEntry{name: name, key: key, origin: origin, schema: schema})
	}

	for _, key := range comps.Messages.Keys() {
		msg, ok := comps.Messages.Get(key)
		if !ok || msg == nil || msg.Ref != "" || msg.Payload == nil {
			continue
		}
		payload := msg.Payload
		origin := "components.messages." + key + ".payload"
		if payload.Ref != "" {
			// The payload reuses a named schema type.
			continue
		}
		if payload.IsMultiFormat() {
			tg.addIssue(origin, fmt.Sprintf("payload uses schemaFormat %q and cannot be expressed as a Go type; skipped", payload.SchemaFormat), SeverityWarning)
			continue
		}
		name := tg.claimName(toTypeName(key)+"Payload", origin)
		if name == "" {
			continue
		}
		entries = append(entries, schemaEntry{name: name, key: key, origin: origin, schema: payload})
	}

	return entries
}

// claimName records a generated type name, reporting a warning when two
// document keys map onto the same Go identifier.
func (tg *typeGenerator) claimName(name, origin string) string {
	if prev, taken := tg.usedNames[name]; taken {
		tg.addIssue(origin, fmt.Sprintf("type name %s already generated from %s; skipping", name, prev), SeverityWarning)
		return ""
	}
	tg.usedNames[name] = origin
	return name
}

// renderTypesFile writes the full source for types.go
func (tg *typeGenerator) renderTypesFile(entries []schemaEntry) []byte {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by asyncapitools. DO NOT EDIT.\n")
	if tg.doc.Info != nil && tg.doc.Info.Title != "" {
		fmt.Fprintf(&buf, "//\n// Source: %s %s\n", tg.doc.Info.Title, tg.doc.Info.Version)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "package %s\n\n", tg.result.PackageName)

	needsTime := false
	for _, entry := range entries {
		if needsTimeImport(entry.schema) {
			needsTime = true
			break
		}
	}
	if needsTime {
		buf.WriteString("import \"time\"\n\n")
	}

	for _, entry := range entries {
		tg.writeTypeDefinition(&buf, entry)
	}

	return buf.Bytes()
}

// writeTypeDefinition emits one Go type for a schema entry
func (tg *typeGenerator) writeTypeDefinition(buf *bytes.Buffer, entry schemaEntry) {
	schema := entry.schema

	if schema.IsMultiFormat() {
		tg.addIssue(entry.origin, fmt.Sprintf("schema uses schemaFormat %q and cannot be expressed as a Go type; skipped", schema.SchemaFormat), SeverityWarning)
		return
	}

	// A $ref at the type level becomes an alias for the referenced type.
	if schema.Ref != "" {
		refType := tg.resolveRef(schema.Ref)
		tg.writeAlias(buf, entry.name, refType, fmt.Sprintf("%s is an alias for %s.", entry.name, refType))
		tg.result.GeneratedTypes++
		return
	}

	switch getSchemaType(schema) {
	case "object":
		tg.writeStruct(buf, entry)
	case "array":
		tg.writeArrayType(buf, entry)
	case "string":
		if len(schema.Enum) > 0 {
			tg.writeEnum(buf, entry)
		} else {
			tg.writeScalarAlias(buf, entry, stringFormatToGoType(schema.Format))
		}
	case "integer":
		tg.writeScalarAlias(buf, entry, integerFormatToGoType(schema.Format))
	case "number":
		tg.writeScalarAlias(buf, entry, numberFormatToGoType(schema.Format))
	case "boolean":
		tg.writeScalarAlias(buf, entry, "bool")
	default:
		switch {
		case len(schema.AllOf) > 0:
			tg.writeAllOf(buf, entry)
		case len(schema.OneOf) > 0 || len(schema.AnyOf) > 0:
			tg.addIssue(entry.origin, "oneOf/anyOf composition flattened to any", SeverityInfo)
			tg.writeAlias(buf, entry.name, "any", fmt.Sprintf("%s accepts any of several schema variants.", entry.name))
		default:
			tg.writeAlias(buf, entry.name, "any", fmt.Sprintf("%s is an unconstrained schema.", entry.name))
		}
	}

	tg.result.GeneratedTypes++
}

// writeStruct emits a struct type from an object schema
func (tg *typeGenerator) writeStruct(buf *bytes.Buffer, entry schemaEntry) {
	schema := entry.schema

	// An object with no declared properties and typed additionalProperties
	// is a map type.
	if len(schema.Properties) == 0 && schema.AdditionalProperties != nil {
		target := "map[string]" + tg.additionalPropertiesType(schema)
		tg.writeComment(buf, entry.name, schema.Description, fmt.Sprintf("%s is generated from the %s definition.", entry.name, entry.origin))
		fmt.Fprintf(buf, "type %s %s\n\n", entry.name, target)
		return
	}

	tg.writeComment(buf, entry.name, schema.Description, fmt.Sprintf("%s is generated from the %s definition.", entry.name, entry.origin))
	fmt.Fprintf(buf, "type %s struct {\n", entry.name)

	usedFieldNames := make(map[string]int)
	tg.writeStructFields(buf, entry, schema, usedFieldNames)

	buf.WriteString("}\n\n")

	if len(schema.Properties) > 0 && allowsAdditionalProperties(schema) {
		tg.addIssue(entry.origin, "additionalProperties are not represented on generated struct types", SeverityInfo)
	}
}

// writeStructFields emits one field per property, sorted by property name.
// The usedFieldNames map is shared across allOf members so merged fields
// stay unique.
func (tg *typeGenerator) writeStructFields(buf *bytes.Buffer, entry schemaEntry, schema *parser.Schema, usedFieldNames map[string]int) {
	for _, propName := range maputil.SortedKeys(schema.Properties) {
		propSchema := schema.Properties[propName]
		if propSchema == nil {
			continue
		}

		required := isRequired(schema.Required, propName)
		goType := tg.schemaToGoType(propSchema)

		// Recursive types need pointer indirection.
		if isSelfReference(propSchema, entry.name) &&
			!strings.HasPrefix(goType, "*") &&
			!strings.HasPrefix(goType, "[]") {
			goType = "*" + goType
		}

		if propSchema.Ref == "" && getSchemaType(propSchema) == "object" && len(propSchema.Properties) > 0 {
			tg.addIssue(fmt.Sprintf("%s.properties.%s", entry.origin, propName),
				"inline object flattened to map[string]any; hoist it to components.schemas for a named type", SeverityInfo)
		}

		// Distinct property names can collide on the same Go field
		// (e.g. @id and id both become Id).
		fieldName := toFieldName(propName)
		baseName := fieldName
		if count, exists := usedFieldNames[baseName]; exists {
			fieldName = fmt.Sprintf("%s%d", baseName, count+1)
		}
		usedFieldNames[baseName]++

		if propSchema.Description != "" {
			fmt.Fprintf(buf, "\t// %s\n", cleanDescription(propSchema.Description))
		}
		if tags := tg.fieldTags(propName, required); tags != "" {
			fmt.Fprintf(buf, "\t%s %s %s\n", fieldName, goType, tags)
		} else {
			fmt.Fprintf(buf, "\t%s %s\n", fieldName, goType)
		}
	}
}

// writeAllOf emits a struct that embeds referenced members and merges the
// properties of inline members
func (tg *typeGenerator) writeAllOf(buf *bytes.Buffer, entry schemaEntry) {
	schema := entry.schema

	tg.writeComment(buf, entry.name, schema.Description, fmt.Sprintf("%s combines multiple schemas.", entry.name))
	fmt.Fprintf(buf, "type %s struct {\n", entry.name)

	usedFieldNames := make(map[string]int)
	for _, sub := range schema.AllOf {
		if sub == nil {
			continue
		}
		if sub.Ref != "" {
			name := tg.resolveRef(sub.Ref)
			if usedFieldNames[name] == 0 {
				fmt.Fprintf(buf, "\t%s\n", name)
			}
			usedFieldNames[name]++
			continue
		}
		tg.writeStructFields(buf, entry, sub, usedFieldNames)
	}

	buf.WriteString("}\n\n")
}

// writeEnum emits a defined string type plus one constant per enum value
func (tg *typeGenerator) writeEnum(buf *bytes.Buffer, entry schemaEntry) {
	schema := entry.schema

	tg.writeComment(buf, entry.name, schema.Description, fmt.Sprintf("%s enumerates the allowed values for %s.", entry.name, entry.key))
	fmt.Fprintf(buf, "type %s string\n\n", entry.name)

	buf.WriteString("const (\n")
	usedConstNames := make(map[string]int)
	for _, e := range schema.Enum {
		val := fmt.Sprintf("%v", e)
		constName := entry.name + toConstName(val)
		baseName := constName
		if count, exists := usedConstNames[baseName]; exists {
			constName = fmt.Sprintf("%s%d", baseName, count+1)
		}
		usedConstNames[baseName]++
		fmt.Fprintf(buf, "\t%s %s = %q\n", constName, entry.name, val)
	}
	buf.WriteString(")\n\n")
}

// writeArrayType emits a defined slice type
func (tg *typeGenerator) writeArrayType(buf *bytes.Buffer, entry schemaEntry) {
	target := "[]" + tg.arrayItemType(entry.schema)
	tg.writeComment(buf, entry.name, entry.schema.Description, fmt.Sprintf("%s is generated from the %s definition.", entry.name, entry.origin))
	fmt.Fprintf(buf, "type %s %s\n\n", entry.name, target)
}

// writeScalarAlias emits a type alias for a primitive schema
func (tg *typeGenerator) writeScalarAlias(buf *bytes.Buffer, entry schemaEntry, target string) {
	tg.writeComment(buf, entry.name, entry.schema.Description, fmt.Sprintf("%s is generated from the %s definition.", entry.name, entry.origin))
	fmt.Fprintf(buf, "type %s = %s\n\n", entry.name, target)
}

// writeAlias emits a type alias with the given comment
func (tg *typeGenerator) writeAlias(buf *bytes.Buffer, name, target, comment string) {
	fmt.Fprintf(buf, "// %s\n", comment)
	fmt.Fprintf(buf, "type %s = %s\n\n", name, target)
}

// writeComment writes the doc comment for a generated type, preferring the
// schema description over the fallback.
func (tg *typeGenerator) writeComment(buf *bytes.Buffer, typeName, description, fallback string) {
	text := fallback
	if description != "" {
		text = typeName + " " + cleanDescription(description)
	}
	fmt.Fprintf(buf, "// %s\n", text)
}

// schemaToGoType converts a schema in field position to a Go type string
func (tg *typeGenerator) schemaToGoType(schema *parser.Schema) string {
	if schema == nil {
		return "any"
	}

	if schema.Ref != "" {
		return tg.resolveRef(schema.Ref)
	}

	var goType string
	switch getSchemaType(schema) {
	case "string":
		goType = stringFormatToGoType(schema.Format)
	case "integer":
		goType = integerFormatToGoType(schema.Format)
	case "number":
		goType = numberFormatToGoType(schema.Format)
	case "boolean":
		goType = "bool"
	case "array":
		goType = "[]" + tg.arrayItemType(schema)
	case "object":
		if len(schema.Properties) == 0 && schema.AdditionalProperties != nil {
			goType = "map[string]" + tg.additionalPropertiesType(schema)
		} else {
			goType = "map[string]any"
		}
	default:
		goType = "any"
	}

	// A type array admitting null needs a pointer so null survives decoding.
	if schemautil.IsNullable(schema) &&
		goType != "any" &&
		!strings.HasPrefix(goType, "*") &&
		!strings.HasPrefix(goType, "[]") &&
		!strings.HasPrefix(goType, "map") {
		return "*" + goType
	}

	return goType
}

// arrayItemType extracts the Go type for array items, handling $ref properly
func (tg *typeGenerator) arrayItemType(schema *parser.Schema) string {
	switch items := schema.Items.(type) {
	case *parser.Schema:
		return tg.schemaToGoType(items)
	case []*parser.Schema:
		// Tuple form has per-position types.
		return "any"
	case map[string]any:
		if ref, ok := items["$ref"].(string); ok {
			return tg.resolveRef(ref)
		}
		return schemaTypeFromMap(items)
	}
	return "any"
}

// additionalPropertiesType extracts the Go type for additionalProperties
func (tg *typeGenerator) additionalPropertiesType(schema *parser.Schema) string {
	switch addProps := schema.AdditionalProperties.(type) {
	case *parser.Schema:
		return tg.schemaToGoType(addProps)
	case map[string]any:
		return schemaTypeFromMap(addProps)
	case bool:
		if addProps {
			return "any"
		}
	}
	return "any"
}

// allowsAdditionalProperties reports whether the schema admits properties
// beyond those declared.
func allowsAdditionalProperties(schema *parser.Schema) bool {
	switch v := schema.AdditionalProperties.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

// resolveRef resolves a $ref to a Go type name
func (tg *typeGenerator) resolveRef(ref string) string {
	if typeName, ok := tg.schemaNames[ref]; ok {
		return typeName
	}
	// Extract name from ref path
	parts := strings.Split(ref, "/")
	if len(parts) > 0 {
		return toTypeName(parts[len(parts)-1])
	}
	return "any"
}

// fieldTags builds the struct tag literal for a field, honoring the
// generator's tag options. Optional fields get omitempty.
func (tg *typeGenerator) fieldTags(propName string, required bool) string {
	value := propName
	if !required {
		value += ",omitempty"
	}

	var tags []string
	if tg.g.JSONTags {
		tags = append(tags, fmt.Sprintf("json:%q", value))
	}
	if tg.g.YAMLTags {
		tags = append(tags, fmt.Sprintf("yaml:%q", value))
	}
	if len(tags) == 0 {
		return ""
	}
	return "`" + strings.Join(tags, " ") + "`"
}

// addIssue adds a generation issue
func (tg *typeGenerator) addIssue(path, message string, sev Severity) {
	tg.result.Issues = append(tg.result.Issues, GenerateIssue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}
