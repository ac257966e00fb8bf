package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/parser"
)

// DocumentBuilder assembles an AsyncAPI 3.0 document step by step.
//
// Collection keys are validated as they are added; violations accumulate
// and surface when Build is called. The builder does not validate
// document semantics - use the validator package on the built document.
//
// Concurrency: DocumentBuilder instances are not safe for concurrent use.
// Create separate builders for concurrent construction.
type DocumentBuilder struct {
	id                 string
	info               *parser.Info
	defaultContentType string

	// Root collections
	servers    *parser.PatternedMap[*parser.Server]
	channels   *parser.PatternedMap[*parser.Channel]
	operations *parser.PatternedMap[*parser.Operation]

	// Component categories, tracked separately so Build materializes only
	// the non-empty ones
	schemas         *parser.PatternedMap[*parser.Schema]
	messages        *parser.PatternedMap[*parser.Message]
	parameters      *parser.PatternedMap[*parser.Parameter]
	securitySchemes *parser.PatternedMap[*parser.SecurityScheme]
	correlationIDs  *parser.PatternedMap[*parser.CorrelationID]

	// Accumulated errors, surfaced by Build
	errors []error
}

// New creates a DocumentBuilder for an application with the given title
// and version. The version is the application's API version, not the
// AsyncAPI specification version; built documents always declare
// AsyncAPI 3.0.0.
func New(title, version string) *DocumentBuilder {
	return &DocumentBuilder{
		info:            &parser.Info{Title: title, Version: version},
		servers:         parser.NewPatternedMap[*parser.Server](),
		channels:        parser.NewPatternedMap[*parser.Channel](),
		operations:      parser.NewPatternedMap[*parser.Operation](),
		schemas:         parser.NewPatternedMap[*parser.Schema](),
		messages:        parser.NewPatternedMap[*parser.Message](),
		parameters:      parser.NewPatternedMap[*parser.Parameter](),
		securitySchemes: parser.NewPatternedMap[*parser.SecurityScheme](),
		correlationIDs:  parser.NewPatternedMap[*parser.CorrelationID](),
		errors:          make([]error, 0),
	}
}

// FromDocument seeds a builder from an existing document so it can be
// extended and rebuilt. Root collections and the component categories the
// builder manages (schemas, messages, parameters, security schemes,
// correlation IDs) are carried over; entries share structure with the
// source document rather than being deep-copied.
func FromDocument(doc *parser.AsyncAPIDocument) *DocumentBuilder {
	b := New("", "")
	if doc == nil {
		return b
	}
	b.id = doc.ID
	if doc.Info != nil {
		b.info = doc.Info
	}
	b.defaultContentType = doc.DefaultContentType
	copyEntries(b.servers, doc.Servers)
	copyEntries(b.channels, doc.Channels)
	copyEntries(b.operations, doc.Operations)
	if doc.Components != nil {
		copyEntries(b.schemas, doc.Components.Schemas)
		copyEntries(b.messages, doc.Components.Messages)
		copyEntries(b.parameters, doc.Components.Parameters)
		copyEntries(b.securitySchemes, doc.Components.SecuritySchemes)
		copyEntries(b.correlationIDs, doc.Components.CorrelationIDs)
	}
	return b
}

// copyEntries copies src into dst in document order. Keys in an existing
// document already passed the pattern check.
func copyEntries[V any](dst, src *parser.PatternedMap[V]) {
	for _, key := range src.Keys() {
		if v, ok := src.Get(key); ok {
			_ = dst.Set(key, v)
		}
	}
}

// WithID sets the document identifier. The identifier should be a URI; a
// URN is the conventional choice.
func (b *DocumentBuilder) WithID(id string) *DocumentBuilder {
	b.id = id
	return b
}

// WithInfo replaces the Info object wholesale.
func (b *DocumentBuilder) WithInfo(info *parser.Info) *DocumentBuilder {
	if info == nil {
		b.errors = append(b.errors, newNilValueError("info", ""))
		return b
	}
	b.info = info
	return b
}

// WithDescription sets the application description.
func (b *DocumentBuilder) WithDescription(desc string) *DocumentBuilder {
	b.info.Description = desc
	return b
}

// WithTermsOfService sets the terms of service URL.
func (b *DocumentBuilder) WithTermsOfService(url string) *DocumentBuilder {
	b.info.TermsOfService = url
	return b
}

// WithContact sets the contact information.
func (b *DocumentBuilder) WithContact(contact *parser.Contact) *DocumentBuilder {
	b.info.Contact = contact
	return b
}

// WithLicense sets the license information.
func (b *DocumentBuilder) WithLicense(license *parser.License) *DocumentBuilder {
	b.info.License = license
	return b
}

// WithExternalDocs sets the application's external documentation.
func (b *DocumentBuilder) WithExternalDocs(docs *parser.ExternalDocs) *DocumentBuilder {
	b.info.ExternalDocs = docs
	return b
}

// WithDefaultContentType sets the default content type for message
// payloads.
func (b *DocumentBuilder) WithDefaultContentType(contentType string) *DocumentBuilder {
	b.defaultContentType = contentType
	return b
}

// AddTag appends a tag to the application's tag list.
func (b *DocumentBuilder) AddTag(tag *parser.Tag) *DocumentBuilder {
	if tag == nil {
		b.errors = append(b.errors, newNilValueError("info.tags", ""))
		return b
	}
	b.info.Tags = append(b.info.Tags, tag)
	return b
}

// addEntry inserts value into m, accumulating key format and nil-value
// errors for Build to report.
func addEntry[V any](b *DocumentBuilder, m *parser.PatternedMap[V], collection, key string, value V, isNil bool) {
	if isNil {
		b.errors = append(b.errors, newNilValueError(collection, key))
		return
	}
	if err := m.Set(key, value); err != nil {
		b.errors = append(b.errors, newKeyError(collection, key, err))
	}
}

// AddServer adds a server under the given name.
func (b *DocumentBuilder) AddServer(name string, server *parser.Server) *DocumentBuilder {
	addEntry(b, b.servers, "servers", name, server, server == nil)
	return b
}

// AddChannel adds a channel under the given name.
func (b *DocumentBuilder) AddChannel(name string, channel *parser.Channel) *DocumentBuilder {
	addEntry(b, b.channels, "channels", name, channel, channel == nil)
	return b
}

// AddOperation adds a fully assembled operation under the given name.
// For the common case of an operation that sends to or receives from a
// root channel, AddSendOperation and AddReceiveOperation build the
// channel and message references for you.
func (b *DocumentBuilder) AddOperation(name string, op *parser.Operation) *DocumentBuilder {
	addEntry(b, b.operations, "operations", name, op, op == nil)
	return b
}

// AddMessage adds a message to components.messages.
func (b *DocumentBuilder) AddMessage(name string, msg *parser.Message) *DocumentBuilder {
	addEntry(b, b.messages, "components.messages", name, msg, msg == nil)
	return b
}

// AddSchema adds a schema to components.schemas.
func (b *DocumentBuilder) AddSchema(name string, schema *parser.Schema) *DocumentBuilder {
	addEntry(b, b.schemas, "components.schemas", name, schema, schema == nil)
	return b
}

// AddParameter adds a channel parameter to components.parameters.
func (b *DocumentBuilder) AddParameter(name string, param *parser.Parameter) *DocumentBuilder {
	addEntry(b, b.parameters, "components.parameters", name, param, param == nil)
	return b
}

// AddSecurityScheme adds a security scheme to components.securitySchemes.
func (b *DocumentBuilder) AddSecurityScheme(name string, scheme *parser.SecurityScheme) *DocumentBuilder {
	addEntry(b, b.securitySchemes, "components.securitySchemes", name, scheme, scheme == nil)
	return b
}

// AddCorrelationID adds a correlation ID to components.correlationIds.
func (b *DocumentBuilder) AddCorrelationID(name string, cid *parser.CorrelationID) *DocumentBuilder {
	addEntry(b, b.correlationIDs, "components.correlationIds", name, cid, cid == nil)
	return b
}

// AddChannelMessage stores the message under components.messages and
// links it from the named channel by reference. The channel must already
// have been added.
func (b *DocumentBuilder) AddChannelMessage(channelName, messageName string, msg *parser.Message) *DocumentBuilder {
	ch, ok := b.channels.Get(channelName)
	if !ok {
		b.errors = append(b.errors, newMissingTargetError("channels", channelName,
			fmt.Sprintf("channel %q is not defined; add it with AddChannel before attaching messages", channelName)))
		return b
	}
	if msg == nil {
		b.errors = append(b.errors, newNilValueError("components.messages", messageName))
		return b
	}
	if err := b.messages.Set(messageName, msg); err != nil {
		b.errors = append(b.errors, newKeyError("components.messages", messageName, err))
		return b
	}
	if ch.Messages == nil {
		ch.Messages = parser.NewPatternedMap[*parser.Message]()
	}
	// Key already validated by the components insert.
	_ = ch.Messages.Set(messageName, &parser.Message{
		Ref: parser.ComponentMessageRef(messageName),
	})
	return b
}

// AddSendOperation adds a send operation bound to the named root channel.
// Message names refer to entries previously added with AddMessage or
// AddChannelMessage.
func (b *DocumentBuilder) AddSendOperation(name, channelName string, messageNames ...string) *DocumentBuilder {
	return b.addActionOperation(name, parser.ActionSend, channelName, messageNames)
}

// AddReceiveOperation adds a receive operation bound to the named root
// channel. Message names refer to entries previously added with
// AddMessage or AddChannelMessage.
func (b *DocumentBuilder) AddReceiveOperation(name, channelName string, messageNames ...string) *DocumentBuilder {
	return b.addActionOperation(name, parser.ActionReceive, channelName, messageNames)
}

func (b *DocumentBuilder) addActionOperation(name, action, channelName string, messageNames []string) *DocumentBuilder {
	if !b.channels.Has(channelName) {
		b.errors = append(b.errors, newMissingTargetError("operations", name,
			fmt.Sprintf("channel %q is not defined; add it with AddChannel before referencing it", channelName)))
		return b
	}
	op := &parser.Operation{
		Action:  action,
		Channel: &parser.Reference{Ref: parser.RootChannelRef(channelName)},
	}
	for _, msgName := range messageNames {
		if !b.messages.Has(msgName) {
			b.errors = append(b.errors, newMissingTargetError("operations", name,
				fmt.Sprintf("message %q is not defined; add it with AddMessage before referencing it", msgName)))
			continue
		}
		op.Messages = append(op.Messages, &parser.Reference{
			Ref: parser.ComponentMessageRef(msgName),
		})
	}
	addEntry(b, b.operations, "operations", name, op, false)
	return b
}

// Build creates the AsyncAPI document. It returns the errors accumulated
// by earlier calls, if any, as a BuildErrors collection.
func (b *DocumentBuilder) Build() (*parser.AsyncAPIDocument, error) {
	if err := b.checkErrors(); err != nil {
		return nil, err
	}

	doc := &parser.AsyncAPIDocument{
		AsyncAPI:           parser.AsyncAPIVersion300.String(),
		ID:                 b.id,
		Info:               b.info,
		DefaultContentType: b.defaultContentType,
		Version:            parser.AsyncAPIVersion300,
	}
	if b.servers.Len() > 0 {
		doc.Servers = b.servers
	}
	if b.channels.Len() > 0 {
		doc.Channels = b.channels
	}
	if b.operations.Len() > 0 {
		doc.Operations = b.operations
	}
	doc.Components = b.buildComponents()
	return doc, nil
}

// buildComponents materializes the components object, or nil when every
// managed category is empty.
func (b *DocumentBuilder) buildComponents() *parser.Components {
	if b.schemas.Len() == 0 && b.messages.Len() == 0 && b.parameters.Len() == 0 &&
		b.securitySchemes.Len() == 0 && b.correlationIDs.Len() == 0 {
		return nil
	}
	c := &parser.Components{}
	if b.schemas.Len() > 0 {
		c.Schemas = b.schemas
	}
	if b.messages.Len() > 0 {
		c.Messages = b.messages
	}
	if b.parameters.Len() > 0 {
		c.Parameters = b.parameters
	}
	if b.securitySchemes.Len() > 0 {
		c.SecuritySchemes = b.securitySchemes
	}
	if b.correlationIDs.Len() > 0 {
		c.CorrelationIDs = b.correlationIDs
	}
	return c
}

// MustBuild is Build for tests and program initialization; it panics when
// the builder holds errors.
func (b *DocumentBuilder) MustBuild() *parser.AsyncAPIDocument {
	doc, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("builder: MustBuild: %v", err))
	}
	return doc
}

// BuildResult wraps the built document in a parser.ParseResult so it can
// be fed to the validator and walker packages without re-parsing.
func (b *DocumentBuilder) BuildResult() (*parser.ParseResult, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &parser.ParseResult{
		SourcePath:      "builder",
		SourceFormat:    parser.SourceFormatYAML,
		Version:         doc.AsyncAPI,
		AsyncAPIVersion: doc.Version,
		Document:        doc,
		Errors:          make([]error, 0),
		Warnings:        make([]string, 0),
		Stats:           parser.GetDocumentStats(doc),
	}, nil
}

// checkErrors converts accumulated errors into a BuildErrors collection.
func (b *DocumentBuilder) checkErrors() error {
	if len(b.errors) == 0 {
		return nil
	}
	buildErrs := make(BuildErrors, 0, len(b.errors))
	for _, err := range b.errors {
		var be *BuildError
		if errors.As(err, &be) {
			buildErrs = append(buildErrs, be)
		} else {
			buildErrs = append(buildErrs, &BuildError{Cause: err})
		}
	}
	return buildErrs
}

// MarshalYAML returns the document as YAML bytes.
func (b *DocumentBuilder) MarshalYAML() ([]byte, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// MarshalJSON returns the document as indented JSON bytes.
func (b *DocumentBuilder) MarshalJSON() ([]byte, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// outputFileMode is the file permission mode for output files (owner
// read/write only)
const outputFileMode = 0600

// WriteFile writes the document to a file. The format is inferred from
// the file extension (.json for JSON, anything else YAML).
func (b *DocumentBuilder) WriteFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = b.MarshalJSON()
	default:
		data, err = b.MarshalYAML()
	}
	if err != nil {
		return fmt.Errorf("builder: failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("builder: failed to write file: %w", err)
	}
	return nil
}
