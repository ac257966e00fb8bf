//go:build integration

package harness

import (
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// InjectProblems modifies a parsed document by injecting the specified
// problems, then refreshes the result's stats to match the mutated model.
// Only the typed document is mutated, not the raw data map, so resolve
// steps always see the original base document.
func InjectProblems(parseResult *parser.ParseResult, problems *Problems) error {
	if problems == nil {
		return nil
	}

	doc := parseResult.Document
	if doc == nil {
		return fmt.Errorf("no document to inject problems into")
	}

	for _, srv := range problems.InlineServers {
		if err := injectInlineServer(doc, srv); err != nil {
			return fmt.Errorf("inject inline-servers: %w", err)
		}
	}

	for _, msg := range problems.InlineMessages {
		if err := injectInlineMessage(doc, msg); err != nil {
			return fmt.Errorf("inject inline-messages: %w", err)
		}
	}

	for _, name := range problems.InfoTags {
		if err := injectInfoTag(doc, name); err != nil {
			return fmt.Errorf("inject info-tags: %w", err)
		}
	}

	for _, tag := range problems.ConflictingTags {
		if err := injectConflictingTag(doc, tag); err != nil {
			return fmt.Errorf("inject conflicting-tags: %w", err)
		}
	}

	if problems.DropInfoTitle {
		if err := injectDropInfoTitle(doc); err != nil {
			return fmt.Errorf("inject drop-info-title: %w", err)
		}
	}

	for _, action := range problems.InvalidActions {
		if err := injectInvalidAction(doc, action); err != nil {
			return fmt.Errorf("inject invalid-actions: %w", err)
		}
	}

	for _, ref := range problems.BrokenChannelRefs {
		if err := injectBrokenChannelRef(doc, ref); err != nil {
			return fmt.Errorf("inject broken-channel-refs: %w", err)
		}
	}

	parseResult.Stats = parser.GetDocumentStats(doc)
	return nil
}

// hasProblems returns true if any problems are configured.
func hasProblems(p *Problems) bool {
	if p == nil {
		return false
	}
	return len(p.InlineServers) > 0 ||
		len(p.InlineMessages) > 0 ||
		len(p.InfoTags) > 0 ||
		len(p.ConflictingTags) > 0 ||
		p.DropInfoTitle ||
		len(p.InvalidActions) > 0 ||
		len(p.BrokenChannelRefs) > 0
}

// injectInlineServer adds an inline server definition at the document root.
func injectInlineServer(doc *parser.AsyncAPIDocument, srv InlineServer) error {
	if srv.Name == "" {
		return fmt.Errorf("inline server must have a name")
	}
	if doc.Servers == nil {
		doc.Servers = parser.NewPatternedMap[*parser.Server]()
	}
	if doc.Servers.Has(srv.Name) {
		return fmt.Errorf("server %q already exists in document", srv.Name)
	}

	host := srv.Host
	if host == "" {
		host = srv.Name + ".example.com"
	}
	protocol := srv.Protocol
	if protocol == "" {
		protocol = "kafka"
	}

	return doc.Servers.Set(srv.Name, &parser.Server{
		Host:        host,
		Protocol:    protocol,
		Description: fmt.Sprintf("Injected inline server %s", srv.Name),
	})
}

// injectInlineMessage adds an inline message definition to a root channel.
func injectInlineMessage(doc *parser.AsyncAPIDocument, msg InlineMessage) error {
	if msg.Channel == "" || msg.Name == "" {
		return fmt.Errorf("inline message must have a channel and a name")
	}

	ch, ok := doc.Channels.Get(msg.Channel)
	if !ok || ch == nil {
		return fmt.Errorf("channel %q not found in document", msg.Channel)
	}
	if ch.Ref != "" {
		return fmt.Errorf("channel %q is a reference, cannot add inline message", msg.Channel)
	}
	if ch.Messages == nil {
		ch.Messages = parser.NewPatternedMap[*parser.Message]()
	}
	if ch.Messages.Has(msg.Name) {
		return fmt.Errorf("message %q already exists in channel %q", msg.Name, msg.Channel)
	}

	return ch.Messages.Set(msg.Name, &parser.Message{
		Name:    msg.Name,
		Summary: fmt.Sprintf("Injected inline message %s", msg.Name),
		Payload: &parser.Schema{Type: "object"},
	})
}

// injectInfoTag appends an inline tag to the info object.
func injectInfoTag(doc *parser.AsyncAPIDocument, name string) error {
	if name == "" {
		return fmt.Errorf("info tag must have a name")
	}
	if doc.Info == nil {
		return fmt.Errorf("document has no info object")
	}
	doc.Info.Tags = append(doc.Info.Tags, &parser.Tag{Name: name})
	return nil
}

// injectConflictingTag attaches a tag to an operation whose name collides
// with an earlier-hoisted tag but whose content differs. Hoisting order
// processes info.tags before operation tags, so pairing this with an
// info-tags entry of the same name produces a tag name conflict.
func injectConflictingTag(doc *parser.AsyncAPIDocument, tag ConflictingTag) error {
	if tag.Name == "" || tag.Operation == "" {
		return fmt.Errorf("conflicting tag must have a name and an operation")
	}

	op, ok := doc.Operations.Get(tag.Operation)
	if !ok || op == nil {
		return fmt.Errorf("operation %q not found in document", tag.Operation)
	}
	if op.Ref != "" {
		return fmt.Errorf("operation %q is a reference, cannot add tag", tag.Operation)
	}

	op.Tags = append(op.Tags, &parser.Tag{
		Name:        tag.Name,
		Description: "Conflicting copy with differing content",
	})
	return nil
}

// injectDropInfoTitle clears the required info.title field.
func injectDropInfoTitle(doc *parser.AsyncAPIDocument) error {
	if doc.Info == nil {
		return fmt.Errorf("document has no info object")
	}
	doc.Info.Title = ""
	return nil
}

// injectInvalidAction overwrites an operation's action with an invalid verb.
func injectInvalidAction(doc *parser.AsyncAPIDocument, action InvalidAction) error {
	if action.Operation == "" {
		return fmt.Errorf("invalid action must name an operation")
	}

	op, ok := doc.Operations.Get(action.Operation)
	if !ok || op == nil {
		return fmt.Errorf("operation %q not found in document", action.Operation)
	}

	verb := action.Action
	if verb == "" {
		verb = "publish"
	}
	op.Action = verb
	return nil
}

// injectBrokenChannelRef points an operation's channel reference at a
// target that does not exist. The scenario author is responsible for
// choosing a target absent from the base document.
func injectBrokenChannelRef(doc *parser.AsyncAPIDocument, ref BrokenChannelRef) error {
	if ref.Operation == "" {
		return fmt.Errorf("broken channel ref must name an operation")
	}

	op, ok := doc.Operations.Get(ref.Operation)
	if !ok || op == nil {
		return fmt.Errorf("operation %q not found in document", ref.Operation)
	}

	target := ref.Target
	if target == "" {
		target = "#/channels/missing"
	}
	op.Channel = &parser.Reference{Ref: target}
	return nil
}
