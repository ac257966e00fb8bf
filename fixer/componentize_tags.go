package fixer

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/parser"
)

// componentizeTags hoists inline tags everywhere tags appear into
// components.tags and replaces them with references, dropping duplicates
// within each list. Same-name tags with differing content reuse the first
// hoisted definition and report a warning; tags without a name cannot be
// keyed and stay inline.
func componentizeTags(doc *parser.AsyncAPIDocument, result *FixResult) {
	if doc.Info != nil && len(doc.Info.Tags) > 0 {
		doc.Info.Tags = processTagList(doc, doc.Info.Tags, "info.tags", result)
	}

	for _, key := range doc.Servers.Keys() {
		if srv, ok := doc.Servers.Get(key); ok && srv != nil && srv.Ref == "" && len(srv.Tags) > 0 {
			srv.Tags = processTagList(doc, srv.Tags, "servers."+key+".tags", result)
		}
	}
	for _, key := range doc.Channels.Keys() {
		if ch, ok := doc.Channels.Get(key); ok && ch != nil && ch.Ref == "" && len(ch.Tags) > 0 {
			ch.Tags = processTagList(doc, ch.Tags, "channels."+key+".tags", result)
		}
	}
	for _, key := range doc.Operations.Keys() {
		if op, ok := doc.Operations.Get(key); ok && op != nil && op.Ref == "" {
			processOperationTags(doc, op, "operations."+key, result)
		}
	}

	c := doc.Components
	if c == nil {
		return
	}
	for _, key := range c.Servers.Keys() {
		if srv, ok := c.Servers.Get(key); ok && srv != nil && srv.Ref == "" && len(srv.Tags) > 0 {
			srv.Tags = processTagList(doc, srv.Tags, "components.servers."+key+".tags", result)
		}
	}
	for _, key := range c.Channels.Keys() {
		if ch, ok := c.Channels.Get(key); ok && ch != nil && ch.Ref == "" && len(ch.Tags) > 0 {
			ch.Tags = processTagList(doc, ch.Tags, "components.channels."+key+".tags", result)
		}
	}
	for _, key := range c.Operations.Keys() {
		if op, ok := c.Operations.Get(key); ok && op != nil && op.Ref == "" {
			processOperationTags(doc, op, "components.operations."+key, result)
		}
	}
	for _, key := range c.OperationTraits.Keys() {
		if trait, ok := c.OperationTraits.Get(key); ok && trait != nil && trait.Ref == "" && len(trait.Tags) > 0 {
			trait.Tags = processTagList(doc, trait.Tags, "components.operationTraits."+key+".tags", result)
		}
	}
	for _, key := range c.MessageTraits.Keys() {
		if trait, ok := c.MessageTraits.Get(key); ok && trait != nil && trait.Ref == "" && len(trait.Tags) > 0 {
			trait.Tags = processTagList(doc, trait.Tags, "components.messageTraits."+key+".tags", result)
		}
	}
	for _, key := range c.Messages.Keys() {
		if msg, ok := c.Messages.Get(key); ok && msg != nil && msg.Ref == "" && len(msg.Tags) > 0 {
			msg.Tags = processTagList(doc, msg.Tags, "components.messages."+key+".tags", result)
		}
	}
}

// processOperationTags handles an operation's own tag list plus the tag
// lists of its inline traits.
func processOperationTags(doc *parser.AsyncAPIDocument, op *parser.Operation, basePath string, result *FixResult) {
	if len(op.Tags) > 0 {
		op.Tags = processTagList(doc, op.Tags, basePath+".tags", result)
	}
	for i, trait := range op.Traits {
		if trait != nil && trait.Ref == "" && len(trait.Tags) > 0 {
			trait.Tags = processTagList(doc, trait.Tags, fmt.Sprintf("%s.traits[%d].tags", basePath, i), result)
		}
	}
}

// processTagList hoists each inline tag in the list to components.tags
// and returns the list rewritten to references, keeping first-occurrence
// order and dropping duplicates.
func processTagList(doc *parser.AsyncAPIDocument, tags []*parser.Tag, path string, result *FixResult) []*parser.Tag {
	out := make([]*parser.Tag, 0, len(tags))
	seen := make(map[string]bool)

	for i, tag := range tags {
		if tag == nil {
			continue
		}

		if tag.Ref != "" {
			if seen[tag.Ref] {
				result.Fixes = append(result.Fixes, Fix{
					Type:        FixTypeComponentizeTags,
					Path:        fmt.Sprintf("%s[%d]", path, i),
					Description: fmt.Sprintf("removed duplicate tag reference %q", tag.Ref),
					Before:      tag,
				})
				continue
			}
			seen[tag.Ref] = true
			out = append(out, tag)
			continue
		}

		// A tag without a name has no key to hoist under
		if tag.Name == "" {
			out = append(out, tag)
			continue
		}

		key := tagKey(tag.Name)
		components := ensureComponents(doc)
		if components.Tags == nil {
			components.Tags = parser.NewPatternedMap[*parser.Tag]()
		}

		if existing, exists := components.Tags.Get(key); exists {
			if !sameDefinition(existing, tag) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("tag name conflict: %q already exists in components.tags with different content; using the existing definition", key))
			}
		} else {
			// tagKey output always satisfies the key pattern
			_ = components.Tags.Set(key, tag)
		}

		ref := parser.ComponentTagRef(key)
		if seen[ref] {
			result.Fixes = append(result.Fixes, Fix{
				Type:        FixTypeComponentizeTags,
				Path:        fmt.Sprintf("%s[%d]", path, i),
				Description: fmt.Sprintf("removed duplicate tag %q", tag.Name),
				Before:      tag,
			})
			continue
		}
		seen[ref] = true
		out = append(out, &parser.Tag{Ref: ref})

		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeComponentizeTags,
			Path:        fmt.Sprintf("%s[%d]", path, i),
			Description: fmt.Sprintf("moved inline tag %q to components.tags", tag.Name),
			Before:      tag,
			After:       ref,
		})
	}

	return out
}

// tagKey derives a components.tags key from a tag name, replacing every
// rune outside the patterned key alphabet with an underscore.
func tagKey(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
