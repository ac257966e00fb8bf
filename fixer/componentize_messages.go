package fixer

import (
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// componentizeMessages hoists inline channel messages into
// components.messages, replacing the channel entries with references.
// Root channels are processed first, then channels stored in components.
func componentizeMessages(doc *parser.AsyncAPIDocument, result *FixResult) error {
	if err := hoistChannelMessages(doc, doc.Channels, "channels", result); err != nil {
		return err
	}
	if doc.Components != nil {
		if err := hoistChannelMessages(doc, doc.Components.Channels, "components.channels", result); err != nil {
			return err
		}
	}
	return nil
}

// hoistChannelMessages moves every inline message of every channel in the
// map to components.messages. When the message key already names a
// different components message, the hoisted copy is stored under
// "{channelKey}-{messageKey}"; a further conflict on the qualified key is
// an error.
func hoistChannelMessages(doc *parser.AsyncAPIDocument, channels *parser.PatternedMap[*parser.Channel], basePath string, result *FixResult) error {
	for _, chKey := range channels.Keys() {
		ch, ok := channels.Get(chKey)
		if !ok || ch == nil || ch.Ref != "" || ch.Messages.Len() == 0 {
			continue
		}

		for _, msgKey := range ch.Messages.Keys() {
			msg, ok := ch.Messages.Get(msgKey)
			if !ok || msg == nil {
				continue
			}
			// Already a reference: nothing to move
			if msg.Ref != "" {
				continue
			}

			components := ensureComponents(doc)
			if components.Messages == nil {
				components.Messages = parser.NewPatternedMap[*parser.Message]()
			}

			targetKey := msgKey
			if existing, exists := components.Messages.Get(targetKey); exists && !sameDefinition(existing, msg) {
				targetKey = chKey + "-" + msgKey
				if qualified, qualExists := components.Messages.Get(targetKey); qualExists && !sameDefinition(qualified, msg) {
					return fmt.Errorf("fixer: message name conflict: both %q and %q already exist in components.messages with different definitions", msgKey, targetKey)
				}
			}

			if !components.Messages.Has(targetKey) {
				if err := components.Messages.Set(targetKey, msg); err != nil {
					return fmt.Errorf("fixer: failed to store message %q in components: %w", targetKey, err)
				}
			}

			ref := parser.ComponentMessageRef(targetKey)
			// msgKey came from the existing map, so re-setting it cannot fail
			_ = ch.Messages.Set(msgKey, &parser.Message{Ref: ref})

			description := fmt.Sprintf("moved inline message %q to components.messages", msgKey)
			if targetKey != msgKey {
				description = fmt.Sprintf("moved inline message %q to components.messages as %q", msgKey, targetKey)
			}
			result.Fixes = append(result.Fixes, Fix{
				Type:        FixTypeComponentizeMessages,
				Path:        fmt.Sprintf("%s.%s.messages.%s", basePath, chKey, msgKey),
				Description: description,
				Before:      msg,
				After:       ref,
			})
		}
	}
	return nil
}
