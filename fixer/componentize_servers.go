package fixer

import (
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// componentizeServers moves inline root servers under components.servers
// and replaces the root entries with references. Root keys are processed
// in document order. A root server whose key already names a different
// components server is a conflict: server keys are the reference
// identity, so silently picking either definition would corrupt one of
// them.
func componentizeServers(doc *parser.AsyncAPIDocument, result *FixResult) error {
	if doc.Servers.Len() == 0 {
		return nil
	}

	for _, key := range doc.Servers.Keys() {
		server, ok := doc.Servers.Get(key)
		if !ok || server == nil {
			continue
		}
		// Already a reference: nothing to move
		if server.Ref != "" {
			continue
		}

		components := ensureComponents(doc)
		if components.Servers == nil {
			components.Servers = parser.NewPatternedMap[*parser.Server]()
		}

		if existing, exists := components.Servers.Get(key); exists {
			if !sameDefinition(existing, server) {
				return fmt.Errorf("fixer: server name conflict: %q already exists in components.servers with a different definition", key)
			}
			// Identical definition already hoisted: just rewrite the root entry
		} else if err := components.Servers.Set(key, server); err != nil {
			return fmt.Errorf("fixer: failed to store server %q in components: %w", key, err)
		}

		ref := parser.ComponentServerRef(key)
		// key came from the existing map, so re-setting it cannot fail
		_ = doc.Servers.Set(key, &parser.Server{Ref: ref})

		result.Fixes = append(result.Fixes, Fix{
			Type:        FixTypeComponentizeServers,
			Path:        "servers." + key,
			Description: fmt.Sprintf("moved inline server %q to components.servers", key),
			Before:      server,
			After:       ref,
		})
	}

	return nil
}
