// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes asyncapitools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `asyncapitools MCP server — validates, summarizes, and resolves references in AsyncAPI 3.0 documents.

Configuration: All defaults are configurable via ASYNCAPITOOLS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- ASYNCAPITOOLS_CACHE_FILE_TTL (default: 15m) — cache TTL for local file documents
- ASYNCAPITOOLS_CACHE_CONTENT_TTL (default: 15m) — cache TTL for inline content
- ASYNCAPITOOLS_CACHE_ENABLED (default: true) — disable document caching entirely
- ASYNCAPITOOLS_RESULT_LIMIT (default: 100) — default pagination limit for validation findings
- ASYNCAPITOOLS_VALIDATE_NO_WARNINGS (default: false) — suppress warnings by default

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). Inline content is keyed by hash. A background sweeper removes expired entries every 60s.`

// New builds an MCP server with every asyncapitools tool registered.
// version is reported as the server's implementation version during the
// MCP handshake.
func New(version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "asyncapitools", Version: version},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context, version string) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return New(version).Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "asyncapi_validate",
		Description: "Validate an AsyncAPI 3.0 document against the rules this toolkit enforces: required fields and enumerated values, patterned object keys, specification extension names, and every internal $ref target. Returns errors and warnings with document paths. For large documents, use no_warnings to focus on errors first. Use offset/limit to paginate through findings. Warning suppression defaults are configurable via the ASYNCAPITOOLS_VALIDATE_NO_WARNINGS env var.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "asyncapi_stats",
		Description: "Parse an AsyncAPI 3.0 document and return a structural summary: title, version, server/channel/operation counts, the send/receive split, message and component schema counts, servers with their protocols, and tags. Use asyncapi_resolve_ref to inspect an individual object.",
	}, handleStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "asyncapi_resolve_ref",
		Description: "Resolve an internal $ref pointer in an AsyncAPI 3.0 document and return the target object. Follows chained references with cycle detection, so a pointer into a channel's messages resolves through to the component message it references. Accepts arbitrary internal pointers such as #/channels/orders/messages/orderCreated, not just #/components/... targets. External (cross-document) references cannot be resolved.",
	}, handleResolveRef)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
