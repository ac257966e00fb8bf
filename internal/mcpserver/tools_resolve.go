package mcpserver

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncapitools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveRefInput struct {
	Doc docInput `json:"doc" jsonschema:"The AsyncAPI document to resolve against"`
	Ref string   `json:"ref" jsonschema:"Internal reference pointer to resolve, e.g. #/components/messages/orderCreated"`
}

type resolveRefOutput struct {
	// Ref is the reference that directly produced the value: the last
	// link of the chain when references are chained.
	Ref      string `json:"ref"`
	Path     string `json:"path"`
	Depth    int    `json:"depth"`
	Format   string `json:"format"`
	Resolved string `json:"resolved"`
}

func handleResolveRef(_ context.Context, _ *mcp.CallToolRequest, input resolveRefInput) (*mcp.CallToolResult, resolveRefOutput, error) {
	if input.Ref == "" {
		return errResult(fmt.Errorf("ref is required, e.g. #/components/schemas/order")), resolveRefOutput{}, nil
	}

	parseResult, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), resolveRefOutput{}, nil
	}

	resolver := parser.NewResolver(parseResult)
	resolution, err := resolver.Resolve(input.Ref)
	if err != nil {
		return errResult(err), resolveRefOutput{}, nil
	}

	output := resolveRefOutput{
		Ref:   resolution.Ref,
		Path:  resolution.Path,
		Depth: resolution.Depth,
	}

	// Render the target in the document's own format.
	var rendered []byte
	switch parseResult.SourceFormat {
	case parser.SourceFormatJSON:
		output.Format = string(parser.SourceFormatJSON)
		rendered, err = json.MarshalIndent(resolution.Value, "", "  ")
	default:
		output.Format = string(parser.SourceFormatYAML)
		rendered, err = yaml.Marshal(resolution.Value)
	}
	if err != nil {
		return errResult(fmt.Errorf("failed to render resolved value: %w", err)), resolveRefOutput{}, nil
	}
	output.Resolved = string(rendered)

	return nil, output, nil
}
