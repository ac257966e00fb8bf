package mcpserver

import (
	"context"

	"github.com/erraggy/asyncapitools/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Doc        docInput `json:"doc"                   jsonschema:"The AsyncAPI document to validate"`
	NoWarnings *bool    `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int      `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int      `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateFinding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	SpecRef string `json:"spec_ref,omitempty"`
}

type validateOutput struct {
	Valid        bool              `json:"valid"`
	Version      string            `json:"version"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
	Returned     int               `json:"returned"`
	Errors       []validateFinding `json:"errors,omitempty"`
	Warnings     []validateFinding `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}

	parseResult, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	opts := []validator.Option{
		validator.WithParsed(*parseResult),
	}
	if noWarnings {
		opts = append(opts, validator.WithIncludeWarnings(false))
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:      result.Valid,
		Version:    result.Version,
		ErrorCount: result.ErrorCount,
	}

	output.Errors = makeSlice[validateFinding](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, validateFinding{
			Path:    e.Path,
			Message: e.Message,
			Field:   e.Field,
			SpecRef: e.SpecRef,
		})
	}
	if !noWarnings {
		output.WarningCount = result.WarningCount
		output.Warnings = makeSlice[validateFinding](len(result.Warnings))
		for _, w := range result.Warnings {
			output.Warnings = append(output.Warnings, validateFinding{
				Path:    w.Path,
				Message: w.Message,
				Field:   w.Field,
				SpecRef: w.SpecRef,
			})
		}
	}

	// Paginate errors and warnings.
	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	if !noWarnings {
		output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	}
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}
