//go:build integration

package harness

import (
	"fmt"
	"os"
	"testing"

	"github.com/erraggy/asyncapitools/fixer"
	"github.com/erraggy/asyncapitools/generator"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/validator"
)

// executeParse executes a parse step.
func executeParse(t *testing.T, pc *PipelineContext, step *Step, result *StepResult) error {
	t.Helper()

	if pc.BasePath == "" {
		return fmt.Errorf("parse step requires a base document")
	}

	opts := []parser.Option{
		parser.WithFilePath(pc.BasePath),
	}
	if validate, ok := step.Config["validate-structure"].(bool); ok {
		opts = append(opts, parser.WithValidateStructure(validate))
	}

	parseResult, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if len(parseResult.Errors) > 0 {
		return fmt.Errorf("parse produced %d errors: %v", len(parseResult.Errors), parseResult.Errors)
	}

	// Inject problems if specified in the scenario
	if pc.Scenario != nil && hasProblems(&pc.Scenario.Problems) {
		if err := InjectProblems(parseResult, &pc.Scenario.Problems); err != nil {
			return fmt.Errorf("problem injection failed: %w", err)
		}
	}

	pc.ParseResult = parseResult
	result.Output.ParseResult = parseResult

	return nil
}

// executeValidate executes a validate step.
func executeValidate(t *testing.T, pc *PipelineContext, step *Step, result *StepResult) error {
	t.Helper()

	if pc.ParseResult == nil {
		return fmt.Errorf("validate step requires a prior parse step")
	}

	opts := []validator.Option{
		validator.WithParsed(*pc.ParseResult),
	}
	if warnings, ok := step.Config["warnings"].(bool); ok {
		opts = append(opts, validator.WithIncludeWarnings(warnings))
	}
	if failFast, ok := step.Config["fail-fast"].(bool); ok {
		opts = append(opts, validator.WithFailFast(failFast))
	}

	validationResult, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	pc.ValidationResult = validationResult
	result.Output.ValidationResult = validationResult

	switch step.Expect {
	case "valid":
		if !validationResult.Valid {
			var errMsgs []string
			for _, e := range validationResult.Errors {
				errMsgs = append(errMsgs, e.String())
			}
			return fmt.Errorf("expected valid but got %d errors: %v", validationResult.ErrorCount, errMsgs)
		}
	case "invalid":
		if validationResult.Valid {
			return fmt.Errorf("expected invalid but document is valid")
		}
	}

	return nil
}

// executeNormalize executes a normalize step.
func executeNormalize(t *testing.T, pc *PipelineContext, step *Step, result *StepResult) error {
	t.Helper()

	if pc.ParseResult == nil {
		return fmt.Errorf("normalize step requires a prior parse step")
	}

	opts := []fixer.Option{
		fixer.WithParsed(*pc.ParseResult),
	}

	enabledFixes, hasExplicitConfig := getEnabledFixes(step.Config)
	if hasExplicitConfig {
		// An empty slice enables all fixes
		opts = append(opts, fixer.WithEnabledFixes(enabledFixes...))
	}

	fixResult, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	pc.FixResult = fixResult
	result.Output.FixResult = fixResult

	// Thread the normalized document to subsequent steps
	pc.ParseResult = fixResult.ToParseResult()

	return nil
}

// getEnabledFixes extracts enabled fix types from step config.
// Returns the fix types and a boolean indicating if explicit config was provided.
func getEnabledFixes(config map[string]any) ([]fixer.FixType, bool) {
	if config == nil {
		return nil, false
	}

	enabled, ok := config["enabled"]
	if !ok {
		return nil, false
	}

	// Handle "all" keyword
	if s, ok := enabled.(string); ok && s == "all" {
		return []fixer.FixType{}, true
	}

	if list, ok := enabled.([]any); ok {
		var fixes []fixer.FixType
		for _, item := range list {
			if s, ok := item.(string); ok {
				fixes = append(fixes, mapFixTypeName(s))
			}
		}
		return fixes, true
	}

	return nil, false
}

// executeResolve executes a resolve step. The reference to follow comes
// from the step config's "ref" key.
func executeResolve(t *testing.T, pc *PipelineContext, step *Step, result *StepResult) error {
	t.Helper()

	if pc.ParseResult == nil {
		return fmt.Errorf("resolve step requires a prior parse step")
	}
	// The resolver walks the raw data map, which normalize does not
	// reconstruct; resolve steps must run against the parsed base.
	if pc.ParseResult.Data == nil {
		return fmt.Errorf("resolve step requires raw document data (run it before normalize)")
	}

	ref, ok := step.Config["ref"].(string)
	if !ok || ref == "" {
		return fmt.Errorf("resolve step requires a 'ref' config value")
	}

	resolution, err := parser.NewResolver(pc.ParseResult).Resolve(ref)
	if err != nil {
		return fmt.Errorf("resolve failed for %s: %w", ref, err)
	}

	pc.Resolution = resolution
	result.Output.Resolution = resolution

	return nil
}

// executeGenerate generates Go types from the current document.
func executeGenerate(t *testing.T, pc *PipelineContext, step *Step, result *StepResult) error {
	t.Helper()

	if pc.ParseResult == nil {
		return fmt.Errorf("generate step requires a prior parse step")
	}

	opts := []generator.Option{
		generator.WithParsed(*pc.ParseResult),
	}

	if packageName, ok := step.Config["package"].(string); ok && packageName != "" {
		opts = append(opts, generator.WithPackageName(packageName))
	} else {
		opts = append(opts, generator.WithPackageName("generated"))
	}
	if yamlTags, ok := step.Config["yaml-tags"].(bool); ok {
		opts = append(opts, generator.WithYAMLTags(yamlTags))
	}
	if strict, ok := step.Config["strict"].(bool); ok {
		opts = append(opts, generator.WithStrictMode(strict))
	}

	genResult, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if genResult.HasCriticalIssues() {
		return fmt.Errorf("generate produced %d critical issues", genResult.CriticalCount)
	}

	pc.GenerateResult = genResult
	result.Output.GenerateResult = genResult

	// Write the generated files to a temp directory so WriteFiles stays covered
	outputDir, err := os.MkdirTemp("", "asyncapitools-generate-*")
	if err != nil {
		return fmt.Errorf("generate: failed to create temp directory: %w", err)
	}
	pc.TempDirs = append(pc.TempDirs, outputDir)

	if err := genResult.WriteFiles(outputDir); err != nil {
		return fmt.Errorf("generate: failed to write files: %w", err)
	}

	if pc.Debug {
		t.Logf("  Generated %d files to %s", len(genResult.Files), outputDir)
		for _, f := range genResult.Files {
			t.Logf("    - %s", f.Name)
		}
	}

	return nil
}
