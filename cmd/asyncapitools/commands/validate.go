package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	NoWarnings bool
	FailFast   bool
	Quiet      bool
	Format     string
	NoColor    bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "stop at the first error instead of collecting all findings")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools validate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Validate an AsyncAPI document against the specification version it declares.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools validate asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools validate --no-warnings asyncapi.json\n")
		cliutil.Writef(fs.Output(), "  asyncapitools validate --fail-fast asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | asyncapitools validate -q -\n")
		cliutil.Writef(fs.Output(), "  asyncapitools validate --format json asyncapi.yaml | jq '.valid'\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		cliutil.Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		cliutil.Writef(fs.Output(), "  - Use --format json/yaml for structured output that can be parsed\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Validation successful\n")
		cliutil.Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// validateFinding is the structured output shape for a single finding.
type validateFinding struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	SpecRef string `json:"spec_ref,omitempty" yaml:"spec_ref,omitempty"`
}

// validateReport is the structured output shape for the validate command.
type validateReport struct {
	Valid        bool              `json:"valid" yaml:"valid"`
	Version      string            `json:"version" yaml:"version"`
	ErrorCount   int               `json:"error_count" yaml:"error_count"`
	WarningCount int               `json:"warning_count" yaml:"warning_count"`
	Errors       []validateFinding `json:"errors" yaml:"errors"`
	Warnings     []validateFinding `json:"warnings" yaml:"warnings"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	// Validate the file or stdin with timing
	startTime := time.Now()
	var result *validator.ValidationResult
	var err error

	if specPath == StdinFilePath {
		parseResult, parseErr := parseInput(specPath)
		if parseErr != nil {
			return parseErr
		}
		result, err = validator.ValidateWithOptions(
			validator.WithParsed(*parseResult),
			validator.WithIncludeWarnings(!flags.NoWarnings),
			validator.WithFailFast(flags.FailFast),
		)
		if err != nil {
			return fmt.Errorf("validating from stdin: %w", err)
		}
	} else {
		result, err = validator.ValidateWithOptions(
			validator.WithFilePath(specPath),
			validator.WithIncludeWarnings(!flags.NoWarnings),
			validator.WithFailFast(flags.FailFast),
		)
		if err != nil {
			return fmt.Errorf("validating file: %w", err)
		}
	}
	totalTime := time.Since(startTime)

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := validateReport{
			Valid:        result.Valid,
			Version:      result.Version,
			ErrorCount:   result.ErrorCount,
			WarningCount: result.WarningCount,
			Errors:       toFindings(result.Errors),
			Warnings:     toFindings(result.Warnings),
		}
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}

		if !result.Valid {
			os.Exit(1)
		}

		return nil
	}

	pal := cliutil.NewPalette(os.Stderr, flags.NoColor)

	// Text format output (always to stderr to keep stdout clean)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "AsyncAPI Document Validator\n")
		cliutil.Writef(os.Stderr, "===========================\n\n")
		OutputSpecHeader(specPath, result.Version)
		OutputSpecStats(result.SourceSize, result.Stats, result.LoadTime)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Errors) > 0 {
			cliutil.Writef(os.Stderr, "Errors (%d):\n", result.ErrorCount)
			for _, e := range result.Errors {
				cliutil.Writef(os.Stderr, "  %s\n", pal.Fail("%s", e.String()))
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		if len(result.Warnings) > 0 {
			cliutil.Writef(os.Stderr, "Warnings (%d):\n", result.WarningCount)
			for _, warning := range result.Warnings {
				cliutil.Writef(os.Stderr, "  %s\n", pal.Warn("%s", warning.String()))
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		if result.Valid {
			cliutil.Writef(os.Stderr, "%s", pal.Pass("✓ Validation passed"))
			if result.WarningCount > 0 {
				cliutil.Writef(os.Stderr, " with %d warning(s)", result.WarningCount)
			}
			cliutil.Writef(os.Stderr, "\n")
		} else {
			cliutil.Writef(os.Stderr, "%s", pal.Fail("✗ Validation failed: %d error(s)", result.ErrorCount))
			if result.WarningCount > 0 {
				cliutil.Writef(os.Stderr, ", %d warning(s)", result.WarningCount)
			}
			cliutil.Writef(os.Stderr, "\n")
		}
	}

	if !result.Valid {
		os.Exit(1)
	}

	return nil
}

// toFindings converts validator issues into the structured output shape.
func toFindings(issues []validator.ValidationError) []validateFinding {
	findings := make([]validateFinding, 0, len(issues))
	for _, issue := range issues {
		findings = append(findings, validateFinding{
			Path:    issue.Path,
			Message: issue.Message,
			Field:   issue.Field,
			SpecRef: issue.SpecRef,
		})
	}
	return findings
}
