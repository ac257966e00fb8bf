package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/asyncapitools/generator"
	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output      string
	PackageName string
	YAMLTags    bool
	NoJSONTags  bool
	Strict      bool
	NoInfo      bool
	Quiet       bool
	NoColor     bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.PackageName, "p", "asyncapi", "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", "asyncapi", "Go package name for generated code")
	fs.BoolVar(&flags.YAMLTags, "yaml-tags", false, "add yaml struct tags to generated fields")
	fs.BoolVar(&flags.NoJSONTags, "no-json-tags", false, "don't add json struct tags to generated fields")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "suppress informational messages")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate Go types from the component schemas of an AsyncAPI document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools generate -o ./models asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools generate -o ./models -p orders asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools generate -o ./models --yaml-tags asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | asyncapitools generate -o ./models -\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  Use '-' as the file path to read the AsyncAPI document from stdin.\n")
		cliutil.Writef(fs.Output(), "  Example: asyncapitools normalize -q api.yaml | asyncapitools generate -o ./models -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Types are generated from components.schemas definitions\n")
		cliutil.Writef(fs.Output(), "  - Generated code is formatted with goimports\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Generation successful\n")
		cliutil.Writef(fs.Output(), "  1    Generation failed with critical issues\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	// Generate the code with timing
	startTime := time.Now()
	var result *generator.GenerateResult
	var err error

	if specPath == StdinFilePath {
		parseResult, parseErr := parseInput(specPath)
		if parseErr != nil {
			return parseErr
		}
		g := generator.New()
		g.PackageName = flags.PackageName
		g.JSONTags = !flags.NoJSONTags
		g.YAMLTags = flags.YAMLTags
		g.StrictMode = flags.Strict
		g.IncludeInfo = !flags.NoInfo
		result, err = g.GenerateParsed(*parseResult)
	} else {
		result, err = generator.GenerateWithOptions(
			generator.WithFilePath(specPath),
			generator.WithPackageName(flags.PackageName),
			generator.WithJSONTags(!flags.NoJSONTags),
			generator.WithYAMLTags(flags.YAMLTags),
			generator.WithStrictMode(flags.Strict),
			generator.WithIncludeInfo(!flags.NoInfo),
		)
	}
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	pal := cliutil.NewPalette(os.Stderr, flags.NoColor)

	// Print diagnostic messages (to stderr like every other command)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "AsyncAPI Code Generator\n")
		cliutil.Writef(os.Stderr, "=======================\n\n")
		OutputSpecHeader(specPath, result.SourceVersion)
		cliutil.Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
		cliutil.Writef(os.Stderr, "Package: %s\n", result.PackageName)
		cliutil.Writef(os.Stderr, "Types: %d\n", result.GeneratedTypes)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Issues) > 0 {
			cliutil.Writef(os.Stderr, "Generation Issues (%d):\n", len(result.Issues))
			for _, issue := range result.Issues {
				cliutil.Writef(os.Stderr, "  %s\n", issue.String())
			}
			cliutil.Writef(os.Stderr, "\n")
		}
	}

	// Write files
	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Generated Files (%d):\n", len(result.Files))
		for _, file := range result.Files {
			cliutil.Writef(os.Stderr, "  - %s/%s (%d bytes)\n", flags.Output, file.Name, len(file.Content))
		}
		cliutil.Writef(os.Stderr, "\n")

		if result.Success {
			cliutil.Writef(os.Stderr, "%s", pal.Pass("✓ Generation successful"))
			if result.InfoCount > 0 || result.WarningCount > 0 {
				cliutil.Writef(os.Stderr, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
			}
			cliutil.Writef(os.Stderr, "\n")
		} else {
			cliutil.Writef(os.Stderr, "%s", pal.Fail("✗ Generation completed with %d critical issue(s)", result.CriticalCount))
			if result.WarningCount > 0 {
				cliutil.Writef(os.Stderr, ", %d warning(s)", result.WarningCount)
			}
			cliutil.Writef(os.Stderr, "\n")
		}
	}

	if !result.Success {
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	}

	return nil
}
