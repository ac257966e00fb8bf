package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/asyncapitools/fixer"
	"github.com/erraggy/asyncapitools/internal/cliutil"
)

// NormalizeFlags contains flags for the normalize command
type NormalizeFlags struct {
	Output  string
	Fixes   string
	Quiet   bool
	NoColor bool
}

// SetupNormalizeFlags creates and configures a FlagSet for the normalize command.
// Returns the FlagSet and a NormalizeFlags struct with bound flag variables.
func SetupNormalizeFlags() (*flag.FlagSet, *NormalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &NormalizeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Fixes, "fixes", "", "comma-separated fixes to apply (default: all): servers, messages, tags")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools normalize [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Rewrite an AsyncAPI document into the components-first layout.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSupported Fixes:\n")
		cliutil.Writef(fs.Output(), "  servers   Move inline root servers under components.servers and\n")
		cliutil.Writef(fs.Output(), "            replace them with references\n")
		cliutil.Writef(fs.Output(), "  messages  Move inline channel messages under components.messages and\n")
		cliutil.Writef(fs.Output(), "            replace them with references\n")
		cliutil.Writef(fs.Output(), "  tags      Deduplicate inline tags through components.tags\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools normalize asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools normalize -o normalized.yaml asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools normalize --fixes servers,messages asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | asyncapitools normalize -q - > normalized.yaml\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools normalize -q api.yaml | asyncapitools validate -q -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - The input document is never modified\n")
		cliutil.Writef(fs.Output(), "  - Output preserves the original format (JSON or YAML)\n")
		cliutil.Writef(fs.Output(), "  - Running normalize twice produces identical output\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Normalization succeeded (or nothing needed normalizing)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to parse or normalize the document\n")
	}

	return fs, flags
}

// fixNames maps CLI fix names to fixer fix types.
var fixNames = map[string]fixer.FixType{
	"servers":  fixer.FixTypeComponentizeServers,
	"messages": fixer.FixTypeComponentizeMessages,
	"tags":     fixer.FixTypeComponentizeTags,
}

// ParseFixTypes converts a comma-separated fix list into fixer fix types.
// An empty list means all fixes.
func ParseFixTypes(list string) ([]fixer.FixType, error) {
	if list == "" {
		return nil, nil
	}
	var fixes []fixer.FixType
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fixType, ok := fixNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown fix '%s'. Valid fixes: servers, messages, tags", name)
		}
		fixes = append(fixes, fixType)
	}
	return fixes, nil
}

// HandleNormalize executes the normalize command
func HandleNormalize(args []string) error {
	fs, flags := SetupNormalizeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("normalize command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	enabledFixes, err := ParseFixTypes(flags.Fixes)
	if err != nil {
		return err
	}

	if flags.Output != "" {
		if specPath != StdinFilePath {
			if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
				return err
			}
		}
		if err := RejectSymlinkOutput(filepath.Clean(flags.Output)); err != nil {
			return err
		}
	}

	// Normalize the file or stdin with timing
	startTime := time.Now()
	var result *fixer.FixResult

	if specPath == StdinFilePath {
		parseResult, parseErr := parseInput(specPath)
		if parseErr != nil {
			return parseErr
		}
		f := fixer.New()
		f.EnabledFixes = enabledFixes
		result, err = f.FixParsed(*parseResult)
		if err != nil {
			return fmt.Errorf("normalizing from stdin: %w", err)
		}
	} else {
		fixOpts := []fixer.Option{fixer.WithFilePath(specPath)}
		if len(enabledFixes) > 0 {
			fixOpts = append(fixOpts, fixer.WithEnabledFixes(enabledFixes...))
		}
		result, err = fixer.FixWithOptions(fixOpts...)
		if err != nil {
			return fmt.Errorf("normalizing file: %w", err)
		}
	}
	totalTime := time.Since(startTime)

	pal := cliutil.NewPalette(os.Stderr, flags.NoColor)

	// Print diagnostic messages (to stderr to keep stdout clean for pipelining)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "AsyncAPI Document Normalizer\n")
		cliutil.Writef(os.Stderr, "============================\n\n")
		OutputSpecHeader(specPath, result.SourceVersion)
		cliutil.Writef(os.Stderr, "Channels: %d\n", result.Stats.ChannelCount)
		cliutil.Writef(os.Stderr, "Messages: %d\n", result.Stats.MessageCount)
		cliutil.Writef(os.Stderr, "Components: %d\n", result.Stats.ComponentCount)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if result.HasFixes() {
			cliutil.Writef(os.Stderr, "Fixes Applied (%d):\n", result.FixCount)
			for _, fix := range result.Fixes {
				cliutil.Writef(os.Stderr, "  - [%s] %s: %s\n", fix.Type, fix.Path, fix.Description)
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		if len(result.Warnings) > 0 {
			cliutil.Writef(os.Stderr, "Warnings (%d):\n", len(result.Warnings))
			for _, warning := range result.Warnings {
				cliutil.Writef(os.Stderr, "  - %s\n", pal.Warn("%s", warning))
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		if result.HasFixes() {
			cliutil.Writef(os.Stderr, "%s\n", pal.Pass("✓ Applied %d fix(es)", result.FixCount))
		} else {
			cliutil.Writef(os.Stderr, "%s\n", pal.Pass("✓ No fixes needed - document is already normalized"))
		}
	}

	// Write output
	data, err := MarshalDocument(result.Document, result.SourceFormat)
	if err != nil {
		return fmt.Errorf("marshaling normalized document: %w", err)
	}

	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, data, 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
	} else {
		if _, err = os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing normalized document to stdout: %w", err)
		}
	}

	return nil
}
