package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/parser"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Format string
	Quiet  bool
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the resolved value, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the resolved value, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools resolve [flags] <file|-> <ref>\n\n")
		cliutil.Writef(fs.Output(), "Resolve an internal $ref pointer and print the value it targets.\n")
		cliutil.Writef(fs.Output(), "Chained references are followed to their final target.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  The resolved value in the document's source format\n")
		cliutil.Writef(fs.Output(), "  json            A JSON report with ref, path, depth, and value\n")
		cliutil.Writef(fs.Output(), "  yaml            A YAML report with ref, path, depth, and value\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools resolve asyncapi.yaml '#/components/messages/orderCreated'\n")
		cliutil.Writef(fs.Output(), "  asyncapitools resolve asyncapi.yaml '#/channels/orders/messages/created'\n")
		cliutil.Writef(fs.Output(), "  asyncapitools resolve --format json asyncapi.yaml '#/components/schemas/order' | jq '.depth'\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | asyncapitools resolve -q - '#/components/schemas/order'\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Only internal references (starting with '#/') can be resolved\n")
		cliutil.Writef(fs.Output(), "  - Circular reference chains are reported as errors\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Reference resolved\n")
		cliutil.Writef(fs.Output(), "  1    Reference missing, external, or circular\n")
	}

	return fs, flags
}

// resolveReport is the structured output shape for the resolve command.
type resolveReport struct {
	// Ref is the reference that directly produced the value: the last
	// link of the chain when references are chained.
	Ref   string `json:"ref" yaml:"ref"`
	Path  string `json:"path" yaml:"path"`
	Depth int    `json:"depth" yaml:"depth"`
	Value any    `json:"value" yaml:"value"`
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("resolve command requires a file path (or '-' for stdin) and a reference")
	}

	specPath := fs.Arg(0)
	ref := fs.Arg(1)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := parseInput(specPath)
	if err != nil {
		return err
	}

	resolver := parser.NewResolver(result)
	resolution, err := resolver.Resolve(ref)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", ref, err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := resolveReport{
			Ref:   resolution.Ref,
			Path:  resolution.Path,
			Depth: resolution.Depth,
			Value: resolution.Value,
		}
		return OutputStructured(report, flags.Format)
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "Reference: %s\n", ref)
		if resolution.Ref != ref {
			cliutil.Writef(os.Stderr, "Final Reference: %s\n", resolution.Ref)
		}
		cliutil.Writef(os.Stderr, "Resolved Path: %s\n", resolution.Path)
		cliutil.Writef(os.Stderr, "Chain Depth: %d\n\n", resolution.Depth)
	}

	// Render the value in the document's source format so output can be
	// pasted back into a document of the same kind.
	data, err := MarshalDocument(resolution.Value, result.SourceFormat)
	if err != nil {
		return fmt.Errorf("rendering resolved value: %w", err)
	}
	fmt.Println(string(data))

	return nil
}
