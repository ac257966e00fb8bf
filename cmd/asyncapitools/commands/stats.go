package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/parser"
)

// StatsFlags contains flags for the stats command
type StatsFlags struct {
	Format string
	Quiet  bool
}

// SetupStatsFlags creates and configures a FlagSet for the stats command.
// Returns the FlagSet and a StatsFlags struct with bound flag variables.
func SetupStatsFlags() (*flag.FlagSet, *StatsFlags) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	flags := &StatsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the report, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the report, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools stats [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Summarize the servers, channels, operations, messages, and schemas of an AsyncAPI document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  asyncapitools stats asyncapi.yaml\n")
		cliutil.Writef(fs.Output(), "  asyncapitools stats --format json asyncapi.yaml | jq '.channel_count'\n")
		cliutil.Writef(fs.Output(), "  cat asyncapi.yaml | asyncapitools stats -q -\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		cliutil.Writef(fs.Output(), "  - The report goes to stdout; diagnostics go to stderr\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document parsed successfully\n")
		cliutil.Writef(fs.Output(), "  1    Document could not be parsed\n")
	}

	return fs, flags
}

// statsServer describes one server entry in the stats report.
type statsServer struct {
	Name     string `json:"name" yaml:"name"`
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
}

// statsReport is the output shape for the stats command.
type statsReport struct {
	Version            string        `json:"version" yaml:"version"`
	Title              string        `json:"title" yaml:"title"`
	Description        string        `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultContentType string        `json:"default_content_type,omitempty" yaml:"default_content_type,omitempty"`
	Format             string        `json:"format" yaml:"format"`
	ServerCount        int           `json:"server_count" yaml:"server_count"`
	ChannelCount       int           `json:"channel_count" yaml:"channel_count"`
	OperationCount     int           `json:"operation_count" yaml:"operation_count"`
	SendCount          int           `json:"send_count" yaml:"send_count"`
	ReceiveCount       int           `json:"receive_count" yaml:"receive_count"`
	MessageCount       int           `json:"message_count" yaml:"message_count"`
	SchemaCount        int           `json:"schema_count" yaml:"schema_count"`
	ComponentCount     int           `json:"component_count" yaml:"component_count"`
	InternalRefCount   int           `json:"internal_ref_count" yaml:"internal_ref_count"`
	ExternalRefCount   int           `json:"external_ref_count" yaml:"external_ref_count"`
	Servers            []statsServer `json:"servers,omitempty" yaml:"servers,omitempty"`
	Protocols          []string      `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	Tags               []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HandleStats executes the stats command
func HandleStats(args []string) error {
	fs, flags := SetupStatsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("stats command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := parseInput(specPath)
	if err != nil {
		return err
	}

	// Structure findings do not block counting, but surface them.
	if !flags.Quiet && len(result.Errors) > 0 {
		cliutil.Writef(os.Stderr, "Findings (%d):\n", len(result.Errors))
		for _, finding := range result.Errors {
			cliutil.Writef(os.Stderr, "  - %s\n", finding)
		}
		cliutil.Writef(os.Stderr, "\n")
	}

	report := buildStatsReport(result)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(report, flags.Format)
	}

	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "AsyncAPI Document Statistics\n")
		cliutil.Writef(os.Stderr, "============================\n\n")
		OutputSpecHeader(specPath, result.Version)
		cliutil.Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
		cliutil.Writef(os.Stderr, "Load Time: %v\n\n", result.LoadTime)
	}

	printStatsText(report)
	return nil
}

// buildStatsReport assembles the report from a parse result.
func buildStatsReport(result *parser.ParseResult) statsReport {
	report := statsReport{
		Version:          result.Version,
		Format:           string(result.SourceFormat),
		ServerCount:      result.Stats.ServerCount,
		ChannelCount:     result.Stats.ChannelCount,
		OperationCount:   result.Stats.OperationCount,
		SendCount:        result.Stats.SendCount,
		ReceiveCount:     result.Stats.ReceiveCount,
		MessageCount:     result.Stats.MessageCount,
		SchemaCount:      result.Stats.SchemaCount,
		ComponentCount:   result.Stats.ComponentCount,
		InternalRefCount: result.Stats.InternalRefCount,
		ExternalRefCount: result.Stats.ExternalRefCount,
		Protocols:        result.Stats.Protocols,
	}

	doc := result.Document
	if doc == nil {
		return report
	}

	report.DefaultContentType = doc.DefaultContentType
	if doc.Info != nil {
		report.Title = doc.Info.Title
		report.Description = doc.Info.Description
		for _, tag := range doc.Info.Tags {
			if tag != nil {
				report.Tags = append(report.Tags, tag.Name)
			}
		}
	}

	doc.Servers.Range(func(name string, server *parser.Server) bool {
		report.Servers = append(report.Servers, statsServer{
			Name:     name,
			Host:     server.Host,
			Protocol: server.Protocol,
		})
		return true
	})

	return report
}

// printStatsText renders the report to stdout in a human-readable layout.
func printStatsText(report statsReport) {
	if report.Title != "" {
		fmt.Printf("Title: %s\n", report.Title)
	}
	if report.Description != "" {
		fmt.Printf("Description: %s\n", report.Description)
	}
	fmt.Printf("AsyncAPI Version: %s\n", report.Version)
	fmt.Printf("Source Format: %s\n", report.Format)
	if report.DefaultContentType != "" {
		fmt.Printf("Default Content Type: %s\n", report.DefaultContentType)
	}
	fmt.Printf("Servers: %d\n", report.ServerCount)
	fmt.Printf("Channels: %d\n", report.ChannelCount)
	fmt.Printf("Operations: %d (%d send, %d receive)\n", report.OperationCount, report.SendCount, report.ReceiveCount)
	fmt.Printf("Messages: %d\n", report.MessageCount)
	fmt.Printf("Schemas: %d\n", report.SchemaCount)
	fmt.Printf("Components: %d\n", report.ComponentCount)
	fmt.Printf("References: %d internal, %d external\n", report.InternalRefCount, report.ExternalRefCount)
	if len(report.Protocols) > 0 {
		fmt.Printf("Protocols: %s\n", strings.Join(report.Protocols, ", "))
	}
	if len(report.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(report.Tags, ", "))
	}
	for _, server := range report.Servers {
		fmt.Printf("Server %s: %s (%s)\n", server.Name, server.Host, server.Protocol)
	}
}
