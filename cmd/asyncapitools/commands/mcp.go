package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/asyncapitools"
	"github.com/erraggy/asyncapitools/internal/cliutil"
	"github.com/erraggy/asyncapitools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: asyncapitools mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve asyncapitools capabilities as MCP tools over stdio.\n\n")
		cliutil.Writef(fs.Output(), "The server speaks the Model Context Protocol on stdin/stdout and is\n")
		cliutil.Writef(fs.Output(), "meant to be launched by an MCP client, not used interactively.\n")
		cliutil.Writef(fs.Output(), "\nTools:\n")
		cliutil.Writef(fs.Output(), "  asyncapi_validate     Validate an AsyncAPI document\n")
		cliutil.Writef(fs.Output(), "  asyncapi_stats        Summarize a document's structure\n")
		cliutil.Writef(fs.Output(), "  asyncapi_resolve_ref  Resolve an internal $ref pointer\n")
		cliutil.Writef(fs.Output(), "\nEnvironment:\n")
		cliutil.Writef(fs.Output(), "  ASYNCAPITOOLS_CACHE_ENABLED       Enable the parse cache (default: true)\n")
		cliutil.Writef(fs.Output(), "  ASYNCAPITOOLS_CACHE_FILE_TTL      File cache entry lifetime (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  ASYNCAPITOOLS_CACHE_CONTENT_TTL   Content cache entry lifetime (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  ASYNCAPITOOLS_RESULT_LIMIT        Default finding page size (default: 100)\n")
		cliutil.Writef(fs.Output(), "  ASYNCAPITOOLS_VALIDATE_NO_WARNINGS  Suppress warnings by default (default: false)\n")
		cliutil.Writef(fs.Output(), "\nExample client configuration:\n")
		cliutil.Writef(fs.Output(), "  {\"command\": \"asyncapitools\", \"args\": [\"mcp\"]}\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx, asyncapitools.Version()); err != nil {
		return fmt.Errorf("serving mcp: %w", err)
	}
	return nil
}
