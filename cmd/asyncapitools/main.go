// Command asyncapitools provides CLI access to the asyncapitools library:
// validating, summarizing, normalizing, and generating code from AsyncAPI
// documents, plus an MCP server exposing the same capabilities.
package main

import (
	"fmt"
	"os"

	"github.com/erraggy/asyncapitools"
	"github.com/erraggy/asyncapitools/cmd/asyncapitools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Println(asyncapitools.BuildInfo())
	case "-v", "--version":
		fmt.Printf("asyncapitools v%s\n", asyncapitools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := commands.HandleStats(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "resolve":
		if err := commands.HandleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "normalize":
		if err := commands.HandleNormalize(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists every command name eligible for typo suggestions.
var knownCommands = []string{
	"validate", "stats", "resolve", "normalize", "generate", "mcp", "version", "help",
}

// suggestCommand returns the closest known command within an edit distance
// of 2, or "" when nothing is close enough to be a plausible typo.
func suggestCommand(input string) string {
	const maxDistance = 2
	best := ""
	bestDistance := maxDistance + 1
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDistance {
			best = cmd
			bestDistance = d
		}
	}
	if bestDistance > maxDistance {
		return ""
	}
	return best
}

// editDistance computes the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`asyncapitools - AsyncAPI Document Tools

Usage:
  asyncapitools <command> [options]

Commands:
  validate    Validate an AsyncAPI document against its declared version
  stats       Summarize the servers, channels, operations, and messages of a document
  resolve     Resolve an internal $ref pointer and print its target
  normalize   Rewrite a document into the components-first layout
  generate    Generate Go types from component schemas
  mcp         Serve asyncapitools capabilities over the Model Context Protocol
  version     Show version information
  help        Show this help message

Examples:
  asyncapitools validate asyncapi.yaml
  asyncapitools stats --format json asyncapi.yaml
  asyncapitools resolve asyncapi.yaml '#/components/messages/orderCreated'
  asyncapitools normalize -o normalized.yaml asyncapi.yaml
  asyncapitools generate -o ./models -p orders asyncapi.yaml
  cat asyncapi.yaml | asyncapitools validate -q -

Run 'asyncapitools <command> --help' for more information on a command.`)
}
