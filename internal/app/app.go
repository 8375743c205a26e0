package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "serve":
		return runServe(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "languages":
		return runLanguages(args[1:])
	case "extract":
		return runExtract(args[1:])
	case "pipeline":
		return runPipeline(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "gist CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gist <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve      Start the translation API server")
	fmt.Fprintln(os.Stderr, "  translate  Translate text or a file once and print the result")
	fmt.Fprintln(os.Stderr, "  languages  List languages supported by the translation provider")
	fmt.Fprintln(os.Stderr, "  extract    Extract text from a pdf, docx or txt document")
	fmt.Fprintln(os.Stderr, "  pipeline   Summarize text with OpenAI, then translate the summary")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"gist <command> -h\" for command-specific flags.")
}
