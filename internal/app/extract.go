package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"horse.fit/gist/internal/document"
)

func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fileType := fs.String("type", "", "File type override: pdf, docx or txt (default from extension)")
	asJSON := fs.Bool("json", false, "Print the extraction as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "extract requires one document path")
		return 2
	}

	ex, err := document.Extract(fs.Arg(0), *fileType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extract failed: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ex); err != nil {
			fmt.Fprintf(os.Stderr, "Encode extraction failed: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Println(ex.Text)
	return 0
}
