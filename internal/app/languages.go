package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"horse.fit/gist/internal/cli"
	"horse.fit/gist/internal/config"
)

func runLanguages(args []string) int {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	asJSON := fs.Bool("json", false, "Print the language table as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	langs, err := newAzureProvider(cfg).Languages(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fetch languages failed: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(langs); err != nil {
			fmt.Fprintf(os.Stderr, "Encode languages failed: %v\n", err)
			return 1
		}
		return 0
	}

	codes := make([]string, 0, len(langs))
	for code := range langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		info := langs[code]
		if info.NativeName != "" && info.NativeName != info.Name {
			fmt.Printf("%-10s %s (%s)\n", code, info.Name, info.NativeName)
		} else {
			fmt.Printf("%-10s %s\n", code, info.Name)
		}
	}
	return 0
}
