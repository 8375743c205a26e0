package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/gist/internal/cli"
	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/config"
	"horse.fit/gist/internal/logging"
	"horse.fit/gist/internal/pipeline"
)

func runPipeline(args []string) int {
	fs := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 3*time.Minute, "Command timeout")
	lang := fs.String("lang", pipeline.DefaultTargetLanguage, "Target language for the translated summary")
	style := fs.String("style", string(completion.StyleConcise), "Summary style: concise, detailed or bullet_points")
	file := fs.String("file", "", "Read input text from a file instead of an argument")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	targetLang := normalizeLanguageFlag(*lang)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--lang must be a valid language code")
		return 2
	}

	text, err := readTextInput(fs, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  gist pipeline [--lang hi] [--style concise] [--env .env] <text>")
		fmt.Fprintln(os.Stderr, "  gist pipeline [--lang hi] --file <path>")
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

	registry := newRegistry(newAzureProvider(cfg))
	provider, err := registry.Provider("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	svc := pipeline.NewService(newCompletionClient(cfg), provider, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result := svc.Run(ctx, text, pipeline.RunOptions{
		TargetLanguage: targetLang,
		Style:          completion.SummaryStyle(*style),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Encode result failed: %v\n", err)
		return 1
	}

	if !result.Success {
		return 1
	}
	return 0
}
