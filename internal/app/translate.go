package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/gist/internal/cli"
	"horse.fit/gist/internal/config"
	"horse.fit/gist/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", time.Minute, "Command timeout")
	lang := fs.String("lang", "hi", "Target language code (for example: hi, fr)")
	from := fs.String("from", "en", "Source language code; empty lets the provider detect")
	providerName := fs.String("provider", "", "Translation provider name (default from TRANSLATION_PROVIDER)")
	file := fs.String("file", "", "Read input text from a file instead of an argument")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	targetLang := normalizeLanguageFlag(*lang)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--lang is required and must be a valid language code")
		return 2
	}

	sourceLang := strings.TrimSpace(*from)
	if sourceLang != "" {
		sourceLang = normalizeLanguageFlag(sourceLang)
		if sourceLang == "" {
			fmt.Fprintln(os.Stderr, "--from must be a valid language code")
			return 2
		}
	}

	text, err := readTextInput(fs, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printTranslateUsage()
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
	provider, err := registry.Provider(*providerName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	if resp.DetectedLang != "" {
		fmt.Fprintf(os.Stderr, "Detected source language: %s\n", resp.DetectedLang)
	}
	fmt.Println(resp.Text)
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gist translate --lang <code> [--from en] [--provider azure] [--env .env] [--timeout 1m] <text>")
	fmt.Fprintln(os.Stderr, "  gist translate --lang <code> --file <path>")
}
