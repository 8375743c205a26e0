package app

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// readTextInput resolves the input text for one-shot commands: either a
// single positional argument or the contents of --file, never both.
func readTextInput(fs *flag.FlagSet, filePath string) (string, error) {
	filePath = strings.TrimSpace(filePath)

	if filePath != "" {
		if fs.NArg() != 0 {
			return "", fmt.Errorf("pass text as an argument or --file, not both")
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filePath, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("%s contains no text", filePath)
		}
		return text, nil
	}

	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected one text argument or --file")
	}
	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		return "", fmt.Errorf("text argument must not be empty")
	}
	return text, nil
}

// normalizeLanguageFlag lowercases a language code, converts underscores to
// hyphens, and rejects anything that is not letters and hyphens.
func normalizeLanguageFlag(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return ""
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	for _, r := range lang {
		if unicode.IsLetter(r) || r == '-' {
			continue
		}
		return ""
	}
	return lang
}
