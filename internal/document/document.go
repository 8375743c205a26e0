// Package document extracts plain text from uploaded document files.
//
// Three formats are handled: PDF (via MuPDF), DOCX (word/document.xml
// inside the ZIP container) and plain text. Extraction never interprets
// the content; it returns the raw text plus format-specific counts.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/metrics"
)

// FileType identifies a supported document format.
type FileType string

const (
	TypePDF  FileType = "pdf"
	TypeDOCX FileType = "docx"
	TypeTXT  FileType = "txt"
)

// SupportedTypes lists the extractable formats in display order.
func SupportedTypes() []FileType {
	return []FileType{TypePDF, TypeDOCX, TypeTXT}
}

func supportedList() string {
	types := SupportedTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Extraction holds the text pulled out of a single document.
type Extraction struct {
	Text     string   `json:"text"`
	FileType FileType `json:"file_type"`

	// Pages counts the PDF pages that contained extractable text.
	Pages int `json:"pages,omitempty"`
	// Paragraphs counts the non-blank DOCX paragraphs.
	Paragraphs int `json:"paragraphs,omitempty"`
}

// ResolveType maps a file name and an optional explicit hint to a
// FileType. The hint wins over the name's extension. "text" is accepted
// as an alias for "txt".
func ResolveType(name, hint string) (FileType, error) {
	raw := strings.TrimSpace(hint)
	if raw == "" {
		raw = strings.TrimPrefix(filepath.Ext(name), ".")
	}
	switch strings.ToLower(raw) {
	case "pdf":
		return TypePDF, nil
	case "docx":
		return TypeDOCX, nil
	case "txt", "text":
		return TypeTXT, nil
	default:
		return "", fault.New(fault.Extraction, "unsupported file type %q (supported: %s)", raw, supportedList())
	}
}

// Extract reads the document at path and returns its text. The format
// is taken from typeHint when given, otherwise from the path's
// extension.
func Extract(path, typeHint string) (*Extraction, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fault.New(fault.Extraction, "file not found: %s", path)
		}
		return nil, fault.Wrap(fault.Extraction, err, "stat %s", path)
	}

	ft, err := ResolveType(path, typeHint)
	if err != nil {
		return nil, err
	}

	var ex *Extraction
	switch ft {
	case TypePDF:
		ex, err = extractPDF(path)
	case TypeDOCX:
		ex, err = extractDOCX(path)
	case TypeTXT:
		ex, err = extractTXT(path)
	}
	metrics.ObserveExtraction(string(ft), err)
	if err != nil {
		return nil, fault.Wrap(fault.Extraction, err, "extract %s text", ft)
	}
	return ex, nil
}

func extractTXT(path string) (*Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, errors.New("file is not valid utf-8 text")
	}
	return &Extraction{Text: string(data), FileType: TypeTXT}, nil
}
