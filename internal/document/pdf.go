package document

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

func extractPDF(path string) (*Extraction, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	text, kept := joinPages(pages)
	return &Extraction{Text: text, FileType: TypePDF, Pages: kept}, nil
}

// joinPages labels every page holding text with its 1-based number and
// joins them with blank lines. Empty pages keep their number in the
// sequence but produce no output.
func joinPages(pages []string) (string, int) {
	parts := make([]string, 0, len(pages))
	for i, page := range pages {
		body := strings.TrimSpace(page)
		if body == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", i+1, body))
	}
	return strings.Join(parts, "\n\n"), len(parts)
}
