package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// docxBodyPath is where WordprocessingML keeps the document body inside
// the ZIP container.
const docxBodyPath = "word/document.xml"

func extractDOCX(path string) (*Extraction, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	defer zr.Close()

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPath {
			body = f
			break
		}
	}
	if body == nil {
		return nil, errors.New("container has no " + docxBodyPath)
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", docxBodyPath, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return nil, err
	}

	text, kept := joinParagraphs(paragraphs)
	return &Extraction{Text: text, FileType: TypeDOCX, Paragraphs: kept}, nil
}

// readParagraphs streams document.xml and collects the text of every
// <w:p> element. Runs are concatenated; <w:tab> and <w:br> become the
// matching whitespace so the visible layout survives.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", docxBodyPath, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, current.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}

// joinParagraphs drops blank paragraphs and joins the rest with blank
// lines, mirroring how the PDF pages are assembled.
func joinParagraphs(paragraphs []string) (string, int) {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		body := strings.TrimSpace(p)
		if body == "" {
			continue
		}
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n\n"), len(parts)
}
