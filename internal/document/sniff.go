package document

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"horse.fit/gist/internal/fault"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Sniff detects the document type from magic bytes rather than the file
// name. DOCX archives often read as plain ZIP containers, so a ZIP
// detection is reconciled against the extension before being rejected.
func Sniff(path string) (FileType, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fault.Wrap(fault.Extraction, err, "detect file type")
	}

	switch {
	case mtype.Is("application/pdf"):
		return TypePDF, nil
	case mtype.Is(docxMIME):
		return TypeDOCX, nil
	case mtype.Is("application/zip"):
		if strings.EqualFold(filepath.Ext(path), ".docx") {
			return TypeDOCX, nil
		}
	default:
		for m := mtype; m != nil; m = m.Parent() {
			if m.Is("text/plain") {
				return TypeTXT, nil
			}
		}
	}
	return "", fault.New(fault.Extraction, "unrecognized content type %s", mtype.String())
}
