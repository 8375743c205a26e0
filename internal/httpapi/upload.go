package httpapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/document"
	"horse.fit/gist/internal/metrics"
	"horse.fit/gist/internal/textutil"
	"horse.fit/gist/internal/translation"
)

func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No file provided", nil)
	}
	filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
	if filename == "" || filename == "." {
		return fail(c, http.StatusBadRequest, "No file selected", nil)
	}

	fileType, err := document.ResolveType(filename, "")
	if err != nil {
		metrics.UploadRejected("unsupported_type")
		return fail(c, http.StatusBadRequest, "File type not allowed. Supported: pdf, docx, txt", nil)
	}

	targetLang := strings.TrimSpace(c.FormValue("target_lang"))
	if targetLang == "" {
		targetLang = defaultTargetLang
	}
	sourceLang := strings.TrimSpace(c.FormValue("source_lang"))
	if sourceLang == "" {
		sourceLang = defaultSourceLang
	}
	shouldSummarize := strings.EqualFold(strings.TrimSpace(c.FormValue("summarize")), "true")

	provider, err := s.deps.Translators.Provider(c.FormValue("provider"))
	if err != nil {
		return s.respondFault(c, err)
	}

	extracted, failure := s.extractUpload(c, fileHeader, filename, fileType)
	if failure != nil {
		return failure()
	}

	data := map[string]any{
		"filename":              filename,
		"file_type":             extracted.FileType,
		"extracted_text_length": utf8.RuneCountInString(extracted.Text),
		"source_lang":           sourceLang,
		"target_lang":           targetLang,
	}

	textToTranslate := extracted.Text
	if shouldSummarize {
		clipped, truncated := textutil.Clip(extracted.Text, maxSummarizeChars)
		if truncated {
			data["text_truncated"] = true
		}
		summary, err := s.deps.Completions.Summarize(c.Request().Context(), clipped, completion.StyleConcise)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", filename).Msg("summarization failed")
			return internalError(c, "Summarization failed: "+err.Error())
		}
		textToTranslate = summary.Text
		data["summary"] = summary.Text
		data["tokens_used"] = summary.TotalTokens
	} else {
		clipped, truncated := textutil.Clip(textToTranslate, maxTranslateChars)
		if truncated {
			data["text_truncated"] = true
		}
		textToTranslate = clipped
	}

	resp, err := provider.Translate(c.Request().Context(), translation.TranslateRequest{
		Text:       textToTranslate,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Str("target_lang", targetLang).Msg("document translation failed")
		return s.respondFault(c, err)
	}

	data["original_text"] = textutil.Preview(textToTranslate, previewChars)
	data["translated_text"] = resp.Text
	data["provider"] = resp.ProviderName
	return success(c, data)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No file provided", nil)
	}
	filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
	if filename == "" || filename == "." {
		return fail(c, http.StatusBadRequest, "Invalid file", nil)
	}
	fileType, err := document.ResolveType(filename, "")
	if err != nil {
		metrics.UploadRejected("unsupported_type")
		return fail(c, http.StatusBadRequest, "Invalid file", nil)
	}

	customPrompt := c.FormValue("prompt")

	extracted, failure := s.extractUpload(c, fileHeader, filename, fileType)
	if failure != nil {
		return failure()
	}

	clipped, _ := textutil.Clip(extracted.Text, maxSummarizeChars)
	result, err := s.deps.Completions.Complete(c.Request().Context(), completion.Request{
		Prompt: completion.AnalysisPrompt(customPrompt, clipped),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("document analysis failed")
		return s.respondFault(c, err)
	}

	return success(c, map[string]any{
		"filename":    filename,
		"analysis":    result.Text,
		"tokens_used": result.TotalTokens,
	})
}

// extractUpload spools the upload to a temp file, verifies its content
// against the claimed type and extracts the text. The temp file is
// always removed before returning. A non-nil failure closure renders
// the error response.
func (s *Server) extractUpload(c echo.Context, fileHeader *multipart.FileHeader, filename string, fileType document.FileType) (*document.Extraction, func() error) {
	tmpPath, err := spoolUpload(fileHeader, fileType)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("store upload failed")
		return nil, func() error { return internalError(c, "Failed to store upload") }
	}
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			s.logger.Warn().Err(removeErr).Msg("remove temp upload failed")
		}
	}()

	if sniffed, err := document.Sniff(tmpPath); err == nil && sniffed != fileType {
		metrics.UploadRejected("content_mismatch")
		message := fmt.Sprintf("File content does not match the %s extension", fileType)
		return nil, func() error { return fail(c, http.StatusBadRequest, message, nil) }
	}

	extracted, err := document.Extract(tmpPath, string(fileType))
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("document extraction failed")
		return nil, func() error { return s.respondFault(c, err) }
	}
	if strings.TrimSpace(extracted.Text) == "" {
		metrics.UploadRejected("empty_document")
		return nil, func() error {
			return fail(c, http.StatusBadRequest, "No text content found in document", nil)
		}
	}
	return extracted, nil
}

// spoolUpload copies the multipart part to a temp file so the
// extractors can work from a path.
func spoolUpload(fileHeader *multipart.FileHeader, fileType document.FileType) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "gist-upload-*."+string(fileType))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), nil
}
