package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/translation"
)

// Request-level defaults matching the API contract.
const (
	defaultSourceLang = "en"
	defaultTargetLang = "hi"
)

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"status":  "healthy",
		"service": "gist",
		"version": serviceVersion,
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	langs, err := s.deps.Languages.Languages(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list languages failed")
		return s.respondFault(c, err)
	}
	return success(c, map[string]any{
		"languages": langs,
		"count":     len(langs),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	req, err := decodeTranslateRequest(c.Request().Body)
	if err != nil {
		return s.respondFault(c, err)
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		return fail(c, http.StatusBadRequest, "No text provided", nil)
	}

	sourceLang := defaultSourceLang
	if req.SourceLang != nil {
		sourceLang = strings.TrimSpace(*req.SourceLang)
	}
	targetLang := defaultTargetLang
	if req.TargetLang != nil {
		targetLang = strings.TrimSpace(*req.TargetLang)
		if targetLang == "" {
			return fail(c, http.StatusBadRequest, "No target_lang provided", nil)
		}
	}

	provider, err := s.deps.Translators.Provider(req.Provider)
	if err != nil {
		return s.respondFault(c, err)
	}

	data := map[string]any{
		"original_text": text,
		"source_lang":   sourceLang,
		"target_lang":   targetLang,
	}

	if req.Summarize {
		summary, err := s.deps.Completions.Summarize(c.Request().Context(), text, completion.SummaryStyle(req.SummaryStyle))
		if err != nil {
			s.logger.Error().Err(err).Msg("summarization failed")
			return internalError(c, "Summarization failed: "+err.Error())
		}
		text = summary.Text
		data["summary"] = summary.Text
		data["tokens_used"] = summary.TotalTokens
	}

	resp, err := provider.Translate(c.Request().Context(), translation.TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("target_lang", targetLang).Msg("translation failed")
		return s.respondFault(c, err)
	}

	data["translated_text"] = resp.Text
	data["provider"] = resp.ProviderName
	if resp.DetectedLang != "" {
		data["detected_language"] = resp.DetectedLang
	}
	return success(c, data)
}

// respondFault maps a component failure onto the API contract:
// validation faults are client errors, everything else surfaces as an
// internal error carrying the failure message.
func (s *Server) respondFault(c echo.Context, err error) error {
	switch fault.KindOf(err) {
	case fault.Validation:
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	case fault.Configuration, fault.Transport, fault.Remote, fault.EmptyResult, fault.Extraction:
		return internalError(c, err.Error())
	default:
		return internalError(c, "Internal server error")
	}
}
