// Package pipeline chains summarization and translation into one
// processing flow: input text is summarized in English, then the
// summary is translated to the target language.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/translation"
)

// Stage keys in Result.Stages.
const (
	StageSummary   = "openai_summary"
	StageTranslate = "translator"
)

// DefaultTargetLanguage is used when no target is requested.
const DefaultTargetLanguage = "hi"

// Summarizer produces an English summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, style completion.SummaryStyle) (*completion.Result, error)
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error)
}

// Service runs the summarize-then-translate flow.
type Service struct {
	summarizer Summarizer
	translator Translator
	logger     zerolog.Logger
}

func NewService(summarizer Summarizer, translator Translator, logger zerolog.Logger) *Service {
	return &Service{
		summarizer: summarizer,
		translator: translator,
		logger:     logger,
	}
}

// RunOptions tunes one pipeline run. Zero values select Hindi output
// and the concise summary style.
type RunOptions struct {
	TargetLanguage string
	Style          completion.SummaryStyle
}

// Stage records the outcome of one pipeline stage.
type Stage struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	LatencyMs  int64  `json:"latency_ms"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// FinalOutput is the payload of a fully successful run.
type FinalOutput struct {
	OriginalText      string `json:"original_text"`
	EnglishSummary    string `json:"english_summary"`
	TranslatedSummary string `json:"translated_summary"`
	TargetLanguage    string `json:"target_language"`
}

// Result describes one pipeline run. Failures are part of the result
// rather than returned as errors; callers branch on Success. Stages
// already run keep their outcome even when a later stage fails.
type Result struct {
	Input          string           `json:"input"`
	TargetLanguage string           `json:"target_language"`
	Stages         map[string]Stage `json:"stages"`
	Success        bool             `json:"success"`
	Error          string           `json:"error,omitempty"`
	FinalOutput    *FinalOutput     `json:"final_output,omitempty"`
}

// Run executes the two stages in order. The translator stage is never
// invoked when summarization fails.
func (s *Service) Run(ctx context.Context, input string, opts RunOptions) *Result {
	target := opts.TargetLanguage
	if target == "" {
		target = DefaultTargetLanguage
	}
	style := opts.Style
	if style == "" {
		style = completion.StyleConcise
	}

	result := &Result{
		Input:          input,
		TargetLanguage: target,
		Stages:         make(map[string]Stage, 2),
	}

	started := time.Now()
	summary, err := s.summarizer.Summarize(ctx, input, style)
	if err != nil {
		result.Stages[StageSummary] = Stage{
			Error:     err.Error(),
			LatencyMs: time.Since(started).Milliseconds(),
		}
		result.Error = "OpenAI stage failed: " + err.Error()
		s.logger.Warn().Err(err).Msg("pipeline summary stage failed")
		return result
	}
	result.Stages[StageSummary] = Stage{
		Success:    true,
		LatencyMs:  time.Since(started).Milliseconds(),
		TokensUsed: summary.TotalTokens,
	}
	s.logger.Debug().
		Int("summary_chars", len(summary.Text)).
		Int("tokens_used", summary.TotalTokens).
		Msg("pipeline summary stage complete")

	started = time.Now()
	translated, err := s.translator.Translate(ctx, translation.TranslateRequest{
		Text:       summary.Text,
		SourceLang: "en",
		TargetLang: target,
	})
	if err != nil {
		result.Stages[StageTranslate] = Stage{
			Error:     err.Error(),
			LatencyMs: time.Since(started).Milliseconds(),
		}
		result.Error = "Translator stage failed: " + err.Error()
		s.logger.Warn().Err(err).Str("target_lang", target).Msg("pipeline translate stage failed")
		return result
	}
	result.Stages[StageTranslate] = Stage{
		Success:   true,
		LatencyMs: time.Since(started).Milliseconds(),
	}

	result.Success = true
	result.FinalOutput = &FinalOutput{
		OriginalText:      input,
		EnglishSummary:    summary.Text,
		TranslatedSummary: translated.Text,
		TargetLanguage:    target,
	}
	s.logger.Info().
		Str("target_lang", target).
		Int("translated_chars", len(translated.Text)).
		Msg("pipeline complete")
	return result
}
