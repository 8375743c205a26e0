package translation

import "context"

// Provider translates free-form text between languages.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
}

// TranslateRequest describes one translation request. SourceLang may be
// empty, in which case the provider detects the source language.
type TranslateRequest struct {
	Text       string
	SourceLang string // BCP 47 (for example: "en", "zh-Hans")
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	DetectedLang string // set when the provider detected the source
	ProviderName string
	LatencyMs    int64
}
