package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/language"
	"horse.fit/gist/internal/metrics"
)

const (
	// DefaultLocalEndpoint points to a local OpenAI-compatible translation endpoint.
	DefaultLocalEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultLocalModel is the default HY-MT model name.
	DefaultLocalModel = "tencent/HY-MT1.5-7B"

	localTimeout = 120 * time.Second
)

// LocalOptions configures a LocalProvider. Key is optional; most local
// inference servers ignore it.
type LocalOptions struct {
	Endpoint string
	Model    string
	Key      string
}

// LocalProvider translates text through an OpenAI-compatible chat
// completions endpoint, typically a machine-translation model served on the
// same host.
type LocalProvider struct {
	model string
	api   *openai.Client
}

// NewLocalProviderFromEnv builds a local provider from env vars.
//   - TRANSLATION_ENDPOINT (default: http://127.0.0.1:8845/v1)
//   - TRANSLATION_MODEL (default: tencent/HY-MT1.5-7B)
//   - TRANSLATION_API_KEY (optional)
func NewLocalProviderFromEnv() *LocalProvider {
	return NewLocalProvider(LocalOptions{
		Endpoint: os.Getenv("TRANSLATION_ENDPOINT"),
		Model:    os.Getenv("TRANSLATION_MODEL"),
		Key:      os.Getenv("TRANSLATION_API_KEY"),
	})
}

// NewLocalProvider builds a local provider for the given endpoint/model.
func NewLocalProvider(opts LocalOptions) *LocalProvider {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultLocalModel
	}

	cfg := openai.DefaultConfig(strings.TrimSpace(opts.Key))
	cfg.BaseURL = normalizeLocalEndpoint(opts.Endpoint)
	cfg.HTTPClient = &http.Client{Timeout: localTimeout}

	return &LocalProvider{
		model: model,
		api:   openai.NewClientWithConfig(cfg),
	}
}

func (p *LocalProvider) Name() string {
	return "local"
}

// Model returns the configured model identifier.
func (p *LocalProvider) Model() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *LocalProvider) Translate(ctx context.Context, req TranslateRequest) (resp *TranslateResponse, err error) {
	if p == nil {
		return nil, fault.New(fault.Configuration, "local provider is not configured")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fault.New(fault.Validation, "text is required")
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		return nil, fault.New(fault.Validation, "target language is required")
	}
	sourceLang, err := resolveTag("source", req.SourceLang)
	if err != nil {
		return nil, err
	}
	targetLang, err := resolveTag("target", req.TargetLang)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() {
		metrics.ObserveProvider(p.Name(), "translate", err, time.Since(started))
	}()

	out, err := p.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: localPrompt(text, sourceLang, targetLang)},
		},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return nil, localFault(err)
	}
	if len(out.Choices) == 0 {
		return nil, fault.New(fault.EmptyResult, "translation response was empty")
	}
	translated := strings.TrimSpace(out.Choices[0].Message.Content)
	if translated == "" {
		return nil, fault.New(fault.EmptyResult, "translation response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func localFault(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fault.New(fault.Remote, "translation endpoint status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fault.New(fault.Remote, "translation endpoint status %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return fault.Wrap(fault.Transport, err, "send translation request")
}

type languageLabel struct {
	english string
	chinese string
}

// Labels for the HY-MT prompt templates. Tags outside the table fall back to
// the raw tag text.
var localLanguageLabels = map[string]languageLabel{
	"en": {english: "English", chinese: "英语"},
	"zh": {english: "Chinese", chinese: "中文"},
	"hi": {english: "Hindi", chinese: "印地语"},
	"es": {english: "Spanish", chinese: "西班牙语"},
	"fr": {english: "French", chinese: "法语"},
	"de": {english: "German", chinese: "德语"},
	"it": {english: "Italian", chinese: "意大利语"},
	"pt": {english: "Portuguese", chinese: "葡萄牙语"},
	"ru": {english: "Russian", chinese: "俄语"},
	"ja": {english: "Japanese", chinese: "日语"},
	"ko": {english: "Korean", chinese: "韩语"},
	"ar": {english: "Arabic", chinese: "阿拉伯语"},
	"th": {english: "Thai", chinese: "泰语"},
	"vi": {english: "Vietnamese", chinese: "越南语"},
	"id": {english: "Indonesian", chinese: "印度尼西亚语"},
	"tr": {english: "Turkish", chinese: "土耳其语"},
	"nl": {english: "Dutch", chinese: "荷兰语"},
	"pl": {english: "Polish", chinese: "波兰语"},
}

func localPrompt(text, sourceLang, targetLang string) string {
	target := localLabel(targetLang)
	if isChineseLanguage(sourceLang) || isChineseLanguage(targetLang) {
		// HY-MT zh<=>xx template.
		return fmt.Sprintf("将以下文本翻译为%s，注意只需要输出翻译后的结果，不要额外解释：\n\n%s", target.chinese, text)
	}
	// HY-MT xx<=>xx template.
	return fmt.Sprintf("Translate the following segment into %s, without additional explanation.\n\n%s", target.english, text)
}

func localLabel(lang string) languageLabel {
	if labels, ok := localLanguageLabels[language.NormalizeCode(lang)]; ok {
		return labels
	}
	fallback := strings.TrimSpace(lang)
	if fallback == "" {
		fallback = "English"
	}
	return languageLabel{english: fallback, chinese: fallback}
}

func isChineseLanguage(lang string) bool {
	return language.NormalizeCode(lang) == "zh"
}

// normalizeLocalEndpoint coerces the endpoint into a base URL ending in /v1,
// the form the OpenAI client appends /chat/completions to.
func normalizeLocalEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultLocalEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLocalEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(parsed.Path, "/v1") {
		parsed.Path += "/v1"
	}
	return parsed.String()
}
