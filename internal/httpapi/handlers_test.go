package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/gist/internal/completion"
	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/translation"
)

type stubProvider struct {
	calls  int
	gotReq translation.TranslateRequest
	resp   *translation.TranslateResponse
	err    error
}

func (p *stubProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	p.calls++
	p.gotReq = req
	if p.err != nil {
		return nil, p.err
	}
	resp := p.resp
	if resp == nil {
		resp = &translation.TranslateResponse{Text: "translated", ProviderName: "stub"}
	}
	return resp, nil
}

func (p *stubProvider) Name() string { return "stub" }

type stubTranslators struct {
	provider *stubProvider
	err      error
}

func (s *stubTranslators) Provider(string) (translation.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.provider, nil
}

func (s *stubTranslators) DefaultProvider() string { return "stub" }

type stubLanguages struct {
	calls int
	langs map[string]translation.LanguageInfo
	err   error
}

func (s *stubLanguages) Languages(context.Context) (map[string]translation.LanguageInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.langs, nil
}

type stubCompletions struct {
	completeCalls  int
	summarizeCalls int
	gotPrompt      string
	gotText        string
	gotStyle       completion.SummaryStyle
	res            *completion.Result
	err            error
}

func (s *stubCompletions) Complete(_ context.Context, req completion.Request) (*completion.Result, error) {
	s.completeCalls++
	s.gotPrompt = req.Prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func (s *stubCompletions) Summarize(_ context.Context, text string, style completion.SummaryStyle) (*completion.Result, error) {
	s.summarizeCalls++
	s.gotText = text
	s.gotStyle = style
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

type testEnv struct {
	provider    *stubProvider
	languages   *stubLanguages
	completions *stubCompletions
	server      *Server
}

func newTestEnv(opts Options) *testEnv {
	provider := &stubProvider{}
	languages := &stubLanguages{}
	completions := &stubCompletions{res: &completion.Result{Text: "A summary.", TotalTokens: 54}}

	translators := &stubTranslators{provider: provider}
	deps := Deps{
		Translators: translators,
		Languages:   languages,
		Completions: completions,
	}
	return &testEnv{
		provider:    provider,
		languages:   languages,
		completions: completions,
		server:      NewServer(deps, zerolog.Nop(), opts),
	}
}

type jsendPayload struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (env *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) (int, jsendPayload) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	env.server.build().ServeHTTP(rec, req)

	var payload jsendPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, payload
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	code, payload := env.do(t, http.MethodGet, "/api/v1/health", nil, "")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if payload.Status != "success" {
		t.Fatalf("jsend status = %q, want success", payload.Status)
	}
	if payload.Data["service"] != "gist" || payload.Data["status"] != "healthy" {
		t.Fatalf("data = %v", payload.Data)
	}
}

func TestHandleLanguages(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.languages.langs = map[string]translation.LanguageInfo{
		"en": {Name: "English"},
		"hi": {Name: "Hindi"},
	}
	code, payload := env.do(t, http.MethodGet, "/api/v1/languages", nil, "")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if got := payload.Data["count"]; got != float64(2) {
		t.Fatalf("count = %v, want 2", got)
	}
}

func TestHandleLanguagesUpstreamFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.languages.err = fault.New(fault.Remote, "languages endpoint status 503: upstream unavailable")
	code, payload := env.do(t, http.MethodGet, "/api/v1/languages", nil, "")

	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if payload.Status != "error" {
		t.Fatalf("jsend status = %q, want error", payload.Status)
	}
	if !strings.Contains(payload.Message, "status 503") {
		t.Fatalf("message = %q, want upstream detail", payload.Message)
	}
}

func TestHandleTranslate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.provider.resp = &translation.TranslateResponse{Text: "नमस्ते", ProviderName: "stub"}

	body := strings.NewReader(`{"text":"Hello","target_lang":"hi"}`)
	code, payload := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", code, payload)
	}
	if env.provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", env.provider.calls)
	}
	if env.provider.gotReq.SourceLang != "en" {
		t.Fatalf("source lang = %q, want default en", env.provider.gotReq.SourceLang)
	}
	if env.provider.gotReq.TargetLang != "hi" {
		t.Fatalf("target lang = %q, want hi", env.provider.gotReq.TargetLang)
	}
	if payload.Data["translated_text"] != "नमस्ते" {
		t.Fatalf("translated_text = %v", payload.Data["translated_text"])
	}
	if payload.Data["original_text"] != "Hello" {
		t.Fatalf("original_text = %v", payload.Data["original_text"])
	}
	if env.completions.summarizeCalls != 0 {
		t.Fatalf("summarize calls = %d, want 0", env.completions.summarizeCalls)
	}
}

func TestHandleTranslateDefaultsTarget(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	body := strings.NewReader(`{"text":"Hello"}`)
	code, _ := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if env.provider.gotReq.TargetLang != "hi" {
		t.Fatalf("target lang = %q, want default hi", env.provider.gotReq.TargetLang)
	}
}

func TestHandleTranslateSummarizes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.completions.res = &completion.Result{Text: "A summary.", TotalTokens: 99}
	env.provider.resp = &translation.TranslateResponse{Text: "एक सारांश", ProviderName: "stub"}

	body := strings.NewReader(`{"text":"A long article.","target_lang":"hi","summarize":true}`)
	code, payload := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", code, payload)
	}
	if env.completions.summarizeCalls != 1 {
		t.Fatalf("summarize calls = %d, want 1", env.completions.summarizeCalls)
	}
	if env.provider.gotReq.Text != "A summary." {
		t.Fatalf("translated text = %q, want the summary", env.provider.gotReq.Text)
	}
	if payload.Data["summary"] != "A summary." {
		t.Fatalf("summary = %v", payload.Data["summary"])
	}
	if payload.Data["tokens_used"] != float64(99) {
		t.Fatalf("tokens_used = %v, want 99", payload.Data["tokens_used"])
	}
}

func TestHandleTranslateValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{name: "empty body", body: "", wantMessage: "No JSON data provided"},
		{name: "blank text", body: `{"text":"  "}`, wantMessage: "No text provided"},
		{name: "explicit empty target", body: `{"text":"Hello","target_lang":""}`, wantMessage: "No target_lang provided"},
		{name: "unknown field", body: `{"text":"Hello","bogus":1}`, wantMessage: "invalid request"},
		{name: "trailing content", body: `{"text":"Hello"} {}`, wantMessage: "trailing content"},
		{name: "wrong type", body: `{"text":42}`, wantMessage: "invalid request"},
	}
	for _, tc := range cases {
		env := newTestEnv(Options{})
		code, payload := env.do(t, http.MethodPost, "/api/v1/translate", strings.NewReader(tc.body), "application/json")

		if code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400 (%+v)", tc.name, code, payload)
		}
		if payload.Status != "fail" {
			t.Fatalf("%s: jsend status = %q, want fail", tc.name, payload.Status)
		}
		if !strings.Contains(payload.Message, tc.wantMessage) {
			t.Fatalf("%s: message = %q, want %q", tc.name, payload.Message, tc.wantMessage)
		}
		if env.provider.calls != 0 || env.completions.summarizeCalls != 0 {
			t.Fatalf("%s: backend was called (%d/%d)", tc.name, env.provider.calls, env.completions.summarizeCalls)
		}
	}
}

func TestHandleTranslateSummarizeFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.completions.err = fault.New(fault.Remote, "OpenAI API Error: Rate limit exceeded")

	body := strings.NewReader(`{"text":"Hello","summarize":true}`)
	code, payload := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if !strings.HasPrefix(payload.Message, "Summarization failed: ") {
		t.Fatalf("message = %q, want summarization prefix", payload.Message)
	}
	if env.provider.calls != 0 {
		t.Fatalf("provider calls = %d, want 0 after summary failure", env.provider.calls)
	}
}

func TestHandleTranslateProviderFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.provider.err = fault.New(fault.Remote, "translator endpoint status 401: not authorized")

	body := strings.NewReader(`{"text":"Hello"}`)
	code, payload := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if !strings.Contains(payload.Message, "status 401") {
		t.Fatalf("message = %q, want upstream detail", payload.Message)
	}
}

func TestHandleTranslateInvalidLanguageTag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	env.provider.err = fault.New(fault.Validation, `target language "x!" is not a valid language tag`)

	body := strings.NewReader(`{"text":"Hello","target_lang":"x!"}`)
	code, payload := env.do(t, http.MethodPost, "/api/v1/translate", body, "application/json")

	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if payload.Status != "fail" {
		t.Fatalf("jsend status = %q, want fail", payload.Status)
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	env := newTestEnv(Options{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	env.server.build().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
