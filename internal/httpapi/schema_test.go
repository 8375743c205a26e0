package httpapi

import (
	"strings"
	"testing"

	"horse.fit/gist/internal/fault"
)

func TestDecodeTranslateRequest(t *testing.T) {
	t.Parallel()

	req, err := decodeTranslateRequest(strings.NewReader(
		`{"text":"Hello","source_lang":"en","target_lang":"hi","summarize":true,"summary_style":"detailed"}`,
	))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Text != "Hello" || !req.Summarize || req.SummaryStyle != "detailed" {
		t.Fatalf("request = %+v", req)
	}
	if req.SourceLang == nil || *req.SourceLang != "en" {
		t.Fatalf("source lang = %v, want en", req.SourceLang)
	}
	if req.TargetLang == nil || *req.TargetLang != "hi" {
		t.Fatalf("target lang = %v, want hi", req.TargetLang)
	}
}

func TestDecodeTranslateRequestDistinguishesAbsentFromEmpty(t *testing.T) {
	t.Parallel()

	absent, err := decodeTranslateRequest(strings.NewReader(`{"text":"Hello"}`))
	if err != nil {
		t.Fatalf("decode absent: %v", err)
	}
	if absent.TargetLang != nil || absent.SourceLang != nil {
		t.Fatalf("absent fields decoded non-nil: %+v", absent)
	}

	empty, err := decodeTranslateRequest(strings.NewReader(`{"text":"Hello","target_lang":""}`))
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if empty.TargetLang == nil || *empty.TargetLang != "" {
		t.Fatalf("explicit empty target = %v, want pointer to empty string", empty.TargetLang)
	}
}

func TestDecodeTranslateRequestRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "unknown field", body: `{"text":"x","shout":true}`},
		{name: "wrong type", body: `{"text":7}`},
		{name: "bad style", body: `{"text":"x","summary_style":"haiku"}`},
		{name: "trailing content", body: `{"text":"x"} true`},
		{name: "not json", body: `text=hello`},
	}
	for _, tc := range cases {
		_, err := decodeTranslateRequest(strings.NewReader(tc.body))
		if err == nil {
			t.Fatalf("%s: decode accepted %q", tc.name, tc.body)
		}
		if !fault.IsKind(err, fault.Validation) {
			t.Fatalf("%s: kind = %v, want validation", tc.name, fault.KindOf(err))
		}
	}
}
