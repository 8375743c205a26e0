package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/language"
	"horse.fit/gist/internal/metrics"
)

const (
	// DefaultAzureEndpoint is the global Azure Translator endpoint.
	DefaultAzureEndpoint = "https://api.cognitive.microsofttranslator.com"
	// DefaultAzureRegion is used when no resource region is configured.
	DefaultAzureRegion = "centralindia"

	azureAPIVersion = "3.0"
	azureTimeout    = 30 * time.Second
)

// AzureOptions configures the Azure Translator provider.
type AzureOptions struct {
	Key      string
	Region   string
	Endpoint string
}

// AzureProvider translates text through the Azure Translator v3.0 REST
// API. The zero-value key is allowed at construction time; calls fail
// with a configuration fault until a key is present.
type AzureProvider struct {
	key      string
	region   string
	endpoint string
	client   *http.Client
}

// NewAzureProvider builds an Azure provider, applying the default
// endpoint and region where options are empty.
func NewAzureProvider(opts AzureOptions) *AzureProvider {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultAzureEndpoint
	}
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = DefaultAzureRegion
	}
	return &AzureProvider{
		key:      strings.TrimSpace(opts.Key),
		region:   region,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: azureTimeout,
		},
	}
}

func (p *AzureProvider) Name() string {
	return "azure"
}

func (p *AzureProvider) Translate(ctx context.Context, req TranslateRequest) (resp *TranslateResponse, err error) {
	if p == nil {
		return nil, fault.New(fault.Configuration, "translation provider is not configured")
	}
	if p.key == "" {
		return nil, fault.New(fault.Configuration, "AZURE_TRANSLATOR_KEY is not configured")
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fault.New(fault.Validation, "text is required")
	}
	targetLang, err := resolveTag("target", req.TargetLang)
	if err != nil {
		return nil, err
	}
	if targetLang == "" {
		return nil, fault.New(fault.Validation, "target language is required")
	}
	sourceLang, err := resolveTag("source", req.SourceLang)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() {
		metrics.ObserveProvider(p.Name(), "translate", err, time.Since(started))
	}()

	query := url.Values{}
	query.Set("api-version", azureAPIVersion)
	query.Set("to", targetLang)
	if sourceLang != "" {
		query.Set("from", sourceLang)
	}

	body, err := json.Marshal([]azureTranslateItem{{Text: text}})
	if err != nil {
		return nil, fault.Wrap(fault.Validation, err, "marshal translation request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/translate?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "build translation request")
	}
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", p.key)
	httpReq.Header.Set("Ocp-Apim-Subscription-Region", p.region)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-ClientTraceId", uuid.NewString())

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "send translation request")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, err, "read translation response")
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, remoteFault(httpResp.StatusCode, respBody, "translator")
	}

	var parsed []azureTranslateResult
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fault.Wrap(fault.Remote, err, "decode translation response")
	}
	if len(parsed) == 0 || len(parsed[0].Translations) == 0 {
		return nil, fault.New(fault.EmptyResult, "translation response was empty")
	}

	translated := strings.TrimSpace(parsed[0].Translations[0].Text)
	if translated == "" {
		return nil, fault.New(fault.EmptyResult, "translation response was empty")
	}

	detected := parsed[0].DetectedLanguage.Language
	resolvedSource := sourceLang
	if resolvedSource == "" {
		resolvedSource = detected
	}
	return &TranslateResponse{
		Text:         translated,
		SourceLang:   resolvedSource,
		TargetLang:   targetLang,
		DetectedLang: detected,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// resolveTag normalizes a language tag, distinguishing "not given" from
// "given but unusable".
func resolveTag(role, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	normalized := language.NormalizeTag(trimmed)
	if normalized == "" {
		return "", fault.New(fault.Validation, "%s language %q is not a valid language tag", role, trimmed)
	}
	return normalized, nil
}

// remoteFault shapes a non-2xx upstream reply into a remote fault,
// preferring the structured error message over the raw body.
func remoteFault(status int, body []byte, upstream string) error {
	var payload azureErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return fault.New(fault.Remote, "%s endpoint status %d: %s", upstream, status, msg)
		}
	}
	return fault.New(fault.Remote, "%s endpoint status %d: %s", upstream, status, strings.TrimSpace(string(body)))
}

type azureTranslateItem struct {
	Text string `json:"text"`
}

type azureTranslateResult struct {
	DetectedLanguage struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

type azureErrorResponse struct {
	Error struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
