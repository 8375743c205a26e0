// Package completion generates text through the Azure OpenAI chat
// completions API. It powers summarization, explanation and free-form
// document analysis.
package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"horse.fit/gist/internal/fault"
	"horse.fit/gist/internal/metrics"
)

const (
	// DefaultDeployment names the chat model deployment used when none
	// is configured.
	DefaultDeployment = "gpt-4o-mini"
	// DefaultAPIVersion is the Azure OpenAI REST API version.
	DefaultAPIVersion = "2024-02-15-preview"
	// DefaultTimeout bounds one completion round trip.
	DefaultTimeout = 60 * time.Second

	defaultTemperature float32 = 0.7
	defaultMaxTokens           = 1000

	defaultSystemMessage = "You are a helpful AI assistant. Provide clear, concise, and accurate responses."
)

// Options configures the completion client.
type Options struct {
	Key        string
	Endpoint   string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// Client calls one Azure OpenAI deployment. Construction always
// succeeds; calls fail with a configuration fault until both key and
// endpoint are present.
type Client struct {
	key        string
	endpoint   string
	deployment string
	api        *openai.Client
}

// NewClient builds a completion client, applying defaults for the
// deployment, API version and timeout.
func NewClient(opts Options) *Client {
	c := &Client{
		key:        strings.TrimSpace(opts.Key),
		endpoint:   strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/"),
		deployment: strings.TrimSpace(opts.Deployment),
	}
	if c.deployment == "" {
		c.deployment = DefaultDeployment
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if c.key != "" && c.endpoint != "" {
		cfg := openai.DefaultAzureConfig(c.key, c.endpoint)
		cfg.APIVersion = apiVersion
		cfg.HTTPClient = &http.Client{Timeout: timeout}
		c.api = openai.NewClientWithConfig(cfg)
	}
	return c
}

// Deployment returns the configured deployment name.
func (c *Client) Deployment() string {
	if c == nil {
		return ""
	}
	return c.deployment
}

// Request describes one chat completion. Zero values for System,
// Temperature and MaxTokens select the service defaults.
type Request struct {
	Prompt      string
	System      string
	Temperature float32
	MaxTokens   int
}

// Result contains the generated text and token accounting.
type Result struct {
	Text             string `json:"text"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

func (c *Client) Complete(ctx context.Context, req Request) (res *Result, err error) {
	if c == nil {
		return nil, fault.New(fault.Configuration, "completion client is not configured")
	}
	if c.key == "" {
		return nil, fault.New(fault.Configuration, "AZURE_OPENAI_API_KEY is not configured")
	}
	if c.endpoint == "" {
		return nil, fault.New(fault.Configuration, "AZURE_OPENAI_ENDPOINT is not configured")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, fault.New(fault.Validation, "prompt is required")
	}
	system := strings.TrimSpace(req.System)
	if system == "" {
		system = defaultSystemMessage
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	started := time.Now()
	defer func() {
		metrics.ObserveProvider("openai", "complete", err, time.Since(started))
	}()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, completionFault(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fault.New(fault.EmptyResult, "completion response was empty")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, fault.New(fault.EmptyResult, "completion response was empty")
	}

	return &Result{
		Text:             text,
		Model:            c.deployment,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// completionFault classifies a client library error. Replies from the
// service keep their upstream message; everything else is transport.
func completionFault(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fault.New(fault.Remote, "OpenAI API Error: %s", apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fault.New(fault.Remote, "OpenAI API Error: %s", reqErr.Error())
	}
	return fault.Wrap(fault.Transport, err, "send completion request")
}
