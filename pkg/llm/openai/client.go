package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tmc/langchaingo/llms"

	"github.com/artem13815/askexpert/pkg/llm"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.4
)

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("no choices returned by model")

// Client is a chat completions client on the official OpenAI SDK. Any
// OpenAI-compatible endpoint (OpenRouter, vLLM, Ollama) works via WithBaseURL.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
}

type Option func(*config)

type config struct {
	model       string
	temperature float64
	baseURL     string
	timeout     time.Duration
	appTitle    string
	referer     string
}

func withModel(model string) Option {
	return func(c *config) { c.model = model }
}

func withTemperature(t float64) Option {
	return func(c *config) { c.temperature = t }
}

func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithTimeout sets the per-request timeout enforced by the SDK.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithAppTitle sets the OpenRouter X-Title header.
func WithAppTitle(title string) Option {
	return func(c *config) { c.appTitle = title }
}

// WithReferer sets the OpenRouter HTTP-Referer header.
func WithReferer(referer string) Option {
	return func(c *config) { c.referer = referer }
}

// New builds a client for apiKey. The model is always DefaultModel at
// DefaultTemperature. Retries are disabled: one ask is one request.
func New(apiKey string, opts ...Option) *Client {
	cfg := config{model: DefaultModel, temperature: DefaultTemperature}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.model == "" {
		cfg.model = DefaultModel
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(cfg.timeout))
	}
	if cfg.referer != "" {
		clientOpts = append(clientOpts, option.WithHeader("HTTP-Referer", cfg.referer))
	}
	if cfg.appTitle != "" {
		clientOpts = append(clientOpts, option.WithHeader("X-Title", cfg.appTitle))
	}

	return &Client{
		client:      openai.NewClient(clientOpts...),
		model:       cfg.model,
		temperature: cfg.temperature,
	}
}

func (c *Client) ModelName() string { return c.model }

func (c *Client) Temperature() float64 { return c.temperature }

// Complete sends the conversation and returns the first choice verbatim.
func (c *Client) Complete(ctx context.Context, messages []llms.ChatMessage) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(c.temperature),
	}
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{StatusCode: apiErr.StatusCode, Err: fmt.Errorf("openai chat completion: %w", err)}
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", &llm.ProviderError{Err: ErrNoChoices}
	}
	return completion.Choices[0].Message.Content, nil
}

func toOpenAIMessages(msgs []llms.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(msgs))
	for i, m := range msgs {
		switch m.GetType() {
		case llms.ChatMessageTypeSystem:
			out[i] = openai.SystemMessage(m.GetContent())
		case llms.ChatMessageTypeAI:
			out[i] = openai.AssistantMessage(m.GetContent())
		default:
			out[i] = openai.UserMessage(m.GetContent())
		}
	}
	return out
}
