package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"factcheck-quiz-service/internal/factcheck"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = openai.GPT4oMini

// ErrMissingAPIKey is returned when the client is built without a credential.
var ErrMissingAPIKey = errors.New("openai: API key not configured")

// Config holds the chat-completions connection settings. BaseURL is optional and
// allows OpenAI-compatible gateways.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client is a factcheck.Model backed by the chat completions API.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = factcheck.DefaultTimeout
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: openai.NewClientWithConfig(clientCfg), model: model}, nil
}

// Generate sends the prompt as a single user message and returns the first choice.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", transportError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &factcheck.EnvelopeError{Step: "No choices returned", Raw: rawResponse(resp)}
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", &factcheck.EnvelopeError{Step: "Empty text returned", Raw: rawResponse(resp)}
	}
	return text, nil
}

func transportError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &factcheck.TransportError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &factcheck.TransportError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &factcheck.TransportError{Err: err}
}

func rawResponse(resp openai.ChatCompletionResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return resp.ID
	}
	return string(data)
}
