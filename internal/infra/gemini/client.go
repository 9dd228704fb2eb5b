package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"factcheck-quiz-service/internal/factcheck"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.0-flash"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 2048
)

// ErrMissingAPIKey is returned when the client is built without a credential.
var ErrMissingAPIKey = errors.New("gemini: API key not configured")

// Config holds the connection settings for the generateContent endpoint.
type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// Client calls the generateContent endpoint of the generative-language API.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	endpoint := strings.TrimRight(valueOrDefault(cfg.Endpoint, DefaultEndpoint), "/")
	model := valueOrDefault(cfg.Model, DefaultModel)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = factcheck.DefaultTimeout
	}
	return &Client{
		url:        fmt.Sprintf("%s/models/%s:generateContent", endpoint, model),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// GenerateContent posts the prompt and returns the decoded JSON body. The body is
// returned untyped because the envelope shape is not guaranteed by the provider.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (any, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &factcheck.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &factcheck.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &factcheck.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &factcheck.TransportError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &factcheck.TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return decoded, nil
}

func valueOrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
