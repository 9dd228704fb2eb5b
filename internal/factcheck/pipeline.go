package factcheck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"factcheck-quiz-service/internal/domain"
)

// DefaultTimeout bounds one model call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Model produces the raw text the model wrote for a prompt.
// Failures are *TransportError or *EnvelopeError.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Transport performs the generateContent call and returns the decoded response body.
type Transport interface {
	GenerateContent(ctx context.Context, prompt string) (any, error)
}

// EnvelopeModel adapts a Transport to a Model by walking the response envelope.
type EnvelopeModel struct {
	transport Transport
	verbose   bool
}

func NewEnvelopeModel(transport Transport, verbose bool) *EnvelopeModel {
	return &EnvelopeModel{transport: transport, verbose: verbose}
}

func (m *EnvelopeModel) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := m.transport.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	if m.verbose {
		log.Printf("model response: %s", rawJSON(body))
	}
	return ExtractText(body)
}

// Checker runs the classification pipeline: prompt, model call, extraction, parsing.
type Checker struct {
	model   Model
	timeout time.Duration
	verbose bool
}

func NewChecker(model Model, timeout time.Duration, verbose bool) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{model: model, timeout: timeout, verbose: verbose}
}

// Check classifies text. Every failure is folded into the returned result:
// unreachable model or malformed envelope yield an Error verdict, illegible model
// output yields Unknown.
func (c *Checker) Check(ctx context.Context, text string) domain.ClassificationResult {
	prompt := BuildPrompt(text)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.verbose {
		log.Printf("classifying %d chars (prompt %d chars)", len(text), len(prompt))
	}

	raw, err := c.model.Generate(ctx, prompt)
	if err != nil {
		return errorResult(err)
	}
	if c.verbose {
		log.Printf("model text: %s", raw)
	}
	return ParseResult(raw)
}

func errorResult(err error) domain.ClassificationResult {
	var envErr *EnvelopeError
	if errors.As(err, &envErr) {
		log.Printf("model envelope error: %s", envErr.Step)
		return domain.ErrorResult(envErr.Error())
	}
	log.Printf("model call failed: %v", err)
	return domain.ErrorResult(fmt.Sprintf("API Error: %v", err))
}
