// Package llm provides the client for the local text-generation backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/spherical-ai/summary-engine/internal/domain"
	"github.com/spherical-ai/summary-engine/internal/observability"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
	defaultTimeout = 120 * time.Second
)

// Config holds generation client settings.
type Config struct {
	BaseURL     string
	Model       string
	Timeout     time.Duration // per-call timeout, never compounded across calls
	Temperature float64
	TopP        float64

	// MaxResponseLength caps the generated text, in characters. Zero
	// leaves the backend default in place.
	MaxResponseLength int
}

// Client calls an Ollama-compatible generation backend. It implements
// domain.Generator.
type Client struct {
	api         *ollama.Client
	model       string
	timeout     time.Duration
	temperature float64
	topP        float64
	numPredict  int
	logger      *observability.Logger
}

// NewClient creates a new generation client.
func NewClient(cfg Config, logger *observability.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}

	// Per-call deadlines come from the context in Generate, so the
	// underlying HTTP client carries no timeout of its own.
	return &Client{
		api:         ollama.NewClient(u, &http.Client{}),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		numPredict:  cfg.MaxResponseLength / 4, // rough estimate: 4 chars per token
		logger:      logger.WithOperation("llm"),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends a prompt to the backend and returns the generated text.
// Failures are classified into the domain error taxonomy; an empty
// generated-text field is an InvalidResponse error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	options := map[string]any{
		"temperature": c.temperature,
		"top_p":       c.topP,
	}
	if c.numPredict > 0 {
		options["num_predict"] = c.numPredict
	}

	req := &ollama.GenerateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}

	start := time.Now()
	var text strings.Builder
	err := c.api.Generate(callCtx, req, func(resp ollama.GenerateResponse) error {
		text.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", classifyError(err)
	}

	generated := text.String()
	if strings.TrimSpace(generated) == "" {
		return "", domain.InvalidResponseError("backend response contained no generated text", nil)
	}

	c.logger.Debug().
		Int("prompt_chars", len(prompt)).
		Int("response_chars", len(generated)).
		Dur("elapsed", time.Since(start)).
		Msg("Generation call completed")

	return generated, nil
}

// CheckAvailability verifies the backend is reachable and reports whether
// the configured model is installed.
func (c *Client) CheckAvailability(ctx context.Context) (bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.List(callCtx)
	if err != nil {
		return false, classifyError(err)
	}

	for _, m := range resp.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, c.model+":") {
			return true, nil
		}
	}

	return false, nil
}

// classifyError maps a transport failure onto the domain error taxonomy.
// Context cancellation is passed through untouched so callers can tell an
// interrupted run apart from a backend failure.
func classifyError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, syscall.ECONNREFUSED):
		return domain.ServiceUnavailableError("generation backend is not reachable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.RequestTimeoutError("generation call timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.RequestTimeoutError("generation call timed out", err)
	}

	return domain.APIError("generation request failed", err)
}
