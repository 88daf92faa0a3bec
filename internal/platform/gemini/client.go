// Package gemini implements the generation.Backend interface using Google's
// Gemini API for JSON generation and text embeddings.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nollyprod/stagehand-api/internal/generation"
)

// Config holds the Gemini adapter settings.
type Config struct {
	// APIKey authenticates against the Gemini API.
	APIKey string

	// Model is the generation model name, e.g. "gemini-2.0-flash".
	Model string

	// EmbeddingModel is the embedding model name, e.g. "text-embedding-004".
	EmbeddingModel string

	// MaxRetries is the number of retries after the initial attempt for
	// transient errors.
	MaxRetries int

	// RetryDelaySeconds is the base delay for exponential backoff.
	RetryDelaySeconds int

	// RequestTimeout bounds each individual API call. The handler-level
	// deadline still applies on top of this.
	RequestTimeout time.Duration
}

// Client implements generation.Backend against the Gemini API with
// exponential-backoff retries for transient errors.
type Client struct {
	logger *slog.Logger
	config Config
	client *genai.Client
}

// NewClient creates a Gemini-backed generation client.
func NewClient(ctx context.Context, logger *slog.Logger, config Config) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if config.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: embedding model name cannot be empty", generation.ErrInvalidConfig)
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger.With("component", "gemini_client"),
		config: config,
		client: client,
	}, nil
}

// GenerateJSON sends the prompt pair to the generation model, requesting a
// JSON response, and returns the raw JSON bytes. Transient API errors are
// retried with exponential backoff and jitter; safety blocks and empty
// responses are permanent.
func (c *Client) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error) {
	var result []byte

	err := c.withRetry(ctx, "generate_content", func(callCtx context.Context) (bool, error) {
		resp, err := c.client.Models.GenerateContent(callCtx, c.config.Model,
			genai.Text(userPrompt),
			&genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
				ResponseMIMEType:  "application/json",
			})
		if err != nil {
			// API-level errors are assumed transient.
			return true, fmt.Errorf("%w: %v", generation.ErrBackendUnavailable, err)
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return false, fmt.Errorf("%w: no content generated", generation.ErrMalformedResponse)
		}
		if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return false, fmt.Errorf("%w: generation stopped by safety filters", generation.ErrContentBlocked)
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return false, fmt.Errorf("%w: empty response text", generation.ErrMalformedResponse)
		}

		result = []byte(stripCodeFence(text))
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: embedding input cannot be empty", generation.ErrMalformedResponse)
	}

	var vector []float64

	err := c.withRetry(ctx, "embed_content", func(callCtx context.Context) (bool, error) {
		resp, err := c.client.Models.EmbedContent(callCtx, c.config.EmbeddingModel,
			genai.Text(text), nil)
		if err != nil {
			return true, fmt.Errorf("%w: %v", generation.ErrBackendUnavailable, err)
		}
		if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return false, fmt.Errorf("%w: empty embedding response", generation.ErrMalformedResponse)
		}

		values := resp.Embeddings[0].Values
		vector = make([]float64, len(values))
		for i, v := range values {
			vector[i] = float64(v)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return vector, nil
}

// withRetry runs call with per-attempt timeouts and exponential backoff.
// call reports whether its error is transient; permanent errors return
// immediately.
func (c *Client) withRetry(ctx context.Context, operation string, call func(ctx context.Context) (transient bool, err error)) error {
	maxRetries := c.config.MaxRetries
	if maxRetries < 0 {
		c.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	baseDelaySeconds := c.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
		transient, err := call(callCtx)
		cancel()

		if err == nil {
			return nil
		}

		if callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			err = fmt.Errorf("%w: %s exceeded %s", generation.ErrBackendTimeout, operation, c.config.RequestTimeout)
			transient = true
		}

		c.logger.WarnContext(ctx, "gemini API call failed",
			"operation", operation,
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return err
		}
		if attempt >= maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// stripCodeFence removes a markdown fence the model sometimes wraps around
// JSON output despite the response MIME type.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
