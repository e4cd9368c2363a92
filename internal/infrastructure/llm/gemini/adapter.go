package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"computer-use-agent/internal/application/port/output"
)

var _ output.ReasonerPort = (*Adapter)(nil)

// Adapter implements the reasoner port against the Gemini generateContent
// REST API with the computer-use tool enabled.
type Adapter struct {
	apiKey          string
	endpoint        string
	httpClient      *http.Client
	maxRetryElapsed time.Duration
	logger          output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	// MaxRetryElapsed bounds the exponential backoff applied to transient
	// HTTP failures (429/5xx). The agent loop itself never retries.
	MaxRetryElapsed time.Duration
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:          apiKey,
		Model:           model,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Timeout:         2 * time.Minute,
		MaxRetryElapsed: 2 * time.Minute,
	}
}

func NewAdapter(cfg Config, logger output.LoggerPort) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	return &Adapter{
		apiKey:          cfg.APIKey,
		endpoint:        fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(cfg.BaseURL, "/"), cfg.Model),
		maxRetryElapsed: cfg.MaxRetryElapsed,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.WithField("component", "reasoner.gemini"),
	}, nil
}

func (a *Adapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	payload := buildRequestPayload(req)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = a.maxRetryElapsed
	b.MaxInterval = 30 * time.Second

	var result *output.GenerateResponse

	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create HTTP request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", a.apiKey)

		start := time.Now()
		resp, err := a.httpClient.Do(httpReq)
		if err != nil {
			a.logger.Warn("Network error during reasoner request, retrying", "error", err)
			return fmt.Errorf("failed to execute HTTP request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return a.handleAPIError(resp.StatusCode, respBody)
		}

		var payload generateResponse
		if err := json.Unmarshal(respBody, &payload); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response payload: %w", err))
		}
		if len(payload.Candidates) == 0 {
			return backoff.Permanent(fmt.Errorf("gemini API returned no candidates"))
		}

		candidate := payload.Candidates[0]
		decoded, err := decodeCandidate(candidate)
		if err != nil {
			return backoff.Permanent(err)
		}

		a.logger.Info("Reasoner generation complete",
			"duration", time.Since(start),
			"intents", len(decoded.Intents),
			"prompt_tokens", payload.UsageMetadata.PromptTokenCount,
			"completion_tokens", payload.UsageMetadata.CandidatesTokenCount,
		)

		result = decoded
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Adapter) handleAPIError(statusCode int, body []byte) error {
	a.logger.Error("Gemini API returned error status", "status", statusCode, "response", string(body))
	err := fmt.Errorf("gemini API error: status %d, body: %s", statusCode, string(body))

	switch statusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusInternalServerError:
		return err // Transient, retry.
	default:
		return backoff.Permanent(err)
	}
}
