// Package ai wraps the external chat-completions provider behind a
// Generate call that returns validated project drafts or a typed failure.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

const retryBackoff = 500 * time.Millisecond

// Config holds the provider connection settings.
type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	MaxCallsPerMinute int
}

// Client talks to the generation provider.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	var limiter *rate.Limiter
	if cfg.MaxCallsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.MaxCallsPerMinute)), cfg.MaxCallsPerMinute)
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks the provider for req.Count project drafts. It returns
// ErrGenerationUnavailable when nothing usable came back (network failure,
// exhausted quota, zero parseable drafts) and ErrGenerationDegraded alongside
// a partial result when fewer valid drafts than requested parsed.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.Project, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: throttle wait: %v", domain.ErrGenerationUnavailable, err)
		}
	}

	content, err := c.complete(ctx, buildPrompt(req))
	if err != nil {
		return nil, err
	}

	drafts, err := parseDrafts(content)
	if err != nil {
		return nil, err
	}

	if len(drafts) > req.Count {
		drafts = drafts[:req.Count]
	}
	if len(drafts) < req.Count {
		return drafts, fmt.Errorf("%w: %d of %d drafts parsed", domain.ErrGenerationDegraded, len(drafts), req.Count)
	}
	return drafts, nil
}

// complete performs the chat-completions call with one retry on transient
// failures. Quota and other 4xx responses are not retried.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Stream:      false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", domain.ErrGenerationUnavailable, err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, ctx.Err())
			}
		}

		content, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *Client) doRequest(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("%w: create request: %v", domain.ErrGenerationUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are transient.
		return "", true, fmt.Errorf("%w: request failed: %v", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode == http.StatusPaymentRequired || strings.Contains(string(respBody), "insufficient_quota") {
			return "", false, fmt.Errorf("%w: provider quota exhausted", domain.ErrGenerationUnavailable)
		}
		return "", resp.StatusCode >= 500, fmt.Errorf("%w: provider status %d", domain.ErrGenerationUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("%w: decode response: %v", domain.ErrGenerationUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("%w: response has no choices", domain.ErrGenerationUnavailable)
	}
	return parsed.Choices[0].Message.Content, false, nil
}
