// Package classifier implements the note-classification pipeline: composing
// deterministic requests for the remote language-model API, calling it with
// bounded retries and a response-cache fallback, and validating its
// structured output against the category catalog.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/majikthise911/aes-note-taking-app/internal/categories"
)

// Response is the outcome of a classification call. FromCache marks results
// served from the fallback cache after the live API was unreachable.
type Response struct {
	Notes     []Note `json:"notes"`
	FromCache bool   `json:"from_cache"`
}

// Client calls the chat-completions API with bounded retries, a per-attempt
// timeout, in-flight de-duplication of identical requests, and a cache
// fallback keyed by deterministic request content.
type Client struct {
	cfg     Config
	catalog categories.Catalog
	http    *http.Client
	cache   *responseCache
	flight  singleflight.Group
	logger  *slog.Logger

	// sleep is replaced in tests to observe backoff timing.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a classification client. The catalog is captured once; every
// request composed by this client enumerates the same labels.
func New(cfg *Config, catalog categories.Catalog, logger *slog.Logger) *Client {
	return &Client{
		cfg:     *cfg,
		catalog: catalog,
		http:    &http.Client{},
		cache:   newResponseCache(cfg.CacheMaxSize),
		logger:  logger.With("system", "classifier"),
		sleep:   sleepContext,
	}
}

// Catalog returns the catalog this client validates against.
func (c *Client) Catalog() categories.Catalog {
	return c.catalog
}

// Classify runs the full pipeline for rawText: compose request, call the API
// with retries, validate the response. Concurrent calls with semantically
// equivalent input share a single network sequence. Returns ErrEmptyInput
// before any network activity if rawText is blank.
func (c *Client) Classify(ctx context.Context, rawText string) (*Response, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	key := RequestKey(rawText, c.catalog)

	result, err, shared := c.flight.Do(key, func() (any, error) {
		return c.classify(ctx, rawText, key)
	})
	if err != nil {
		return nil, err
	}

	resp := result.(*Response)
	if shared {
		c.logger.Debug("shared in-flight classification", "key", key[:12])
	}
	return resp, nil
}

func (c *Client) classify(ctx context.Context, rawText, key string) (*Response, error) {
	req := ComposeRequest(rawText, c.catalog, c.cfg.Model)

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		content, err := c.send(ctx, req)
		if err == nil {
			return c.validate(content, key)
		}

		if !isRetryable(err) {
			return nil, err
		}

		lastErr = err
		c.logger.Warn("classification attempt failed",
			"attempt", attempt+1,
			"max_attempts", c.cfg.MaxAttempts,
			"error", err,
		)

		delay := c.cfg.BackoffBaseDuration() << attempt
		if err := c.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	if notes, ok := c.cache.get(key); ok {
		c.logger.Info("serving classification from cache", "key", key[:12])
		return &Response{Notes: notes, FromCache: true}, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (c *Client) validate(content, key string) (*Response, error) {
	notes, err := ValidateContent(content, c.catalog)
	if err != nil {
		if notes == nil {
			return nil, err
		}
		// Out-of-catalog label substituted with the default category;
		// the result is still usable.
		c.logger.Warn("category substituted", "error", err)
	}

	c.cache.put(key, notes)
	return &Response{Notes: notes}, nil
}

// send performs one request round-trip under the configured timeout and
// returns the model output content.
func (c *Client) send(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.TimeoutDuration())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &transportError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", &transportError{err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	limited := io.LimitReader(resp.Body, 1<<20)
	if err := json.NewDecoder(limited).Decode(&envelope); err != nil {
		return "", fmt.Errorf("%w: decode envelope: %w", ErrMalformedResponse, err)
	}

	if len(envelope.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	return envelope.Choices[0].Message.Content, nil
}

// transportError wraps network failures, timeouts, and server errors that
// count against the retry budget.
type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("transport: %v", e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}

func isRetryable(err error) bool {
	var te *transportError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, ErrRateLimited)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
