// Package notify posts delivery-completion events to an external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jamjam-delivery/internal/logx"
)

type counter interface {
	Inc()
}

// CompletionEvent is the webhook payload sent when an order is delivered.
type CompletionEvent struct {
	SessionID   string    `json:"session_id"`
	Pickup      string    `json:"pickup"`
	Dropoff     string    `json:"dropoff"`
	RiderCount  int       `json:"rider_count"`
	TotalPrice  string    `json:"total_price"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// RetryConfig describes the retry behaviour of the webhook gateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// WebhookGateway delivers completion events over HTTP with retries.
type WebhookGateway struct {
	url     string
	client  *http.Client
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewWebhookGateway returns a webhook gateway, or nil when url is empty.
func NewWebhookGateway(url string, client *http.Client, logger logx.Logger, retries counter, cfg RetryConfig) *WebhookGateway {
	if url == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &WebhookGateway{url: url, client: client, logger: logger, retries: retries, cfg: cfg}
}

// NotifyDelivered posts the completion event, retrying transient failures.
func (g *WebhookGateway) NotifyDelivered(ctx context.Context, ev CompletionEvent) error {
	if g == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify gateway: marshal: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := g.post(ctx, payload)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("notify gateway retry",
			logx.String("session_id", ev.SessionID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

func (g *WebhookGateway) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify gateway: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return transientError{fmt.Errorf("notify gateway: post: %w", err)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return transientError{fmt.Errorf("notify gateway: status %d", resp.StatusCode)}
	default:
		return fmt.Errorf("notify gateway: status %d", resp.StatusCode)
	}
}

type transientError struct {
	err error
}

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	_, ok := err.(transientError)
	return ok
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
