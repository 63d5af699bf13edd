package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const webhookTimeout = 10 * time.Second

// WebhookNotifier posts run summaries as JSON to a configured URL.
type WebhookNotifier struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// WebhookOption configures the WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithWebhookHeaders adds extra request headers (auth tokens and the like).
func WithWebhookHeaders(h map[string]string) WebhookOption {
	return func(n *WebhookNotifier) {
		n.headers = h
	}
}

// WithWebhookHTTPClient overrides the default HTTP client.
func WithWebhookHTTPClient(c *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		n.client = c
	}
}

// NewWebhookNotifier creates a notifier targeting the given URL.
func NewWebhookNotifier(url string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ExportCompleted posts the run summary. Any non-2xx response is an error;
// the caller decides whether that is worth more than a log line.
func (n *WebhookNotifier) ExportCompleted(ctx context.Context, run RunSummary) error {
	run.DurationMS = run.Duration.Milliseconds()

	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding run summary: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		n.url,
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
