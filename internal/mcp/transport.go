package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/donaldgifford/shop-catalog-exporter/internal/metrics"
)

const (
	endpointPath   = "/api/mcp"
	defaultTimeout = 60 * time.Second

	// maxLoggedBody bounds error-body excerpts in logs.
	maxLoggedBody = 200
)

// HTTPClient implements Caller over plain HTTP POST. One request per call,
// no retries: a call either yields a parsed body or a failure reason.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithEndpoint overrides the endpoint URL derived from the store domain.
func WithEndpoint(u string) Option {
	return func(c *HTTPClient) {
		c.endpoint = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithTimeout overrides the default 60s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithLogger sets the logger for call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// NewHTTPClient creates a client for the MCP endpoint of the given store
// domain (https://<domain>/api/mcp).
func NewHTTPClient(storeDomain string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		endpoint: "https://" + storeDomain + endpointPath,
		client:   &http.Client{Timeout: defaultTimeout},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs one JSON-RPC exchange. All failure modes are normalized to
// a failed CallResult and logged; nothing is raised to the caller beyond
// the tagged result.
func (c *HTTPClient) Call(ctx context.Context, method string, params any) CallResult {
	metrics.MCPCallsTotal.Inc()

	if params == nil {
		params = struct{}{}
	}

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return c.failed(method, "encoding request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(payload),
	)
	if err != nil {
		return c.failed(method, "creating request: "+err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.failed(method, "transport: "+err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failed(method, "reading response: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("MCP endpoint returned error status",
			"method", method,
			"status", resp.StatusCode,
			"body", excerpt(body),
		)
		metrics.MCPCallFailuresTotal.Inc()
		return Failed(fmt.Sprintf("http status %d", resp.StatusCode))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.log.Warn("empty response body, MCP is not enabled for this store",
			"method", method,
		)
		metrics.MCPCallFailuresTotal.Inc()
		return Failed("empty response body")
	}

	if !json.Valid(body) {
		return c.failed(method, "response is not valid JSON")
	}

	return Ok(body)
}

func (c *HTTPClient) failed(method, reason string) CallResult {
	c.log.Error("MCP call failed", "method", method, "reason", reason)
	metrics.MCPCallFailuresTotal.Inc()
	return Failed(reason)
}

// excerpt truncates an error body for logging.
func excerpt(body []byte) string {
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	return string(body)
}
