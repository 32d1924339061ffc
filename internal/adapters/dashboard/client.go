package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/telemetry"
)

// callClass selects the timeout budget for a call. Metadata lookups are
// quick; listing calls can stream thousands of rows.
type callClass int

const (
	classMeta callClass = iota
	classList
)

// Options configures a dashboard Client.
type Options struct {
	BaseURL     string
	APIKey      string
	MetaTimeout time.Duration // default 30s
	ListTimeout time.Duration // default 90s
	MaxRetries  int           // retry attempts after the first try, default 3
	BaseBackoff time.Duration // default 500ms, doubled per attempt
	Transport   http.RoundTripper
}

// Client is the call envelope around the dashboard REST API. It is stateless
// apart from immutable configuration and safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	metaTimeout time.Duration
	listTimeout time.Duration
	maxRetries  int
	baseBackoff time.Duration
}

// NewClient builds a Client. The API key is supplied here, never read from
// the environment.
func NewClient(opts Options) *Client {
	if opts.MetaTimeout <= 0 {
		opts.MetaTimeout = 30 * time.Second
	}
	if opts.ListTimeout <= 0 {
		opts.ListTimeout = 90 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 500 * time.Millisecond
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		metaTimeout: opts.MetaTimeout,
		listTimeout: opts.ListTimeout,
		maxRetries:  opts.MaxRetries,
		baseBackoff: opts.BaseBackoff,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// get performs one read-only call with retries. All dashboard operations are
// GETs, so retrying is always safe. Transient failures (connection errors,
// 5xx, 429) are retried with exponential backoff; auth and other 4xx
// failures surface immediately as fatal.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, class callClass) (json.RawMessage, error) {
	timeout := c.metaTimeout
	if class == classList {
		timeout = c.listTimeout
	}

	// The timeout budget covers the whole call including retries.
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	telemetry.APIRequests.WithLabelValues(op).Inc()

	var lastErr *domain.CallError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			telemetry.APIRetries.WithLabelValues(op).Inc()
			if err := sleepCtx(ctx, c.retryDelay(attempt, lastErr)); err != nil {
				break
			}
		}

		raw, callErr := c.doOnce(ctx, op, path, query)
		if callErr == nil {
			return raw, nil
		}
		lastErr = callErr
		if !callErr.Retryable() {
			break
		}
	}

	telemetry.APIErrors.WithLabelValues(op, string(lastErr.Class)).Inc()
	return nil, lastErr
}

// doOnce issues a single request attempt.
func (c *Client) doOnce(ctx context.Context, op, path string, query url.Values) (json.RawMessage, *domain.CallError) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.CallError{Class: domain.ErrClassClient, Op: op, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection-level failure; includes context deadline.
		return nil, &domain.CallError{Class: domain.ErrClassTransient, Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.CallError{Class: domain.ErrClassTransient, Op: op, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return json.RawMessage(body), nil
	}

	ce := &domain.CallError{
		Class:   classifyStatus(resp.StatusCode),
		Op:      op,
		Status:  resp.StatusCode,
		Message: httpErrorMessage(body, resp.StatusCode),
	}
	if ce.Class == domain.ErrClassRateLimit {
		ce.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}
	return nil, ce
}

// retryDelay computes the backoff before the given attempt. A rate-limit
// response with Retry-After wins over exponential backoff.
func (c *Client) retryDelay(attempt int, last *domain.CallError) time.Duration {
	if last != nil && last.RetryAfter > 0 {
		return last.RetryAfter
	}
	return c.baseBackoff << (attempt - 1)
}

func classifyStatus(status int) domain.ErrorClass {
	switch {
	case status == http.StatusTooManyRequests:
		return domain.ErrClassRateLimit
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrClassAuth
	case status >= 500:
		return domain.ErrClassTransient
	default:
		return domain.ErrClassClient
	}
}

func httpErrorMessage(body []byte, status int) string {
	// Dashboard errors usually arrive as {"errors": ["..."]}.
	var payload struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		return strings.Join(payload.Errors, "; ")
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func parseRetryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// decodeInto unmarshals raw into out, normalizing decode failures to a
// client-class CallError so malformed payloads never panic downstream.
func decodeInto(op string, raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("dashboard: %s: undecodable payload: %v", op, err)
		return &domain.CallError{
			Class:   domain.ErrClassClient,
			Op:      op,
			Message: fmt.Sprintf("decoding response: %v", err),
		}
	}
	return nil
}
