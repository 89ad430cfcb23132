package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kapu/soccer-data-go/internal/util"
	"github.com/kapu/soccer-data-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher retrieves the raw body of a remote page or endpoint. Implementations
// return an *errors.UpstreamFetchError for network failures and non-2xx status.
type Fetcher interface {
	Fetch(ctx context.Context, source, rawURL string) ([]byte, error)
}

type ClientConfig struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
	FailureThreshold  int
	ResetTimeout      time.Duration
}

// Client is the HTTP Fetcher shared by every extractor. Requests are paced by
// a token bucket and guarded by one circuit breaker per host. Failed fetches
// are not retried here; callers retry whole operations.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	limiter    *rate.Limiter
	logger     *zap.Logger

	breakers map[string]*util.CircuitBreaker
}

func NewClient(httpClient *http.Client, cfg ClientConfig, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		logger:     logger,
		breakers:   make(map[string]*util.CircuitBreaker),
	}
}

// RegisterHosts pre-creates the circuit breakers so Fetch never mutates the
// breaker map concurrently.
func (c *Client) RegisterHosts(rawURLs ...string) {
	for _, rawURL := range rawURLs {
		host := hostOf(rawURL)
		if _, ok := c.breakers[host]; ok {
			continue
		}
		c.breakers[host] = util.NewCircuitBreaker(host, c.cfg.FailureThreshold, c.cfg.ResetTimeout, c.logger)
	}
}

func (c *Client) Fetch(ctx context.Context, source, rawURL string) ([]byte, error) {
	breaker := c.breakers[hostOf(rawURL)]
	if breaker != nil && !breaker.CanExecute() {
		c.logger.Warn("Circuit open, skipping fetch",
			zap.String("source", source),
			zap.Duration("retry_after", breaker.RetryAfter()))
		return nil, errors.NewUpstreamFetchError(source, rawURL, 0, fmt.Errorf("circuit open"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.NewUpstreamFetchError(source, rawURL, 0, fmt.Errorf("rate limit wait: %w", err))
	}

	body, status, err := c.do(ctx, rawURL)
	if err != nil {
		// Caller cancellation says nothing about the upstream's health.
		if breaker != nil && ctx.Err() == nil && (status == 0 || status >= 500) {
			breaker.RecordFailure()
		}
		c.logger.Warn("Upstream fetch failed",
			zap.String("source", source),
			zap.String("url", rawURL),
			zap.Int("status", status),
			zap.Error(err))
		return nil, errors.NewUpstreamFetchError(source, rawURL, status, err)
	}

	if breaker != nil {
		breaker.RecordSuccess()
	}

	c.logger.Debug("Upstream fetch succeeded",
		zap.String("source", source),
		zap.String("url", rawURL),
		zap.Int("bytes", len(body)))

	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if c.cfg.MaxBodyBytes > 0 {
		// One extra byte tells an oversized body from one exactly at the cap.
		reader = io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	if c.cfg.MaxBodyBytes > 0 && int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("response body exceeds %d bytes", c.cfg.MaxBodyBytes)
	}
	return body, resp.StatusCode, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
