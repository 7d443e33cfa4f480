// Package client talks to the interaction store API that supplies raw
// interaction records and pre-aggregated summary rows. Every response is
// treated as untrusted: numeric fields coerce to finite defaults and
// malformed list items are skipped, so the engine downstream only ever
// sees well-typed collections.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/domain"
	"github.com/convopulse/convopulse/pkg/metrics"
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
}

// Client is the HTTP client for the interaction store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryMax   time.Duration
	logger     *zap.Logger
}

// New creates an upstream client.
func New(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryMax:   cfg.RetryMaxElapsed,
		logger:     logger,
	}
}

// listEnvelope is the interaction list response. The store historically
// served both {items: [...]} and the nested {data: {items: [...]}} shape;
// both are accepted here at decode level only.
type listEnvelope struct {
	Items []json.RawMessage `json:"items"`
	Data  *struct {
		Items []json.RawMessage `json:"items"`
	} `json:"data"`
}

func (e listEnvelope) items() []json.RawMessage {
	if len(e.Items) > 0 {
		return e.Items
	}
	if e.Data != nil {
		return e.Data.Items
	}
	return nil
}

// ListInteractions retrieves one page of interaction records. Items that
// fail to decode are dropped with a warning rather than failing the page.
func (c *Client) ListInteractions(ctx context.Context, limit, offset int) ([]domain.Interaction, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var envelope listEnvelope
	if err := c.getJSON(ctx, "/interactions", q, &envelope); err != nil {
		return nil, err
	}

	raw := envelope.items()
	interactions := make([]domain.Interaction, 0, len(raw))
	for _, item := range raw {
		var it domain.Interaction
		if err := json.Unmarshal(item, &it); err != nil {
			c.logger.Warn("skipping malformed interaction record", zap.Error(err))
			continue
		}
		interactions = append(interactions, it)
	}
	return interactions, nil
}

// StatisticsSummary retrieves the upstream pre-aggregated KPI summary.
func (c *Client) StatisticsSummary(ctx context.Context) (*domain.StatisticsSummary, error) {
	var raw rawSummary
	if err := c.getJSON(ctx, "/views/statistics/summary", nil, &raw); err != nil {
		return nil, err
	}
	return raw.normalize(), nil
}

// SatisfactionDaily retrieves per-day satisfaction rows, newest first.
func (c *Client) SatisfactionDaily(ctx context.Context, limit int) ([]domain.SatisfactionStatsRow, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var envelope struct {
		Items []rawTrendRow `json:"items"`
	}
	if err := c.getJSON(ctx, "/views/satisfaction/daily", q, &envelope); err != nil {
		return nil, err
	}

	rows := make([]domain.SatisfactionStatsRow, 0, len(envelope.Items))
	for _, r := range envelope.Items {
		rows = append(rows, r.normalize())
	}
	return rows, nil
}

// SatisfactionByIntent retrieves the per-intent satisfaction breakdown.
func (c *Client) SatisfactionByIntent(ctx context.Context) ([]domain.SatisfactionByIntentRow, error) {
	var envelope struct {
		Items []rawIntentRow `json:"items"`
	}
	if err := c.getJSON(ctx, "/views/satisfaction/by-intent", nil, &envelope); err != nil {
		return nil, err
	}

	rows := make([]domain.SatisfactionByIntentRow, 0, len(envelope.Items))
	for _, r := range envelope.Items {
		rows = append(rows, r.normalize())
	}
	return rows, nil
}

// Ping checks upstream reachability for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/interactions?limit=1", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}
	return nil
}

// getJSON performs a GET with exponential-backoff retries and decodes the
// body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("upstream returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("upstream returned status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", path, err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	if c.retryMax > 0 {
		b.MaxElapsedTime = c.retryMax
	} else {
		b.MaxElapsedTime = 15 * time.Second
	}

	start := time.Now()
	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	metrics.UpstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(path, "error").Inc()
		c.logger.Warn("upstream request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, path)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(path, "ok").Inc()
	return nil
}
