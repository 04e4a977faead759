// Package ws dispatches lookups against the entity web service: it builds
// request URLs, paces them through the rate limit gate, and classifies
// responses as entity data or server-reported errors. It performs no
// retries; recovery policy belongs to the caller.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ellipsora/brainz/internal/metrics"
	"github.com/ellipsora/brainz/internal/ratelimit"
	"github.com/ellipsora/brainz/internal/schema"
)

// DefaultBaseURL is the live web service root.
const DefaultBaseURL = "https://musicbrainz.org/ws/2/"

// Quota headers consumed by the rate limit gate.
const (
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

// Config holds the dispatcher settings.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Gate       *ratelimit.Gate
	Logger     *zap.Logger
}

// Client issues GET requests against the web service.
type Client struct {
	base       *url.URL
	userAgent  string
	httpClient *http.Client
	gate       *ratelimit.Gate
	logger     *zap.Logger
}

// NewClient creates a dispatcher. Zero-value config fields fall back to
// the live service URL, http.DefaultClient, an unbounded gate, and a nop
// logger.
func NewClient(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		base:       base,
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		gate:       cfg.Gate,
		logger:     cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.gate == nil {
		c.gate = ratelimit.NewGate(0)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// ValidateMBID checks the canonical 36-character 8-4-4-4-12 form.
// uuid.Parse alone also accepts URN and braced forms, hence the length
// check first.
func ValidateMBID(id string) error {
	if len(id) != 36 {
		return fmt.Errorf("%w: %q", ErrInvalidMBID, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMBID, id)
	}
	return nil
}

// Filters restricts which status/type variants of nested releases and
// release groups the server expands, and pages browse results.
type Filters struct {
	Status []string
	Types  []string
	Limit  int
	Offset int
}

// Lookup fetches one entity by MBID with the given includes.
// The identifier is validated synchronously; no request leaves the
// process on an invalid one.
func (c *Client) Lookup(ctx context.Context, entity, mbid string, includes []schema.Include, f *Filters) (map[string]any, error) {
	if err := ValidateMBID(mbid); err != nil {
		return nil, err
	}

	q := url.Values{}
	if len(includes) > 0 {
		q.Set("inc", joinIncludes(includes))
	}
	applyFilters(q, f)

	return c.get(ctx, entity, entity+"/"+mbid, q)
}

// BrowseCollection fetches the contents of a collection. contentPath is
// the pluralized path segment of the content kind, e.g. "releases".
func (c *Client) BrowseCollection(ctx context.Context, mbid, contentPath string, f *Filters) (map[string]any, error) {
	if err := ValidateMBID(mbid); err != nil {
		return nil, err
	}

	q := url.Values{}
	applyFilters(q, f)

	return c.get(ctx, "collection", "collection/"+mbid+"/"+contentPath, q)
}

// joinIncludes space-joins tokens into one query value; url encoding
// renders the separator as "+" on the wire, which is what the server
// expects.
func joinIncludes(includes []schema.Include) string {
	parts := make([]string, len(includes))
	for i, inc := range includes {
		parts[i] = string(inc)
	}
	return strings.Join(parts, " ")
}

func applyFilters(q url.Values, f *Filters) {
	if f == nil {
		return
	}
	if len(f.Status) > 0 {
		q.Set("status", strings.Join(f.Status, "|"))
	}
	if len(f.Types) > 0 {
		q.Set("type", strings.Join(f.Types, "|"))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
}

func (c *Client) get(ctx context.Context, entity, path string, q url.Values) (map[string]any, error) {
	waitStart := time.Now()
	release, err := c.gate.Acquire(ctx)
	if err != nil {
		if errors.Is(err, ratelimit.ErrQueueFull) {
			metrics.RateLimitRejectedTotal.Inc()
		}
		return nil, err
	}
	defer release()
	metrics.RateLimitWaitSeconds.Observe(time.Since(waitStart).Seconds())

	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(entity, "transport_error").Inc()
		return nil, fmt.Errorf("dispatch %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.gate.Observe(resp.Header.Get(headerRateRemaining), resp.Header.Get(headerRateReset))
	metrics.RequestDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.LookupsTotal.WithLabelValues(entity, "decode_error").Inc()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if msg, ok := body["error"].(string); ok {
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		help, _ := body["help"].(string)
		metrics.LookupsTotal.WithLabelValues(entity, "api_error").Inc()
		c.logger.Warn("api error",
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("message", msg),
		)
		return nil, &APIError{StatusCode: status, Message: msg, Help: help}
	}

	metrics.LookupsTotal.WithLabelValues(entity, "ok").Inc()
	c.logger.Debug("lookup ok",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}
