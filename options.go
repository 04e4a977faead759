package brainz

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL string

	appName    string
	appVersion string
	appContact string

	maxQueue   int
	httpClient *http.Client

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL points the client at a different web service root.
// Defaults to the live service, https://musicbrainz.org/ws/2/.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithApp identifies the application to the server; the triple becomes
// the User-Agent header ("name/version ( contact )"). The live service
// asks clients to set this.
func WithApp(name, version, contact string) Option {
	return optionFunc(func(c *clientConfig) {
		c.appName = name
		c.appVersion = version
		c.appContact = contact
	})
}

// WithMaxQueue bounds how many callers may be queued at the rate limit
// gate at once; excess callers fail immediately with ErrQueueFull.
// Default: unbounded.
func WithMaxQueue(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxQueue = n
	})
}

// WithHTTPClient sets the underlying HTTP client. Use it to impose
// timeouts; the client itself never bounds request latency.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (lookup counts, durations,
// rate-limit waits) on the given registerer. Pass nil to disable
// (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
