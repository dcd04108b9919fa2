package edgar

import (
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultTickerURL serves the CIK-to-ticker mapping file. It lives on
// www.sec.gov, not the data API host.
const DefaultTickerURL = "https://www.sec.gov/files/company_tickers.json"

// Client provides access to the SEC EDGAR JSON APIs.
type Client struct {
	baseURL    string
	tickerURL  string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	cache        *gocache.Cache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates an EDGAR client. userAgent must identify a real
// contact per the SEC fair-access policy; validation of its content is
// the config layer's job.
func NewClient(baseURL, userAgent string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		tickerURL: DefaultTickerURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
		limiter:      rate.NewLimiter(rate.Limit(10), 1),
		cache:        gocache.New(time.Hour, 2*time.Hour),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCacheTTL sets the expiry for cached ticker-map and submissions
// responses.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = gocache.New(ttl, 2*ttl)
	}
}

// WithTickerURL overrides the ticker-mapping URL.
func WithTickerURL(url string) ClientOption {
	return func(c *Client) {
		c.tickerURL = url
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
