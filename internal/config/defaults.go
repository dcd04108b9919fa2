package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL      = "https://data.sec.gov"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultCacheTTL     = 1 * time.Hour
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 10
	DefaultMinConns     = 2
	DefaultConcurrency  = 4

	// SEC fair access allows at most 10 requests per second.
	DefaultRequestsPerSec = 10.0

	DefaultMaxReasonable   = 50.0
	DefaultMinReasonable   = 0.01
	DefaultReviewThreshold = 0.8
	DefaultDedupTolerance  = 2.5
	DefaultAnnualRatioLow  = 3.5
	DefaultAnnualRatioHigh = 4.5
	DefaultExtremeRatio    = 5.0

	DefaultWikipediaURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
)

// ApplyDefaults fills zero-valued optional fields.
func (c *Config) ApplyDefaults() {
	// EDGAR defaults
	if c.Edgar.BaseURL == "" {
		c.Edgar.BaseURL = DefaultBaseURL
	}
	if c.Edgar.Timeout == 0 {
		c.Edgar.Timeout = DefaultTimeout
	}
	if c.Edgar.MaxRetries == 0 {
		c.Edgar.MaxRetries = DefaultMaxRetries
	}
	if c.Edgar.RetryBackoff == 0 {
		c.Edgar.RetryBackoff = DefaultRetryBackoff
	}
	if c.Edgar.RequestsPerSec == 0 {
		c.Edgar.RequestsPerSec = DefaultRequestsPerSec
	}
	if c.Edgar.CacheTTL == 0 {
		c.Edgar.CacheTTL = DefaultCacheTTL
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Parser defaults
	if c.Parser.MaxReasonable == 0 {
		c.Parser.MaxReasonable = DefaultMaxReasonable
	}
	if c.Parser.MinReasonable == 0 {
		c.Parser.MinReasonable = DefaultMinReasonable
	}
	if c.Parser.ReviewThreshold == 0 {
		c.Parser.ReviewThreshold = DefaultReviewThreshold
	}
	if c.Parser.DedupTolerance == 0 {
		c.Parser.DedupTolerance = DefaultDedupTolerance
	}
	if c.Parser.AnnualRatioLow == 0 {
		c.Parser.AnnualRatioLow = DefaultAnnualRatioLow
	}
	if c.Parser.AnnualRatioHigh == 0 {
		c.Parser.AnnualRatioHigh = DefaultAnnualRatioHigh
	}
	if c.Parser.ExtremeRatio == 0 {
		c.Parser.ExtremeRatio = DefaultExtremeRatio
	}

	// Fetcher defaults
	if c.Fetcher.Concurrency == 0 {
		c.Fetcher.Concurrency = DefaultConcurrency
	}

	// Enrichment defaults
	if c.Enrich.WikipediaURL == "" {
		c.Enrich.WikipediaURL = DefaultWikipediaURL
	}
}
