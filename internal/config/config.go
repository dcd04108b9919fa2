package config

import "time"

// Config is the root configuration for a DivScout instance.
type Config struct {
	Edgar    EdgarConfig   `yaml:"edgar"`
	Database DBConfig      `yaml:"database"`
	Parser   ParserConfig  `yaml:"parser"`
	Fetcher  FetcherConfig `yaml:"fetcher"`
	Enrich   EnrichConfig  `yaml:"enrich"`
}

// EdgarConfig holds SEC EDGAR client settings.
//
// UserAgent is required by the SEC's fair-access policy and must
// identify a real contact ("Name email@example.org" with a real
// address); the client refuses to start with a placeholder.
type EdgarConfig struct {
	BaseURL        string        `yaml:"base_url"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
	RequestsPerSec float64       `yaml:"requests_per_sec"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

// DBConfig holds the Postgres connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ParserConfig holds the dividend pipeline's data-quality thresholds.
// Zero values mean "use the default"; see defaults.go.
type ParserConfig struct {
	MaxReasonable   float64 `yaml:"max_reasonable"`
	MinReasonable   float64 `yaml:"min_reasonable"`
	ReviewThreshold float64 `yaml:"review_threshold"`
	DedupTolerance  float64 `yaml:"dedup_tolerance"`
	AnnualRatioLow  float64 `yaml:"annual_ratio_low"`
	AnnualRatioHigh float64 `yaml:"annual_ratio_high"`
	ExtremeRatio    float64 `yaml:"extreme_ratio"`

	// Overrides maps a 10-digit CIK to a replacement max-reasonable
	// ceiling for companies with known-legitimate large payouts.
	Overrides map[string]float64 `yaml:"overrides"`
}

// FetcherConfig holds collection orchestration settings.
type FetcherConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// EnrichConfig holds company-metadata enrichment settings.
type EnrichConfig struct {
	Enabled      bool   `yaml:"enabled"`
	WikipediaURL string `yaml:"wikipedia_url"`
}
