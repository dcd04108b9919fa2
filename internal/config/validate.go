package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Edgar.UserAgent == "" {
		return errors.New("edgar.user_agent is required (SEC fair-access policy)")
	}
	if strings.Contains(c.Edgar.UserAgent, "example.com") {
		return errors.New("edgar.user_agent is a placeholder; set a real contact address")
	}
	if c.Edgar.RequestsPerSec <= 0 {
		return errors.New("edgar.requests_per_sec must be > 0")
	}
	if c.Edgar.RequestsPerSec > DefaultRequestsPerSec {
		return fmt.Errorf("edgar.requests_per_sec must not exceed %v (SEC fair access)", DefaultRequestsPerSec)
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Parser.MaxReasonable <= c.Parser.MinReasonable {
		return errors.New("parser.max_reasonable must exceed parser.min_reasonable")
	}
	if c.Parser.ReviewThreshold < 0 || c.Parser.ReviewThreshold > 1 {
		return fmt.Errorf("parser.review_threshold must be in [0, 1], got %v", c.Parser.ReviewThreshold)
	}
	if c.Parser.DedupTolerance < 1 {
		return errors.New("parser.dedup_tolerance must be >= 1")
	}
	if c.Parser.AnnualRatioLow >= c.Parser.AnnualRatioHigh {
		return errors.New("parser.annual_ratio_low must be below parser.annual_ratio_high")
	}
	for cik, ceiling := range c.Parser.Overrides {
		if len(cik) != 10 {
			return fmt.Errorf("parser.overrides key %q is not a 10-digit CIK", cik)
		}
		if ceiling <= 0 {
			return fmt.Errorf("parser.overrides[%s] must be > 0, got %v", cik, ceiling)
		}
	}

	if c.Fetcher.Concurrency < 1 {
		return errors.New("fetcher.concurrency must be >= 1")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
