package xbrl

import (
	"log/slog"
	"sort"

	"github.com/divscout/divscout/internal/model"
)

// taxonomyUSGAAP is the taxonomy namespace carrying dividend tags.
const taxonomyUSGAAP = "us-gaap"

// Config holds the parser's data-quality thresholds. The ratio windows
// are empirically chosen; they are exposed here rather than hard-coded
// so they can be recalibrated without a code change.
type Config struct {
	MaxReasonable   float64 // Per-share ceiling; above it confidence drops
	MinReasonable   float64 // Per-share floor; below it confidence drops
	ReviewThreshold float64 // Confidence below this flags NeedsReview
	DedupTolerance  float64 // Same-date candidates admitted up to this x the minimum
	AnnualRatioLow  float64 // Lower bound of the ~4x-median annual-total window
	AnnualRatioHigh float64 // Upper bound of the annual-total window
	ExtremeRatio    float64 // Amount/median above this is always dropped

	// Overrides replaces MaxReasonable for specific companies, keyed by
	// 10-digit CIK. Exceeding an override ceiling is an extra penalty.
	Overrides map[string]float64
}

// DefaultConfig returns the thresholds used in production.
func DefaultConfig() Config {
	return Config{
		MaxReasonable:   50.0,
		MinReasonable:   0.01,
		ReviewThreshold: 0.8,
		DedupTolerance:  2.5,
		AnnualRatioLow:  3.5,
		AnnualRatioHigh: 4.5,
		ExtremeRatio:    5.0,
	}
}

// Parser turns one company's facts payload into a clean, deduplicated,
// confidence-annotated dividend timeline. Safe for concurrent use across
// companies; a Parse call holds no shared mutable state.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Parser.
func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Parse extracts the dividend timeline from a companyfacts payload.
//
// cik selects per-company overrides; if empty, the payload's own CIK is
// used. A payload with no us-gaap section or no allow-listed tags yields
// an empty result, not an error: "no dividends" is a valid terminal
// state. Running Parse twice on the same input yields identical output.
func (p *Parser) Parse(facts *CompanyFacts, cik string) []model.Dividend {
	if facts == nil {
		return nil
	}
	if cik == "" {
		cik = facts.CIKString()
	}

	gaap := facts.Facts[taxonomyUSGAAP]
	if len(gaap) == 0 {
		p.logger.Warn("no us-gaap facts in payload", "cik", cik)
		return nil
	}

	var candidates []model.Dividend
	for _, tag := range dividendTags {
		tf, ok := gaap[tag.Name]
		if !ok {
			continue
		}
		candidates = append(candidates, p.extractTag(tf, tag)...)
	}
	if len(candidates) == 0 {
		return nil
	}

	unique := p.deduplicate(candidates)
	filtered := p.filterAnnualTotals(unique)
	scored := p.score(filtered, cik)

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].ExDate.Before(scored[j].ExDate)
	})

	p.logger.Info("parsed dividend timeline",
		"cik", cik,
		"candidates", len(candidates),
		"after_dedup", len(unique),
		"after_filter", len(filtered),
	)
	return scored
}
