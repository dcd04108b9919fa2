package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/divscout/divscout/internal/edgar"
	"github.com/divscout/divscout/internal/model"
	"github.com/divscout/divscout/internal/store"
	"github.com/divscout/divscout/internal/xbrl"
)

// FactsSource provides EDGAR data.
type FactsSource interface {
	CompanyFacts(ctx context.Context, cik string) (*xbrl.CompanyFacts, error)
	ResolveTicker(ctx context.Context, ticker string) (edgar.TickerEntry, error)
}

// Pipeline turns a facts payload into a dividend timeline.
type Pipeline interface {
	Parse(facts *xbrl.CompanyFacts, cik string) []model.Dividend
}

// Repository persists collection results.
type Repository interface {
	UpsertCompany(ctx context.Context, c model.Company) (int64, error)
	UpsertDividends(ctx context.Context, companyID int64, divs []model.Dividend) (int, error)
	LogCollection(ctx context.Context, e store.CollectionEntry) error
}

// Target identifies one company to collect. Either Ticker or CIK must
// be set; a bare ticker is resolved via the SEC ticker map.
type Target struct {
	Ticker string
	CIK    string
}

// Result is the outcome of collecting one target.
type Result struct {
	Target  Target
	CIK     string
	Name    string
	Records int
	Summary model.Summary
	Err     error
}

// Config holds fetcher settings.
type Config struct {
	Concurrency int // Max companies collected in parallel
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Concurrency: 4}
}

// Fetcher runs collection across a set of companies.
type Fetcher struct {
	cfg    Config
	source FactsSource
	parser Pipeline
	repo   Repository
	logger *slog.Logger
}

// New creates a Fetcher.
func New(cfg Config, source FactsSource, parser Pipeline, repo Repository, logger *slog.Logger) *Fetcher {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:    cfg,
		source: source,
		parser: parser,
		repo:   repo,
		logger: logger,
	}
}

// Collect fetches, parses, and persists every target. The returned
// slice is index-aligned with targets; per-company errors live in
// Result.Err. Only context cancellation stops the whole run.
func (f *Fetcher) Collect(ctx context.Context, targets []Target) ([]Result, error) {
	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for i, tgt := range targets {
		i, tgt := i, tgt
		g.Go(func() error {
			results[i] = f.collectOne(ctx, tgt)
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("collection run: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	f.logger.Info("collection run finished",
		"targets", len(targets),
		"failed", failed,
	)
	return results, nil
}

// collectOne handles a single company end to end.
func (f *Fetcher) collectOne(ctx context.Context, tgt Target) Result {
	started := time.Now()
	res := Result{Target: tgt}

	cik := tgt.CIK
	name := ""
	ticker := tgt.Ticker
	if cik == "" {
		entry, err := f.source.ResolveTicker(ctx, tgt.Ticker)
		if err != nil {
			res.Err = fmt.Errorf("resolve %s: %w", tgt.Ticker, err)
			f.logFailure(ctx, 0, ticker, started, res.Err)
			return res
		}
		cik, name = entry.CIK, entry.Name
	}
	res.CIK = cik

	facts, err := f.source.CompanyFacts(ctx, cik)
	if err != nil {
		res.Err = fmt.Errorf("fetch facts %s: %w", cik, err)
		f.logFailure(ctx, 0, ticker, started, res.Err)
		return res
	}
	if name == "" {
		name = facts.EntityName
	}
	res.Name = name

	divs := f.parser.Parse(facts, cik)
	res.Summary = xbrl.Summarize(divs)

	companyID, err := f.repo.UpsertCompany(ctx, model.Company{
		CIK:    cik,
		Ticker: ticker,
		Name:   name,
	})
	if err != nil {
		res.Err = err
		f.logFailure(ctx, 0, ticker, started, err)
		return res
	}

	n, err := f.repo.UpsertDividends(ctx, companyID, divs)
	if err != nil {
		res.Err = err
		f.logFailure(ctx, companyID, ticker, started, err)
		return res
	}
	res.Records = n

	status := store.CollectionSuccess
	if n == 0 {
		status = store.CollectionEmpty
	}
	f.logEntry(ctx, store.CollectionEntry{
		CompanyID: companyID,
		Ticker:    ticker,
		Status:    status,
		Records:   n,
		StartedAt: started,
	})

	f.logger.Info("collected company",
		"ticker", ticker,
		"cik", cik,
		"dividends", n,
		"needs_review", res.Summary.NeedsReviewCount,
	)
	return res
}

func (f *Fetcher) logFailure(ctx context.Context, companyID int64, ticker string, started time.Time, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	f.logger.Warn("collection failed", "ticker", ticker, "error", err)
	f.logEntry(ctx, store.CollectionEntry{
		CompanyID: companyID,
		Ticker:    ticker,
		Status:    store.CollectionFailed,
		Error:     err.Error(),
		StartedAt: started,
	})
}

func (f *Fetcher) logEntry(ctx context.Context, e store.CollectionEntry) {
	if e.FinishedAt.IsZero() {
		e.FinishedAt = time.Now()
	}
	if err := f.repo.LogCollection(ctx, e); err != nil {
		f.logger.Error("log collection attempt", "ticker", e.Ticker, "error", err)
	}
}
