package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/divscout/divscout/internal/edgar"
	"github.com/divscout/divscout/internal/model"
)

// SubmissionsSource provides SEC submissions metadata.
type SubmissionsSource interface {
	Submissions(ctx context.Context, cik string) (*edgar.Submissions, error)
}

// Repository lists companies and persists enriched profiles.
type Repository interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	UpdateCompanyProfile(ctx context.Context, id int64, website, description string) error
}

// Summarizer yields a description profile for a company name.
type Summarizer interface {
	Summary(ctx context.Context, companyName string) (Profile, error)
}

// Enricher fills website and description for stored companies.
type Enricher struct {
	wiki   Summarizer
	source SubmissionsSource
	repo   Repository
	logger *slog.Logger
}

// New creates an Enricher.
func New(wiki Summarizer, source SubmissionsSource, repo Repository, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{wiki: wiki, source: source, repo: repo, logger: logger}
}

// Run enriches every company missing a website or description and
// returns the number updated. Per-company failures are logged and
// skipped.
func (e *Enricher) Run(ctx context.Context) (int, error) {
	companies, err := e.repo.ListCompanies(ctx)
	if err != nil {
		return 0, err
	}

	var updated int
	for _, c := range companies {
		if c.Website != "" && c.Description != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if err := e.enrichOne(ctx, c); err != nil {
			e.logger.Warn("enrichment failed", "ticker", c.Ticker, "error", err)
			continue
		}
		updated++
	}

	e.logger.Info("enrichment finished", "companies", len(companies), "updated", updated)
	return updated, nil
}

func (e *Enricher) enrichOne(ctx context.Context, c model.Company) error {
	var website, description string

	if c.Website == "" {
		sub, err := e.source.Submissions(ctx, c.CIK)
		switch {
		case errors.Is(err, edgar.ErrNotFound):
			// No submissions record; description alone may still land.
		case err != nil:
			return err
		default:
			website = normalizeWebsite(sub.Website)
		}
	}

	if c.Description == "" {
		profile, err := e.wiki.Summary(ctx, c.Name)
		if err != nil {
			return err
		}
		description = profile.Description
	}

	if website == "" && description == "" {
		return nil
	}
	return e.repo.UpdateCompanyProfile(ctx, c.ID, website, description)
}

// normalizeWebsite ensures a scheme on SEC-provided website values.
func normalizeWebsite(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	return site
}
