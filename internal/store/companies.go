package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/divscout/divscout/internal/model"
)

// ErrCompanyNotFound indicates no company row matches the lookup.
var ErrCompanyNotFound = errors.New("store: company not found")

// UpsertCompany inserts a company keyed by CIK, updating ticker and
// name on conflict, and returns the row ID.
func (s *Store) UpsertCompany(ctx context.Context, c model.Company) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO companies (cik, ticker, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (cik) DO UPDATE
		SET ticker = EXCLUDED.ticker,
		    name = EXCLUDED.name,
		    updated_at = now()
		RETURNING id
	`, c.CIK, c.Ticker, c.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert company %s: %w", c.CIK, err)
	}
	return id, nil
}

// CompanyByCIK fetches a company by its 10-digit CIK.
func (s *Store) CompanyByCIK(ctx context.Context, cik string) (model.Company, error) {
	return s.companyBy(ctx, "cik", cik)
}

// CompanyByTicker fetches a company by ticker.
func (s *Store) CompanyByTicker(ctx context.Context, ticker string) (model.Company, error) {
	return s.companyBy(ctx, "ticker", ticker)
}

func (s *Store) companyBy(ctx context.Context, column, value string) (model.Company, error) {
	var c model.Company
	err := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, cik, ticker, name, website, description
		FROM companies WHERE %s = $1
	`, column), value).Scan(&c.ID, &c.CIK, &c.Ticker, &c.Name, &c.Website, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Company{}, ErrCompanyNotFound
	}
	if err != nil {
		return model.Company{}, fmt.Errorf("select company by %s: %w", column, err)
	}
	return c, nil
}

// ListCompanies returns all tracked companies ordered by ticker.
func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, cik, ticker, name, website, description
		FROM companies ORDER BY ticker
	`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.CIK, &c.Ticker, &c.Name, &c.Website, &c.Description); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCompanyProfile sets enrichment fields. Empty values are kept as
// is so a failed enrichment source never clears existing data.
func (s *Store) UpdateCompanyProfile(ctx context.Context, id int64, website, description string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE companies
		SET website = CASE WHEN $2 <> '' THEN $2 ELSE website END,
		    description = CASE WHEN $3 <> '' THEN $3 ELSE description END,
		    updated_at = now()
		WHERE id = $1
	`, id, website, description)
	if err != nil {
		return fmt.Errorf("update company profile %d: %w", id, err)
	}
	return nil
}
