package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divscout/divscout/internal/model"
)

// ErrCompanyNotFound is returned by CompanyDetail for unknown tickers.
var ErrCompanyNotFound = errors.New("admin: company not found")

// Admin runs read-only queries against the DivScout database.
type Admin struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates an Admin over an existing pool.
func New(db *pgxpool.Pool, logger *slog.Logger) *Admin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{db: db, logger: logger}
}

// Overview aggregates whole-database counts.
type Overview struct {
	Companies              int64
	CompaniesWithDividends int64
	DividendCount          int64
	NeedsReview            int64
	FirstExDate            time.Time
	LastExDate             time.Time
	AmountMin              float64
	AmountAvg              float64
	AmountMax              float64
	CollectionRuns         int64
	LastCollection         time.Time
	CollectionFailures     int64
}

// Overview returns top-level stats across all companies.
func (a *Admin) Overview(ctx context.Context) (Overview, error) {
	var o Overview

	err := a.db.QueryRow(ctx, `SELECT count(*) FROM companies`).Scan(&o.Companies)
	if err != nil {
		return o, fmt.Errorf("count companies: %w", err)
	}

	err = a.db.QueryRow(ctx, `
		SELECT count(*),
		       count(DISTINCT company_id),
		       count(*) FILTER (WHERE needs_review AND NOT reviewed),
		       coalesce(min(ex_dividend_date), 'epoch'::date),
		       coalesce(max(ex_dividend_date), 'epoch'::date),
		       coalesce(min(amount), 0),
		       coalesce(avg(amount), 0),
		       coalesce(max(amount), 0)
		FROM dividends`,
	).Scan(&o.DividendCount, &o.CompaniesWithDividends, &o.NeedsReview,
		&o.FirstExDate, &o.LastExDate, &o.AmountMin, &o.AmountAvg, &o.AmountMax)
	if err != nil {
		return o, fmt.Errorf("dividend stats: %w", err)
	}

	err = a.db.QueryRow(ctx, `
		SELECT count(*),
		       coalesce(max(finished_at), 'epoch'::timestamptz),
		       count(*) FILTER (WHERE status = 'failed')
		FROM collection_log`,
	).Scan(&o.CollectionRuns, &o.LastCollection, &o.CollectionFailures)
	if err != nil {
		return o, fmt.Errorf("collection stats: %w", err)
	}

	return o, nil
}

// CompanyDetail is the full picture for one company.
type CompanyDetail struct {
	Company       model.Company
	DividendCount int64
	FirstExDate   time.Time
	LastExDate    time.Time
	AmountAvg     float64
	AmountMin     float64
	AmountMax     float64
	Recent        []model.Dividend
}

// CompanyDetail returns stats and recent history for one ticker.
func (a *Admin) CompanyDetail(ctx context.Context, ticker string) (CompanyDetail, error) {
	var d CompanyDetail

	err := a.db.QueryRow(ctx, `
		SELECT id, cik, ticker, name, website, description
		FROM companies WHERE upper(ticker) = upper($1)`,
		ticker,
	).Scan(&d.Company.ID, &d.Company.CIK, &d.Company.Ticker,
		&d.Company.Name, &d.Company.Website, &d.Company.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return d, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}
	if err != nil {
		return d, fmt.Errorf("load company %s: %w", ticker, err)
	}

	err = a.db.QueryRow(ctx, `
		SELECT count(*),
		       coalesce(min(ex_dividend_date), 'epoch'::date),
		       coalesce(max(ex_dividend_date), 'epoch'::date),
		       coalesce(avg(amount), 0),
		       coalesce(min(amount), 0),
		       coalesce(max(amount), 0)
		FROM dividends WHERE company_id = $1`,
		d.Company.ID,
	).Scan(&d.DividendCount, &d.FirstExDate, &d.LastExDate,
		&d.AmountAvg, &d.AmountMin, &d.AmountMax)
	if err != nil {
		return d, fmt.Errorf("company stats %s: %w", ticker, err)
	}

	rows, err := a.db.Query(ctx, `
		SELECT amount, ex_dividend_date, fiscal_year, fiscal_quarter,
		       frequency, confidence, needs_review
		FROM dividends
		WHERE company_id = $1
		ORDER BY ex_dividend_date DESC
		LIMIT 10`,
		d.Company.ID,
	)
	if err != nil {
		return d, fmt.Errorf("recent dividends %s: %w", ticker, err)
	}
	defer rows.Close()

	for rows.Next() {
		var div model.Dividend
		err := rows.Scan(&div.Amount, &div.ExDate, &div.FiscalYear,
			&div.FiscalQuarter, &div.Frequency, &div.Confidence, &div.NeedsReview)
		if err != nil {
			return d, fmt.Errorf("scan dividend: %w", err)
		}
		d.Recent = append(d.Recent, div)
	}
	return d, rows.Err()
}

// TopPayer is one row of the top-payers ranking.
type TopPayer struct {
	Ticker        string
	Name          string
	DividendCount int64
	AmountAvg     float64
	AmountMax     float64
	LastExDate    time.Time
}

// TopPayers ranks companies by average per-share amount. Companies
// with fewer than four records are excluded so a single large special
// dividend cannot top the list.
func (a *Admin) TopPayers(ctx context.Context, limit int) ([]TopPayer, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := a.db.Query(ctx, `
		SELECT c.ticker, c.name,
		       count(d.id),
		       avg(d.amount),
		       max(d.amount),
		       max(d.ex_dividend_date)
		FROM companies c
		JOIN dividends d ON d.company_id = c.id
		GROUP BY c.ticker, c.name
		HAVING count(d.id) >= 4
		ORDER BY avg(d.amount) DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top payers: %w", err)
	}
	defer rows.Close()

	var out []TopPayer
	for rows.Next() {
		var p TopPayer
		err := rows.Scan(&p.Ticker, &p.Name, &p.DividendCount,
			&p.AmountAvg, &p.AmountMax, &p.LastExDate)
		if err != nil {
			return nil, fmt.Errorf("scan payer: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ActivityEntry is one recent collection attempt.
type ActivityEntry struct {
	Ticker     string
	Status     string
	Records    int
	Error      string
	FinishedAt time.Time
}

// RecentActivity lists collection attempts from the last N days,
// newest first.
func (a *Admin) RecentActivity(ctx context.Context, days int) ([]ActivityEntry, error) {
	if days < 1 {
		days = 7
	}
	rows, err := a.db.Query(ctx, `
		SELECT ticker, status, records, error, finished_at
		FROM collection_log
		WHERE finished_at > now() - make_interval(days => $1)
		ORDER BY finished_at DESC`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		err := rows.Scan(&e.Ticker, &e.Status, &e.Records, &e.Error, &e.FinishedAt)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
