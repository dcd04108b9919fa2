package admin

import (
	"context"
	"fmt"
	"time"
)

// CleanupReport lists data-quality findings. Nothing here mutates;
// the findings feed the review workflow in the store package.
type CleanupReport struct {
	NearDuplicates   []NearDuplicate
	AnomalousAmounts []AnomalousAmount
	FutureDates      []DateFinding
	StaleDates       []DateFinding
}

// Total counts all findings across categories.
func (r CleanupReport) Total() int {
	return len(r.NearDuplicates) + len(r.AnomalousAmounts) +
		len(r.FutureDates) + len(r.StaleDates)
}

// NearDuplicate is a pair of records for the same company whose
// ex-dates fall within a few days of each other. Exact same-date
// duplicates cannot exist (unique constraint); near misses usually
// mean the same distribution was extracted from two filings.
type NearDuplicate struct {
	Ticker  string
	ID1     int64
	ID2     int64
	Amount1 float64
	Amount2 float64
	Date1   time.Time
	Date2   time.Time
}

// AnomalousAmount is a record whose amount falls outside plausible
// per-share bounds or towers over the company's own median.
type AnomalousAmount struct {
	Ticker      string
	ID          int64
	Amount      float64
	Median      float64
	ExDate      time.Time
	Description string
}

// DateFinding flags an implausible ex-date.
type DateFinding struct {
	Ticker string
	ID     int64
	Amount float64
	ExDate time.Time
}

// Report scans the dividends table for quality problems.
func (a *Admin) Report(ctx context.Context, maxAmount, minAmount float64) (CleanupReport, error) {
	var r CleanupReport
	var err error

	if r.NearDuplicates, err = a.nearDuplicates(ctx); err != nil {
		return r, err
	}
	if r.AnomalousAmounts, err = a.anomalousAmounts(ctx, maxAmount, minAmount); err != nil {
		return r, err
	}
	if r.FutureDates, r.StaleDates, err = a.dateInconsistencies(ctx); err != nil {
		return r, err
	}

	a.logger.Info("cleanup report generated",
		"near_duplicates", len(r.NearDuplicates),
		"anomalous_amounts", len(r.AnomalousAmounts),
		"future_dates", len(r.FutureDates),
		"stale_dates", len(r.StaleDates),
	)
	return r, nil
}

func (a *Admin) nearDuplicates(ctx context.Context) ([]NearDuplicate, error) {
	rows, err := a.db.Query(ctx, `
		SELECT c.ticker,
		       d1.id, d2.id,
		       d1.amount, d2.amount,
		       d1.ex_dividend_date, d2.ex_dividend_date
		FROM dividends d1
		JOIN dividends d2
		  ON d2.company_id = d1.company_id
		 AND d2.ex_dividend_date > d1.ex_dividend_date
		 AND d2.ex_dividend_date <= d1.ex_dividend_date + 5
		JOIN companies c ON c.id = d1.company_id
		ORDER BY c.ticker, d1.ex_dividend_date`,
	)
	if err != nil {
		return nil, fmt.Errorf("near duplicates: %w", err)
	}
	defer rows.Close()

	var out []NearDuplicate
	for rows.Next() {
		var d NearDuplicate
		err := rows.Scan(&d.Ticker, &d.ID1, &d.ID2,
			&d.Amount1, &d.Amount2, &d.Date1, &d.Date2)
		if err != nil {
			return nil, fmt.Errorf("scan duplicate: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (a *Admin) anomalousAmounts(ctx context.Context, maxAmount, minAmount float64) ([]AnomalousAmount, error) {
	rows, err := a.db.Query(ctx, `
		WITH medians AS (
			SELECT company_id,
			       percentile_cont(0.5) WITHIN GROUP (ORDER BY amount) AS median
			FROM dividends
			GROUP BY company_id
		)
		SELECT c.ticker, d.id, d.amount, m.median, d.ex_dividend_date,
		       CASE
		         WHEN d.amount > $1 THEN 'above plausible per-share ceiling'
		         WHEN d.amount < $2 THEN 'below plausible per-share floor'
		         ELSE 'more than 3x company median'
		       END
		FROM dividends d
		JOIN medians m ON m.company_id = d.company_id
		JOIN companies c ON c.id = d.company_id
		WHERE d.amount > $1
		   OR d.amount < $2
		   OR (m.median > 0 AND d.amount > m.median * 3)
		ORDER BY c.ticker, d.ex_dividend_date`,
		maxAmount, minAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("anomalous amounts: %w", err)
	}
	defer rows.Close()

	var out []AnomalousAmount
	for rows.Next() {
		var an AnomalousAmount
		err := rows.Scan(&an.Ticker, &an.ID, &an.Amount, &an.Median,
			&an.ExDate, &an.Description)
		if err != nil {
			return nil, fmt.Errorf("scan anomaly: %w", err)
		}
		out = append(out, an)
	}
	return out, rows.Err()
}

func (a *Admin) dateInconsistencies(ctx context.Context) (future, stale []DateFinding, err error) {
	scan := func(query string) ([]DateFinding, error) {
		rows, err := a.db.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []DateFinding
		for rows.Next() {
			var f DateFinding
			if err := rows.Scan(&f.Ticker, &f.ID, &f.Amount, &f.ExDate); err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, rows.Err()
	}

	// An ex-date far past the filing that reported it is a parse
	// artifact; facts describe completed periods.
	future, err = scan(`
		SELECT c.ticker, d.id, d.amount, d.ex_dividend_date
		FROM dividends d JOIN companies c ON c.id = d.company_id
		WHERE d.ex_dividend_date > coalesce(d.filed_date, current_date) + 365
		ORDER BY d.ex_dividend_date DESC`)
	if err != nil {
		return nil, nil, fmt.Errorf("future dates: %w", err)
	}

	// XBRL tagging starts in 2009; anything far earlier is a parse
	// artifact, not history.
	stale, err = scan(`
		SELECT c.ticker, d.id, d.amount, d.ex_dividend_date
		FROM dividends d JOIN companies c ON c.id = d.company_id
		WHERE d.ex_dividend_date < DATE '1990-01-01'
		ORDER BY d.ex_dividend_date`)
	if err != nil {
		return nil, nil, fmt.Errorf("stale dates: %w", err)
	}
	return future, stale, nil
}
