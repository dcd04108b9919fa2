package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/divscout/divscout/internal/model"
)

// dividendRow is the flat database shape of a model.Dividend.
type dividendRow struct {
	CompanyID   int64
	Amount      float64
	ExDate      time.Time
	FiscalYear  int
	FiscalQtr   int
	PeriodType  string
	PeriodDays  int
	Frequency   string
	SourceTag   string
	SourceForm  string
	SourceAccn  string
	FiledDate   *time.Time
	Confidence  float64
	ReasonsJSON []byte
	NeedsReview bool
}

func toRow(companyID int64, d model.Dividend) (dividendRow, error) {
	reasons := d.Reasons
	if reasons == nil {
		reasons = []model.PenaltyReason{}
	}
	raw, err := json.Marshal(reasons)
	if err != nil {
		return dividendRow{}, fmt.Errorf("marshal reasons: %w", err)
	}

	var filed *time.Time
	if !d.FiledDate.IsZero() {
		filed = &d.FiledDate
	}

	return dividendRow{
		CompanyID:   companyID,
		Amount:      d.Amount,
		ExDate:      d.ExDate,
		FiscalYear:  d.FiscalYear,
		FiscalQtr:   d.FiscalQuarter,
		PeriodType:  string(d.PeriodType),
		PeriodDays:  d.PeriodDays,
		Frequency:   d.Frequency,
		SourceTag:   d.SourceTag,
		SourceForm:  d.SourceForm,
		SourceAccn:  d.SourceAccession,
		FiledDate:   filed,
		Confidence:  d.Confidence,
		ReasonsJSON: raw,
		NeedsReview: d.NeedsReview,
	}, nil
}

// UpsertDividends writes one company's parsed timeline in a single
// batch, keyed by (company_id, ex_dividend_date). Re-collections update
// amounts and scores in place; manual review state is preserved.
func (s *Store) UpsertDividends(ctx context.Context, companyID int64, divs []model.Dividend) (int, error) {
	if len(divs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, d := range divs {
		row, err := toRow(companyID, d)
		if err != nil {
			return 0, err
		}
		batch.Queue(`
			INSERT INTO dividends (
				company_id, amount, ex_dividend_date, fiscal_year, fiscal_quarter,
				period_type, period_days, frequency, source_tag, source_form,
				source_accession, filed_date, confidence, reasons, needs_review
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (company_id, ex_dividend_date) DO UPDATE
			SET amount = EXCLUDED.amount,
			    fiscal_year = EXCLUDED.fiscal_year,
			    fiscal_quarter = EXCLUDED.fiscal_quarter,
			    period_type = EXCLUDED.period_type,
			    period_days = EXCLUDED.period_days,
			    frequency = EXCLUDED.frequency,
			    source_tag = EXCLUDED.source_tag,
			    source_form = EXCLUDED.source_form,
			    source_accession = EXCLUDED.source_accession,
			    filed_date = EXCLUDED.filed_date,
			    confidence = EXCLUDED.confidence,
			    reasons = EXCLUDED.reasons,
			    needs_review = EXCLUDED.needs_review,
			    updated_at = now()
		`, row.CompanyID, row.Amount, row.ExDate, row.FiscalYear, row.FiscalQtr,
			row.PeriodType, row.PeriodDays, row.Frequency, row.SourceTag, row.SourceForm,
			row.SourceAccn, row.FiledDate, row.Confidence, row.ReasonsJSON, row.NeedsReview)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range divs {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("upsert dividends for company %d: %w", companyID, err)
		}
	}

	s.logger.Debug("upserted dividends", "company_id", companyID, "count", len(divs))
	return len(divs), nil
}

// DividendsForCompany returns a company's stored timeline ascending by
// ex-dividend date.
func (s *Store) DividendsForCompany(ctx context.Context, companyID int64) ([]model.Dividend, error) {
	rows, err := s.db.Query(ctx, `
		SELECT amount, ex_dividend_date, fiscal_year, fiscal_quarter,
		       period_type, period_days, frequency, source_tag, source_form,
		       source_accession, filed_date, confidence, reasons, needs_review
		FROM dividends
		WHERE company_id = $1
		ORDER BY ex_dividend_date
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("select dividends: %w", err)
	}
	defer rows.Close()

	var out []model.Dividend
	for rows.Next() {
		var (
			d       model.Dividend
			period  string
			filed   *time.Time
			reasons []byte
		)
		err := rows.Scan(&d.Amount, &d.ExDate, &d.FiscalYear, &d.FiscalQuarter,
			&period, &d.PeriodDays, &d.Frequency, &d.SourceTag, &d.SourceForm,
			&d.SourceAccession, &filed, &d.Confidence, &reasons, &d.NeedsReview)
		if err != nil {
			return nil, fmt.Errorf("scan dividend: %w", err)
		}
		d.PeriodType = model.PeriodType(period)
		if filed != nil {
			d.FiledDate = *filed
		}
		if err := json.Unmarshal(reasons, &d.Reasons); err != nil {
			return nil, fmt.Errorf("unmarshal reasons: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
