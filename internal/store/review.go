package store

import (
	"context"
	"fmt"
	"time"
)

// ReviewItem is one dividend row surfaced to the review workflow.
type ReviewItem struct {
	ID         int64
	Ticker     string
	Amount     float64
	ExDate     time.Time
	Confidence float64
	Reasons    []byte // Raw JSON penalty reasons
}

// NeedingReview lists unreviewed rows below the confidence cutoff,
// lowest confidence first. companyID 0 means all companies.
func (s *Store) NeedingReview(ctx context.Context, companyID int64, maxConfidence float64) ([]ReviewItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT d.id, c.ticker, d.amount, d.ex_dividend_date, d.confidence, d.reasons
		FROM dividends d
		JOIN companies c ON c.id = d.company_id
		WHERE d.needs_review AND NOT d.reviewed
		  AND d.confidence < $1
		  AND ($2 = 0 OR d.company_id = $2)
		ORDER BY d.confidence, d.ex_dividend_date
	`, maxConfidence, companyID)
	if err != nil {
		return nil, fmt.Errorf("select review queue: %w", err)
	}
	defer rows.Close()

	var out []ReviewItem
	for rows.Next() {
		var it ReviewItem
		if err := rows.Scan(&it.ID, &it.Ticker, &it.Amount, &it.ExDate, &it.Confidence, &it.Reasons); err != nil {
			return nil, fmt.Errorf("scan review item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// MarkReviewed records a human decision on one dividend row.
func (s *Store) MarkReviewed(ctx context.Context, dividendID int64, action, notes, reviewer string) error {
	ct, err := s.db.Exec(ctx, `
		UPDATE dividends
		SET reviewed = true,
		    review_action = $2,
		    review_notes = $3,
		    reviewed_by = $4,
		    reviewed_at = now(),
		    updated_at = now()
		WHERE id = $1
	`, dividendID, action, notes, reviewer)
	if err != nil {
		return fmt.Errorf("mark reviewed %d: %w", dividendID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("mark reviewed: dividend %d does not exist", dividendID)
	}
	return nil
}

// AutoApprove marks all unreviewed rows at or above the confidence
// cutoff, with amounts inside the plausible per-share band, as
// approved and returns how many were touched. Safe to run repeatedly.
func (s *Store) AutoApprove(ctx context.Context, minConfidence, minAmount, maxAmount float64) (int64, error) {
	ct, err := s.db.Exec(ctx, `
		UPDATE dividends
		SET reviewed = true,
		    review_action = 'approved',
		    reviewed_by = 'auto',
		    reviewed_at = now(),
		    updated_at = now()
		WHERE NOT reviewed
		  AND confidence >= $1
		  AND amount > $2 AND amount < $3
	`, minConfidence, minAmount, maxAmount)
	if err != nil {
		return 0, fmt.Errorf("auto approve: %w", err)
	}
	n := ct.RowsAffected()
	s.logger.Info("auto-approved dividends", "count", n, "min_confidence", minConfidence)
	return n, nil
}

// DeleteAnnualTotals removes rows whose amount exceeds ratio x the
// company's median amount: residual annual totals the in-pipeline
// filter could not see for companies collected before a rule change.
// With dryRun it only counts.
func (s *Store) DeleteAnnualTotals(ctx context.Context, ratio float64, dryRun bool) (int64, error) {
	const match = `
		FROM dividends d
		JOIN (
			SELECT company_id,
			       percentile_cont(0.5) WITHIN GROUP (ORDER BY amount) AS median
			FROM dividends
			GROUP BY company_id
		) m ON m.company_id = d.company_id
		WHERE m.median > 0 AND d.amount > $1 * m.median
	`

	if dryRun {
		var n int64
		if err := s.db.QueryRow(ctx, "SELECT count(*) "+match, ratio).Scan(&n); err != nil {
			return 0, fmt.Errorf("count annual totals: %w", err)
		}
		return n, nil
	}

	ct, err := s.db.Exec(ctx, `
		DELETE FROM dividends
		WHERE id IN (SELECT d.id `+match+`)
	`, ratio)
	if err != nil {
		return 0, fmt.Errorf("delete annual totals: %w", err)
	}
	n := ct.RowsAffected()
	s.logger.Info("deleted annual totals", "count", n, "ratio", ratio)
	return n, nil
}
