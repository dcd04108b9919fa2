package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Collection run outcomes.
const (
	CollectionSuccess = "success"
	CollectionEmpty   = "empty" // EDGAR had data but no dividends survived
	CollectionFailed  = "failed"
)

// CollectionEntry is one logged collection attempt.
type CollectionEntry struct {
	ID         uuid.UUID
	CompanyID  int64
	Ticker     string
	Status     string
	Records    int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// LogCollection records one collection attempt. companyID 0 is stored
// as NULL (company could not be resolved).
func (s *Store) LogCollection(ctx context.Context, e CollectionEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	var companyID *int64
	if e.CompanyID != 0 {
		companyID = &e.CompanyID
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO collection_log (id, company_id, ticker, status, records, error, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, companyID, e.Ticker, e.Status, e.Records, e.Error, e.StartedAt)
	if err != nil {
		return fmt.Errorf("log collection: %w", err)
	}
	return nil
}

// RecentCollections returns the latest collection attempts, newest
// first.
func (s *Store) RecentCollections(ctx context.Context, limit int) ([]CollectionEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, COALESCE(company_id, 0), ticker, status, records, error, started_at, finished_at
		FROM collection_log
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select collection log: %w", err)
	}
	defer rows.Close()

	var out []CollectionEntry
	for rows.Next() {
		var e CollectionEntry
		err := rows.Scan(&e.ID, &e.CompanyID, &e.Ticker, &e.Status, &e.Records,
			&e.Error, &e.StartedAt, &e.FinishedAt)
		if err != nil {
			return nil, fmt.Errorf("scan collection entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
