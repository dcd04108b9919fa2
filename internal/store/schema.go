package store

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id          BIGSERIAL PRIMARY KEY,
	cik         TEXT NOT NULL UNIQUE,
	ticker      TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dividends (
	id               BIGSERIAL PRIMARY KEY,
	company_id       BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	amount           NUMERIC(12,4) NOT NULL CHECK (amount > 0),
	ex_dividend_date DATE NOT NULL,
	fiscal_year      INT NOT NULL DEFAULT 0,
	fiscal_quarter   INT NOT NULL DEFAULT 0,
	period_type      TEXT NOT NULL DEFAULT 'instant',
	period_days      INT NOT NULL DEFAULT 0,
	frequency        TEXT NOT NULL DEFAULT '',
	source_tag       TEXT NOT NULL DEFAULT '',
	source_form      TEXT NOT NULL DEFAULT '',
	source_accession TEXT NOT NULL DEFAULT '',
	filed_date       DATE,
	confidence       NUMERIC(4,3) NOT NULL DEFAULT 1.0,
	reasons          JSONB NOT NULL DEFAULT '[]',
	needs_review     BOOLEAN NOT NULL DEFAULT false,
	reviewed         BOOLEAN NOT NULL DEFAULT false,
	review_action    TEXT NOT NULL DEFAULT '',
	review_notes     TEXT NOT NULL DEFAULT '',
	reviewed_by      TEXT NOT NULL DEFAULT '',
	reviewed_at      TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (company_id, ex_dividend_date)
);

CREATE INDEX IF NOT EXISTS idx_dividends_needs_review
	ON dividends (needs_review) WHERE needs_review AND NOT reviewed;

CREATE TABLE IF NOT EXISTS collection_log (
	id          UUID PRIMARY KEY,
	company_id  BIGINT REFERENCES companies(id) ON DELETE SET NULL,
	ticker      TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	records     INT NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	s.logger.Info("schema up to date")
	return nil
}

// Wipe drops all DivScout tables. Destructive; the CLI requires an
// explicit confirmation before calling it.
func (s *Store) Wipe(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS collection_log, dividends, companies`)
	if err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	s.logger.Warn("all tables dropped")
	return nil
}
