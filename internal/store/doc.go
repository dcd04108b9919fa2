// Package store persists companies, dividend timelines, and the
// collection log to Postgres.
//
// Dividends are keyed by (company_id, ex_dividend_date): re-running a
// collection upserts in place, so refreshed confidence scores replace
// stale ones without duplicating the timeline.
package store
