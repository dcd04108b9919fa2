// Package cli implements the divscout command tree: collection
// (fetch, refresh), inspection (companies, stats, history), the
// review workflow (review, approve), data quality (cleanup, enrich),
// and destructive maintenance (wipe).
package cli
