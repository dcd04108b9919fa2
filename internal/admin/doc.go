// Package admin provides read-only operational views over the
// DivScout database: aggregate stats, per-company detail, top payers,
// recent collection activity, and a data-quality report.
//
// Everything here queries directly; mutations stay in the store
// package so write paths have a single owner.
package admin
