// Package fetcher orchestrates collection runs: resolve targets, fetch
// company facts from EDGAR, run the dividend pipeline, persist.
//
// Companies are independent, so runs fan out with bounded concurrency;
// the EDGAR client's rate limiter keeps aggregate traffic inside the
// SEC's fair-access cap regardless of fan-out. One company failing
// never aborts the run.
package fetcher
