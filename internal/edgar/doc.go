// Package edgar provides the SEC EDGAR REST client.
//
// Endpoints:
//   - Company facts: https://data.sec.gov/api/xbrl/companyfacts/CIK##########.json
//   - Submissions:   https://data.sec.gov/submissions/CIK##########.json
//   - Ticker map:    https://www.sec.gov/files/company_tickers.json
//
// The SEC's fair-access policy requires an identifying User-Agent and
// caps traffic at 10 requests per second; the client enforces both. The
// ticker map and submissions are cached in memory, company-facts
// payloads are not (they are large and fetched once per collection run).
package edgar
