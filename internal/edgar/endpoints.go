package edgar

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/divscout/divscout/internal/xbrl"
)

// Submissions is the filing history and registrant metadata for one CIK.
// Only the fields DivScout consumes are decoded.
type Submissions struct {
	CIK       string   `json:"cik"`
	Name      string   `json:"name"`
	Tickers   []string `json:"tickers"`
	Exchanges []string `json:"exchanges"`
	Website   string   `json:"website"`
	SIC       string   `json:"sic"`
	SICName   string   `json:"sicDescription"`
}

// TickerEntry maps one CIK to its primary ticker and registrant name.
type TickerEntry struct {
	CIK    string
	Ticker string
	Name   string
}

// tickerFileEntry is the raw shape of company_tickers.json values.
type tickerFileEntry struct {
	CIKStr int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// CompanyFacts fetches all XBRL facts for a company. Returns
// ErrNotFound when EDGAR has no XBRL data for the CIK.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*xbrl.CompanyFacts, error) {
	cik, err := NormalizeCIK(cik)
	if err != nil {
		return nil, err
	}

	var facts xbrl.CompanyFacts
	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.baseURL, cik)
	if err := c.get(ctx, url, &facts); err != nil {
		return nil, fmt.Errorf("get company facts %s: %w", cik, err)
	}
	return &facts, nil
}

// Submissions fetches registrant metadata and filing history for a CIK.
// Responses are cached for the client's cache TTL.
func (c *Client) Submissions(ctx context.Context, cik string) (*Submissions, error) {
	cik, err := NormalizeCIK(cik)
	if err != nil {
		return nil, err
	}

	cacheKey := "submissions:" + cik
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*Submissions), nil
	}

	var subs Submissions
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.baseURL, cik)
	if err := c.get(ctx, url, &subs); err != nil {
		return nil, fmt.Errorf("get submissions %s: %w", cik, err)
	}

	c.cache.Set(cacheKey, &subs, gocache.DefaultExpiration)
	return &subs, nil
}

// TickerMap fetches the SEC's CIK-to-ticker mapping, keyed by 10-digit
// CIK. The file covers every registrant, so it is cached aggressively.
func (c *Client) TickerMap(ctx context.Context) (map[string]TickerEntry, error) {
	if cached, ok := c.cache.Get("ticker_map"); ok {
		return cached.(map[string]TickerEntry), nil
	}

	// Shape: {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
	var raw map[string]tickerFileEntry
	if err := c.get(ctx, c.tickerURL, &raw); err != nil {
		return nil, fmt.Errorf("get ticker map: %w", err)
	}

	m := make(map[string]TickerEntry, len(raw))
	for _, e := range raw {
		cik := fmt.Sprintf("%010d", e.CIKStr)
		m[cik] = TickerEntry{CIK: cik, Ticker: e.Ticker, Name: e.Title}
	}

	c.cache.Set("ticker_map", m, gocache.DefaultExpiration)
	c.logger.Debug("loaded ticker map", "entries", len(m))
	return m, nil
}

// ResolveTicker finds the CIK for a ticker symbol via the ticker map.
// Returns ErrNotFound for unknown tickers.
func (c *Client) ResolveTicker(ctx context.Context, ticker string) (TickerEntry, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	m, err := c.TickerMap(ctx)
	if err != nil {
		return TickerEntry{}, err
	}

	for _, e := range m {
		if e.Ticker == ticker {
			return e, nil
		}
	}
	return TickerEntry{}, fmt.Errorf("resolve ticker %s: %w", ticker, ErrNotFound)
}

// NormalizeCIK zero-pads a numeric CIK to the 10 digits EDGAR expects.
func NormalizeCIK(cik string) (string, error) {
	cik = strings.TrimSpace(cik)
	n, err := strconv.ParseInt(cik, 10, 64)
	if err != nil || n < 0 {
		return "", fmt.Errorf("invalid CIK %q", cik)
	}
	return fmt.Sprintf("%010d", n), nil
}
