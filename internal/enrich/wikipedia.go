package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultWikipediaURL is the Wikipedia REST summary endpoint base.
const DefaultWikipediaURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

// Corporate suffixes stripped before the fallback lookup. Wikipedia
// titles rarely carry them ("Apple Inc." resolves, "Coca-Cola Co" does
// not).
var nameSuffixes = []string{
	" Inc.", " Inc",
	" Corp.", " Corp", " Corporation",
	" Ltd.", " Ltd", " Limited",
	" Company", " Co.", " Co",
}

// Profile is the description metadata pulled from Wikipedia.
type Profile struct {
	Description string
	SourceURL   string
	License     string
}

// WikiClient fetches page summaries from the Wikipedia REST API.
type WikiClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewWikiClient creates a client. baseURL falls back to
// DefaultWikipediaURL when empty.
func NewWikiClient(baseURL, userAgent string) *WikiClient {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	return &WikiClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary looks up a company description. It tries the name as given,
// then retries with corporate suffixes stripped. A page that simply
// does not exist returns an empty Profile and no error.
func (w *WikiClient) Summary(ctx context.Context, companyName string) (Profile, error) {
	p, err := w.fetch(ctx, companyName)
	if err != nil || p.Description != "" {
		return p, err
	}

	cleaned := companyName
	for _, suffix := range nameSuffixes {
		cleaned = strings.ReplaceAll(cleaned, suffix, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == companyName {
		return Profile{}, nil
	}
	return w.fetch(ctx, cleaned)
}

func (w *WikiClient) fetch(ctx context.Context, title string) (Profile, error) {
	endpoint := w.baseURL + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("wikipedia summary %q: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Profile{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return Profile{}, fmt.Errorf("wikipedia summary %q: status %d", title, resp.StatusCode)
	}

	var sr summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Profile{}, fmt.Errorf("decode summary %q: %w", title, err)
	}
	if sr.Extract == "" {
		return Profile{}, nil
	}

	return Profile{
		Description: firstParagraph(sr.Extract),
		SourceURL:   sr.ContentURLs.Desktop.Page,
		License:     "CC BY-SA 3.0",
	}, nil
}

// firstParagraph trims an extract down to its opening paragraph.
func firstParagraph(extract string) string {
	if i := strings.Index(extract, "\n"); i >= 0 {
		extract = extract[:i]
	}
	return strings.TrimSpace(extract)
}
