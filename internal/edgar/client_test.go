package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const factsJSON = `{
  "cik": 320193,
  "entityName": "Apple Inc.",
  "facts": {
    "us-gaap": {
      "CommonStockDividendsPerShareDeclared": {
        "units": {
          "USD/shares": [
            {"end": "2024-03-30", "val": 0.24, "fy": 2024, "fp": "Q2", "form": "10-Q"}
          ]
        }
      }
    }
  }
}`

func TestCompanyFacts(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(factsJSON))
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev")

	facts, err := c.CompanyFacts(context.Background(), "320193")
	if err != nil {
		t.Fatalf("CompanyFacts failed: %v", err)
	}

	if gotPath != "/api/xbrl/companyfacts/CIK0000320193.json" {
		t.Errorf("path = %q, want zero-padded CIK path", gotPath)
	}
	if gotUA != "Test User test@divscout.dev" {
		t.Errorf("User-Agent = %q, want identifying contact", gotUA)
	}
	if facts.EntityName != "Apple Inc." {
		t.Errorf("EntityName = %q, want Apple Inc.", facts.EntityName)
	}
	if len(facts.Facts["us-gaap"]) != 1 {
		t.Errorf("got %d us-gaap tags, want 1", len(facts.Facts["us-gaap"]))
	}
}

func TestCompanyFacts_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev")

	_, err := c.CompanyFacts(context.Background(), "999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCompanyFacts_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(factsJSON))
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev",
		WithRetries(3, time.Millisecond),
		WithRateLimit(1000),
	)

	if _, err := c.CompanyFacts(context.Background(), "320193"); err != nil {
		t.Fatalf("CompanyFacts failed after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestCompanyFacts_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev",
		WithRetries(3, time.Millisecond),
		WithRateLimit(1000),
	)

	_, err := c.CompanyFacts(context.Background(), "320193")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("err = %v, want 403 APIError", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (no retry on 4xx)", got)
	}
}

func TestSubmissions_Cached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"cik": "320193", "name": "Apple Inc.", "tickers": ["AAPL"], "website": "https://www.apple.com"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev", WithRateLimit(1000))

	for i := 0; i < 3; i++ {
		subs, err := c.Submissions(context.Background(), "320193")
		if err != nil {
			t.Fatalf("Submissions failed: %v", err)
		}
		if subs.Name != "Apple Inc." {
			t.Errorf("Name = %q, want Apple Inc.", subs.Name)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (cached)", got)
	}
}

func TestResolveTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
			"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "Test User test@divscout.dev",
		WithRateLimit(1000),
		WithTickerURL(server.URL+"/files/company_tickers.json"),
	)

	entry, err := c.ResolveTicker(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("ResolveTicker failed: %v", err)
	}
	if entry.CIK != "0000320193" {
		t.Errorf("CIK = %q, want 0000320193", entry.CIK)
	}
	if entry.Name != "Apple Inc." {
		t.Errorf("Name = %q, want Apple Inc.", entry.Name)
	}

	if _, err := c.ResolveTicker(context.Background(), "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown ticker err = %v, want ErrNotFound", err)
	}
}

func TestNormalizeCIK(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"320193", "0000320193", false},
		{"0000320193", "0000320193", false},
		{" 18230 ", "0000018230", false},
		{"", "", true},
		{"AAPL", "", true},
		{"-5", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeCIK(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeCIK(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeCIK(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeCIK(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRateLimiter_SerializesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(factsJSON))
	}))
	defer server.Close()

	// 50 rps: three sequential requests need at least ~40ms.
	c := NewClient(server.URL, "Test User test@divscout.dev", WithRateLimit(50))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.CompanyFacts(context.Background(), "320193"); err != nil {
			t.Fatalf("CompanyFacts failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("3 requests at 50 rps took %v, want >= 30ms", elapsed)
	}
}
