package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/divscout/divscout/internal/edgar"
	"github.com/divscout/divscout/internal/model"
)

func TestWikiClientSummary(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if ua := r.Header.Get("User-Agent"); ua != "DivScout test@example.org" {
			t.Errorf("User-Agent = %q", ua)
		}
		if r.URL.Path != "/Apple_Inc." {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
			"extract": "Apple Inc. is an American technology company.\nSecond paragraph.",
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Apple_Inc."}}
		}`))
	}))
	defer srv.Close()

	wiki := NewWikiClient(srv.URL+"/", "DivScout test@example.org")
	p, err := wiki.Summary(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if want := "Apple Inc. is an American technology company."; p.Description != want {
		t.Errorf("description = %q, want %q", p.Description, want)
	}
	if p.SourceURL != "https://en.wikipedia.org/wiki/Apple_Inc." {
		t.Errorf("source URL = %q", p.SourceURL)
	}
	if p.License != "CC BY-SA 3.0" {
		t.Errorf("license = %q", p.License)
	}
	if len(requested) != 1 {
		t.Errorf("made %d requests, want 1", len(requested))
	}
}

func TestWikiClientStripsSuffix(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if r.URL.Path == "/Coca-Cola" {
			w.Write([]byte(`{"extract": "Coca-Cola is a carbonated soft drink."}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	wiki := NewWikiClient(srv.URL+"/", "DivScout test@example.org")
	p, err := wiki.Summary(context.Background(), "Coca-Cola Co")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if p.Description == "" {
		t.Fatal("expected suffix-stripped retry to find a page")
	}
	if len(requested) != 2 {
		t.Errorf("made %d requests, want 2 (exact then cleaned)", len(requested))
	}
	if requested[1] != "/Coca-Cola" {
		t.Errorf("second request path = %q, want /Coca-Cola", requested[1])
	}
}

func TestWikiClientMissingPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	wiki := NewWikiClient(srv.URL+"/", "DivScout test@example.org")
	p, err := wiki.Summary(context.Background(), "Obscure Holdings")
	if err != nil {
		t.Fatalf("missing page should not error: %v", err)
	}
	if p.Description != "" {
		t.Errorf("description = %q, want empty", p.Description)
	}
}

type fakeWiki struct {
	profiles map[string]Profile
}

func (f *fakeWiki) Summary(_ context.Context, name string) (Profile, error) {
	return f.profiles[name], nil
}

type fakeSubmissions struct {
	subs map[string]*edgar.Submissions
}

func (f *fakeSubmissions) Submissions(_ context.Context, cik string) (*edgar.Submissions, error) {
	s, ok := f.subs[cik]
	if !ok {
		return nil, edgar.ErrNotFound
	}
	return s, nil
}

type fakeProfileRepo struct {
	companies []model.Company
	updates   map[int64][2]string
}

func (f *fakeProfileRepo) ListCompanies(_ context.Context) ([]model.Company, error) {
	return f.companies, nil
}

func (f *fakeProfileRepo) UpdateCompanyProfile(_ context.Context, id int64, website, description string) error {
	if f.updates == nil {
		f.updates = make(map[int64][2]string)
	}
	f.updates[id] = [2]string{website, description}
	return nil
}

func TestEnricherRun(t *testing.T) {
	repo := &fakeProfileRepo{companies: []model.Company{
		{ID: 1, CIK: "0000320193", Ticker: "AAPL", Name: "Apple Inc."},
		{ID: 2, CIK: "0000021344", Ticker: "KO", Name: "Coca-Cola Co", Website: "https://coca-cola.com", Description: "done"},
	}}
	wiki := &fakeWiki{profiles: map[string]Profile{
		"Apple Inc.": {Description: "Apple Inc. is an American technology company."},
	}}
	subs := &fakeSubmissions{subs: map[string]*edgar.Submissions{
		"0000320193": {CIK: "0000320193", Website: "apple.com"},
	}}

	e := New(wiki, subs, repo, nil)
	updated, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	got, ok := repo.updates[1]
	if !ok {
		t.Fatal("company 1 was not updated")
	}
	if got[0] != "https://apple.com" {
		t.Errorf("website = %q, want https://apple.com", got[0])
	}
	if got[1] == "" {
		t.Error("description not set")
	}
	if _, ok := repo.updates[2]; ok {
		t.Error("fully-profiled company should be skipped")
	}
}

func TestEnricherMissingSubmissions(t *testing.T) {
	repo := &fakeProfileRepo{companies: []model.Company{
		{ID: 7, CIK: "0000999999", Ticker: "XYZ", Name: "Xyz Corp"},
	}}
	wiki := &fakeWiki{profiles: map[string]Profile{
		"Xyz Corp": {Description: "Xyz Corp does things."},
	}}

	e := New(wiki, &fakeSubmissions{}, repo, nil)
	updated, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if got := repo.updates[7]; got[1] != "Xyz Corp does things." {
		t.Errorf("description = %q", got[1])
	}
}

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"apple.com", "https://apple.com"},
		{"https://apple.com", "https://apple.com"},
		{"http://legacy.example.org", "http://legacy.example.org"},
		{"  ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeWebsite(tt.in); got != tt.want {
			t.Errorf("normalizeWebsite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
