package xbrl

import "fmt"

// CompanyFacts is the top-level shape of EDGAR's companyfacts API
// response: taxonomy -> tag -> units -> facts.
type CompanyFacts struct {
	CIK        int64                          `json:"cik"`
	EntityName string                         `json:"entityName"`
	Facts      map[string]map[string]TagFacts `json:"facts"`
}

// CIKString returns the 10-digit zero-padded CIK.
func (cf *CompanyFacts) CIKString() string {
	return fmt.Sprintf("%010d", cf.CIK)
}

// TagFacts holds all reported facts for one XBRL tag, keyed by unit type
// (e.g., "USD/shares", "USD", "pure").
type TagFacts struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Units       map[string][]Fact `json:"units"`
}

// Fact is one reported data point. It exists only within a Parse call;
// everything downstream works on model.Dividend.
type Fact struct {
	Val   *float64 `json:"val"`
	Start string   `json:"start,omitempty"` // Period start, YYYY-MM-DD, optional
	End   string   `json:"end"`             // Period end, YYYY-MM-DD
	FY    int      `json:"fy"`              // Fiscal year
	FP    string   `json:"fp"`              // Fiscal period label: Q1-Q4 or FY
	Form  string   `json:"form"`            // Filing form (10-Q, 10-K, 8-K, ...)
	Filed string   `json:"filed"`           // Filing date, YYYY-MM-DD
	Accn  string   `json:"accn"`            // Accession number
}
