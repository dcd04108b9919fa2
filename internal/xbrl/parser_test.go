package xbrl

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// samplePayload mirrors the shape of EDGAR's companyfacts response: two
// genuine quarterly declarations plus an FY-labeled annual total on the
// same date as one of them.
const samplePayload = `{
  "cik": 320193,
  "entityName": "Apple Inc.",
  "facts": {
    "us-gaap": {
      "CommonStockDividendsPerShareDeclared": {
        "label": "Common Stock, Dividends, Per Share, Declared",
        "units": {
          "USD/shares": [
            {
              "end": "2024-03-30",
              "val": 0.24,
              "accn": "0000320193-24-000055",
              "fy": 2024,
              "fp": "Q2",
              "form": "10-Q",
              "filed": "2024-05-02"
            },
            {
              "end": "2023-12-30",
              "val": 0.24,
              "accn": "0000320193-24-000010",
              "fy": 2024,
              "fp": "Q1",
              "form": "10-Q",
              "filed": "2024-02-01"
            },
            {
              "end": "2023-12-30",
              "val": 0.96,
              "accn": "0000320193-24-000010",
              "fy": 2023,
              "fp": "FY",
              "form": "10-K",
              "filed": "2024-02-01"
            }
          ]
        }
      }
    }
  }
}`

func parsePayload(t *testing.T, payload string) *CompanyFacts {
	t.Helper()
	var cf CompanyFacts
	if err := json.Unmarshal([]byte(payload), &cf); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return &cf
}

func TestParse_SamplePayload(t *testing.T) {
	p := newTestParser()
	cf := parsePayload(t, samplePayload)

	divs := p.Parse(cf, "")

	if len(divs) != 2 {
		t.Fatalf("got %d dividends, want 2 (FY entry rejected)", len(divs))
	}

	// Ascending by ex-date.
	if !divs[0].ExDate.Before(divs[1].ExDate) {
		t.Errorf("output not ordered: %v then %v", divs[0].ExDate, divs[1].ExDate)
	}
	for _, d := range divs {
		if d.Amount != 0.24 {
			t.Errorf("Amount = %v, want 0.24", d.Amount)
		}
		if d.Confidence != 1.0 {
			t.Errorf("Confidence = %v, want 1.0, reasons = %v", d.Confidence, d.Reasons)
		}
		if d.NeedsReview {
			t.Error("NeedsReview = true for a clean quarterly dividend")
		}
	}
}

func TestParse_CompetingTagsSameDate(t *testing.T) {
	p := newTestParser()

	payload := `{
	  "cik": 320193,
	  "facts": {
	    "us-gaap": {
	      "CommonStockDividendsPerShareDeclared": {
	        "units": {
	          "USD/shares": [
	            {"end": "2024-03-30", "val": 0.24, "fy": 2024, "fp": "Q2", "form": "10-Q"}
	          ]
	        }
	      },
	      "CommonStockDividendsPerShareCashPaid": {
	        "units": {
	          "USD/shares": [
	            {"end": "2024-03-30", "val": 0.96, "fy": 2024, "fp": "Q2", "form": "10-Q"}
	          ]
	        }
	      }
	    }
	  }
	}`

	divs := p.Parse(parsePayload(t, payload), "")
	if len(divs) != 1 {
		t.Fatalf("got %d dividends, want 1", len(divs))
	}
	if divs[0].Amount != 0.24 {
		t.Errorf("kept amount = %v, want 0.24", divs[0].Amount)
	}
}

func TestParse_NoAllowListedTags(t *testing.T) {
	p := newTestParser()

	payload := `{
	  "cik": 320193,
	  "facts": {
	    "us-gaap": {
	      "Revenues": {
	        "units": {"USD": [{"end": "2024-03-30", "val": 90000000000}]}
	      }
	    }
	  }
	}`

	divs := p.Parse(parsePayload(t, payload), "")
	if len(divs) != 0 {
		t.Fatalf("got %d dividends, want 0", len(divs))
	}

	s := Summarize(divs)
	if s.Count != 0 {
		t.Errorf("Summary.Count = %d, want 0", s.Count)
	}
}

func TestParse_MissingNamespace(t *testing.T) {
	p := newTestParser()

	payload := `{"cik": 320193, "facts": {"dei": {}}}`
	if divs := p.Parse(parsePayload(t, payload), ""); len(divs) != 0 {
		t.Fatalf("got %d dividends, want 0", len(divs))
	}
}

func TestParse_NilPayload(t *testing.T) {
	p := newTestParser()
	if divs := p.Parse(nil, ""); divs != nil {
		t.Fatalf("Parse(nil) = %v, want nil", divs)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := newTestParser()
	cf := parsePayload(t, samplePayload)

	first := p.Parse(cf, "")
	second := p.Parse(cf, "")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Parse differs:\n%+v\nvs\n%+v", first, second)
	}
}

func TestParse_InvariantsHold(t *testing.T) {
	p := newTestParser()

	// A messier payload: duplicates, a cumulative figure, a malformed
	// fact, an annual total in an overfull year.
	payload := `{
	  "cik": 99999,
	  "facts": {
	    "us-gaap": {
	      "CommonStockDividendsPerShareDeclared": {
	        "units": {
	          "USD/shares": [
	            {"end": "2023-03-15", "val": 0.20, "fy": 2023, "fp": "Q1", "form": "10-Q"},
	            {"end": "2023-06-15", "val": 0.21, "fy": 2023, "fp": "Q2", "form": "10-Q"},
	            {"end": "2023-09-15", "val": 0.19, "fy": 2023, "fp": "Q3", "form": "10-Q"},
	            {"end": "2023-12-15", "val": 0.20, "fy": 2023, "fp": "Q4", "form": "10-Q"},
	            {"end": "2023-12-20", "val": 0.80, "fy": 2023, "form": "10-Q"},
	            {"end": "2023-06-15", "val": 0.84, "fy": 2023, "fp": "Q2", "form": "10-Q"},
	            {"end": "2024-03-15", "val": 0.22, "fy": 2024, "fp": "Q1", "form": "10-Q"}
	          ]
	        }
	      },
	      "CommonStockDividendsPerShareCashPaid": {
	        "units": {
	          "USD/shares": [
	            {"end": "2024-03-15", "val": 0.22, "fy": 2024, "fp": "Q1", "form": "10-Q"},
	            {"end": "2024-06-15", "form": "10-Q"}
	          ]
	        }
	      }
	    }
	  }
	}`

	divs := p.Parse(parsePayload(t, payload), "")
	if len(divs) == 0 {
		t.Fatal("no dividends parsed")
	}

	seen := make(map[time.Time]bool)
	for i, d := range divs {
		if d.Amount <= 0 {
			t.Errorf("Amount = %v, want > 0", d.Amount)
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			t.Errorf("Confidence = %v out of [0, 1]", d.Confidence)
		}
		if seen[d.ExDate] {
			t.Errorf("duplicate ex-date %v in output", d.ExDate)
		}
		seen[d.ExDate] = true
		if i > 0 && divs[i].ExDate.Before(divs[i-1].ExDate) {
			t.Errorf("output not ascending at index %d", i)
		}
	}

	// The 0.80 unlabeled entry in the overfull 2023 must be gone.
	for _, d := range divs {
		if d.Amount == 0.80 {
			t.Error("annual-total artifact 0.80 survived the pipeline")
		}
	}
}

func TestCompanyFacts_CIKString(t *testing.T) {
	cf := &CompanyFacts{CIK: 320193}
	if got := cf.CIKString(); got != "0000320193" {
		t.Errorf("CIKString() = %q, want 0000320193", got)
	}
}
