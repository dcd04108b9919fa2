package xbrl

import (
	"testing"
	"time"

	"github.com/divscout/divscout/internal/model"
)

func quarterlyDivs(year int, amounts ...float64) []model.Dividend {
	months := []time.Month{3, 6, 9, 12, 1, 2, 4, 5}
	divs := make([]model.Dividend, len(amounts))
	for i, a := range amounts {
		divs[i] = model.Dividend{
			Amount:        a,
			ExDate:        date(year, months[i%len(months)], 15),
			FiscalQuarter: i%4 + 1,
		}
	}
	return divs
}

func TestFilterAnnualTotals_FewerThanFourSkipsEntirely(t *testing.T) {
	p := newTestParser()

	// Three candidates, one wildly large: too few points to judge.
	divs := quarterlyDivs(2024, 0.20, 0.20, 5.00)

	out := p.filterAnnualTotals(divs)
	if len(out) != 3 {
		t.Fatalf("got %d dividends, want 3 (filter skipped)", len(out))
	}
}

func TestFilterAnnualTotals_FourInYearUntouched(t *testing.T) {
	p := newTestParser()

	// Exactly four in the year: a normal quarterly cadence, even with an
	// outlier amount present.
	divs := quarterlyDivs(2024, 0.20, 0.20, 0.20, 0.80)

	out := p.filterAnnualTotals(divs)
	if len(out) != 4 {
		t.Fatalf("got %d dividends, want 4 (year untouched)", len(out))
	}
}

func TestFilterAnnualTotals_IQROutlierRemoved(t *testing.T) {
	p := newTestParser()

	// Five entries, amounts [0.20 0.21 0.19 0.20 0.80], the 0.80
	// unlabeled. Sorted: q1=0.20, q3=0.21, iqr=0.01, upper=0.225.
	divs := quarterlyDivs(2024, 0.20, 0.21, 0.19, 0.20)
	divs = append(divs, model.Dividend{
		Amount: 0.80,
		ExDate: date(2024, 12, 20),
	})

	out := p.filterAnnualTotals(divs)
	if len(out) != 4 {
		t.Fatalf("got %d dividends, want 4", len(out))
	}
	for _, d := range out {
		if d.Amount == 0.80 {
			t.Errorf("annual total 0.80 survived the filter")
		}
	}
}

func TestFilterAnnualTotals_FlatYearRatioFallback(t *testing.T) {
	p := newTestParser()

	// Four identical amounts leave iqr == 0; the 1.00 entry is 4x the
	// median and unlabeled, so the ratio rule removes it.
	divs := quarterlyDivs(2024, 0.25, 0.25, 0.25, 0.25)
	divs = append(divs, model.Dividend{
		Amount: 1.00,
		ExDate: date(2024, 12, 20),
	})

	out := p.filterAnnualTotals(divs)
	if len(out) != 4 {
		t.Fatalf("got %d dividends, want 4", len(out))
	}
	for _, d := range out {
		if d.Amount == 1.00 {
			t.Errorf("4x-median unlabeled entry survived the ratio rule")
		}
	}
}

func TestFilterAnnualTotals_RatioWindowRespectsLabel(t *testing.T) {
	p := newTestParser()

	// Same 4x ratio but labeled Q1: inside the window yet not
	// unlabeled-or-Q4, and below the extreme cutoff, so it stays.
	divs := quarterlyDivs(2024, 0.25, 0.25, 0.25, 0.25)
	divs = append(divs, model.Dividend{
		Amount:        1.00,
		ExDate:        date(2024, 12, 20),
		FiscalQuarter: 1,
	})

	out := p.filterAnnualTotals(divs)
	if len(out) != 5 {
		t.Fatalf("got %d dividends, want 5 (Q1-labeled 4x entry kept)", len(out))
	}
}

func TestFilterAnnualTotals_ExtremeRatioIgnoresLabel(t *testing.T) {
	p := newTestParser()

	// 6x the median is dropped even with a quarter label.
	divs := quarterlyDivs(2024, 0.20, 0.20, 0.20, 0.20)
	divs = append(divs, model.Dividend{
		Amount:        1.20,
		ExDate:        date(2024, 12, 20),
		FiscalQuarter: 2,
	})

	out := p.filterAnnualTotals(divs)
	if len(out) != 4 {
		t.Fatalf("got %d dividends, want 4", len(out))
	}
	for _, d := range out {
		if d.Amount == 1.20 {
			t.Errorf("6x-median entry survived the extreme-ratio rule")
		}
	}
}

func TestFilterAnnualTotals_YearsPartitionedIndependently(t *testing.T) {
	p := newTestParser()

	// 2023 is overfull with an artifact; 2024 is a clean quartet. Only
	// the 2023 artifact goes.
	divs := quarterlyDivs(2023, 0.20, 0.21, 0.19, 0.20)
	divs = append(divs, model.Dividend{Amount: 0.80, ExDate: date(2023, 12, 20)})
	divs = append(divs, quarterlyDivs(2024, 0.22, 0.22, 0.23, 0.23)...)

	out := p.filterAnnualTotals(divs)
	if len(out) != 8 {
		t.Fatalf("got %d dividends, want 8", len(out))
	}

	counts := map[int]int{}
	for _, d := range out {
		counts[d.Year()]++
	}
	if counts[2023] != 4 || counts[2024] != 4 {
		t.Errorf("per-year counts = %v, want 4 and 4", counts)
	}
}
