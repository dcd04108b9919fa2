package model

import "time"

// -----------------------------------------------------------------------------
// Relational Types
// -----------------------------------------------------------------------------

// Company represents a dividend-paying issuer tracked by DivScout.
type Company struct {
	ID          int64  // Database primary key (0 before first insert)
	CIK         string // SEC Central Index Key, 10-digit zero-padded
	Ticker      string // Exchange ticker (e.g., "AAPL")
	Name        string // Registrant name from EDGAR
	Website     string // Official website (from submissions, optional)
	Description string // Short description (from enrichment, optional)
}

// -----------------------------------------------------------------------------
// Dividend Timeline Types
// -----------------------------------------------------------------------------

// PeriodType classifies the reporting period a dividend fact covers,
// derived from the fact's start/end dates.
type PeriodType string

const (
	PeriodInstant    PeriodType = "instant"     // No start date on the fact
	PeriodQuarterly  PeriodType = "quarterly"   // 80-100 days
	PeriodSemiAnnual PeriodType = "semi_annual" // 165-185 days
	PeriodAnnual     PeriodType = "annual"      // 355-375 days
	PeriodOther      PeriodType = "other"       // Anything else
)

// Dividend is one distribution event on a company's timeline.
//
// Created by the extractor at confidence 1.0; the dedup stage selects
// among same-date candidates, the annual-total filter removes artifacts,
// and the scorer fills Confidence, Reasons, and NeedsReview.
type Dividend struct {
	Amount        float64    // Per-share amount in dollars, > 0, 4dp
	ExDate        time.Time  // Ex-dividend date (period end), timeline key
	FiscalYear    int        // Filer's fiscal year, 0 if not reported
	FiscalQuarter int        // 1-4, 0 if no quarter label
	PeriodType    PeriodType // Derived period classification
	PeriodDays    int        // end - start in days, 0 for instant
	Frequency     string     // "quarterly" when a quarter label exists

	// Provenance
	SourceTag       string    // XBRL tag the fact came from
	SourceForm      string    // Filing form (10-Q, 10-K, 8-K, ...)
	SourceAccession string    // EDGAR accession number
	FiledDate       time.Time // Filing date, zero if not reported

	// Quality
	Confidence  float64         // Multiplicative score in [0, 1], 3dp
	Reasons     []PenaltyReason // Penalties applied, in evaluation order
	NeedsReview bool            // Confidence below the review threshold
}

// Year returns the calendar year of the ex-dividend date.
func (d Dividend) Year() int {
	return d.ExDate.Year()
}

// -----------------------------------------------------------------------------
// Confidence Penalties
// -----------------------------------------------------------------------------

// PenaltyKind identifies one confidence penalty. The set is closed so
// downstream consumers and tests match on kinds, not message text.
type PenaltyKind string

const (
	PenaltyHighAmount          PenaltyKind = "high_amount"            // Above max-reasonable ceiling
	PenaltyLowAmount           PenaltyKind = "low_amount"             // Below min-reasonable floor
	PenaltyHighVsMedian        PenaltyKind = "high_vs_median"         // > 3x median
	PenaltyAboveMedian         PenaltyKind = "above_median"           // > 2x median
	PenaltyBelowMedian         PenaltyKind = "below_median"           // < 0.5x median
	PenaltyAnnualPeriod        PenaltyKind = "annual_period"          // Period spans ~a year
	PenaltySemiAnnualPeriod    PenaltyKind = "semi_annual_period"     // Period spans ~half a year
	PenaltyNoFiscalPeriod      PenaltyKind = "no_fiscal_period"       // Fact carried no fiscal label
	PenaltyAnnualFormNoQuarter PenaltyKind = "annual_form_no_quarter" // 10-K fact without a quarter
	PenaltyCompanyOverride     PenaltyKind = "company_override"       // Above per-company ceiling
)

// PenaltyReason records one applied penalty and the value that triggered
// it (a dollar amount or a ratio, depending on Kind).
type PenaltyReason struct {
	Kind      PenaltyKind
	Magnitude float64
}

// HasPenalty reports whether a penalty of the given kind was applied.
func (d Dividend) HasPenalty(kind PenaltyKind) bool {
	for _, r := range d.Reasons {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Summary Statistics
// -----------------------------------------------------------------------------

// Stability classifies payment consistency from the coefficient of
// variation of dividend amounts.
type Stability string

const (
	StabilityVeryStable     Stability = "very_stable"     // CV < 0.10
	StabilityStable         Stability = "stable"          // CV < 0.30
	StabilityVariable       Stability = "variable"        // CV < 0.50
	StabilityHighlyVariable Stability = "highly_variable" // CV >= 0.50
)

// Summary holds descriptive statistics over one company's final dividend
// timeline. The zero value is the explicit empty state for no dividends.
type Summary struct {
	Count            int
	AmountMin        float64
	AmountMax        float64
	AmountMean       float64
	AmountMedian     float64
	ConfidenceMean   float64
	NeedsReviewCount int
	FirstExDate      time.Time
	LastExDate       time.Time

	// Set only when Count >= 2.
	AmountStdev   float64
	CV            float64 // Stdev / mean
	HasDispersion bool
	Stability     Stability
}
