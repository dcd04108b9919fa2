package xbrl

import (
	"math"
	"time"

	"github.com/divscout/divscout/internal/model"
)

// dividendTag describes one allow-listed XBRL tag known to carry
// dividend figures. Rank orders tag families for dedup preference:
// declared figures beat paid figures beat totals.
type dividendTag struct {
	Name     string
	PerShare bool // Tag reports a per-share figure, not a whole-dollar total
	Rank     int  // Lower wins during dedup
}

// dividendTags is the extraction allow-list, in scan order.
var dividendTags = []dividendTag{
	{Name: "CommonStockDividendsPerShareDeclared", PerShare: true, Rank: 0},
	{Name: "CommonStockDividendsPerShareCashPaid", PerShare: true, Rank: 1},
	{Name: "DividendsCommonStock", PerShare: false, Rank: 2},
	{Name: "DividendsCommonStockCash", PerShare: false, Rank: 2},
}

// unitPreference is the unit-type scan order. Only the first unit type
// with data is used; facts are never merged across unit types, since the
// same figure is frequently reported under several units.
var unitPreference = []string{"USD/shares", "USD", "pure"}

// Annual and event-triggered filing forms. An unlabeled figure sourced
// from one of these is overwhelmingly a full-year total.
var annualForms = map[string]bool{
	"10-K": true,
	"8-K":  true,
}

// rejectRule is one named rejection predicate. Rules run top-to-bottom;
// the first match wins. The order is part of the extraction contract.
type rejectRule struct {
	name   string
	reject func(f Fact, tag dividendTag, unit string) bool
}

var rejectRules = []rejectRule{
	{"non_positive_value", func(f Fact, _ dividendTag, _ string) bool {
		return f.Val == nil || *f.Val <= 0
	}},
	{"whole_currency_total", func(_ Fact, tag dividendTag, unit string) bool {
		return unit == "USD" && !tag.PerShare
	}},
	{"missing_period_end", func(f Fact, _ dividendTag, _ string) bool {
		return f.End == ""
	}},
	{"full_year_label", func(f Fact, _ dividendTag, _ string) bool {
		return f.FP == "FY"
	}},
	{"unlabeled_annual_form", func(f Fact, _ dividendTag, _ string) bool {
		return f.FP == "" && annualForms[f.Form]
	}},
}

var quarterLabels = map[string]int{"Q1": 1, "Q2": 2, "Q3": 3, "Q4": 4}

// extractTag converts one tag's facts into dividend candidates.
func (p *Parser) extractTag(tf TagFacts, tag dividendTag) []model.Dividend {
	for _, unit := range unitPreference {
		facts := tf.Units[unit]
		if len(facts) == 0 {
			continue
		}

		out := make([]model.Dividend, 0, len(facts))
		for _, f := range facts {
			d, ok := p.extractFact(f, tag, unit)
			if ok {
				out = append(out, d)
			}
		}
		return out
	}
	return nil
}

// extractFact converts a single fact into a candidate, or rejects it.
// A malformed fact is skipped, never aborts extraction of the rest.
func (p *Parser) extractFact(f Fact, tag dividendTag, unit string) (model.Dividend, bool) {
	for _, rule := range rejectRules {
		if rule.reject(f, tag, unit) {
			p.logger.Debug("fact rejected",
				"rule", rule.name, "tag", tag.Name, "end", f.End, "form", f.Form)
			return model.Dividend{}, false
		}
	}

	exDate, err := parseDate(f.End)
	if err != nil {
		p.logger.Debug("fact rejected", "rule", "bad_end_date", "tag", tag.Name, "end", f.End)
		return model.Dividend{}, false
	}

	periodType := model.PeriodInstant
	periodDays := 0
	if f.Start != "" {
		start, err := parseDate(f.Start)
		if err != nil {
			p.logger.Debug("fact rejected", "rule", "bad_start_date", "tag", tag.Name, "start", f.Start)
			return model.Dividend{}, false
		}
		periodDays = int(exDate.Sub(start).Hours() / 24)
		periodType = classifyPeriod(periodDays)
	}

	quarter := quarterLabels[f.FP]
	frequency := ""
	if quarter > 0 {
		frequency = "quarterly"
	}

	var filed time.Time
	if f.Filed != "" {
		// A bad filed date is provenance noise, not grounds to drop
		// the figure itself.
		filed, _ = parseDate(f.Filed)
	}

	return model.Dividend{
		Amount:          round4(*f.Val),
		ExDate:          exDate,
		FiscalYear:      f.FY,
		FiscalQuarter:   quarter,
		PeriodType:      periodType,
		PeriodDays:      periodDays,
		Frequency:       frequency,
		SourceTag:       tag.Name,
		SourceForm:      f.Form,
		SourceAccession: f.Accn,
		FiledDate:       filed,
		Confidence:      1.0,
	}, true
}

// classifyPeriod maps a period duration to its reporting cadence.
func classifyPeriod(days int) model.PeriodType {
	switch {
	case days >= 80 && days <= 100:
		return model.PeriodQuarterly
	case days >= 165 && days <= 185:
		return model.PeriodSemiAnnual
	case days >= 355 && days <= 375:
		return model.PeriodAnnual
	default:
		return model.PeriodOther
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
