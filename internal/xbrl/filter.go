package xbrl

import (
	"sort"

	"github.com/divscout/divscout/internal/model"
)

// filterAnnualTotals removes cumulative full-year figures that slipped
// through extraction tagged as single distribution events.
//
// The model: a genuine quarterly program pays at most four times a year,
// so a year with more than four entries almost certainly contains an
// annual total. Years at or under four entries pass untouched. Removal
// is the one irreversible decision in the pipeline; everything else is
// recoverable through the confidence score downstream, so removed rows
// are logged at debug level.
func (p *Parser) filterAnnualTotals(divs []model.Dividend) []model.Dividend {
	if len(divs) < 4 {
		return divs
	}

	byYear := make(map[int][]model.Dividend)
	for _, d := range divs {
		byYear[d.Year()] = append(byYear[d.Year()], d)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	filtered := make([]model.Dividend, 0, len(divs))
	for _, year := range years {
		yearDivs := byYear[year]
		if len(yearDivs) <= 4 {
			filtered = append(filtered, yearDivs...)
			continue
		}
		filtered = append(filtered, p.filterYear(year, yearDivs)...)
	}
	return filtered
}

// filterYear applies the first applicable rule to an overfull year:
// IQR outlier removal when the amounts have spread, otherwise the
// ratio-to-median fallback for flat distributions.
func (p *Parser) filterYear(year int, yearDivs []model.Dividend) []model.Dividend {
	amounts := make([]float64, len(yearDivs))
	for i, d := range yearDivs {
		amounts[i] = d.Amount
	}
	sort.Float64s(amounts)

	n := len(amounts)
	q1 := amounts[n/4]
	q3 := amounts[3*n/4]
	iqr := q3 - q1

	if iqr > 0 {
		upper := q3 + 1.5*iqr
		kept := make([]model.Dividend, 0, n)
		for _, d := range yearDivs {
			if d.Amount > upper {
				p.logger.Debug("removed IQR outlier",
					"year", year,
					"amount", d.Amount,
					"upper_bound", upper,
					"ex_date", d.ExDate.Format("2006-01-02"),
				)
				continue
			}
			kept = append(kept, d)
		}
		return kept
	}

	// Flat year: look for the ~4x-median entry that is the annual total.
	med := median(amounts)
	kept := make([]model.Dividend, 0, n)
	for _, d := range yearDivs {
		ratio := d.Amount / med

		unlabeledOrQ4 := d.FiscalQuarter == 0 || d.FiscalQuarter == 4
		if ratio >= p.cfg.AnnualRatioLow && ratio <= p.cfg.AnnualRatioHigh && unlabeledOrQ4 {
			p.logger.Debug("removed likely annual total",
				"year", year,
				"amount", d.Amount,
				"ratio_to_median", ratio,
				"ex_date", d.ExDate.Format("2006-01-02"),
			)
			continue
		}
		if ratio > p.cfg.ExtremeRatio {
			p.logger.Debug("removed extreme amount",
				"year", year,
				"amount", d.Amount,
				"ratio_to_median", ratio,
				"ex_date", d.ExDate.Format("2006-01-02"),
			)
			continue
		}
		kept = append(kept, d)
	}
	return kept
}
