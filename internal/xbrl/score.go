package xbrl

import "github.com/divscout/divscout/internal/model"

// score assigns each surviving candidate a multiplicative confidence in
// [0, 1] and flags rows below the review threshold.
//
// Penalties are independent and evaluated against the candidate's
// original attributes, so the factors commute and confidence can only
// fall. A candidate matching no penalty keeps confidence 1.0.
func (p *Parser) score(divs []model.Dividend, cik string) []model.Dividend {
	if len(divs) == 0 {
		return divs
	}

	amounts := make([]float64, len(divs))
	for i, d := range divs {
		amounts[i] = d.Amount
	}
	med := median(amounts)
	avg := mean(amounts)

	// Dispersion needs enough points to mean anything; below four the
	// factor is skipped entirely rather than defaulted.
	if len(amounts) >= 4 {
		sd := sampleStdev(amounts, avg)
		cv := 0.0
		if avg > 0 {
			cv = sd / avg
		}
		p.logger.Debug("amount distribution",
			"cik", cik, "median", med, "mean", avg, "stdev", sd, "cv", cv)
	}

	overrideCeiling, hasOverride := p.cfg.Overrides[cik]

	for i := range divs {
		d := &divs[i]
		confidence := 1.0
		var reasons []model.PenaltyReason

		apply := func(factor float64, kind model.PenaltyKind, magnitude float64) {
			confidence *= factor
			reasons = append(reasons, model.PenaltyReason{Kind: kind, Magnitude: magnitude})
		}

		if d.Amount > p.cfg.MaxReasonable {
			apply(0.5, model.PenaltyHighAmount, d.Amount)
		}
		if d.Amount < p.cfg.MinReasonable {
			apply(0.7, model.PenaltyLowAmount, d.Amount)
		}

		if med > 0 {
			ratio := d.Amount / med
			switch {
			case ratio > 3.0:
				apply(0.6, model.PenaltyHighVsMedian, ratio)
			case ratio > 2.0:
				apply(0.8, model.PenaltyAboveMedian, ratio)
			case ratio < 0.5:
				apply(0.8, model.PenaltyBelowMedian, ratio)
			}
		}

		switch d.PeriodType {
		case model.PeriodAnnual:
			apply(0.3, model.PenaltyAnnualPeriod, float64(d.PeriodDays))
		case model.PeriodSemiAnnual:
			apply(0.5, model.PenaltySemiAnnualPeriod, float64(d.PeriodDays))
		}

		if d.FiscalQuarter == 0 {
			apply(0.9, model.PenaltyNoFiscalPeriod, 0)
		}
		if d.SourceForm == "10-K" && d.FiscalQuarter == 0 {
			apply(0.8, model.PenaltyAnnualFormNoQuarter, 0)
		}

		if hasOverride && d.Amount > overrideCeiling {
			apply(0.7, model.PenaltyCompanyOverride, d.Amount)
		}

		d.Confidence = round3(confidence)
		d.Reasons = reasons
		d.NeedsReview = d.Confidence < p.cfg.ReviewThreshold
	}
	return divs
}
