package xbrl

import "github.com/divscout/divscout/internal/model"

// Summarize computes descriptive statistics over a final dividend
// timeline. Pure aggregation: no side effects, safe to call repeatedly.
// Zero input returns the zero-value Summary, the explicit empty state.
func Summarize(divs []model.Dividend) model.Summary {
	if len(divs) == 0 {
		return model.Summary{}
	}

	amounts := make([]float64, len(divs))
	confidences := make([]float64, len(divs))
	s := model.Summary{
		Count:       len(divs),
		AmountMin:   divs[0].Amount,
		AmountMax:   divs[0].Amount,
		FirstExDate: divs[0].ExDate,
		LastExDate:  divs[0].ExDate,
	}

	for i, d := range divs {
		amounts[i] = d.Amount
		confidences[i] = d.Confidence

		if d.Amount < s.AmountMin {
			s.AmountMin = d.Amount
		}
		if d.Amount > s.AmountMax {
			s.AmountMax = d.Amount
		}
		if d.ExDate.Before(s.FirstExDate) {
			s.FirstExDate = d.ExDate
		}
		if d.ExDate.After(s.LastExDate) {
			s.LastExDate = d.ExDate
		}
		if d.NeedsReview {
			s.NeedsReviewCount++
		}
	}

	s.AmountMean = mean(amounts)
	s.AmountMedian = median(amounts)
	s.ConfidenceMean = mean(confidences)

	if len(amounts) >= 2 {
		s.AmountStdev = sampleStdev(amounts, s.AmountMean)
		if s.AmountMean > 0 {
			s.CV = s.AmountStdev / s.AmountMean
		}
		s.HasDispersion = true
		s.Stability = classifyStability(s.CV)
	}
	return s
}

func classifyStability(cv float64) model.Stability {
	switch {
	case cv < 0.10:
		return model.StabilityVeryStable
	case cv < 0.30:
		return model.StabilityStable
	case cv < 0.50:
		return model.StabilityVariable
	default:
		return model.StabilityHighlyVariable
	}
}
