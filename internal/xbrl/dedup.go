package xbrl

import (
	"sort"
	"time"

	"github.com/divscout/divscout/internal/model"
)

// deduplicate collapses same-date candidates from competing tags into
// exactly one survivor per ex-dividend date. Selection only: no field of
// the surviving candidate is altered.
//
// When several tags report the same date, the smaller amounts are the
// periodic figures and the larger ones are usually cumulative totals, so
// admissibility is capped at DedupTolerance x the group minimum. Among
// admissible candidates the declared-family tag wins, then the smaller
// amount.
func (p *Parser) deduplicate(divs []model.Dividend) []model.Dividend {
	if len(divs) == 0 {
		return divs
	}

	byDate := make(map[time.Time][]model.Dividend)
	for _, d := range divs {
		byDate[d.ExDate] = append(byDate[d.ExDate], d)
	}

	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	unique := make([]model.Dividend, 0, len(dates))
	for _, date := range dates {
		group := byDate[date]
		if len(group) == 1 {
			unique = append(unique, group[0])
			continue
		}
		survivor := p.selectSurvivor(group)
		p.logger.Debug("deduplicated ex-date",
			"ex_date", date.Format("2006-01-02"),
			"candidates", len(group),
			"kept_amount", survivor.Amount,
			"kept_tag", survivor.SourceTag,
		)
		unique = append(unique, survivor)
	}
	return unique
}

func (p *Parser) selectSurvivor(group []model.Dividend) model.Dividend {
	smallest := group[0]
	for _, d := range group[1:] {
		if d.Amount < smallest.Amount {
			smallest = d
		}
	}

	admissible := make([]model.Dividend, 0, len(group))
	for _, d := range group {
		if d.Amount <= smallest.Amount*p.cfg.DedupTolerance {
			admissible = append(admissible, d)
		}
	}
	if len(admissible) == 0 {
		// Degenerate tolerance (< 1) excludes even the minimum.
		return smallest
	}

	sort.SliceStable(admissible, func(i, j int) bool {
		ri, rj := tagRank(admissible[i].SourceTag), tagRank(admissible[j].SourceTag)
		if ri != rj {
			return ri < rj
		}
		return admissible[i].Amount < admissible[j].Amount
	})
	return admissible[0]
}

// tagRank returns the dedup preference rank for a source tag. Unknown
// tags rank last.
func tagRank(name string) int {
	for _, t := range dividendTags {
		if t.Name == name {
			return t.Rank
		}
	}
	return len(dividendTags)
}
