package selector

import (
	"github.com/strikepick/strikepick/src/models"
)

// FunnelResult pairs the surviving candidates with the per-stage tally for
// one selection call.
type FunnelResult struct {
	Survivors []*models.Candidate
	Stats     models.FilterStats
}

type stagePredicate func(c *models.Candidate) bool

// RunFunnel applies the exclusion stages in their fixed order. A candidate
// removed at one stage is never evaluated at a later one, so the tally
// attributes each drop to exactly one reason.
func RunFunnel(candidates []*models.Candidate, req *models.SelectionRequest, policy models.SelectionPolicyYAML, pre NormalizeDrops) FunnelResult {
	maxPrice := policy.MaxPrice.Ceiling(req.Side, req.CurrentPrice)

	stages := []struct {
		stage models.FilterStage
		drop  stagePredicate
	}{
		{models.StageDTEOutOfRange, func(c *models.Candidate) bool {
			return c.DTE < req.MinDTE || c.DTE > req.MaxDTE
		}},
		{models.StageWrongType, func(c *models.Candidate) bool {
			return c.Entry.OptionType != req.OptionType
		}},
		{models.StageStrikeTooFar, func(c *models.Candidate) bool {
			return c.StrikeDistancePct > policy.MaxStrikeDistancePct
		}},
		// normalizer already excluded priceless rows; the stage exists so the
		// tally reads as one funnel
		{models.StageNoPrice, func(c *models.Candidate) bool {
			return c.Price <= 0
		}},
		{models.StagePriceOutOfRange, func(c *models.Candidate) bool {
			return c.Price > maxPrice
		}},
		{models.StageNoLiquidity, func(c *models.Candidate) bool {
			return c.Entry.Volume == 0 && c.Entry.OpenInterest == 0
		}},
		{models.StageNoBidAsk, func(c *models.Candidate) bool {
			return c.QuoteSourced() && !c.Entry.HasQuote()
		}},
		{models.StageSpreadTooWide, func(c *models.Candidate) bool {
			return SpreadTooWide(c, policy.MaxSpreadPct)
		}},
	}

	var stats models.FilterStats
	stats.Total = len(candidates) + pre.Expired + pre.NoPrice
	stats.Add(models.StageDTEOutOfRange, pre.Expired)
	stats.Add(models.StageNoPrice, pre.NoPrice)

	survivors := candidates
	for _, s := range stages {
		kept := survivors[:0]
		for _, c := range survivors {
			if s.drop(c) {
				stats.Add(s.stage, 1)
				continue
			}

			kept = append(kept, c)
		}

		survivors = kept
	}

	stats.Passed = len(survivors)

	return FunnelResult{Survivors: survivors, Stats: stats}
}

// SpreadTooWide is the final-stage predicate. It only applies to quote-sourced
// candidates; close-priced candidates have no spread to judge.
func SpreadTooWide(c *models.Candidate, maxSpreadPct float64) bool {
	if !c.QuoteSourced() {
		return false
	}

	if c.SpreadPct == nil {
		return false
	}

	return *c.SpreadPct > maxSpreadPct
}
