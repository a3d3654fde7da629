package selector

import (
	"github.com/strikepick/strikepick/src/models"
)

// BuildReasoning assembles the explanation for the winning candidate. It is
// reconstructable purely from the candidate and the thresholds in force; the
// recorder keeps no state of its own.
func BuildReasoning(c *models.Candidate, req *models.SelectionRequest, policy models.SelectionPolicyYAML) *models.Reasoning {
	maxPrice := policy.MaxPrice.Ceiling(req.Side, req.CurrentPrice)

	return &models.Reasoning{
		ATMDistancePct:   models.RoundPct(c.StrikeDistancePct),
		Volume:           c.Entry.Volume,
		OpenInterest:     c.Entry.OpenInterest,
		SpreadAbs:        c.SpreadAbs,
		SpreadPct:        c.SpreadPct,
		SpreadAcceptable: !SpreadTooWide(c, policy.MaxSpreadPct),
		PriceWithinMax:   c.Price <= maxPrice,
		PriceSource:      c.PriceSource,
		DegradedData:     c.PriceSource.IsDegraded(),
	}
}
