package selector

import (
	"github.com/strikepick/strikepick/src/models"
)

// PickBest selects exactly one survivor, or nil when the set is empty.
// Ordering: closest to at-the-money, then tighter spread (a known spread beats
// an unknown one), then higher combined liquidity, then first appearance in
// the input sequence. The final tie-break makes the result deterministic for
// identical inputs.
func PickBest(survivors []*models.Candidate) *models.Candidate {
	var best *models.Candidate

	for _, c := range survivors {
		if best == nil || better(c, best) {
			best = c
		}
	}

	return best
}

// better reports whether challenger strictly beats incumbent. Ties at every
// level keep the incumbent, preserving first-appearance order.
func better(challenger, incumbent *models.Candidate) bool {
	if challenger.StrikeDistancePct != incumbent.StrikeDistancePct {
		return challenger.StrikeDistancePct < incumbent.StrikeDistancePct
	}

	cSpread, cKnown := spreadFor(challenger)
	iSpread, iKnown := spreadFor(incumbent)

	if cKnown != iKnown {
		return cKnown
	}

	if cKnown && cSpread != iSpread {
		return cSpread < iSpread
	}

	return challenger.Liquidity() > incumbent.Liquidity()
}

func spreadFor(c *models.Candidate) (float64, bool) {
	if c.SpreadPct == nil {
		return 0, false
	}

	return *c.SpreadPct, true
}
