package models

// Candidate is a normalized chain row with a resolved price, scoped to a
// single selection call. It is built by the normalizer, thinned by the filter
// funnel, ranked by the scorer, and discarded once a result is assembled.
type Candidate struct {
	Entry *ChainEntry

	Price       float64
	PriceSource PriceSource

	DTE int

	// StrikeDistancePct is the absolute percentage distance between the strike
	// and the underlying's current price, kept at full precision for ranking.
	// Rounding to two decimals happens only at the result boundary.
	StrikeDistancePct float64

	SpreadAbs *float64
	SpreadPct *float64
}

// Liquidity is the combined activity measure used for tie-breaking.
func (c *Candidate) Liquidity() int {
	return c.Entry.Volume + c.Entry.OpenInterest
}

// QuoteSourced reports whether the resolved price came from a live quote.
// Spread-based filters only apply to quote-sourced candidates.
func (c *Candidate) QuoteSourced() bool {
	return c.PriceSource == PriceSourceQuote
}
