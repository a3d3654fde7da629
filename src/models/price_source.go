package models

import "fmt"

// PriceSource records the provenance of a candidate's resolved price.
type PriceSource string

const (
	// PriceSourceQuote is a live bid/ask midpoint.
	PriceSourceQuote PriceSource = "quote"
	// PriceSourceClose is the prior close, used when the market is closed.
	PriceSourceClose PriceSource = "close_price"
	// PriceSourceCloseFallback is the prior close substituted for a missing or
	// unusable quote during market hours. Downstream consumers must treat this
	// as degraded data.
	PriceSourceCloseFallback PriceSource = "close_price_fallback"
)

func (p PriceSource) Validate() error {
	if p != PriceSourceQuote && p != PriceSourceClose && p != PriceSourceCloseFallback {
		return fmt.Errorf("PriceSource: Validate: invalid price source: %s", p)
	}

	return nil
}

// IsDegraded reports whether the price was substituted from a stale source
// while live quotes were expected.
func (p PriceSource) IsDegraded() bool {
	return p == PriceSourceCloseFallback
}
