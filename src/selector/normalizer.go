package selector

import (
	"time"

	"github.com/strikepick/strikepick/src/models"
)

// NormalizeDrops counts chain rows the normalizer excluded before the funnel
// ran. Expired rows are attributed to the DTE stage and priceless rows to the
// no-price stage so the funnel tally stays exact.
type NormalizeDrops struct {
	Expired int
	NoPrice int
}

// NormalizeEntries converts deduplicated chain rows into candidates, resolving
// one usable price per contract. Rows that are malformed, already expired, or
// priceless produce no candidate and are counted instead of failing the call.
func NormalizeEntries(entries []models.ChainEntry, req *models.SelectionRequest) ([]*models.Candidate, NormalizeDrops) {
	candidates := make([]*models.Candidate, 0, len(entries))
	var drops NormalizeDrops

	for i := range entries {
		entry := &entries[i]

		if err := entry.Validate(); err != nil {
			// malformed rows have no trustworthy quote, count them as priceless
			drops.NoPrice++
			continue
		}

		dte := daysToExpiry(entry.Expiration, req)
		if dte < 0 {
			drops.Expired++
			continue
		}

		candidate, ok := newCandidate(entry, req, dte)
		if !ok {
			drops.NoPrice++
			continue
		}

		candidates = append(candidates, candidate)
	}

	return candidates, drops
}

func newCandidate(entry *models.ChainEntry, req *models.SelectionRequest, dte int) (*models.Candidate, bool) {
	price, source, ok := resolvePrice(entry, req.MarketOpen)
	if !ok {
		return nil, false
	}

	candidate := &models.Candidate{
		Entry:             entry,
		Price:             price,
		PriceSource:       source,
		DTE:               dte,
		StrikeDistancePct: strikeDistancePct(entry.Strike, req.CurrentPrice),
	}

	// close-priced candidates have no spread; a stale bid/ask is not a market
	if source == models.PriceSourceQuote && entry.HasQuote() {
		spreadAbs := *entry.Ask - *entry.Bid
		candidate.SpreadAbs = &spreadAbs

		if price > 0 {
			spreadPct := spreadAbs / price * 100.0
			candidate.SpreadPct = &spreadPct
		}
	}

	return candidate, true
}

// resolvePrice walks the price ladder: live midpoint during market hours,
// otherwise the prior close. A close substituted while the market is open is
// tagged as fallback so the degraded path stays visible downstream.
func resolvePrice(entry *models.ChainEntry, marketOpen bool) (float64, models.PriceSource, bool) {
	if marketOpen && entry.HasQuote() {
		return (*entry.Bid + *entry.Ask) / 2.0, models.PriceSourceQuote, true
	}

	if entry.HasPrevClose() {
		if marketOpen {
			return *entry.PrevClose, models.PriceSourceCloseFallback, true
		}

		return *entry.PrevClose, models.PriceSourceClose, true
	}

	return 0, "", false
}

func strikeDistancePct(strike, currentPrice float64) float64 {
	distance := strike - currentPrice
	if distance < 0 {
		distance = -distance
	}

	return distance / currentPrice * 100.0
}

func daysToExpiry(expiration time.Time, req *models.SelectionRequest) int {
	tradeDate := req.TradeDate()
	y, m, d := expiration.Date()
	expiryDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return int(expiryDate.Sub(tradeDate).Hours() / 24)
}
