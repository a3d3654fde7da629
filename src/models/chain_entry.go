package models

import (
	"fmt"
	"time"
)

// ChainEntry is one raw row of an option chain snapshot, as delivered by the
// market data collaborator. Quote and close fields are pointers because the
// upstream feed omits them freely; zero is a legal quote value only for sizes.
type ChainEntry struct {
	Ticker       string       `json:"ticker"`
	Symbol       OptionSymbol `json:"option_symbol"`
	Strike       float64      `json:"strike"`
	Expiration   time.Time    `json:"expiration"`
	OptionType   OptionType   `json:"option_type"`
	Bid          *float64     `json:"bid"`
	Ask          *float64     `json:"ask"`
	Last         *float64     `json:"last"`
	PrevClose    *float64     `json:"prev_close"`
	Volume       int          `json:"volume"`
	OpenInterest int          `json:"open_interest"`
}

func (e *ChainEntry) Validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("ChainEntry: Validate: option symbol is required")
	}

	if e.Strike <= 0 {
		return fmt.Errorf("ChainEntry: Validate: strike must be positive, got %v", e.Strike)
	}

	if e.Expiration.IsZero() {
		return fmt.Errorf("ChainEntry: Validate: expiration is required")
	}

	if err := e.OptionType.Validate(); err != nil {
		return fmt.Errorf("ChainEntry: Validate: %w", err)
	}

	if e.Bid != nil && *e.Bid < 0 {
		return fmt.Errorf("ChainEntry: Validate: negative bid %v", *e.Bid)
	}

	if e.Ask != nil && *e.Ask < 0 {
		return fmt.Errorf("ChainEntry: Validate: negative ask %v", *e.Ask)
	}

	if e.Bid != nil && e.Ask != nil && *e.Ask > 0 && *e.Ask < *e.Bid {
		return fmt.Errorf("ChainEntry: Validate: ask %v below bid %v", *e.Ask, *e.Bid)
	}

	if e.PrevClose != nil && *e.PrevClose < 0 {
		return fmt.Errorf("ChainEntry: Validate: negative prev close %v", *e.PrevClose)
	}

	return nil
}

// HasQuote reports whether both sides of the market are present and positive.
func (e *ChainEntry) HasQuote() bool {
	return e.Bid != nil && e.Ask != nil && *e.Bid > 0 && *e.Ask > 0
}

// HasPrevClose reports whether a positive prior close price is available.
func (e *ChainEntry) HasPrevClose() bool {
	return e.PrevClose != nil && *e.PrevClose > 0
}

// completeness scores how many optional fields a row actually carries, so that
// duplicate rows for the same option symbol can be reconciled.
func (e *ChainEntry) completeness() int {
	score := 0
	if e.Bid != nil && *e.Bid > 0 {
		score++
	}
	if e.Ask != nil && *e.Ask > 0 {
		score++
	}
	if e.Last != nil && *e.Last > 0 {
		score++
	}
	if e.HasPrevClose() {
		score++
	}
	if e.Volume > 0 {
		score++
	}
	if e.OpenInterest > 0 {
		score++
	}

	return score
}

// DedupeChainEntries reconciles duplicate rows by option symbol, keeping the
// most complete row. The first-seen order of surviving symbols is preserved so
// downstream tie-breaking is stable.
func DedupeChainEntries(entries []ChainEntry) []ChainEntry {
	indexBySymbol := make(map[OptionSymbol]int)
	out := make([]ChainEntry, 0, len(entries))

	for _, entry := range entries {
		i, seen := indexBySymbol[entry.Symbol]
		if !seen {
			indexBySymbol[entry.Symbol] = len(out)
			out = append(out, entry)
			continue
		}

		if entry.completeness() > out[i].completeness() {
			out[i] = entry
		}
	}

	return out
}
