package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SelectionResult is the write-once outcome of one selection call. Either
// Selected is true and the contract fields are populated, or Selected is
// false and FilterStats alone explains the empty outcome.
type SelectionResult struct {
	RequestID    uuid.UUID `json:"request_id"`
	Timestamp    time.Time `json:"timestamp"`
	Ticker       string    `json:"ticker"`
	Side         Side      `json:"side"`
	CurrentPrice float64   `json:"current_price"`

	Selected bool `json:"selected"`

	OptionSymbol      OptionSymbol `json:"option_symbol,omitempty"`
	Strike            float64      `json:"strike,omitempty"`
	Expiration        *time.Time   `json:"expiration,omitempty"`
	DTE               int          `json:"dte,omitempty"`
	OptionType        OptionType   `json:"option_type,omitempty"`
	Price             float64      `json:"price,omitempty"`
	Bid               *float64     `json:"bid,omitempty"`
	Ask               *float64     `json:"ask,omitempty"`
	SpreadPct         *float64     `json:"spread_pct,omitempty"`
	Volume            int          `json:"volume"`
	OpenInterest      int          `json:"open_interest"`
	StrikeDistancePct float64      `json:"strike_distance_pct"`

	MaxPrice    float64     `json:"max_price"`
	PriceSource PriceSource `json:"price_source,omitempty"`
	MarketOpen  bool        `json:"market_open"`

	SelectionTimeMs int64 `json:"selection_time_ms"`

	Reasoning   *Reasoning  `json:"reasoning,omitempty"`
	FilterStats FilterStats `json:"filter_stats"`

	// Warnings carries secondary conditions, such as an audit-log write
	// failure, that do not invalidate the selection itself.
	Warnings []string `json:"warnings,omitempty"`
}

// RoundPct rounds a percentage to two decimals for display and persistence.
func RoundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
