package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SelectionRequest describes one contract-selection call: which underlying,
// which direction, and the DTE window to search.
type SelectionRequest struct {
	RequestID    uuid.UUID  `json:"request_id"`
	Ticker       string     `json:"ticker"`
	Side         Side       `json:"side"`
	CurrentPrice float64    `json:"current_price"`
	OptionType   OptionType `json:"option_type"`
	MinDTE       int        `json:"min_dte"`
	MaxDTE       int        `json:"max_dte"`
	MarketOpen   bool       `json:"market_open"`
	Timestamp    time.Time  `json:"timestamp"`
}

func (r *SelectionRequest) Validate() error {
	if r.Ticker == "" {
		return fmt.Errorf("SelectionRequest: Validate: ticker is required")
	}

	if err := r.Side.Validate(); err != nil {
		return fmt.Errorf("SelectionRequest: Validate: %w", err)
	}

	if r.CurrentPrice <= 0 {
		return fmt.Errorf("SelectionRequest: Validate: current price must be positive, got %v", r.CurrentPrice)
	}

	if err := r.OptionType.Validate(); err != nil {
		return fmt.Errorf("SelectionRequest: Validate: %w", err)
	}

	if r.MinDTE < 0 {
		return fmt.Errorf("SelectionRequest: Validate: min DTE must not be negative, got %d", r.MinDTE)
	}

	if r.MinDTE > r.MaxDTE {
		return fmt.Errorf("SelectionRequest: Validate: inverted DTE range [%d, %d]", r.MinDTE, r.MaxDTE)
	}

	if r.Timestamp.IsZero() {
		return fmt.Errorf("SelectionRequest: Validate: timestamp is required")
	}

	return nil
}

// TradeDate is the request timestamp truncated to its calendar date, the
// reference point for DTE arithmetic.
func (r *SelectionRequest) TradeDate() time.Time {
	y, m, d := r.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
