package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelectionRecord is the audit row written once per selection call. The
// indexes cover the four access paths used for debugging and offline quality
// analysis: ticker+timestamp, timestamp alone, option symbol, and expiration.
type SelectionRecord struct {
	gorm.Model
	RequestID         uuid.UUID  `gorm:"column:request_id;type:uuid;not null"`
	Timestamp         time.Time  `gorm:"column:timestamp;type:timestamp;not null;index;index:idx_selection_records_ticker_timestamp,priority:2"`
	Ticker            string     `gorm:"column:ticker;type:text;not null;index:idx_selection_records_ticker_timestamp,priority:1"`
	Side              string     `gorm:"column:side;type:text;not null"`
	CurrentPrice      float64    `gorm:"column:current_price;type:numeric;not null"`
	Selected          bool       `gorm:"column:selected;not null"`
	OptionSymbol      string     `gorm:"column:option_symbol;type:text;index"`
	Strike            float64    `gorm:"column:strike;type:numeric"`
	Expiration        *time.Time `gorm:"column:expiration;type:timestamp;index"`
	DTE               int        `gorm:"column:dte"`
	OptionType        string     `gorm:"column:option_type;type:text"`
	Price             float64    `gorm:"column:price;type:numeric"`
	Bid               *float64   `gorm:"column:bid;type:numeric"`
	Ask               *float64   `gorm:"column:ask;type:numeric"`
	SpreadPct         *float64   `gorm:"column:spread_pct;type:numeric"`
	Volume            int        `gorm:"column:volume"`
	OpenInterest      int        `gorm:"column:open_interest"`
	StrikeDistancePct float64    `gorm:"column:strike_distance_pct;type:numeric"`
	MaxPrice          float64    `gorm:"column:max_price;type:numeric"`
	PriceSource       string     `gorm:"column:price_source;type:text"`
	MarketOpen        bool       `gorm:"column:market_open"`
	SelectionTimeMs   int64      `gorm:"column:selection_time_ms"`
	Reasoning         JSONB      `gorm:"column:reasoning;type:jsonb"`
	FilterStats       JSONB      `gorm:"column:filter_stats;type:jsonb"`
}

func (SelectionRecord) TableName() string {
	return "selection_records"
}

// NewSelectionRecord flattens a SelectionResult into its audit row.
func NewSelectionRecord(result *SelectionResult) (*SelectionRecord, error) {
	reasoning, err := NewJSONB(result.Reasoning)
	if err != nil {
		return nil, fmt.Errorf("NewSelectionRecord: reasoning: %w", err)
	}

	filterStats, err := NewJSONB(result.FilterStats)
	if err != nil {
		return nil, fmt.Errorf("NewSelectionRecord: filter stats: %w", err)
	}

	return &SelectionRecord{
		RequestID:         result.RequestID,
		Timestamp:         result.Timestamp,
		Ticker:            result.Ticker,
		Side:              string(result.Side),
		CurrentPrice:      result.CurrentPrice,
		Selected:          result.Selected,
		OptionSymbol:      string(result.OptionSymbol),
		Strike:            result.Strike,
		Expiration:        result.Expiration,
		DTE:               result.DTE,
		OptionType:        string(result.OptionType),
		Price:             result.Price,
		Bid:               result.Bid,
		Ask:               result.Ask,
		SpreadPct:         result.SpreadPct,
		Volume:            result.Volume,
		OpenInterest:      result.OpenInterest,
		StrikeDistancePct: result.StrikeDistancePct,
		MaxPrice:          result.MaxPrice,
		PriceSource:       string(result.PriceSource),
		MarketOpen:        result.MarketOpen,
		SelectionTimeMs:   result.SelectionTimeMs,
		Reasoning:         reasoning,
		FilterStats:       filterStats,
	}, nil
}
