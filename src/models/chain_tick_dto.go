package models

import (
	"fmt"
	"time"
)

// TradierChainTickDTO mirrors one row of the Tradier option chain payload.
// Tradier sends null for bid/ask/prevclose on illiquid contracts, hence the
// pointer fields.
type TradierChainTickDTO struct {
	Symbol         string   `json:"symbol"`
	Description    string   `json:"description"`
	Underlying     string   `json:"underlying"`
	Strike         float64  `json:"strike"`
	ExpirationDate string   `json:"expiration_date"`
	OptionType     string   `json:"option_type"`
	Bid            *float64 `json:"bid"`
	Ask            *float64 `json:"ask"`
	Last           *float64 `json:"last"`
	PrevClose      *float64 `json:"prevclose"`
	Volume         int      `json:"volume"`
	OpenInterest   int      `json:"open_interest"`
	ContractSize   int      `json:"contract_size"`
	ExpirationType string   `json:"expiration_type"`
}

type TradierOptionChainResponseDTO struct {
	Options struct {
		Option []TradierChainTickDTO `json:"option"`
	} `json:"options"`
}

func (d *TradierChainTickDTO) ToChainEntry() (*ChainEntry, error) {
	expiration, err := time.Parse("2006-01-02", d.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("TradierChainTickDTO: ToChainEntry: failed to parse expiration %q: %w", d.ExpirationDate, err)
	}

	entry := &ChainEntry{
		Ticker:       d.Underlying,
		Symbol:       OptionSymbol(d.Symbol),
		Strike:       d.Strike,
		Expiration:   expiration,
		OptionType:   OptionType(d.OptionType),
		Bid:          d.Bid,
		Ask:          d.Ask,
		Last:         d.Last,
		PrevClose:    d.PrevClose,
		Volume:       d.Volume,
		OpenInterest: d.OpenInterest,
	}

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("TradierChainTickDTO: ToChainEntry: %w", err)
	}

	return entry, nil
}

func (r *TradierOptionChainResponseDTO) ToChainEntries() ([]ChainEntry, []error) {
	var entries []ChainEntry
	var errs []error

	for i := range r.Options.Option {
		entry, err := r.Options.Option[i].ToChainEntry()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		entries = append(entries, *entry)
	}

	return entries, errs
}
