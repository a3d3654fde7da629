package models

// Reasoning explains why the chosen contract won. It is assembled purely from
// the winning candidate and the thresholds in force, so the same inputs always
// reproduce the same record.
type Reasoning struct {
	ATMDistancePct   float64     `json:"atm_distance_pct"`
	Volume           int         `json:"volume"`
	OpenInterest     int         `json:"open_interest"`
	SpreadAbs        *float64    `json:"spread_abs"`
	SpreadPct        *float64    `json:"spread_pct"`
	SpreadAcceptable bool        `json:"spread_acceptable"`
	PriceWithinMax   bool        `json:"price_within_max"`
	PriceSource      PriceSource `json:"price_source"`
	DegradedData     bool        `json:"degraded_data"`
}
