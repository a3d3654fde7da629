package models

type FilterStage string

// Funnel stages in their fixed evaluation order. The order is a contract:
// changing it changes which reason a borderline candidate is attributed to,
// so it must stay stable across releases.
const (
	StageDTEOutOfRange   FilterStage = "dte_out_of_range"
	StageWrongType       FilterStage = "wrong_type"
	StageStrikeTooFar    FilterStage = "strike_too_far"
	StageNoPrice         FilterStage = "no_price"
	StagePriceOutOfRange FilterStage = "price_out_of_range"
	StageNoLiquidity     FilterStage = "no_liquidity"
	StageNoBidAsk        FilterStage = "no_bid_ask"
	StageSpreadTooWide   FilterStage = "spread_too_wide"
)

// FilterStages returns the stages in evaluation order.
func FilterStages() []FilterStage {
	return []FilterStage{
		StageDTEOutOfRange,
		StageWrongType,
		StageStrikeTooFar,
		StageNoPrice,
		StagePriceOutOfRange,
		StageNoLiquidity,
		StageNoBidAsk,
		StageSpreadTooWide,
	}
}

// FilterStats is the per-call funnel tally. It is a value returned by the
// funnel run, never shared across selections.
type FilterStats struct {
	Total           int `json:"total"`
	DTEOutOfRange   int `json:"dte_out_of_range"`
	WrongType       int `json:"wrong_type"`
	StrikeTooFar    int `json:"strike_too_far"`
	NoPrice         int `json:"no_price"`
	PriceOutOfRange int `json:"price_out_of_range"`
	NoLiquidity     int `json:"no_liquidity"`
	NoBidAsk        int `json:"no_bid_ask"`
	SpreadTooWide   int `json:"spread_too_wide"`
	Passed          int `json:"passed"`
}

func (s *FilterStats) Add(stage FilterStage, count int) {
	switch stage {
	case StageDTEOutOfRange:
		s.DTEOutOfRange += count
	case StageWrongType:
		s.WrongType += count
	case StageStrikeTooFar:
		s.StrikeTooFar += count
	case StageNoPrice:
		s.NoPrice += count
	case StagePriceOutOfRange:
		s.PriceOutOfRange += count
	case StageNoLiquidity:
		s.NoLiquidity += count
	case StageNoBidAsk:
		s.NoBidAsk += count
	case StageSpreadTooWide:
		s.SpreadTooWide += count
	}
}

func (s FilterStats) Count(stage FilterStage) int {
	switch stage {
	case StageDTEOutOfRange:
		return s.DTEOutOfRange
	case StageWrongType:
		return s.WrongType
	case StageStrikeTooFar:
		return s.StrikeTooFar
	case StageNoPrice:
		return s.NoPrice
	case StagePriceOutOfRange:
		return s.PriceOutOfRange
	case StageNoLiquidity:
		return s.NoLiquidity
	case StageNoBidAsk:
		return s.NoBidAsk
	case StageSpreadTooWide:
		return s.SpreadTooWide
	}

	return 0
}

// Dropped sums the drops across every stage.
func (s FilterStats) Dropped() int {
	total := 0
	for _, stage := range FilterStages() {
		total += s.Count(stage)
	}

	return total
}

// StageCount is one (stage, count) pair of the ordered tally.
type StageCount struct {
	Stage FilterStage `json:"stage"`
	Count int         `json:"count"`
}

// OrderedCounts returns the tally as (stage, count) pairs in evaluation order.
func (s FilterStats) OrderedCounts() []StageCount {
	out := make([]StageCount, 0, 8)
	for _, stage := range FilterStages() {
		out = append(out, StageCount{Stage: stage, Count: s.Count(stage)})
	}

	return out
}
