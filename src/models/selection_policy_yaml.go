package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxPricePolicy is the tunable contract-price ceiling, expressed as a
// percentage of the underlying's current price per trade direction.
type MaxPricePolicy struct {
	BuyPct  float64 `yaml:"buy_pct" json:"buy_pct"`
	SellPct float64 `yaml:"sell_pct" json:"sell_pct"`
}

// Ceiling computes the maximum acceptable contract price for a side.
func (p MaxPricePolicy) Ceiling(side Side, currentPrice float64) float64 {
	pct := p.BuyPct
	if side == SideSell {
		pct = p.SellPct
	}

	return currentPrice * pct / 100.0
}

// SelectionPolicyYAML holds the funnel thresholds. All values are tunable via
// the policy file; the compiled-in defaults apply when no file is given.
type SelectionPolicyYAML struct {
	MaxStrikeDistancePct float64        `yaml:"max_strike_distance_pct" json:"max_strike_distance_pct"`
	MaxSpreadPct         float64        `yaml:"max_spread_pct" json:"max_spread_pct"`
	MaxPrice             MaxPricePolicy `yaml:"max_price" json:"max_price"`
}

func DefaultSelectionPolicy() SelectionPolicyYAML {
	return SelectionPolicyYAML{
		MaxStrikeDistancePct: 10.0,
		MaxSpreadPct:         15.0,
		MaxPrice: MaxPricePolicy{
			BuyPct:  5.0,
			SellPct: 7.5,
		},
	}
}

func (p *SelectionPolicyYAML) Validate() error {
	if p.MaxStrikeDistancePct <= 0 {
		return fmt.Errorf("SelectionPolicyYAML: Validate: max strike distance pct must be positive, got %v", p.MaxStrikeDistancePct)
	}

	if p.MaxSpreadPct <= 0 {
		return fmt.Errorf("SelectionPolicyYAML: Validate: max spread pct must be positive, got %v", p.MaxSpreadPct)
	}

	if p.MaxPrice.BuyPct <= 0 || p.MaxPrice.SellPct <= 0 {
		return fmt.Errorf("SelectionPolicyYAML: Validate: max price percentages must be positive, got buy=%v sell=%v", p.MaxPrice.BuyPct, p.MaxPrice.SellPct)
	}

	return nil
}

// LoadSelectionPolicy reads the policy file, falling back to defaults for any
// omitted field.
func LoadSelectionPolicy(path string) (SelectionPolicyYAML, error) {
	policy := DefaultSelectionPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("LoadSelectionPolicy: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("LoadSelectionPolicy: failed to parse %s: %w", path, err)
	}

	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("LoadSelectionPolicy: %w", err)
	}

	return policy, nil
}
