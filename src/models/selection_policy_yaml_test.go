package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxPricePolicyCeiling(t *testing.T) {
	policy := MaxPricePolicy{BuyPct: 5.0, SellPct: 7.5}

	assert.Equal(t, 5.0, policy.Ceiling(SideBuy, 100.0))
	assert.Equal(t, 7.5, policy.Ceiling(SideSell, 100.0))
	assert.Equal(t, 12.5, policy.Ceiling(SideBuy, 250.0))
}

func TestLoadSelectionPolicy(t *testing.T) {
	t.Run("file overrides defaults, omissions keep them", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		content := "max_strike_distance_pct: 7.5\nmax_price:\n  buy_pct: 4.0\n  sell_pct: 6.0\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		policy, err := LoadSelectionPolicy(path)
		require.NoError(t, err)

		assert.Equal(t, 7.5, policy.MaxStrikeDistancePct)
		assert.Equal(t, 4.0, policy.MaxPrice.BuyPct)
		assert.Equal(t, 6.0, policy.MaxPrice.SellPct)
		// untouched by the file
		assert.Equal(t, 15.0, policy.MaxSpreadPct)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadSelectionPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid thresholds fail", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_spread_pct: -1\n"), 0644))

		_, err := LoadSelectionPolicy(path)
		assert.Error(t, err)
	})
}

func TestFilterStatsOrderedCounts(t *testing.T) {
	var stats FilterStats
	stats.Total = 5
	stats.Add(StageDTEOutOfRange, 2)
	stats.Add(StageSpreadTooWide, 1)
	stats.Passed = 2

	counts := stats.OrderedCounts()
	require.Len(t, counts, 8)

	assert.Equal(t, StageDTEOutOfRange, counts[0].Stage)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, StageSpreadTooWide, counts[7].Stage)
	assert.Equal(t, 1, counts[7].Count)
	assert.Equal(t, stats.Total, stats.Dropped()+stats.Passed)
}
