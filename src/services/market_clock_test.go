package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMarketOpen(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"midday weekday", time.Date(2024, time.March, 1, 12, 0, 0, 0, loc), true},
		{"open bell", time.Date(2024, time.March, 1, 9, 30, 0, 0, loc), true},
		{"before the bell", time.Date(2024, time.March, 1, 9, 29, 0, 0, loc), false},
		{"closing bell", time.Date(2024, time.March, 1, 16, 0, 0, 0, loc), false},
		{"saturday", time.Date(2024, time.March, 2, 12, 0, 0, 0, loc), false},
		{"sunday", time.Date(2024, time.March, 3, 12, 0, 0, 0, loc), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			open, err := IsMarketOpen(tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, open)
		})
	}

	t.Run("utc input is converted", func(t *testing.T) {
		// 18:00 UTC on a March weekday is 13:00 ET
		open, err := IsMarketOpen(time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, open)
	})
}
