package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionSymbol(t *testing.T) {
	t.Run("build and parse round trip", func(t *testing.T) {
		components := OptionSymbolComponents{
			Underlying:  "AAPL",
			Expiration:  time.Date(2024, time.April, 19, 0, 0, 0, 0, time.UTC),
			OptionType:  OptionTypeCall,
			StrikePrice: 150.0,
		}

		symbol, err := NewOptionSymbol(components)
		require.NoError(t, err)
		assert.Equal(t, OptionSymbol("AAPL240419C00150000"), symbol)

		parsed, err := NewOptionSymbolComponents(symbol)
		require.NoError(t, err)
		assert.Equal(t, "AAPL", parsed.Underlying)
		assert.Equal(t, OptionTypeCall, parsed.OptionType)
		assert.Equal(t, 150.0, parsed.StrikePrice)
		assert.Equal(t, components.Expiration, parsed.Expiration)
	})

	t.Run("polygon prefix is stripped", func(t *testing.T) {
		parsed, err := NewOptionSymbolComponents(OptionSymbol("O:SPY240419P00410000"))
		require.NoError(t, err)

		assert.Equal(t, "SPY", parsed.Underlying)
		assert.Equal(t, OptionTypePut, parsed.OptionType)
		assert.Equal(t, 410.0, parsed.StrikePrice)
	})

	t.Run("description is human readable", func(t *testing.T) {
		description, err := OptionSymbol("AAPL240419C00150000").Description()
		require.NoError(t, err)

		assert.Equal(t, "AAPL Apr 19 2024 $150.00 Call", description)
	})

	t.Run("garbage symbol fails", func(t *testing.T) {
		_, err := NewOptionSymbolComponents(OptionSymbol("240419C00150000"))
		assert.Error(t, err)

		_, err = NewOptionSymbolComponents(OptionSymbol("AAPLX00150000"))
		assert.Error(t, err)

		_, err = NewOptionSymbolComponents(OptionSymbol("AAPL240419X00150000"))
		assert.Error(t, err)
	})
}
