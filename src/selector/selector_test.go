package selector

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/sink"
)

type failingSink struct{}

func (f *failingSink) Write(ctx context.Context, record *models.SelectionRecord) error {
	return fmt.Errorf("store unavailable")
}

func liquidCall(req *models.SelectionRequest, symbol string, strike float64, dte int, bid, ask float64) models.ChainEntry {
	return models.ChainEntry{
		Ticker:       req.Ticker,
		Symbol:       models.OptionSymbol(symbol),
		Strike:       strike,
		Expiration:   req.TradeDate().AddDate(0, 0, dte),
		OptionType:   models.OptionTypeCall,
		Bid:          fptr(bid),
		Ask:          fptr(ask),
		Volume:       200,
		OpenInterest: 1500,
	}
}

func TestContractSelectorSelect(t *testing.T) {
	policy := models.DefaultSelectionPolicy()

	t.Run("picks the closest liquid strike", func(t *testing.T) {
		memSink := sink.NewMemorySink()
		s := NewContractSelector(policy, memSink)

		req := testRequest(true)
		chain := []models.ChainEntry{
			liquidCall(req, "AAPL240419C00105000", 105, 30, 2.0, 2.1),
			liquidCall(req, "AAPL240419C00102000", 102, 30, 2.0, 2.1),
		}

		result, err := s.Select(context.Background(), req, chain)
		require.NoError(t, err)

		assert.True(t, result.Selected)
		assert.Equal(t, models.OptionSymbol("AAPL240419C00102000"), result.OptionSymbol)
		assert.InDelta(t, 2.0, result.StrikeDistancePct, 0.01)

		require.NotNil(t, result.Reasoning)
		assert.InDelta(t, 2.0, result.Reasoning.ATMDistancePct, 0.01)
		assert.True(t, result.Reasoning.SpreadAcceptable)
		assert.True(t, result.Reasoning.PriceWithinMax)
		assert.Equal(t, models.PriceSourceQuote, result.Reasoning.PriceSource)

		records := memSink.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "AAPL240419C00102000", records[0].OptionSymbol)
	})

	t.Run("dead entry with no price yields explicit empty outcome", func(t *testing.T) {
		s := NewContractSelector(policy, sink.NewMemorySink())

		req := testRequest(true)
		entry := models.ChainEntry{
			Ticker:     req.Ticker,
			Symbol:     models.OptionSymbol("AAPL240419C00102000"),
			Strike:     102,
			Expiration: req.TradeDate().AddDate(0, 0, 30),
			OptionType: models.OptionTypeCall,
			Bid:        fptr(0),
			Ask:        fptr(0),
		}

		result, err := s.Select(context.Background(), req, []models.ChainEntry{entry})
		require.NoError(t, err)

		assert.False(t, result.Selected)
		assert.Nil(t, result.Reasoning)
		assert.Equal(t, 1, result.FilterStats.Total)
		assert.Equal(t, 1, result.FilterStats.NoPrice)
		assert.Equal(t, 0, result.FilterStats.Passed)
	})

	t.Run("market closed uses prior close without spread filtering", func(t *testing.T) {
		s := NewContractSelector(policy, sink.NewMemorySink())

		req := testRequest(false)
		entry := models.ChainEntry{
			Ticker:       req.Ticker,
			Symbol:       models.OptionSymbol("AAPL240419C00102000"),
			Strike:       102,
			Expiration:   req.TradeDate().AddDate(0, 0, 30),
			OptionType:   models.OptionTypeCall,
			PrevClose:    fptr(2.2),
			Volume:       0,
			OpenInterest: 50,
		}

		result, err := s.Select(context.Background(), req, []models.ChainEntry{entry})
		require.NoError(t, err)

		require.True(t, result.Selected)
		assert.Equal(t, models.PriceSourceClose, result.PriceSource)
		assert.Nil(t, result.SpreadPct)
		assert.Equal(t, 0, result.FilterStats.SpreadTooWide)

		require.NotNil(t, result.Reasoning)
		assert.Nil(t, result.Reasoning.SpreadAbs)
		assert.False(t, result.Reasoning.DegradedData)
	})

	t.Run("missing quote during market hours surfaces degraded flag", func(t *testing.T) {
		s := NewContractSelector(policy, sink.NewMemorySink())

		req := testRequest(true)
		entry := models.ChainEntry{
			Ticker:       req.Ticker,
			Symbol:       models.OptionSymbol("AAPL240419C00102000"),
			Strike:       102,
			Expiration:   req.TradeDate().AddDate(0, 0, 30),
			OptionType:   models.OptionTypeCall,
			PrevClose:    fptr(2.2),
			Volume:       100,
			OpenInterest: 50,
		}

		result, err := s.Select(context.Background(), req, []models.ChainEntry{entry})
		require.NoError(t, err)

		require.True(t, result.Selected)
		assert.Equal(t, models.PriceSourceCloseFallback, result.PriceSource)

		require.NotNil(t, result.Reasoning)
		assert.True(t, result.Reasoning.DegradedData)
	})

	t.Run("identical inputs give identical results", func(t *testing.T) {
		sharedID := uuid.New()
		req1 := testRequest(true)
		req1.RequestID = sharedID
		req2 := testRequest(true)
		req2.RequestID = sharedID

		chain := []models.ChainEntry{
			liquidCall(req1, "AAPL240419C00102000", 102, 30, 2.0, 2.1),
			liquidCall(req1, "AAPL240419C00098000", 98, 30, 2.0, 2.1),
			liquidCall(req1, "AAPL240419C00105000", 105, 30, 2.0, 2.1),
		}

		s := NewContractSelector(policy, sink.NewMemorySink())

		first, err := s.Select(context.Background(), req1, chain)
		require.NoError(t, err)

		second, err := s.Select(context.Background(), req2, chain)
		require.NoError(t, err)

		// wall-clock timing is the one field allowed to differ between calls
		first.SelectionTimeMs = 0
		second.SelectionTimeMs = 0
		assert.Equal(t, first, second)
	})

	t.Run("invalid request fails before any processing", func(t *testing.T) {
		memSink := sink.NewMemorySink()
		s := NewContractSelector(policy, memSink)

		req := testRequest(true)
		req.MinDTE = 45
		req.MaxDTE = 20

		result, err := s.Select(context.Background(), req, nil)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Empty(t, memSink.Records(), "no partial audit record may be written")
	})

	t.Run("sink failure is a warning, not an error", func(t *testing.T) {
		s := NewContractSelector(policy, &failingSink{})

		req := testRequest(true)
		chain := []models.ChainEntry{
			liquidCall(req, "AAPL240419C00102000", 102, 30, 2.0, 2.1),
		}

		result, err := s.Select(context.Background(), req, chain)
		require.NoError(t, err)

		assert.True(t, result.Selected)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "audit record not persisted")
	})

	t.Run("max price ceiling is reported even when the contract passes", func(t *testing.T) {
		s := NewContractSelector(policy, sink.NewMemorySink())

		req := testRequest(true)
		chain := []models.ChainEntry{
			liquidCall(req, "AAPL240419C00102000", 102, 30, 2.0, 2.1),
		}

		result, err := s.Select(context.Background(), req, chain)
		require.NoError(t, err)

		assert.Equal(t, 5.0, result.MaxPrice) // 5% of 100 for a buy
	})

	t.Run("duplicate symbols keep the most complete row", func(t *testing.T) {
		s := NewContractSelector(policy, sink.NewMemorySink())

		req := testRequest(true)

		sparse := models.ChainEntry{
			Ticker:     req.Ticker,
			Symbol:     models.OptionSymbol("AAPL240419C00102000"),
			Strike:     102,
			Expiration: req.TradeDate().AddDate(0, 0, 30),
			OptionType: models.OptionTypeCall,
		}
		full := liquidCall(req, "AAPL240419C00102000", 102, 30, 2.0, 2.1)

		result, err := s.Select(context.Background(), req, []models.ChainEntry{sparse, full})
		require.NoError(t, err)

		assert.Equal(t, 1, result.FilterStats.Total)
		assert.True(t, result.Selected)
		assert.Equal(t, models.PriceSourceQuote, result.PriceSource)
	})
}
