package sink

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strikepick/strikepick/src/models"
)

func TestMemorySink(t *testing.T) {
	t.Run("records accumulate in order", func(t *testing.T) {
		s := NewMemorySink()

		first := &models.SelectionRecord{RequestID: uuid.New(), Ticker: "AAPL"}
		second := &models.SelectionRecord{RequestID: uuid.New(), Ticker: "SPY"}

		require.NoError(t, s.Write(context.Background(), first))
		require.NoError(t, s.Write(context.Background(), second))

		records := s.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "AAPL", records[0].Ticker)
		assert.Equal(t, "SPY", records[1].Ticker)
	})

	t.Run("concurrent writes are safe", func(t *testing.T) {
		s := NewMemorySink()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Write(context.Background(), &models.SelectionRecord{RequestID: uuid.New()})
			}()
		}
		wg.Wait()

		assert.Len(t, s.Records(), 50)
	})
}
