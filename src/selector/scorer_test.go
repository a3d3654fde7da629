package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strikepick/strikepick/src/models"
)

func TestPickBest(t *testing.T) {
	t.Run("empty survivor set yields nil", func(t *testing.T) {
		assert.Nil(t, PickBest(nil))
		assert.Nil(t, PickBest([]*models.Candidate{}))
	})

	t.Run("closest to at-the-money wins", func(t *testing.T) {
		req := testRequest(true)

		far := quoteCandidate(req, 105, 30, 2.0, 2.1)
		near := quoteCandidate(req, 102, 30, 2.0, 2.1)

		best := PickBest([]*models.Candidate{far, near})

		require.NotNil(t, best)
		assert.Equal(t, 102.0, best.Entry.Strike)
	})

	t.Run("equal distance broken by tighter spread", func(t *testing.T) {
		req := testRequest(true)

		wide := quoteCandidate(req, 102, 30, 2.0, 2.6)
		tight := quoteCandidate(req, 98, 30, 2.0, 2.1)

		best := PickBest([]*models.Candidate{wide, tight})

		require.NotNil(t, best)
		assert.Equal(t, 98.0, best.Entry.Strike)
	})

	t.Run("known spread beats unknown spread", func(t *testing.T) {
		req := testRequest(true)

		closeEntry := testEntry(102, 30, req)
		closeEntry.PrevClose = fptr(2.0)
		closePriced, _ := NormalizeEntries([]models.ChainEntry{closeEntry}, req)
		require.Len(t, closePriced, 1)

		quoted := quoteCandidate(req, 98, 30, 2.0, 2.1)

		best := PickBest([]*models.Candidate{closePriced[0], quoted})

		require.NotNil(t, best)
		assert.Equal(t, models.PriceSourceQuote, best.PriceSource)
	})

	t.Run("equal spread broken by combined liquidity", func(t *testing.T) {
		req := testRequest(true)

		thin := quoteCandidate(req, 102, 30, 2.0, 2.1)
		thin.Entry.Volume = 10
		thin.Entry.OpenInterest = 20

		deep := quoteCandidate(req, 98, 30, 2.0, 2.1)
		deep.Entry.Volume = 1000
		deep.Entry.OpenInterest = 2000

		best := PickBest([]*models.Candidate{thin, deep})

		require.NotNil(t, best)
		assert.Equal(t, 98.0, best.Entry.Strike)
	})

	t.Run("full tie keeps first appearance", func(t *testing.T) {
		req := testRequest(true)

		first := quoteCandidate(req, 102, 30, 2.0, 2.1)
		second := quoteCandidate(req, 98, 30, 2.0, 2.1)

		best := PickBest([]*models.Candidate{first, second})

		require.NotNil(t, best)
		assert.Same(t, first, best)
	})
}
