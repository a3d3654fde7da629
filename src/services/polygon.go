package services

import (
	"context"
	"fmt"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"
)

// PolygonPriceFetcher resolves the underlying's previous close via Polygon,
// used when the market is closed and no live quote exists.
type PolygonPriceFetcher struct {
	Client *polygon.Client
}

func NewPolygonPriceFetcher(apiKey string) *PolygonPriceFetcher {
	return &PolygonPriceFetcher{
		Client: polygon.New(apiKey),
	}
}

func (f *PolygonPriceFetcher) FetchPreviousClose(ctx context.Context, ticker string) (float64, error) {
	params := polygonmodels.GetPreviousCloseAggParams{
		Ticker: ticker,
	}.WithAdjusted(true)

	resp, err := f.Client.GetPreviousCloseAgg(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("FetchPreviousClose: polygon request failed for %s: %w", ticker, err)
	}

	if len(resp.Results) == 0 {
		return 0, fmt.Errorf("FetchPreviousClose: no results for %s", ticker)
	}

	log.Debugf("FetchPreviousClose: %s closed at %v", ticker, resp.Results[0].Close)

	return resp.Results[0].Close, nil
}
