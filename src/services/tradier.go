package services

import (
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/utils"
)

// TradierChainFetcher pulls option chain snapshots from the Tradier markets
// API. It is the collaborator that feeds the selector; the selector itself
// never fetches data.
type TradierChainFetcher struct {
	ChainURL       string
	ExpirationsURL string
	QuotesURL      string
	BearerToken    string
}

func NewTradierChainFetcher(chainURL, expirationsURL, quotesURL, bearerToken string) *TradierChainFetcher {
	return &TradierChainFetcher{
		ChainURL:       chainURL,
		ExpirationsURL: expirationsURL,
		QuotesURL:      quotesURL,
		BearerToken:    bearerToken,
	}
}

type tradierExpirationsResponseDTO struct {
	Expirations struct {
		Date []string `json:"date"`
	} `json:"expirations"`
}

type tradierQuoteDTO struct {
	Symbol    string   `json:"symbol"`
	Last      *float64 `json:"last"`
	PrevClose *float64 `json:"prevclose"`
}

type tradierQuotesResponseDTO struct {
	Quotes struct {
		Quote tradierQuoteDTO `json:"quote"`
	} `json:"quotes"`
}

// FetchExpirations lists the expiration dates Tradier has contracts for.
func (f *TradierChainFetcher) FetchExpirations(ticker string) ([]time.Time, error) {
	query := url.Values{}
	query.Add("symbol", ticker)
	query.Add("includeAllRoots", "true")

	var dto tradierExpirationsResponseDTO
	if err := utils.FetchJSONWithBearer(f.ExpirationsURL, f.BearerToken, query, &dto); err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	expirations := make([]time.Time, 0, len(dto.Expirations.Date))
	for _, date := range dto.Expirations.Date {
		expiration, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("FetchExpirations: failed to parse expiration %q: %w", date, err)
		}

		expirations = append(expirations, expiration)
	}

	return expirations, nil
}

// FetchChain fetches the chain for one expiration and converts it to entries.
// Rows that fail validation are logged and skipped, not fatal.
func (f *TradierChainFetcher) FetchChain(ticker string, expiration time.Time) ([]models.ChainEntry, error) {
	query := url.Values{}
	query.Add("symbol", ticker)
	query.Add("expiration", expiration.Format("2006-01-02"))
	query.Add("greeks", "false")

	var dto models.TradierOptionChainResponseDTO
	if err := utils.FetchJSONWithBearer(f.ChainURL, f.BearerToken, query, &dto); err != nil {
		return nil, fmt.Errorf("FetchChain: %w", err)
	}

	entries, errs := dto.ToChainEntries()
	for _, err := range errs {
		log.Warnf("FetchChain: skipping malformed chain row: %v", err)
	}

	return entries, nil
}

// FetchChainSnapshot fetches chains for every expiration inside the DTE
// window and concatenates them into one snapshot.
func (f *TradierChainFetcher) FetchChainSnapshot(ticker string, minDTE, maxDTE int, now time.Time) ([]models.ChainEntry, error) {
	expirations, err := f.FetchExpirations(ticker)
	if err != nil {
		return nil, fmt.Errorf("FetchChainSnapshot: %w", err)
	}

	var snapshot []models.ChainEntry
	for _, expiration := range expirations {
		dte := int(expiration.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
		if dte < minDTE || dte > maxDTE {
			continue
		}

		entries, err := f.FetchChain(ticker, expiration)
		if err != nil {
			return nil, fmt.Errorf("FetchChainSnapshot: %w", err)
		}

		snapshot = append(snapshot, entries...)
	}

	return snapshot, nil
}

// FetchUnderlyingPrice returns the last trade for the underlying, falling
// back to the prior close when the market has no last price.
func (f *TradierChainFetcher) FetchUnderlyingPrice(ticker string) (float64, error) {
	query := url.Values{}
	query.Add("symbols", ticker)

	var dto tradierQuotesResponseDTO
	if err := utils.FetchJSONWithBearer(f.QuotesURL, f.BearerToken, query, &dto); err != nil {
		return 0, fmt.Errorf("FetchUnderlyingPrice: %w", err)
	}

	quote := dto.Quotes.Quote
	if quote.Last != nil && *quote.Last > 0 {
		return *quote.Last, nil
	}

	if quote.PrevClose != nil && *quote.PrevClose > 0 {
		return *quote.PrevClose, nil
	}

	return 0, fmt.Errorf("FetchUnderlyingPrice: no usable price for %s", ticker)
}
