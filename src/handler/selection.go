package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/selector"
	"github.com/strikepick/strikepick/src/services"
)

// ChainSource supplies a chain snapshot when the caller posts only request
// fields. The HTTP test double and the Tradier fetcher both satisfy it.
type ChainSource interface {
	FetchChainSnapshot(ticker string, minDTE, maxDTE int, now time.Time) ([]models.ChainEntry, error)
}

type SelectionHandler struct {
	Selector    *selector.ContractSelector
	ChainSource ChainSource
}

type selectionRequestDTO struct {
	Request models.SelectionRequest `json:"request"`
	Chain   []models.ChainEntry     `json:"chain"`
}

func (h *SelectionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var dto selectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("HandleSelect: decode: %w", err))
		return
	}

	req := dto.Request
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()

		marketOpen, err := services.IsMarketOpen(req.Timestamp)
		if err == nil {
			req.MarketOpen = marketOpen
		}
	}

	chain := dto.Chain
	if chain == nil {
		if h.ChainSource == nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("HandleSelect: chain is required when no chain source is configured"))
			return
		}

		var err error
		chain, err = h.ChainSource.FetchChainSnapshot(req.Ticker, req.MinDTE, req.MaxDTE, req.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadGateway, fmt.Errorf("HandleSelect: failed to fetch chain: %w", err))
			return
		}
	}

	result, err := h.Selector.Select(r.Context(), &req, chain)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("writeJSON: encode: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Warnf("request failed: %v", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
