package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"gorm.io/gorm"

	"github.com/strikepick/strikepick/src/models"
	"github.com/strikepick/strikepick/src/sink"
)

var queryDecoder = schema.NewDecoder()

type RecordsHandler struct {
	DB *gorm.DB
}

type recordsQueryDTO struct {
	Ticker       string `schema:"ticker"`
	From         string `schema:"from"`
	To           string `schema:"to"`
	OptionSymbol string `schema:"option_symbol"`
	Expiration   string `schema:"expiration"`
}

// HandleRecords serves the audit log over its four indexed access paths:
// option symbol, expiration, ticker+time range, and time range alone.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	var q recordsQueryDTO
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("HandleRecords: decode query: %w", err))
		return
	}

	records, err := h.fetch(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *RecordsHandler) fetch(q recordsQueryDTO) ([]models.SelectionRecord, error) {
	if q.OptionSymbol != "" {
		return sink.RecordsByOptionSymbol(h.DB, models.OptionSymbol(q.OptionSymbol))
	}

	if q.Expiration != "" {
		expiration, err := time.Parse("2006-01-02", q.Expiration)
		if err != nil {
			return nil, fmt.Errorf("HandleRecords: invalid expiration %q: %w", q.Expiration, err)
		}

		return sink.RecordsByExpiration(h.DB, expiration)
	}

	from, to, err := parseTimeRange(q.From, q.To)
	if err != nil {
		return nil, err
	}

	if q.Ticker != "" {
		return sink.RecordsByTicker(h.DB, q.Ticker, from, to)
	}

	return sink.RecordsByTimeRange(h.DB, from, to)
}

func parseTimeRange(fromStr, toStr string) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -7)

	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parseTimeRange: invalid from %q: %w", fromStr, err)
		}

		from = parsed
	}

	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parseTimeRange: invalid to %q: %w", toStr, err)
		}

		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("parseTimeRange: inverted range [%v, %v]", from, to)
	}

	return from, to, nil
}
