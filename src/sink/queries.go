package sink

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/strikepick/strikepick/src/models"
)

// Query helpers for the four indexed access paths over the audit log.

func RecordsByTicker(db *gorm.DB, ticker string, from, to time.Time) ([]models.SelectionRecord, error) {
	var records []models.SelectionRecord

	err := db.Where("ticker = ? AND timestamp >= ? AND timestamp <= ?", ticker, from, to).
		Order("timestamp desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("RecordsByTicker: %w", err)
	}

	return records, nil
}

func RecordsByTimeRange(db *gorm.DB, from, to time.Time) ([]models.SelectionRecord, error) {
	var records []models.SelectionRecord

	err := db.Where("timestamp >= ? AND timestamp <= ?", from, to).
		Order("timestamp desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("RecordsByTimeRange: %w", err)
	}

	return records, nil
}

func RecordsByOptionSymbol(db *gorm.DB, symbol models.OptionSymbol) ([]models.SelectionRecord, error) {
	var records []models.SelectionRecord

	err := db.Where("option_symbol = ?", string(symbol)).
		Order("timestamp desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("RecordsByOptionSymbol: %w", err)
	}

	return records, nil
}

func RecordsByExpiration(db *gorm.DB, expiration time.Time) ([]models.SelectionRecord, error) {
	var records []models.SelectionRecord

	err := db.Where("expiration = ?", expiration).
		Order("timestamp desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("RecordsByExpiration: %w", err)
	}

	return records, nil
}
