package dbutils

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applogger "github.com/strikepick/strikepick/src/logger"
	"github.com/strikepick/strikepick/src/models"
)

func InitPostgresWithUrl(url string) (*gorm.DB, error) {
	var dbLogger gormlogger.Interface = gormlogger.Default.LogMode(gormlogger.Silent)
	if os.Getenv("SQL_DEBUG") == "true" {
		dbLogger = applogger.NewGormLogrusLogger()
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.SelectionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func InitPostgres(host, port, user, password, dbName string) (*gorm.DB, error) {
	url := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", host, user, password, dbName, port)
	return InitPostgresWithUrl(url)
}
