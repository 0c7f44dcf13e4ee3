package database

import (
	"log/slog"

	"curtainledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the postgres pool backing the postgres store driver
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.SheetRow{}); err != nil {
		slog.Warn("failed to auto-migrate sheet rows", "error", err)
	}

	return db, nil
}
