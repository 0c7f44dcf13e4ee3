package repository

import (
	"context"

	"curtainledger/internal/model"

	"gorm.io/gorm"
)

// SheetRepository stores spreadsheet-style tables as ordered JSON rows.
type SheetRepository interface {
	List(ctx context.Context, sheet string) ([]model.SheetRow, error)
	DeleteSheet(ctx context.Context, sheet string) error
	CreateBatch(ctx context.Context, rows []model.SheetRow) error
}

type sheetRepository struct {
	db *gorm.DB
}

func NewSheetRepository(db *gorm.DB) SheetRepository {
	return &sheetRepository{db: db}
}

func (r *sheetRepository) List(ctx context.Context, sheet string) ([]model.SheetRow, error) {
	var rows []model.SheetRow
	if err := GetDB(ctx, r.db).Where("sheet = ?", sheet).Order("position asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sheetRepository) DeleteSheet(ctx context.Context, sheet string) error {
	return GetDB(ctx, r.db).Where("sheet = ?", sheet).Delete(&model.SheetRow{}).Error
}

func (r *sheetRepository) CreateBatch(ctx context.Context, rows []model.SheetRow) error {
	if len(rows) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).CreateInBatches(rows, 200).Error
}
