package model

import (
	"time"

	"github.com/google/uuid"
)

// SheetRow persists one spreadsheet-style row in postgres. Data holds the row's
// cells as a JSON object keyed by column header.
type SheetRow struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Sheet     string    `gorm:"type:varchar(100);not null;index:idx_sheet_position,priority:1" json:"sheet"`
	Position  int       `gorm:"type:int;not null;index:idx_sheet_position,priority:2" json:"position"`
	Data      string    `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
}
