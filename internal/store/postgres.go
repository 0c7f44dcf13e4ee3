package store

import (
	"context"
	"encoding/json"

	"curtainledger/internal/model"
	"curtainledger/internal/repository"
)

// PostgresAdapter keeps tables as ordered JSON rows in postgres. Save swaps a
// table's rows inside one transaction, so readers never see a half-written table.
type PostgresAdapter struct {
	sheets repository.SheetRepository
	tx     repository.TransactionManager
}

func NewPostgresAdapter(sheets repository.SheetRepository, tx repository.TransactionManager) *PostgresAdapter {
	return &PostgresAdapter{sheets: sheets, tx: tx}
}

func (p *PostgresAdapter) Load(ctx context.Context, table string) ([]Row, error) {
	stored, err := p.sheets.List(ctx, table)
	if err != nil {
		return nil, unavailable("load", table, err)
	}
	rows := make([]Row, 0, len(stored))
	for _, s := range stored {
		var r Row
		if err := json.Unmarshal([]byte(s.Data), &r); err != nil {
			return nil, unavailable("load", table, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (p *PostgresAdapter) Save(ctx context.Context, table string, rows []Row) error {
	batch := make([]model.SheetRow, 0, len(rows))
	for i, r := range rows {
		data, err := json.Marshal(r)
		if err != nil {
			return unavailable("save", table, err)
		}
		batch = append(batch, model.SheetRow{Sheet: table, Position: i, Data: string(data)})
	}

	err := p.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := p.sheets.DeleteSheet(txCtx, table); err != nil {
			return err
		}
		return p.sheets.CreateBatch(txCtx, batch)
	})
	if err != nil {
		return unavailable("save", table, err)
	}
	return nil
}
