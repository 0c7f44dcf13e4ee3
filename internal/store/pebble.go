package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleAdapter stores tables in an embedded Pebble database. Each row is a
// JSON object under the key "<table>\x00<position>", so a table is one
// contiguous key range.
type PebbleAdapter struct {
	db *pebble.DB
}

func NewPebbleAdapter(dir string) (*PebbleAdapter, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleAdapter{db: d}, nil
}

func (p *PebbleAdapter) Close() error { return p.db.Close() }

func tableBounds(table string) (lower, upper []byte) {
	lower = append([]byte(table), 0x00)
	upper = append([]byte(table), 0x01)
	return lower, upper
}

func rowKey(table string, pos int) []byte {
	lower, _ := tableBounds(table)
	return append(lower, []byte(fmt.Sprintf("%08d", pos))...)
}

func (p *PebbleAdapter) Load(_ context.Context, table string) ([]Row, error) {
	lower, upper := tableBounds(table)
	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, unavailable("load", table, err)
	}
	defer it.Close()

	rows := []Row{}
	for it.First(); it.Valid(); it.Next() {
		var r Row
		if err := json.Unmarshal(it.Value(), &r); err != nil {
			return nil, unavailable("load", table, err)
		}
		rows = append(rows, r)
	}
	if err := it.Error(); err != nil {
		return nil, unavailable("load", table, err)
	}
	return rows, nil
}

func (p *PebbleAdapter) Save(_ context.Context, table string, rows []Row) error {
	lower, upper := tableBounds(table)
	wb := p.db.NewBatch()
	defer wb.Close()

	if err := wb.DeleteRange(lower, upper, nil); err != nil {
		return unavailable("save", table, err)
	}
	for i, r := range rows {
		val, err := json.Marshal(r)
		if err != nil {
			return unavailable("save", table, err)
		}
		if err := wb.Set(rowKey(table, i), val, nil); err != nil {
			return unavailable("save", table, err)
		}
	}
	if err := wb.Commit(pebble.Sync); err != nil {
		return unavailable("save", table, err)
	}
	return nil
}
