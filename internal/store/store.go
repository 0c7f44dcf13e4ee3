// Package store is the boundary to the external tables. Adapters load and save
// whole tables of loosely typed rows; normalization happens in the caller.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"curtainledger/internal/metrics"
	"curtainledger/internal/model"
	"curtainledger/internal/normalize"
)

// Row maps a column header to its raw cell value.
type Row map[string]any

// Adapter loads and saves complete tables. Load of a table that does not exist
// returns no rows and no error. Save replaces the table's previous contents.
type Adapter interface {
	Load(ctx context.Context, table string) ([]Row, error)
	Save(ctx context.Context, table string, rows []Row) error
}

func unavailable(op, table string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, table, model.ErrStoreUnavailable, err)
}

// header returns the columns to write for a table: the known schema first,
// then any extra keys found in rows, sorted.
func header(table string, rows []Row) []string {
	cols := append([]string(nil), normalize.Columns(table)...)
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c] = true
	}
	var extra []string
	for _, r := range rows {
		for k := range r {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

type instrumented struct {
	next Adapter
	reg  *metrics.Registry
}

// Instrument counts and times every call made through a.
func Instrument(a Adapter, reg *metrics.Registry) Adapter {
	if reg == nil {
		return a
	}
	return &instrumented{next: a, reg: reg}
}

func (i *instrumented) Load(ctx context.Context, table string) ([]Row, error) {
	start := time.Now()
	rows, err := i.next.Load(ctx, table)
	i.reg.StoreLatency.WithLabelValues("load").Observe(time.Since(start).Seconds())
	i.reg.StoreOps.WithLabelValues("load", table, metrics.Result(err)).Inc()
	return rows, err
}

func (i *instrumented) Save(ctx context.Context, table string, rows []Row) error {
	start := time.Now()
	err := i.next.Save(ctx, table, rows)
	i.reg.StoreLatency.WithLabelValues("save").Observe(time.Since(start).Seconds())
	i.reg.StoreOps.WithLabelValues("save", table, metrics.Result(err)).Inc()
	return err
}
