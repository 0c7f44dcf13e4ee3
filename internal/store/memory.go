package store

import (
	"context"
	"sync"
)

// MemoryAdapter keeps tables in process memory. Rows are copied on the way in
// and out so callers never share maps with the store.
type MemoryAdapter struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{tables: make(map[string][]Row)}
}

func (m *MemoryAdapter) Load(_ context.Context, table string) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRows(m.tables[table]), nil
}

func (m *MemoryAdapter) Save(_ context.Context, table string, rows []Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = cloneRows(rows)
	return nil
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		c := make(Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}
