package model

import "sort"

// Tally sums amounts per name and ranks them. The zero value is ready to use.
type Tally struct {
	index map[string]int
	rows  []NameAmount
}

// Add accumulates amount under name; non-positive amounts are ignored.
func (t *Tally) Add(name string, amount int64) {
	if amount <= 0 {
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	i, ok := t.index[name]
	if !ok {
		i = len(t.rows)
		t.index[name] = i
		t.rows = append(t.rows, NameAmount{Name: name})
	}
	t.rows[i].Amount = AddAmounts(t.rows[i].Amount, amount)
}

// Ranked returns the totals in descending order; equal totals keep the order
// in which their names were first seen. Never nil.
func (t *Tally) Ranked() []NameAmount {
	out := make([]NameAmount, 0, len(t.rows))
	for _, r := range t.rows {
		if r.Amount > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}
