package repository

import (
	"time"

	"curtainledger/internal/model"
	"curtainledger/internal/normalize"

	"github.com/google/uuid"
)

// CategoryFilter selects purchase items by category.
type CategoryFilter func(category string) bool

// AnyCategory accepts every item.
func AnyCategory(string) bool { return true }

// Not accepts exactly the items f rejects.
func (f CategoryFilter) Not() CategoryFilter {
	return func(c string) bool { return !f(c) }
}

// PurchaseRepository is the in-memory cost-item table of one request.
type PurchaseRepository interface {
	Upsert(item model.PurchaseItem) model.PurchaseItem
	Insert(item model.PurchaseItem) (model.PurchaseItem, error)
	Delete(itemID string) bool
	FindByID(itemID string) (model.PurchaseItem, bool)
	FindByOrderID(orderID string) []model.PurchaseItem
	SumByOrderID(orderID string) int64
	SumByOrderIDWhere(orderID string, filter CategoryFilter) int64
	SumByName(filter CategoryFilter, period *model.Period) []model.NameAmount
	Bucket(item model.PurchaseItem) model.Period
	All() []model.PurchaseItem
	Len() int
}

type purchaseRepository struct {
	items []model.PurchaseItem
	index map[string]int
	now   time.Time
}

func NewPurchaseRepository(items []model.PurchaseItem, now time.Time) PurchaseRepository {
	r := &purchaseRepository{
		items: make([]model.PurchaseItem, 0, len(items)),
		index: make(map[string]int, len(items)),
		now:   now,
	}
	for _, it := range items {
		r.Upsert(it)
	}
	return r
}

// Upsert overwrites the item with the same id, or appends it. Items without an
// id get a fresh one.
func (r *purchaseRepository) Upsert(item model.PurchaseItem) model.PurchaseItem {
	item.ID = normalize.ID(item.ID)
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.OrderID = normalize.ID(item.OrderID)
	if i, ok := r.index[item.ID]; ok {
		r.items[i] = item
		return item
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return item
}

func (r *purchaseRepository) Insert(item model.PurchaseItem) (model.PurchaseItem, error) {
	id := normalize.ID(item.ID)
	if _, ok := r.index[id]; ok && id != "" {
		return model.PurchaseItem{}, &model.DuplicateIDError{Kind: "purchase item", ID: id}
	}
	return r.Upsert(item), nil
}

func (r *purchaseRepository) Delete(itemID string) bool {
	itemID = normalize.ID(itemID)
	i, ok := r.index[itemID]
	if !ok {
		return false
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	delete(r.index, itemID)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].ID] = j
	}
	return true
}

func (r *purchaseRepository) FindByID(itemID string) (model.PurchaseItem, bool) {
	i, ok := r.index[normalize.ID(itemID)]
	if !ok {
		return model.PurchaseItem{}, false
	}
	return r.items[i], true
}

func (r *purchaseRepository) FindByOrderID(orderID string) []model.PurchaseItem {
	orderID = normalize.ID(orderID)
	out := make([]model.PurchaseItem, 0)
	if orderID == "" {
		return out
	}
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (r *purchaseRepository) SumByOrderID(orderID string) int64 {
	return r.SumByOrderIDWhere(orderID, AnyCategory)
}

func (r *purchaseRepository) SumByOrderIDWhere(orderID string, filter CategoryFilter) int64 {
	var sum int64
	for _, it := range r.FindByOrderID(orderID) {
		if filter(it.Category) {
			sum = model.AddAmounts(sum, it.Amount)
		}
	}
	return sum
}

// SumByName totals items per vendor or worker name. A nil period spans all
// time; otherwise the item's own date decides its bucket.
func (r *purchaseRepository) SumByName(filter CategoryFilter, period *model.Period) []model.NameAmount {
	var t model.Tally
	for _, it := range r.items {
		if !filter(it.Category) {
			continue
		}
		if period != nil && r.Bucket(it) != *period {
			continue
		}
		t.Add(it.VendorName, it.Amount)
	}
	return t.Ranked()
}

func (r *purchaseRepository) Bucket(item model.PurchaseItem) model.Period {
	return normalize.Bucket(item.Date, r.now)
}

func (r *purchaseRepository) All() []model.PurchaseItem {
	out := make([]model.PurchaseItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *purchaseRepository) Len() int { return len(r.items) }
