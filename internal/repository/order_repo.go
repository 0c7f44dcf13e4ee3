package repository

import (
	"sort"
	"strings"
	"time"

	"curtainledger/internal/model"
	"curtainledger/internal/normalize"
)

// Ordering selects how period listings are sorted.
type Ordering int

const (
	// OrderInsertion keeps the order rows appear in the store.
	OrderInsertion Ordering = iota
	// OrderMostRecentFirst sorts by order date, newest first; undated orders last.
	OrderMostRecentFirst
)

// SearchField names an order field covered by SearchOrders.
type SearchField int

const (
	FieldCustomerName SearchField = iota
	FieldAddress
	FieldID
	FieldPhone
)

// DefaultSearchFields are matched when SearchOrders gets no explicit fields.
var DefaultSearchFields = []SearchField{FieldCustomerName, FieldAddress, FieldID}

// OrderRepository is the in-memory orders table of one request.
type OrderRepository interface {
	Upsert(order model.Order) (model.Order, error)
	Insert(order model.Order) (model.Order, error)
	Delete(id string) bool
	FindByID(id string) (model.Order, bool)
	FilterByPeriod(year, month int, ordering Ordering) []model.Order
	Periods() []model.Period
	Bucket(order model.Order) model.Period
	All() []model.Order
	Len() int
}

type orderRepository struct {
	orders []model.Order
	index  map[string]int
	now    time.Time
}

// NewOrderRepository builds the table from normalized orders. Rows whose ids
// normalize to the same value collapse into one record, the later row winning.
// now is the fallback bucket for orders without a usable date.
func NewOrderRepository(orders []model.Order, now time.Time) OrderRepository {
	r := &orderRepository{
		orders: make([]model.Order, 0, len(orders)),
		index:  make(map[string]int, len(orders)),
		now:    now,
	}
	for _, o := range orders {
		_, _ = r.Upsert(o)
	}
	return r
}

func (r *orderRepository) Upsert(order model.Order) (model.Order, error) {
	order.ID = normalize.ID(order.ID)
	if order.ID == "" {
		return model.Order{}, model.ValidationError{Message: "order id is required"}
	}
	if i, ok := r.index[order.ID]; ok {
		r.orders[i] = order
		return order, nil
	}
	r.index[order.ID] = len(r.orders)
	r.orders = append(r.orders, order)
	return order, nil
}

func (r *orderRepository) Insert(order model.Order) (model.Order, error) {
	id := normalize.ID(order.ID)
	if _, ok := r.index[id]; ok && id != "" {
		return model.Order{}, &model.DuplicateIDError{Kind: "order", ID: id}
	}
	return r.Upsert(order)
}

func (r *orderRepository) Delete(id string) bool {
	id = normalize.ID(id)
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.orders = append(r.orders[:i], r.orders[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.orders); j++ {
		r.index[r.orders[j].ID] = j
	}
	return true
}

func (r *orderRepository) FindByID(id string) (model.Order, bool) {
	i, ok := r.index[normalize.ID(id)]
	if !ok {
		return model.Order{}, false
	}
	return r.orders[i], true
}

func (r *orderRepository) Bucket(order model.Order) model.Period {
	return normalize.Bucket(order.OrderDate, r.now)
}

func (r *orderRepository) FilterByPeriod(year, month int, ordering Ordering) []model.Order {
	out := make([]model.Order, 0)
	for _, o := range r.orders {
		if r.Bucket(o).Matches(year, month) {
			out = append(out, o)
		}
	}
	if ordering == OrderMostRecentFirst {
		SortMostRecentFirst(out)
	}
	return out
}

// SortMostRecentFirst orders by parsed order date, newest first. Orders whose
// date cannot be parsed go last, keeping their relative order.
func SortMostRecentFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		di, iok := normalize.ParseDate(orders[i].OrderDate)
		dj, jok := normalize.ParseDate(orders[j].OrderDate)
		switch {
		case iok && jok:
			return di.After(dj)
		case iok:
			return true
		default:
			return false
		}
	})
}

func (r *orderRepository) Periods() []model.Period {
	seen := make(map[model.Period]bool)
	out := make([]model.Period, 0)
	for _, o := range r.orders {
		p := r.Bucket(o)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

func (r *orderRepository) All() []model.Order {
	out := make([]model.Order, len(r.orders))
	copy(out, r.orders)
	return out
}

func (r *orderRepository) Len() int { return len(r.orders) }

// SearchOrders keeps orders where any of the fields contains query. Matching is
// case-sensitive; an empty query returns orders unchanged.
func SearchOrders(orders []model.Order, query string, fields ...SearchField) []model.Order {
	if query == "" {
		return orders
	}
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	out := make([]model.Order, 0)
	for _, o := range orders {
		for _, f := range fields {
			if strings.Contains(fieldValue(o, f), query) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func fieldValue(o model.Order, f SearchField) string {
	switch f {
	case FieldCustomerName:
		return o.CustomerName
	case FieldAddress:
		return o.Address
	case FieldID:
		return o.ID
	case FieldPhone:
		return o.Phone
	}
	return ""
}
