package repository

import (
	"testing"
	"time"

	"curtainledger/internal/model"
)

var testNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func TestOrderRepository_UpsertIsIdempotent(t *testing.T) {
	r := NewOrderRepository(nil, testNow)
	o := model.Order{ID: "ORD1", CustomerName: "王", TotalAmount: 100}
	if _, err := r.Upsert(o); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := r.Upsert(o); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("want 1 record, got %d", r.Len())
	}

	o.ID = " ORD1.0 "
	o.TotalAmount = 200
	if _, err := r.Upsert(o); err != nil {
		t.Fatalf("upsert artifact id: %v", err)
	}
	got, ok := r.FindByID("ORD1")
	if !ok || r.Len() != 1 || got.TotalAmount != 200 {
		t.Fatalf("artifact id should overwrite: len=%d got=%+v", r.Len(), got)
	}
}

func TestOrderRepository_InsertRejectsDuplicate(t *testing.T) {
	r := NewOrderRepository([]model.Order{{ID: "ORD1"}}, testNow)
	_, err := r.Insert(model.Order{ID: "ORD1.0"})
	if !model.IsDuplicate(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}
	if _, err := r.Insert(model.Order{ID: ""}); !model.IsValidation(err) {
		t.Fatalf("want validation error for empty id, got %v", err)
	}
	if _, err := r.Insert(model.Order{ID: "ORD2"}); err != nil {
		t.Fatalf("insert fresh id: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("len=%d", r.Len())
	}
}

func TestOrderRepository_LoadCollapsesNormalizedDuplicates(t *testing.T) {
	r := NewOrderRepository([]model.Order{
		{ID: "ORD1", CustomerName: "first"},
		{ID: "ORD1.0", CustomerName: "second"},
	}, testNow)
	got, _ := r.FindByID("ORD1")
	if r.Len() != 1 || got.CustomerName != "second" {
		t.Fatalf("len=%d got=%+v", r.Len(), got)
	}
}

func TestOrderRepository_DeleteMissingIsNoop(t *testing.T) {
	r := NewOrderRepository([]model.Order{{ID: "A"}, {ID: "B"}, {ID: "C"}}, testNow)
	before := r.All()
	if r.Delete("nope") {
		t.Fatalf("delete of missing id reported true")
	}
	after := r.All()
	if len(after) != len(before) {
		t.Fatalf("size changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("contents changed at %d", i)
		}
	}

	if !r.Delete("B") {
		t.Fatalf("delete existing reported false")
	}
	if _, ok := r.FindByID("B"); ok {
		t.Fatalf("B still present")
	}
	if c, ok := r.FindByID("C"); !ok || c.ID != "C" {
		t.Fatalf("index not rebuilt after delete")
	}
}

func TestOrderRepository_FilterByPeriod(t *testing.T) {
	r := NewOrderRepository([]model.Order{
		{ID: "1", OrderDate: "2026-09-03"},
		{ID: "2", OrderDate: "2026-10-01"},
		{ID: "3", OrderDate: "garbled"},
		{ID: "4", OrderDate: "2026-10-20"},
		{ID: "5", OrderDate: ""},
	}, testNow)

	got := r.FilterByPeriod(2026, 10, OrderInsertion)
	ids := idsOf(got)
	if ids != "2,3,4,5" {
		t.Fatalf("insertion order ids=%s", ids)
	}

	got = r.FilterByPeriod(2026, 10, OrderMostRecentFirst)
	if ids := idsOf(got); ids != "4,2,3,5" {
		t.Fatalf("recent-first ids=%s", ids)
	}

	if got := r.FilterByPeriod(2020, 1, OrderInsertion); got == nil || len(got) != 0 {
		t.Fatalf("empty period should give empty slice, got %#v", got)
	}
}

func TestOrderRepository_Periods(t *testing.T) {
	r := NewOrderRepository([]model.Order{
		{ID: "1", OrderDate: "2025-12-03"},
		{ID: "2", OrderDate: "2026-02-01"},
		{ID: "3", OrderDate: "2026-02-11"},
		{ID: "4"},
	}, testNow)
	got := r.Periods()
	want := []model.Period{{Year: 2026, Month: 10}, {Year: 2026, Month: 2}, {Year: 2025, Month: 12}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("period %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestSearchOrders(t *testing.T) {
	orders := []model.Order{
		{ID: "ORD1", CustomerName: "Chen", Address: "台北市信義區", Phone: "0912"},
		{ID: "ORD2", CustomerName: "Lin", Address: "新北市板橋區"},
	}
	if got := SearchOrders(orders, ""); len(got) != 2 {
		t.Fatalf("empty query filtered: %d", len(got))
	}
	if got := SearchOrders(orders, "chen"); len(got) != 0 {
		t.Fatalf("search must be case-sensitive, got %d", len(got))
	}
	if got := SearchOrders(orders, "板橋"); len(got) != 1 || got[0].ID != "ORD2" {
		t.Fatalf("address search: %+v", got)
	}
	if got := SearchOrders(orders, "ORD"); len(got) != 2 {
		t.Fatalf("id search: %+v", got)
	}
	if got := SearchOrders(orders, "0912"); len(got) != 0 {
		t.Fatalf("phone not a default field, got %d", len(got))
	}
	if got := SearchOrders(orders, "0912", FieldPhone); len(got) != 1 {
		t.Fatalf("explicit phone field, got %d", len(got))
	}
}

func idsOf(orders []model.Order) string {
	s := ""
	for i, o := range orders {
		if i > 0 {
			s += ","
		}
		s += o.ID
	}
	return s
}
