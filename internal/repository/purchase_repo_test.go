package repository

import (
	"testing"

	"curtainledger/internal/model"
)

var isLabor = CategoryFilter(func(c string) bool { return c == "師傅工資" })

func TestPurchaseRepository_SumByOrderID(t *testing.T) {
	empty := NewPurchaseRepository(nil, testNow)
	if got := empty.SumByOrderID("ORD1"); got != 0 {
		t.Fatalf("empty sum=%d", got)
	}

	r := NewPurchaseRepository([]model.PurchaseItem{
		{OrderID: "ORD1", Category: "窗簾布類", Amount: 2000},
		{OrderID: "ORD1.0", Category: "捲簾五金類", Amount: 500},
		{OrderID: "ORD1", Category: "師傅工資", Amount: 800},
		{OrderID: "ORD2", Amount: 999},
	}, testNow)
	if got := r.SumByOrderID(" ORD1 "); got != 3300 {
		t.Fatalf("sum=%d", got)
	}
	if got := r.SumByOrderIDWhere("ORD1", isLabor.Not()); got != 2500 {
		t.Fatalf("material sum=%d", got)
	}
	if got := r.SumByOrderID("missing"); got != 0 {
		t.Fatalf("missing order sum=%d", got)
	}
	if got := r.FindByOrderID(""); len(got) != 0 {
		t.Fatalf("blank order id should match nothing, got %d", len(got))
	}
}

func TestPurchaseRepository_UpsertAssignsIDsAndOverwrites(t *testing.T) {
	r := NewPurchaseRepository(nil, testNow)
	item := r.Upsert(model.PurchaseItem{OrderID: "ORD1", Amount: 100})
	if item.ID == "" {
		t.Fatalf("no id assigned")
	}
	item.Amount = 150
	r.Upsert(item)
	r.Upsert(item)
	if r.Len() != 1 {
		t.Fatalf("len=%d", r.Len())
	}
	got, ok := r.FindByID(item.ID)
	if !ok || got.Amount != 150 {
		t.Fatalf("got %+v ok=%v", got, ok)
	}

	if _, err := r.Insert(model.PurchaseItem{ID: item.ID}); !model.IsDuplicate(err) {
		t.Fatalf("want duplicate, got %v", err)
	}
	if r.Delete("nope") || r.Len() != 1 {
		t.Fatalf("delete missing changed repo")
	}
	if !r.Delete(item.ID) || r.Len() != 0 {
		t.Fatalf("delete existing failed")
	}
}

func TestPurchaseRepository_SumByName(t *testing.T) {
	r := NewPurchaseRepository([]model.PurchaseItem{
		{Category: "窗簾布類", VendorName: "大晉", Amount: 1000, Date: "2026-10-02"},
		{Category: "窗簾布類", VendorName: "萊茵", Amount: 3000, Date: "2026-10-05"},
		{Category: "捲簾五金類", VendorName: "彩樺", Amount: 1000, Date: "2026-10-06"},
		{Category: "窗簾布類", VendorName: "大晉", Amount: 500, Date: "2026-09-30"},
		{Category: "窗簾布類", VendorName: "可愛", Amount: 0, Date: "2026-10-07"},
		{Category: "師傅工資", VendorName: "小林", Amount: 4000, Date: "2026-10-08"},
		{Category: "窗簾布類", VendorName: "聚合", Amount: 700, Date: "bad date"},
	}, testNow)

	oct := model.Period{Year: 2026, Month: 10}
	got := r.SumByName(isLabor.Not(), &oct)
	want := []model.NameAmount{{Name: "萊茵", Amount: 3000}, {Name: "大晉", Amount: 1000}, {Name: "彩樺", Amount: 1000}, {Name: "聚合", Amount: 700}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %+v want %+v", i, got[i], want[i])
		}
	}

	all := r.SumByName(CategoryFilter(func(c string) bool { return c == "窗簾布類" }), nil)
	if len(all) != 3 || all[0].Name != "萊茵" || all[1].Name != "大晉" || all[1].Amount != 1500 {
		t.Fatalf("all-time: %+v", all)
	}

	if got := NewPurchaseRepository(nil, testNow).SumByName(AnyCategory, nil); got == nil || len(got) != 0 {
		t.Fatalf("empty repo should give empty slice, got %#v", got)
	}
}
