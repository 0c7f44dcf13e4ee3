package report

import (
	"math"
	"testing"
	"time"

	"curtainledger/internal/catalog"
	"curtainledger/internal/model"
	"curtainledger/internal/repository"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func fixture(orders []model.Order, items []model.PurchaseItem) (repository.OrderRepository, repository.PurchaseRepository) {
	return repository.NewOrderRepository(orders, testNow), repository.NewPurchaseRepository(items, testNow)
}

func TestBuildOrderReport_OrderWageScheme(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{{ID: "ORD1", OrderDate: "2024-03-05", CustomerName: "王小明", TotalAmount: 10000, AmountPaid: 3000, LaborWage: 1000}},
		[]model.PurchaseItem{
			{OrderID: "ORD1", Category: "窗簾布類", VendorName: "大晉", Amount: 2000, Date: "2024-03-06"},
			{OrderID: "ORD1", Category: "捲簾五金類", VendorName: "彩樺", Amount: 500, Date: "2024-03-07"},
			{OrderID: "ORD1", Category: catalog.DefaultLaborCategory, VendorName: "小林", Amount: 1000, Date: "2024-04-01"},
		},
	)
	e := New(catalog.Default(""), PayoutByItemDate)
	o, _ := orders.FindByID("ORD1")
	r := e.BuildOrderReport(o, purchases)
	if r.MaterialCost != 2500 || r.LaborCost != 1000 || r.NetProfit != 6500 || r.OutstandingBalance != 7000 || r.Revenue != 10000 {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestBuildOrderReport_NormalizedIDsMatch(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{{ID: "  ORD2.0 ", TotalAmount: 5000}},
		[]model.PurchaseItem{{OrderID: "ORD2", Category: "壁紙類", Amount: 1200}},
	)
	o, ok := orders.FindByID("ORD2")
	if !ok {
		t.Fatalf("order not found under normalized id")
	}
	r := New(catalog.Default(""), PayoutByItemDate).BuildOrderReport(o, purchases)
	if r.MaterialCost != 1200 || r.NetProfit != 3800 {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestBuildPeriodSummary_EmptyPeriod(t *testing.T) {
	orders, purchases := fixture(nil, nil)
	e := New(catalog.Default(""), PayoutByItemDate)
	s := e.BuildPeriodSummary(orders, purchases, 2024, 3)
	if s.Orders == nil || len(s.Orders) != 0 {
		t.Fatalf("orders should be empty and non-nil: %#v", s.Orders)
	}
	if s.TotalRevenue != 0 || s.TotalCost != 0 || s.TotalProfit != 0 || s.TotalOutstanding != 0 {
		t.Fatalf("non-zero totals: %+v", s)
	}
	m := e.BuildMonthly(orders, purchases, 2024, 3)
	if m.Vendors == nil || m.WorkerPayout == nil || m.WageByWorker == nil {
		t.Fatalf("nil slices in monthly report: %+v", m)
	}
}

func TestBuildPeriodSummary_TwoOrdersOneWithoutItems(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{
			{ID: "A", OrderDate: "2024-03-01", TotalAmount: 10000, AmountPaid: 10000, LaborWage: 1500},
			{ID: "B", OrderDate: "2024/3/20", TotalAmount: 4000, AmountPaid: 1000},
			{ID: "C", OrderDate: "2024-04-02", TotalAmount: 99999},
		},
		[]model.PurchaseItem{{OrderID: "A", Category: "窗簾布類", Amount: 3000}},
	)
	s := New(catalog.Default(""), PayoutByItemDate).BuildPeriodSummary(orders, purchases, 2024, 3)
	if len(s.Orders) != 2 || s.Orders[0].OrderID != "A" || s.Orders[1].OrderID != "B" {
		t.Fatalf("unexpected orders: %+v", s.Orders)
	}
	if s.TotalRevenue != 14000 || s.TotalMaterialCost != 3000 || s.TotalLaborCost != 1500 || s.TotalCost != 4500 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.TotalProfit != 9500 || s.TotalOutstanding != 3000 {
		t.Fatalf("profit=%d outstanding=%d", s.TotalProfit, s.TotalOutstanding)
	}
	if s.Orders[1].NetProfit != 4000 {
		t.Fatalf("order without items: %+v", s.Orders[1])
	}
}

func TestBuildPeriodSummary_SaturatesHugeTotals(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{
			{ID: "A", OrderDate: "2024-03-01", TotalAmount: math.MaxInt64},
			{ID: "B", OrderDate: "2024-03-02", TotalAmount: math.MaxInt64},
		},
		[]model.PurchaseItem{
			{OrderID: "A", Category: "窗簾布類", VendorName: "大晉", Amount: math.MaxInt64, Date: "2024-03-03"},
			{OrderID: "A", Category: "窗簾布類", VendorName: "大晉", Amount: math.MaxInt64, Date: "2024-03-03"},
		},
	)
	e := New(catalog.Default(""), PayoutByItemDate)
	s := e.BuildPeriodSummary(orders, purchases, 2024, 3)
	if s.TotalRevenue != math.MaxInt64 || s.TotalMaterialCost != math.MaxInt64 || s.TotalCost != math.MaxInt64 {
		t.Fatalf("totals wrapped: %+v", s)
	}
	if s.Orders[0].NetProfit != 0 || s.TotalProfit != math.MaxInt64 {
		t.Fatalf("profit wrapped: %+v", s)
	}
	vendors := e.BuildVendorSummary(purchases, 2024, 3)
	if len(vendors) != 1 || vendors[0].Amount != math.MaxInt64 {
		t.Fatalf("vendors: %+v", vendors)
	}
}

func TestBuildWorkerPayoutSummary_Basis(t *testing.T) {
	labor := catalog.DefaultLaborCategory
	orders, purchases := fixture(
		[]model.Order{{ID: "A", OrderDate: "2024-03-28"}},
		[]model.PurchaseItem{
			{OrderID: "A", Category: labor, VendorName: "小林", Amount: 800, Date: "2024-04-02"},
			{OrderID: "A", Category: labor, VendorName: "永鑫", Amount: 1200, Date: "2024-03-30"},
			{OrderID: "gone", Category: labor, VendorName: "小林", Amount: 300, Date: "2024-03-15"},
			{OrderID: "A", Category: "窗簾布類", VendorName: "大晉", Amount: 5000, Date: "2024-03-30"},
		},
	)
	march := &model.Period{Year: 2024, Month: 3}

	byItem := New(catalog.Default(labor), PayoutByItemDate).BuildWorkerPayoutSummary(purchases, orders, march)
	if len(byItem) != 2 || byItem[0] != (model.NameAmount{Name: "永鑫", Amount: 1200}) || byItem[1] != (model.NameAmount{Name: "小林", Amount: 300}) {
		t.Fatalf("by item date: %+v", byItem)
	}

	byOrder := New(catalog.Default(labor), PayoutByOrderDate).BuildWorkerPayoutSummary(purchases, orders, march)
	if len(byOrder) != 2 || byOrder[0] != (model.NameAmount{Name: "永鑫", Amount: 1200}) || byOrder[1] != (model.NameAmount{Name: "小林", Amount: 1100}) {
		t.Fatalf("by order date: %+v", byOrder)
	}

	all := New(catalog.Default(labor), PayoutByOrderDate).BuildWorkerPayoutSummary(purchases, orders, nil)
	if len(all) != 2 || all[0].Amount+all[1].Amount != 2300 {
		t.Fatalf("all time: %+v", all)
	}
}

func TestEngine_CatalogDecidesLabor(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{{ID: "A", OrderDate: "2024-03-05", TotalAmount: 10000, LaborWage: 1500}},
		[]model.PurchaseItem{
			{OrderID: "A", Category: "工資", VendorName: "小林", Amount: 1500, Date: "2024-03-06"},
			{OrderID: "A", Category: catalog.DefaultLaborCategory, VendorName: "永鑫", Amount: 400, Date: "2024-03-06"},
			{OrderID: "A", Category: "窗簾布類", VendorName: "大晉", Amount: 2000, Date: "2024-03-06"},
		},
	)
	e := New(catalog.Default("工資"), PayoutByItemDate)

	r := e.BuildOrderReport(orders.All()[0], purchases)
	if r.MaterialCost != 2400 || r.NetProfit != 6100 {
		t.Fatalf("report: %+v", r)
	}
	payout := e.BuildWorkerPayoutSummary(purchases, orders, nil)
	if len(payout) != 1 || payout[0] != (model.NameAmount{Name: "小林", Amount: 1500}) {
		t.Fatalf("payout: %+v", payout)
	}
}

func TestBuildWageByWorkerAndVendors(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{
			{ID: "A", OrderDate: "2024-03-01", AssignedWorker: "小林", LaborWage: 1000},
			{ID: "B", OrderDate: "2024-03-02", AssignedWorker: "郭師傅", LaborWage: 2500},
			{ID: "C", OrderDate: "2024-03-03", AssignedWorker: "小林", LaborWage: 2000},
			{ID: "D", OrderDate: "2024-03-04", AssignedWorker: "祥"},
		},
		[]model.PurchaseItem{
			{OrderID: "A", Category: "壁紙類", VendorName: "優格", Amount: 700, Date: "2024-03-05"},
			{OrderID: "B", Category: "窗簾布類", VendorName: "大晉", Amount: 900, Date: "2024-03-05"},
			{OrderID: "C", Category: "窗簾布類", VendorName: "優格", Amount: 400, Date: "2024-03-05"},
			{OrderID: "C", Category: "窗簾布類", VendorName: "可愛", Amount: 100, Date: "2024-02-05"},
			{OrderID: "C", Category: catalog.DefaultLaborCategory, VendorName: "小林", Amount: 2000, Date: "2024-03-05"},
		},
	)
	e := New(catalog.Default(""), PayoutByItemDate)

	wages := e.BuildWageByWorker(orders, 2024, 3)
	if len(wages) != 2 || wages[0] != (model.NameAmount{Name: "小林", Amount: 3000}) || wages[1].Name != "郭師傅" {
		t.Fatalf("wages: %+v", wages)
	}

	vendors := e.BuildVendorSummary(purchases, 2024, 3)
	if len(vendors) != 2 || vendors[0] != (model.NameAmount{Name: "優格", Amount: 1100}) || vendors[1] != (model.NameAmount{Name: "大晉", Amount: 900}) {
		t.Fatalf("vendors: %+v", vendors)
	}
}

func TestBuildMonthlyTrend(t *testing.T) {
	orders, purchases := fixture(
		[]model.Order{
			{ID: "A", OrderDate: "2024-01-10", TotalAmount: 1000},
			{ID: "B", OrderDate: "2024-12-10", TotalAmount: 3000, LaborWage: 500},
			{ID: "C", OrderDate: "2023-12-10", TotalAmount: 7000},
		},
		[]model.PurchaseItem{{OrderID: "B", Category: "壁紙類", Amount: 1000}},
	)
	trend := New(catalog.Default(""), PayoutByItemDate).BuildMonthlyTrend(orders, purchases, 2024)
	if len(trend) != 12 {
		t.Fatalf("want 12 points, got %d", len(trend))
	}
	if trend[0].OrderCount != 1 || trend[0].TotalProfit != 1000 {
		t.Fatalf("january: %+v", trend[0])
	}
	dec := trend[11]
	if dec.Month != 12 || dec.OrderCount != 1 || dec.TotalCost != 1500 || dec.TotalProfit != 1500 {
		t.Fatalf("december: %+v", dec)
	}
	if trend[5].OrderCount != 0 || trend[5].TotalRevenue != 0 {
		t.Fatalf("june should be empty: %+v", trend[5])
	}
}

func TestOrderOptions(t *testing.T) {
	opts := OrderOptions([]model.Order{{ID: "ORD1", CustomerName: "王小明", Address: "台北市"}})
	if len(opts) != 1 || opts[0].Label != "王小明 | 台北市" || opts[0].ID != "ORD1" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if got := OrderOptions(nil); got == nil || len(got) != 0 {
		t.Fatalf("empty input should give empty slice")
	}
}

func TestParsePayoutBasis(t *testing.T) {
	if ParsePayoutBasis("order") != PayoutByOrderDate || ParsePayoutBasis("") != PayoutByItemDate || ParsePayoutBasis("item") != PayoutByItemDate {
		t.Fatalf("unexpected basis mapping")
	}
}
