package normalize

import "testing"

func TestBackfill_AddsMissingColumns(t *testing.T) {
	row := map[string]any{ColOrderID: "ORD1"}
	out := Backfill(row, OrderColumns)
	for _, c := range OrderColumns {
		if _, ok := out[c]; !ok {
			t.Fatalf("missing column %s", c)
		}
	}
	if out[ColOrderID] != "ORD1" || out[ColStatus] != "" {
		t.Fatalf("unexpected backfill: %+v", out)
	}
	if len(row) != 1 {
		t.Fatalf("input row mutated: %+v", row)
	}
}

func TestOrders_CoercesAndDropsBlankIDs(t *testing.T) {
	rows := []map[string]any{
		{ColOrderID: " ORD2.0 ", ColTotalAmount: "10,000", ColAmountPaid: 3000.0, ColPhone: 912345678.0},
		{ColOrderID: "", ColCustomerName: "ghost"},
		{ColCustomerName: "no id column"},
	}
	orders := Orders(rows, Options{})
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
	o := orders[0]
	if o.ID != "ORD2" || o.TotalAmount != 10000 || o.AmountPaid != 3000 || o.LaborWage != 0 || o.Phone != "912345678" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.OutstandingBalance() != 7000 {
		t.Fatalf("balance=%d", o.OutstandingBalance())
	}
}

func TestPurchases_DerivedIDsAreStable(t *testing.T) {
	rows := []map[string]any{
		{ColOrderID: "ORD1", ColVendorName: "大晉", ColAmount: "2000"},
		{ColOrderID: "ORD1", ColVendorName: "大晉", ColAmount: "2000"},
		{ColItemID: "keep-me", ColOrderID: "ORD1.0", ColAmount: 500},
	}
	first := Purchases(rows)
	second := Purchases(rows)
	if len(first) != 3 {
		t.Fatalf("want 3 items, got %d", len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("id of row %d changed across loads: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Fatalf("identical rows must still get distinct ids")
	}
	if first[2].ID != "keep-me" || first[2].OrderID != "ORD1" {
		t.Fatalf("unexpected third item: %+v", first[2])
	}
}

func TestOrderRow_RoundTrip(t *testing.T) {
	in := map[string]any{
		ColOrderID: "ORD9", ColOrderDate: "2024/3/5", ColCustomerName: "王小明", ColAddress: "台北市",
		ColTotalAmount: "5000", ColStatus: "已接單",
	}
	o := OrderFromRow(in, Options{})
	out := OrderRow(o)
	if out[ColOrderDate] != "2024-03-05" {
		t.Fatalf("date write-back: %v", out[ColOrderDate])
	}
	back := OrderFromRow(out, Options{})
	if back.CustomerName != "王小明" || back.TotalAmount != 5000 || back.OrderDate != "2024-03-05" {
		t.Fatalf("round trip lost data: %+v", back)
	}
}
