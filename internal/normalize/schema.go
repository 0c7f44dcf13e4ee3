package normalize

import (
	"fmt"
	"strconv"

	"curtainledger/internal/model"

	"github.com/google/uuid"
)

// Table names as they appear in the store.
const (
	OrdersTable    = "訂單資料"
	PurchasesTable = "採購明細"
)

// Order columns.
const (
	ColOrderID        = "訂單編號"
	ColOrderDate      = "訂單日期"
	ColCustomerName   = "客戶姓名"
	ColPhone          = "電話"
	ColAddress        = "地址"
	ColOrderContent   = "訂購內容"
	ColTotalAmount    = "總金額"
	ColAmountPaid     = "已收金額"
	ColLaborWage      = "師傅工資"
	ColStatus         = "施工狀態"
	ColAssignedWorker = "代工師傅"
	ColCategory       = "施工類別"
)

// Purchase columns. ColItemID is absent from older sheets.
const (
	ColItemID       = "明細編號"
	ColVendorType   = "廠商類型"
	ColVendorName   = "廠商名稱"
	ColAmount       = "進貨金額"
	ColPurchaseDate = "叫貨日期"
	ColNote         = "備註"
)

// OrderColumns is the orders table header, in sheet order.
var OrderColumns = []string{
	ColOrderID, ColOrderDate, ColCustomerName, ColPhone, ColAddress, ColOrderContent,
	ColTotalAmount, ColAmountPaid, ColLaborWage, ColStatus, ColAssignedWorker, ColCategory,
}

// PurchaseColumns is the purchases table header, in sheet order.
var PurchaseColumns = []string{
	ColItemID, ColOrderID, ColVendorType, ColVendorName, ColAmount, ColPurchaseDate, ColNote,
}

// Columns returns the header of a known table, or nil.
func Columns(table string) []string {
	switch table {
	case OrdersTable:
		return OrderColumns
	case PurchasesTable:
		return PurchaseColumns
	}
	return nil
}

// itemNamespace seeds the ids derived for purchase rows that predate ColItemID.
var itemNamespace = uuid.MustParse("6f1c1d2e-4b7a-4c55-9d0e-0b8f6c1a2e31")

// Options tunes the parts of normalization that differ between shops.
type Options struct {
	PhoneDigitsOnly bool
}

// Backfill returns a copy of row holding every column, with "" for the
// missing ones.
func Backfill(row map[string]any, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for k, v := range row {
		out[k] = v
	}
	for _, c := range columns {
		if _, ok := out[c]; !ok || out[c] == nil {
			out[c] = ""
		}
	}
	return out
}

// OrderFromRow maps one backfilled row to an Order.
func OrderFromRow(row map[string]any, opts Options) model.Order {
	row = Backfill(row, OrderColumns)
	return model.Order{
		ID:             ID(row[ColOrderID]),
		OrderDate:      Text(row[ColOrderDate]),
		CustomerName:   Text(row[ColCustomerName]),
		Phone:          Phone(row[ColPhone], opts.PhoneDigitsOnly),
		Address:        Text(row[ColAddress]),
		OrderContent:   Text(row[ColOrderContent]),
		TotalAmount:    Amount(row[ColTotalAmount]),
		AmountPaid:     Amount(row[ColAmountPaid]),
		LaborWage:      Amount(row[ColLaborWage]),
		Status:         Text(row[ColStatus]),
		AssignedWorker: Text(row[ColAssignedWorker]),
		Category:       Text(row[ColCategory]),
	}
}

// Orders maps a loaded table to orders. Rows without an id are dropped since
// nothing can address them.
func Orders(rows []map[string]any, opts Options) []model.Order {
	out := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		o := OrderFromRow(row, opts)
		if o.ID == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PurchaseFromRow maps one backfilled row to a PurchaseItem. The item id may
// be empty; Purchases derives one.
func PurchaseFromRow(row map[string]any) model.PurchaseItem {
	row = Backfill(row, PurchaseColumns)
	return model.PurchaseItem{
		ID:         ID(row[ColItemID]),
		OrderID:    ID(row[ColOrderID]),
		Category:   Text(row[ColVendorType]),
		VendorName: Text(row[ColVendorName]),
		Amount:     Amount(row[ColAmount]),
		Date:       Text(row[ColPurchaseDate]),
		Note:       Text(row[ColNote]),
	}
}

// Purchases maps a loaded table to purchase items. Rows lacking an item id get
// one derived from their content and occurrence, so it stays the same across
// reloads until the table is written back with ids.
func Purchases(rows []map[string]any) []model.PurchaseItem {
	out := make([]model.PurchaseItem, 0, len(rows))
	seen := make(map[string]int)
	for _, row := range rows {
		p := PurchaseFromRow(row)
		if p.ID == "" {
			key := fmt.Sprintf("%s|%s|%s|%d|%s|%s", p.OrderID, p.Category, p.VendorName, p.Amount, p.Date, p.Note)
			seen[key]++
			p.ID = uuid.NewSHA1(itemNamespace, []byte(key+"|"+strconv.Itoa(seen[key]))).String()
		}
		out = append(out, p)
	}
	return out
}

// OrderRow formats an order for write-back.
func OrderRow(o model.Order) map[string]any {
	return map[string]any{
		ColOrderID:        ID(o.ID),
		ColOrderDate:      FormatDate(o.OrderDate),
		ColCustomerName:   o.CustomerName,
		ColPhone:          o.Phone,
		ColAddress:        o.Address,
		ColOrderContent:   o.OrderContent,
		ColTotalAmount:    o.TotalAmount,
		ColAmountPaid:     o.AmountPaid,
		ColLaborWage:      o.LaborWage,
		ColStatus:         o.Status,
		ColAssignedWorker: o.AssignedWorker,
		ColCategory:       o.Category,
	}
}

// PurchaseRow formats a purchase item for write-back.
func PurchaseRow(p model.PurchaseItem) map[string]any {
	return map[string]any{
		ColItemID:       p.ID,
		ColOrderID:      ID(p.OrderID),
		ColVendorType:   p.Category,
		ColVendorName:   p.VendorName,
		ColAmount:       p.Amount,
		ColPurchaseDate: FormatDate(p.Date),
		ColNote:         p.Note,
	}
}
