package model

// PurchaseItem is one cost line attributed to an order. The same table holds
// material purchases and labor-wage payouts, told apart by Category.
type PurchaseItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	Category   string `json:"category"`
	VendorName string `json:"vendor_name"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
	Note       string `json:"note"`
}
