package model

// Order status stages, in workflow order. Transitions are not enforced.
const (
	StatusReceived   = "已接單"
	StatusPreparing  = "備貨中"
	StatusInProgress = "施工中"
	StatusCompleted  = "已完工"
	StatusClosed     = "已結案"
)

// Order is one customer job. OrderDate keeps the raw value read from the store;
// the period bucket is derived from it on demand.
type Order struct {
	ID             string `json:"id"`
	OrderDate      string `json:"order_date"`
	CustomerName   string `json:"customer_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	OrderContent   string `json:"order_content"`
	TotalAmount    int64  `json:"total_amount"`
	AmountPaid     int64  `json:"amount_paid"`
	LaborWage      int64  `json:"labor_wage"`
	Status         string `json:"status"`
	AssignedWorker string `json:"assigned_worker"`
	Category       string `json:"category"`
}

// OutstandingBalance is always computed from the current amounts, never stored.
func (o Order) OutstandingBalance() int64 {
	return AddAmounts(o.TotalAmount, -o.AmountPaid)
}

// Period is a (year, month) reporting bucket.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Matches reports whether the bucket equals the given year and month.
func (p Period) Matches(year, month int) bool {
	return p.Year == year && p.Month == month
}

// OrderOption pairs a display label with the order id it stands for, so
// selection lists never need to parse the id back out of the label.
type OrderOption struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}
