package model

// OrderReport is the profit breakdown of a single order.
type OrderReport struct {
	OrderID            string `json:"order_id"`
	CustomerName       string `json:"customer_name"`
	Status             string `json:"status"`
	AssignedWorker     string `json:"assigned_worker"`
	Revenue            int64  `json:"revenue"`
	MaterialCost       int64  `json:"material_cost"`
	LaborCost          int64  `json:"labor_cost"`
	NetProfit          int64  `json:"net_profit"`
	OutstandingBalance int64  `json:"outstanding_balance"`
}

// PeriodSummary aggregates the order reports of one month.
type PeriodSummary struct {
	Year              int           `json:"year"`
	Month             int           `json:"month"`
	TotalRevenue      int64         `json:"total_revenue"`
	TotalMaterialCost int64         `json:"total_material_cost"`
	TotalLaborCost    int64         `json:"total_labor_cost"`
	TotalCost         int64         `json:"total_cost"`
	TotalProfit       int64         `json:"total_profit"`
	TotalOutstanding  int64         `json:"total_outstanding"`
	Orders            []OrderReport `json:"orders"`
}

// PeriodTotals is one point of a monthly trend.
type PeriodTotals struct {
	Period
	OrderCount   int   `json:"order_count"`
	TotalRevenue int64 `json:"total_revenue"`
	TotalCost    int64 `json:"total_cost"`
	TotalProfit  int64 `json:"total_profit"`
}

// NameAmount is a ranked total for a vendor or worker.
type NameAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// MonthlyReport bundles everything the profit screen shows for one month.
type MonthlyReport struct {
	Summary      PeriodSummary `json:"summary"`
	Vendors      []NameAmount  `json:"vendors"`
	WorkerPayout []NameAmount  `json:"worker_payout"`
	WageByWorker []NameAmount  `json:"wage_by_worker"`
}
