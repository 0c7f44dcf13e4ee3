// Package report computes per-order profit, monthly summaries and the ranked
// payout and vendor lists from the in-memory repositories.
//
// Profit follows the order-wage scheme: an order's labor cost is its LaborWage
// field, and purchase items in the labor category are payout records of that
// wage, so they never count toward cost a second time.
package report

import (
	"curtainledger/internal/catalog"
	"curtainledger/internal/model"
	"curtainledger/internal/repository"
)

// PayoutBasis decides which date buckets a labor payout item.
type PayoutBasis int

const (
	// PayoutByItemDate buckets payouts by their own purchase date.
	PayoutByItemDate PayoutBasis = iota
	// PayoutByOrderDate buckets payouts by the date of the order they belong to.
	PayoutByOrderDate
)

// ParsePayoutBasis maps the config value; anything but "order" is item date.
func ParsePayoutBasis(s string) PayoutBasis {
	if s == "order" {
		return PayoutByOrderDate
	}
	return PayoutByItemDate
}

// Engine holds the report settings shared by every computation. The catalog
// decides which purchase categories are labor payouts.
type Engine struct {
	Catalog catalog.Catalog
	Payout  PayoutBasis
}

func New(cat catalog.Catalog, payout PayoutBasis) Engine {
	return Engine{Catalog: cat, Payout: payout}
}

func (e Engine) labor() repository.CategoryFilter {
	return e.Catalog.IsLabor
}

func (e Engine) materials() repository.CategoryFilter {
	return e.labor().Not()
}

// BuildOrderReport computes the profit breakdown of one order.
func (e Engine) BuildOrderReport(order model.Order, purchases repository.PurchaseRepository) model.OrderReport {
	material := purchases.SumByOrderIDWhere(order.ID, e.materials())
	return model.OrderReport{
		OrderID:            order.ID,
		CustomerName:       order.CustomerName,
		Status:             order.Status,
		AssignedWorker:     order.AssignedWorker,
		Revenue:            order.TotalAmount,
		MaterialCost:       material,
		LaborCost:          order.LaborWage,
		NetProfit:          model.AddAmounts(order.TotalAmount, -order.LaborWage, -material),
		OutstandingBalance: order.OutstandingBalance(),
	}
}

// BuildPeriodSummary totals the reports of every order bucketed into the month.
func (e Engine) BuildPeriodSummary(orders repository.OrderRepository, purchases repository.PurchaseRepository, year, month int) model.PeriodSummary {
	s := model.PeriodSummary{Year: year, Month: month, Orders: make([]model.OrderReport, 0)}
	for _, o := range orders.FilterByPeriod(year, month, repository.OrderInsertion) {
		r := e.BuildOrderReport(o, purchases)
		s.Orders = append(s.Orders, r)
		s.TotalRevenue = model.AddAmounts(s.TotalRevenue, r.Revenue)
		s.TotalMaterialCost = model.AddAmounts(s.TotalMaterialCost, r.MaterialCost)
		s.TotalLaborCost = model.AddAmounts(s.TotalLaborCost, r.LaborCost)
		s.TotalProfit = model.AddAmounts(s.TotalProfit, r.NetProfit)
		s.TotalOutstanding = model.AddAmounts(s.TotalOutstanding, r.OutstandingBalance)
	}
	s.TotalCost = model.AddAmounts(s.TotalMaterialCost, s.TotalLaborCost)
	return s
}

// BuildWorkerPayoutSummary ranks labor payouts per worker. A nil period spans
// all time. Under PayoutByOrderDate an item whose order is gone falls back to
// its own date.
func (e Engine) BuildWorkerPayoutSummary(purchases repository.PurchaseRepository, orders repository.OrderRepository, period *model.Period) []model.NameAmount {
	labor := e.labor()
	if e.Payout == PayoutByItemDate {
		return purchases.SumByName(labor, period)
	}

	var t model.Tally
	for _, it := range purchases.All() {
		if !labor(it.Category) {
			continue
		}
		if period != nil {
			bucket := purchases.Bucket(it)
			if o, ok := orders.FindByID(it.OrderID); ok {
				bucket = orders.Bucket(o)
			}
			if bucket != *period {
				continue
			}
		}
		t.Add(it.VendorName, it.Amount)
	}
	return t.Ranked()
}

// BuildWageByWorker ranks the wages of the month's orders by assigned worker.
func (e Engine) BuildWageByWorker(orders repository.OrderRepository, year, month int) []model.NameAmount {
	var t model.Tally
	for _, o := range orders.FilterByPeriod(year, month, repository.OrderInsertion) {
		t.Add(o.AssignedWorker, o.LaborWage)
	}
	return t.Ranked()
}

// BuildVendorSummary ranks material spend per vendor, bucketed by item date.
func (e Engine) BuildVendorSummary(purchases repository.PurchaseRepository, year, month int) []model.NameAmount {
	return purchases.SumByName(e.materials(), &model.Period{Year: year, Month: month})
}

// BuildMonthly bundles the profit screen of one month.
func (e Engine) BuildMonthly(orders repository.OrderRepository, purchases repository.PurchaseRepository, year, month int) model.MonthlyReport {
	return model.MonthlyReport{
		Summary:      e.BuildPeriodSummary(orders, purchases, year, month),
		Vendors:      e.BuildVendorSummary(purchases, year, month),
		WorkerPayout: e.BuildWorkerPayoutSummary(purchases, orders, &model.Period{Year: year, Month: month}),
		WageByWorker: e.BuildWageByWorker(orders, year, month),
	}
}

// BuildMonthlyTrend returns the twelve month totals of a year, January first.
func (e Engine) BuildMonthlyTrend(orders repository.OrderRepository, purchases repository.PurchaseRepository, year int) []model.PeriodTotals {
	out := make([]model.PeriodTotals, 0, 12)
	for m := 1; m <= 12; m++ {
		s := e.BuildPeriodSummary(orders, purchases, year, m)
		out = append(out, model.PeriodTotals{
			Period:       model.Period{Year: year, Month: m},
			OrderCount:   len(s.Orders),
			TotalRevenue: s.TotalRevenue,
			TotalCost:    s.TotalCost,
			TotalProfit:  s.TotalProfit,
		})
	}
	return out
}

// OrderOptions labels orders for selection lists as "name | address".
func OrderOptions(orders []model.Order) []model.OrderOption {
	out := make([]model.OrderOption, 0, len(orders))
	for _, o := range orders {
		out = append(out, model.OrderOption{Label: o.CustomerName + " | " + o.Address, ID: o.ID})
	}
	return out
}
