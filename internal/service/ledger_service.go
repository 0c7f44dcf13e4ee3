package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"curtainledger/internal/catalog"
	"curtainledger/internal/metrics"
	"curtainledger/internal/model"
	"curtainledger/internal/normalize"
	"curtainledger/internal/report"
	"curtainledger/internal/repository"
	"curtainledger/internal/store"
)

// DTOs
type OrderInput struct {
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

type PurchaseInput struct {
	Category   string `json:"category"`
	VendorName string `json:"vendor_name"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"`
	Note       string `json:"note"`
}

// OrderFilter narrows an order listing. A zero Year or Month means the
// current period.
type OrderFilter struct {
	Year     int
	Month    int
	Query    string
	Ordering repository.Ordering
}

// OrderDetail is an order with its cost lines. Profit figures are served only
// by OrderReport, behind the report session.
type OrderDetail struct {
	Order              model.Order          `json:"order"`
	Purchases          []model.PurchaseItem `json:"purchases"`
	OutstandingBalance int64                `json:"outstanding_balance"`
}

// LedgerEvent is published to websocket clients after every mutation.
type LedgerEvent struct {
	Event   string `json:"event"`
	ID      string `json:"id"`
	OrderID string `json:"order_id,omitempty"`
}

// Notifier receives ledger events; the websocket hub implements it.
type Notifier interface {
	Publish(event any)
}

// Ledger is the state of both tables as loaded for a single request.
type Ledger struct {
	Orders            repository.OrderRepository
	Purchases         repository.PurchaseRepository
	Now               time.Time
	OrdersDegraded    bool
	PurchasesDegraded bool
}

type LedgerService interface {
	Snapshot(ctx context.Context) (*Ledger, error)
	Catalog() catalog.Catalog
	ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	Periods(ctx context.Context) ([]model.Period, error)
	OrderOptions(ctx context.Context, year, month int) ([]model.OrderOption, error)
	GetOrder(ctx context.Context, id string) (OrderDetail, error)
	CreateOrder(ctx context.Context, in OrderInput) (model.Order, error)
	UpdateOrder(ctx context.Context, id string, in OrderInput) (model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ListPurchases(ctx context.Context, orderID string) ([]model.PurchaseItem, error)
	AddPurchase(ctx context.Context, orderID string, in PurchaseInput) (model.PurchaseItem, error)
	UpdatePurchase(ctx context.Context, itemID string, in PurchaseInput) (model.PurchaseItem, error)
	DeletePurchase(ctx context.Context, itemID string) error
	OrderReport(ctx context.Context, id string) (model.OrderReport, error)
	MonthlyReport(ctx context.Context, year, month int) (model.MonthlyReport, error)
	YearTrend(ctx context.Context, year int) ([]model.PeriodTotals, error)
}

// Options configures a LedgerService. Zero values are usable: the clock
// defaults to time.Now and a nil Metrics or Notifier is skipped.
type Options struct {
	Normalize normalize.Options
	Catalog   catalog.Catalog
	Report    report.Engine
	Clock     func() time.Time
	Metrics   *metrics.Registry
	Notifier  Notifier
}

type ledgerService struct {
	store    store.Adapter
	norm     normalize.Options
	catalog  catalog.Catalog
	engine   report.Engine
	clock    func() time.Time
	metrics  *metrics.Registry
	notifier Notifier
}

func NewLedgerService(st store.Adapter, opts Options) LedgerService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Catalog.LaborCategory == "" {
		opts.Catalog = catalog.Default(opts.Report.Catalog.LaborCategory)
	}
	if opts.Report.Catalog.LaborCategory == "" {
		opts.Report.Catalog = opts.Catalog
	}
	return &ledgerService{
		store:    st,
		norm:     opts.Normalize,
		catalog:  opts.Catalog,
		engine:   opts.Report,
		clock:    opts.Clock,
		metrics:  opts.Metrics,
		notifier: opts.Notifier,
	}
}

func (s *ledgerService) Catalog() catalog.Catalog { return s.catalog }

// Snapshot loads both tables fresh. A table that fails to load is logged and
// treated as empty; the Ledger remembers it so mutations cannot overwrite it.
func (s *ledgerService) Snapshot(ctx context.Context) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.clock()
	orderRows, ordersDegraded := s.load(ctx, normalize.OrdersTable)
	itemRows, purchasesDegraded := s.load(ctx, normalize.PurchasesTable)
	return &Ledger{
		Orders:            repository.NewOrderRepository(normalize.Orders(orderRows, s.norm), now),
		Purchases:         repository.NewPurchaseRepository(normalize.Purchases(itemRows), now),
		Now:               now,
		OrdersDegraded:    ordersDegraded,
		PurchasesDegraded: purchasesDegraded,
	}, nil
}

func (s *ledgerService) load(ctx context.Context, table string) ([]map[string]any, bool) {
	rows, err := s.store.Load(ctx, table)
	if err != nil {
		slog.Error("ledger table load failed, serving it empty", "table", table, "error", err)
		if s.metrics != nil {
			s.metrics.DegradedLoads.WithLabelValues(table).Inc()
		}
		return nil, true
	}
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, false
}

func (s *ledgerService) saveOrders(ctx context.Context, l *Ledger) error {
	if l.OrdersDegraded {
		return fmt.Errorf("save %s: %w: table failed to load", normalize.OrdersTable, model.ErrStoreUnavailable)
	}
	orders := l.Orders.All()
	rows := make([]store.Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, normalize.OrderRow(o))
	}
	return s.store.Save(ctx, normalize.OrdersTable, rows)
}

func (s *ledgerService) savePurchases(ctx context.Context, l *Ledger) error {
	if l.PurchasesDegraded {
		return fmt.Errorf("save %s: %w: table failed to load", normalize.PurchasesTable, model.ErrStoreUnavailable)
	}
	items := l.Purchases.All()
	rows := make([]store.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, normalize.PurchaseRow(it))
	}
	return s.store.Save(ctx, normalize.PurchasesTable, rows)
}

// finish records a mutation's outcome and announces it when it succeeded.
func (s *ledgerService) finish(entity, action string, event LedgerEvent, err error) {
	if s.metrics != nil {
		s.metrics.Mutations.WithLabelValues(entity, action, metrics.Result(err)).Inc()
	}
	if err != nil {
		if !model.IsValidation(err) && !model.IsDuplicate(err) {
			slog.Error("ledger mutation failed", "entity", entity, "action", action, "id", event.ID, "error", err)
		}
		return
	}
	slog.Info("ledger mutation", "entity", entity, "action", action, "id", event.ID)
	if s.notifier != nil {
		s.notifier.Publish(event)
	}
}

// resolvePeriod defaults an omitted period to now. A month without a year
// means that month of the current year; a year without a month is rejected.
func resolvePeriod(year, month int, now time.Time) (int, int, error) {
	if month < 0 || month > 12 {
		return 0, 0, model.ValidationError{Message: "month must be between 1 and 12"}
	}
	if year < 0 {
		return 0, 0, model.ValidationError{Message: "year must not be negative"}
	}
	switch {
	case year == 0 && month == 0:
		return now.Year(), int(now.Month()), nil
	case year == 0:
		return now.Year(), month, nil
	case month == 0:
		return 0, 0, model.ValidationError{Message: "month is required when year is given"}
	}
	return year, month, nil
}

func (s *ledgerService) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	year, month, err := resolvePeriod(filter.Year, filter.Month, l.Now)
	if err != nil {
		return nil, err
	}
	orders := l.Orders.FilterByPeriod(year, month, filter.Ordering)
	return repository.SearchOrders(orders, strings.TrimSpace(filter.Query)), nil
}

func (s *ledgerService) Periods(ctx context.Context) ([]model.Period, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return l.Orders.Periods(), nil
}

func (s *ledgerService) OrderOptions(ctx context.Context, year, month int) ([]model.OrderOption, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	year, month, err = resolvePeriod(year, month, l.Now)
	if err != nil {
		return nil, err
	}
	return report.OrderOptions(l.Orders.FilterByPeriod(year, month, repository.OrderInsertion)), nil
}

func (s *ledgerService) GetOrder(ctx context.Context, id string) (OrderDetail, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return OrderDetail{}, err
	}
	o, ok := l.Orders.FindByID(id)
	if !ok {
		return OrderDetail{}, fmt.Errorf("order %q: %w", normalize.ID(id), model.ErrNotFound)
	}
	return OrderDetail{
		Order:              o,
		Purchases:          l.Purchases.FindByOrderID(o.ID),
		OutstandingBalance: o.OutstandingBalance(),
	}, nil
}

func validateOrder(in OrderInput) error {
	var missing []string
	if strings.TrimSpace(in.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return model.ValidationError{Message: "required fields missing: " + strings.Join(missing, ", ")}
	}
	if in.TotalAmount < 0 || in.AmountPaid < 0 || in.LaborWage < 0 {
		return model.ValidationError{Message: "amounts must not be negative"}
	}
	if in.TotalAmount > model.MaxAmount || in.AmountPaid > model.MaxAmount || in.LaborWage > model.MaxAmount {
		return model.ValidationError{Message: fmt.Sprintf("amounts must not exceed %d", model.MaxAmount)}
	}
	return nil
}

func (s *ledgerService) orderFromInput(id string, in OrderInput, now time.Time) model.Order {
	date := strings.TrimSpace(in.OrderDate)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	return model.Order{
		ID:             normalize.ID(id),
		OrderDate:      normalize.FormatDate(date),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		Phone:          normalize.Phone(in.Phone, s.norm.PhoneDigitsOnly),
		Address:        strings.TrimSpace(in.Address),
		OrderContent:   in.OrderContent,
		TotalAmount:    in.TotalAmount,
		AmountPaid:     in.AmountPaid,
		LaborWage:      in.LaborWage,
		Status:         strings.TrimSpace(in.Status),
		AssignedWorker: strings.TrimSpace(in.AssignedWorker),
		Category:       strings.TrimSpace(in.Category),
	}
}

// CreateOrder inserts a new order. The id defaults to ORD plus the current
// month, day, hour and minute; the status defaults to the first stage.
func (s *ledgerService) CreateOrder(ctx context.Context, in OrderInput) (out model.Order, err error) {
	defer func() { s.finish("order", "create", LedgerEvent{Event: "order.created", ID: out.ID}, err) }()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.Order{}, err
	}
	if err := validateOrder(in); err != nil {
		return model.Order{}, err
	}
	id := normalize.ID(in.ID)
	if id == "" {
		id = "ORD" + l.Now.Format("01021504")
	}
	o := s.orderFromInput(id, in, l.Now)
	if o.Status == "" {
		o.Status = s.catalog.DefaultStatus()
	}
	if o, err = l.Orders.Insert(o); err != nil {
		return model.Order{}, err
	}
	if err := s.saveOrders(ctx, l); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// UpdateOrder overwrites every editable field of an existing order.
func (s *ledgerService) UpdateOrder(ctx context.Context, id string, in OrderInput) (out model.Order, err error) {
	defer func() { s.finish("order", "update", LedgerEvent{Event: "order.updated", ID: normalize.ID(id)}, err) }()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.Order{}, err
	}
	existing, ok := l.Orders.FindByID(id)
	if !ok {
		return model.Order{}, fmt.Errorf("order %q: %w", normalize.ID(id), model.ErrNotFound)
	}
	if err := validateOrder(in); err != nil {
		return model.Order{}, err
	}
	o := s.orderFromInput(existing.ID, in, l.Now)
	if strings.TrimSpace(in.OrderDate) == "" {
		o.OrderDate = existing.OrderDate
	}
	if o.Status == "" {
		o.Status = existing.Status
	}
	if o, err = l.Orders.Upsert(o); err != nil {
		return model.Order{}, err
	}
	if err := s.saveOrders(ctx, l); err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// DeleteOrder removes the order if present. Its purchase items are kept.
func (s *ledgerService) DeleteOrder(ctx context.Context, id string) (err error) {
	removed := false
	defer func() {
		if removed || err != nil {
			s.finish("order", "delete", LedgerEvent{Event: "order.deleted", ID: normalize.ID(id)}, err)
		}
	}()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !l.Orders.Delete(id) {
		return nil
	}
	removed = true
	return s.saveOrders(ctx, l)
}

func (s *ledgerService) ListPurchases(ctx context.Context, orderID string) ([]model.PurchaseItem, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := l.Orders.FindByID(orderID); !ok {
		return nil, fmt.Errorf("order %q: %w", normalize.ID(orderID), model.ErrNotFound)
	}
	return l.Purchases.FindByOrderID(orderID), nil
}

func validatePurchase(in PurchaseInput) error {
	if strings.TrimSpace(in.VendorName) == "" {
		return model.ValidationError{Message: "required fields missing: vendor_name"}
	}
	if in.Amount < 0 {
		return model.ValidationError{Message: "amount must not be negative"}
	}
	if in.Amount > model.MaxAmount {
		return model.ValidationError{Message: fmt.Sprintf("amount must not exceed %d", model.MaxAmount)}
	}
	return nil
}

func purchaseFromInput(id, orderID string, in PurchaseInput, now time.Time) model.PurchaseItem {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	return model.PurchaseItem{
		ID:         id,
		OrderID:    normalize.ID(orderID),
		Category:   strings.TrimSpace(in.Category),
		VendorName: strings.TrimSpace(in.VendorName),
		Amount:     in.Amount,
		Date:       normalize.FormatDate(date),
		Note:       in.Note,
	}
}

// AddPurchase records a cost line against an existing order.
func (s *ledgerService) AddPurchase(ctx context.Context, orderID string, in PurchaseInput) (out model.PurchaseItem, err error) {
	defer func() {
		s.finish("purchase", "create", LedgerEvent{Event: "purchase.created", ID: out.ID, OrderID: normalize.ID(orderID)}, err)
	}()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.PurchaseItem{}, err
	}
	if _, ok := l.Orders.FindByID(orderID); !ok {
		return model.PurchaseItem{}, fmt.Errorf("order %q: %w", normalize.ID(orderID), model.ErrNotFound)
	}
	if err := validatePurchase(in); err != nil {
		return model.PurchaseItem{}, err
	}
	item, err := l.Purchases.Insert(purchaseFromInput("", orderID, in, l.Now))
	if err != nil {
		return model.PurchaseItem{}, err
	}
	if err := s.savePurchases(ctx, l); err != nil {
		return model.PurchaseItem{}, err
	}
	return item, nil
}

// UpdatePurchase overwrites an item's fields; the order it belongs to is kept.
func (s *ledgerService) UpdatePurchase(ctx context.Context, itemID string, in PurchaseInput) (out model.PurchaseItem, err error) {
	defer func() {
		s.finish("purchase", "update", LedgerEvent{Event: "purchase.updated", ID: normalize.ID(itemID), OrderID: out.OrderID}, err)
	}()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.PurchaseItem{}, err
	}
	existing, ok := l.Purchases.FindByID(itemID)
	if !ok {
		return model.PurchaseItem{}, fmt.Errorf("purchase item %q: %w", normalize.ID(itemID), model.ErrNotFound)
	}
	if err := validatePurchase(in); err != nil {
		return model.PurchaseItem{}, err
	}
	item := purchaseFromInput(existing.ID, existing.OrderID, in, l.Now)
	if strings.TrimSpace(in.Date) == "" {
		item.Date = existing.Date
	}
	item = l.Purchases.Upsert(item)
	if err := s.savePurchases(ctx, l); err != nil {
		return model.PurchaseItem{}, err
	}
	return item, nil
}

// DeletePurchase removes the item if present.
func (s *ledgerService) DeletePurchase(ctx context.Context, itemID string) (err error) {
	removed := false
	defer func() {
		if removed || err != nil {
			s.finish("purchase", "delete", LedgerEvent{Event: "purchase.deleted", ID: normalize.ID(itemID)}, err)
		}
	}()

	l, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !l.Purchases.Delete(itemID) {
		return nil
	}
	removed = true
	return s.savePurchases(ctx, l)
}

func (s *ledgerService) countReport(kind string) {
	if s.metrics != nil {
		s.metrics.Reports.WithLabelValues(kind).Inc()
	}
}

func (s *ledgerService) OrderReport(ctx context.Context, id string) (model.OrderReport, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.OrderReport{}, err
	}
	o, ok := l.Orders.FindByID(id)
	if !ok {
		return model.OrderReport{}, fmt.Errorf("order %q: %w", normalize.ID(id), model.ErrNotFound)
	}
	s.countReport("order")
	return s.engine.BuildOrderReport(o, l.Purchases), nil
}

func (s *ledgerService) MonthlyReport(ctx context.Context, year, month int) (model.MonthlyReport, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	year, month, err = resolvePeriod(year, month, l.Now)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	s.countReport("monthly")
	return s.engine.BuildMonthly(l.Orders, l.Purchases, year, month), nil
}

func (s *ledgerService) YearTrend(ctx context.Context, year int) ([]model.PeriodTotals, error) {
	l, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = l.Now.Year()
	}
	s.countReport("trend")
	return s.engine.BuildMonthlyTrend(l.Orders, l.Purchases, year), nil
}
