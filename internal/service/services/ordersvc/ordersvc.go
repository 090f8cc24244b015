package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iauditrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iproductrepo"
	"github.com/clearmart/oms/order/internal/dal/postgres"
	"github.com/clearmart/oms/order/internal/dal/uow"
	"github.com/clearmart/oms/order/internal/service/errs"
	"github.com/clearmart/oms/order/internal/service/models/auditlog"
	"github.com/clearmart/oms/order/internal/service/models/notification"
	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
	"github.com/clearmart/oms/order/internal/service/models/principal"
	"github.com/clearmart/oms/order/internal/service/models/product"
	"github.com/clearmart/oms/order/internal/service/ordernumber"
	"github.com/clearmart/oms/order/internal/service/pricing"
	"github.com/clearmart/oms/order/internal/service/services/notifier"
	"github.com/clearmart/oms/order/internal/service/stock"
)

// orderNumberAttempts bounds retry-on-collision for order number generation.
const orderNumberAttempts = 3

// OrderService is the order lifecycle engine. It owns the transaction
// boundary of every order mutation: stock movements, order rows and
// notification outbox rows commit or roll back as one unit.
type OrderService struct {
	pgClient   *postgres.Client
	newUOW     func() unitOfWork
	dispatcher *notifier.Dispatcher
	numbers    *ordernumber.Generator
	audit      iauditrepo.IAuditRepository
	now        func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		numbers: ordernumber.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}
	if s.dispatcher == nil {
		panic("ordersvc: no notification dispatcher configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWorkFactory overrides the unit of work source. Tests use this to
// substitute in-memory repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithDispatcher sets the notification dispatcher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDispatcher(d *notifier.Dispatcher) option {
	return func(s *OrderService) {
		s.dispatcher = d
	}
}

// WithAuditRepository sets the best-effort audit sink.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(audit iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.audit = audit
	}
}

// WithNumberGenerator overrides the order number generator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNumberGenerator(g *ordernumber.Generator) option {
	return func(s *OrderService) {
		s.numbers = g
	}
}

// WithClock overrides the service clock.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrderItem is one requested line of a new order.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
}

// CreateOrderRequest carries everything needed to place an order. Shipping,
// tax and discount amounts are computed upstream and passed in as plain
// numbers.
type CreateOrderRequest struct {
	CustomerID      int64
	Items           []CreateOrderItem
	ShippingAddress order.Address
	BillingAddress  order.Address
	ShippingCents   int64
	TaxCents        int64
	DiscountCents   int64
	Notes           string
}

// CreateOrder places a new order: reserves stock per item in ascending
// product id order, snapshots product data into line items, computes totals,
// stamps an order number and persists everything together with the
// ORDER_CREATED notification. Any failure rolls the whole thing back.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, errs.New(errs.CodeValidation, "order must contain at least one item")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errs.New(errs.CodeValidation, "item %d: quantity must be positive", i)
		}
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, fmt.Errorf("shipping address: %w", err)
	}
	billing := req.BillingAddress
	if billing.IsZero() {
		billing = req.ShippingAddress
	} else if err := billing.Validate(); err != nil {
		return nil, fmt.Errorf("billing address: %w", err)
	}

	now := s.now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, work)

	ledger := stock.NewLedger(work.ProductRepository())

	items, lowStock, err := s.reserveAndSnapshot(ctx, work, ledger, req.Items, now)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{UnitPriceCents: item.UnitPriceCents, Quantity: item.Quantity}
	}
	totals, err := pricing.Compute(lines, req.ShippingCents, req.TaxCents, req.DiscountCents)
	if err != nil {
		return nil, err
	}

	ord := order.Order{
		CustomerID:      req.CustomerID,
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentPending,
		SubtotalCents:   totals.SubtotalCents,
		ShippingCents:   totals.ShippingCents,
		TaxCents:        totals.TaxCents,
		DiscountCents:   totals.DiscountCents,
		TotalCents:      totals.TotalCents,
		Currency:        items[0].PriceCurrency,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	inserted, err := s.insertWithFreshNumber(ctx, work, ord, now)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}
	inserted.OrderItems = insertedItems

	event := s.dispatcher.OrderCreated(inserted)
	if err := s.dispatcher.Publish(ctx, work.OutboxRepository(), event, notification.UserAndStaff(inserted.CustomerID)); err != nil {
		return nil, err
	}
	for _, change := range lowStock {
		if err := s.dispatcher.Publish(ctx, work.OutboxRepository(), s.dispatcher.LowStock(change), notification.Staff()); err != nil {
			return nil, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	s.recordAudit(auditlog.Record{
		ActorID:      req.CustomerID,
		ActorRole:    string(principal.RoleCustomer),
		Action:       "order.create",
		ResourceType: "order",
		ResourceID:   inserted.ID,
		NewValue:     inserted.Status.String(),
		At:           now,
	})

	return inserted, nil
}

// reserveAndSnapshot reserves stock for every requested item in ascending
// product id order and builds the denormalized line item snapshots.
func (s *OrderService) reserveAndSnapshot(
	ctx context.Context,
	work unitOfWork,
	ledger *stock.Ledger,
	requested []CreateOrderItem,
	now time.Time,
) ([]orderitem.OrderItem, []product.StockChange, error) {
	ordered := make([]CreateOrderItem, len(requested))
	copy(ordered, requested)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ProductID < ordered[j].ProductID
	})

	items := make([]orderitem.OrderItem, 0, len(ordered))
	var lowStock []product.StockChange

	for _, req := range ordered {
		change, err := ledger.Reserve(ctx, req.ProductID, req.Quantity)
		if err != nil {
			return nil, nil, err
		}
		if change.CrossedLowStock() {
			lowStock = append(lowStock, change)
		}

		p, err := work.ProductRepository().GetByID(ctx, req.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load product %d: %w", req.ProductID, err)
		}

		items = append(items, orderitem.OrderItem{
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductSKU:      p.SKU,
			Quantity:        req.Quantity,
			UnitPriceCents:  p.PriceCents,
			TotalPriceCents: pricing.LineTotalCents(p.PriceCents, req.Quantity),
			PriceCurrency:   p.PriceCurrency,
			CreatedAt:       now,
		})
	}

	return items, lowStock, nil
}

// insertWithFreshNumber stamps an order number and inserts the order,
// regenerating on an order number collision.
func (s *OrderService) insertWithFreshNumber(
	ctx context.Context,
	work unitOfWork,
	ord order.Order,
	now time.Time,
) (*order.Order, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := s.numbers.Next(now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order number: %w", err)
		}
		ord.OrderNumber = number

		inserted, err := work.OrderRepository().Insert(ctx, ord)
		if err == nil {
			return inserted, nil
		}
		if !errors.Is(err, iorderrepo.ErrOrderNumberConflict) {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}

		slog.Warn("Order number collision, regenerating", "order_number", number, "attempt", attempt+1)
	}

	return nil, fmt.Errorf("failed to insert order: gave up after %d order number collisions", orderNumberAttempts)
}

// StatusUpdateOptions carries the side fields a transition may record.
type StatusUpdateOptions struct {
	TrackingNumber string
	CancelReason   string
}

// UpdateStatus applies a validated status transition. The order row is
// locked for the duration of the transition, stock restoration for
// CANCELLED/RETURNED happens in the same transaction, and exactly one
// ORDER_STATUS_CHANGED notification is enqueued with the commit. Requesting
// the status the order is already in is a no-op success that emits nothing,
// which makes retries after a crash safe.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	orderID int64,
	target order.Status,
	actor principal.Principal,
	opts StatusUpdateOptions,
) (*order.Order, error) {
	now := s.now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, work)

	ord, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []int64{orderID}})
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	ord.OrderItems = items

	if ord.Status == target {
		return ord, nil
	}

	from := ord.Status
	if err := ord.ApplyTransition(target, now, order.TransitionOptions{
		TrackingNumber: opts.TrackingNumber,
		CancelReason:   opts.CancelReason,
	}); err != nil {
		return nil, err
	}

	if target.RestoresStock() {
		ledger := stock.NewLedger(work.ProductRepository())
		reservations := make([]stock.Reservation, len(ord.OrderItems))
		for i, item := range ord.OrderItems {
			reservations[i] = stock.Reservation{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		if _, err := ledger.RestoreAll(ctx, reservations); err != nil {
			return nil, err
		}
	}

	if err := work.OrderRepository().Update(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to persist status transition: %w", err)
	}

	event := s.dispatcher.StatusChanged(ord, from)
	if err := s.dispatcher.Publish(ctx, work.OutboxRepository(), event, notification.UserAndStaff(ord.CustomerID)); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status transition: %w", err)
	}

	s.recordAudit(auditlog.Record{
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       "order.update_status",
		ResourceType: "order",
		ResourceID:   ord.ID,
		OldValue:     from.String(),
		NewValue:     ord.Status.String(),
		At:           now,
	})

	return ord, nil
}

// UpdatePaymentStatus changes the payment flag independently of the order
// lifecycle. No stock effects, no notification.
func (s *OrderService) UpdatePaymentStatus(
	ctx context.Context,
	orderID int64,
	target order.PaymentStatus,
	actor principal.Principal,
) (*order.Order, error) {
	now := s.now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, work)

	ord, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if ord.PaymentStatus == target {
		return ord, nil
	}

	from := ord.PaymentStatus
	if !from.CanTransitionTo(target) {
		return nil, errs.NewIllegalTransition(from.String(), target.String())
	}

	ord.PaymentStatus = target
	ord.UpdatedAt = now

	if err := work.OrderRepository().Update(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to persist payment status: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment status: %w", err)
	}

	s.recordAudit(auditlog.Record{
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       "order.update_payment_status",
		ResourceType: "order",
		ResourceID:   ord.ID,
		OldValue:     from.String(),
		NewValue:     target.String(),
		At:           now,
	})

	return ord, nil
}

// CancelOrder is shorthand for a transition to CANCELLED with a mandatory
// reason.
func (s *OrderService) CancelOrder(
	ctx context.Context,
	orderID int64,
	reason string,
	actor principal.Principal,
) (*order.Order, error) {
	if reason == "" {
		return nil, errs.New(errs.CodeValidation, "cancellation requires a reason")
	}

	return s.UpdateStatus(ctx, orderID, order.StatusCancelled, actor, StatusUpdateOptions{CancelReason: reason})
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// rollback discards the unit of work. A no-op after a successful commit.
func (s *OrderService) rollback(ctx context.Context, work unitOfWork) {
	if err := work.Rollback(ctx); err != nil {
		slog.Error("Failed to roll back transaction", "error", err)
	}
}

// recordAudit sends a record to the audit sink. Best effort: failures are
// logged, never returned.
func (s *OrderService) recordAudit(rec auditlog.Record) {
	if s.audit == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.audit.Record(ctx, rec); err != nil {
		slog.Error("Failed to record audit entry", "action", rec.Action, "resource_id", rec.ResourceID, "error", err)
	}
}
