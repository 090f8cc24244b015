package ordersvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iproductrepo"
	"github.com/clearmart/oms/order/internal/service/errs"
	"github.com/clearmart/oms/order/internal/service/models/auditlog"
	"github.com/clearmart/oms/order/internal/service/models/currency"
	"github.com/clearmart/oms/order/internal/service/models/notification"
	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
	"github.com/clearmart/oms/order/internal/service/models/outbox"
	"github.com/clearmart/oms/order/internal/service/models/principal"
	"github.com/clearmart/oms/order/internal/service/models/product"
	"github.com/clearmart/oms/order/internal/service/ordernumber"
	"github.com/clearmart/oms/order/internal/service/services/notifier"
)

// memStore is shared in-memory state behind the fake unit of work.
type memStore struct {
	mu         sync.Mutex
	products   map[int64]*product.Product
	orders     map[int64]*order.Order
	items      []orderitem.OrderItem
	outbox     []outbox.Message
	nextOrder  int64
	nextItem   int64
	numbersSet map[string]bool
}

func newMemStore(products ...*product.Product) *memStore {
	s := &memStore{
		products:   make(map[int64]*product.Product),
		orders:     make(map[int64]*order.Order),
		numbersSet: make(map[string]bool),
		nextOrder:  1,
		nextItem:   1,
	}
	for _, p := range products {
		s.products[p.ID] = p
	}

	return s
}

func (s *memStore) clone() *memStore {
	cp := &memStore{
		products:   make(map[int64]*product.Product, len(s.products)),
		orders:     make(map[int64]*order.Order, len(s.orders)),
		items:      append([]orderitem.OrderItem(nil), s.items...),
		outbox:     append([]outbox.Message(nil), s.outbox...),
		nextOrder:  s.nextOrder,
		nextItem:   s.nextItem,
		numbersSet: make(map[string]bool, len(s.numbersSet)),
	}
	for id, p := range s.products {
		v := *p
		cp.products[id] = &v
	}
	for id, o := range s.orders {
		v := *o
		cp.orders[id] = &v
	}
	for n := range s.numbersSet {
		cp.numbersSet[n] = true
	}

	return cp
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.orders = from.orders
	s.items = from.items
	s.outbox = from.outbox
	s.nextOrder = from.nextOrder
	s.nextItem = from.nextItem
	s.numbersSet = from.numbersSet
}

// memUOW snapshots the store at Begin and restores it on Rollback, standing
// in for transactional storage.
type memUOW struct {
	store     *memStore
	backup    *memStore
	committed bool
}

func (u *memUOW) Begin(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.backup = u.store.clone()

	return nil
}

func (u *memUOW) Commit(context.Context) error {
	u.committed = true
	return nil
}

func (u *memUOW) Rollback(context.Context) error {
	if u.committed || u.backup == nil {
		return nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.restore(u.backup)

	return nil
}

func (u *memUOW) OrderRepository() iorderrepo.IOrderRepository { return &memOrderRepo{u.store} }

func (u *memUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return memItemRepo{u.store}
}

func (u *memUOW) ProductRepository() iproductrepo.IProductRepository {
	return memProductRepo{u.store}
}

func (u *memUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return memOutboxRepo{u.store}
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.numbersSet[o.OrderNumber] {
		return nil, iorderrepo.ErrOrderNumberConflict
	}
	o.ID = r.s.nextOrder
	r.s.nextOrder++
	r.s.numbersSet[o.OrderNumber] = true
	stored := o
	stored.OrderItems = nil
	r.s.orders[o.ID] = &stored

	return &o, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, errs.NewOrderNotFound(id)
	}
	cp := *o

	return &cp, nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[o.ID]; !ok {
		return errs.NewOrderNotFound(o.ID)
	}
	stored := *o
	stored.OrderItems = nil
	r.s.orders[o.ID] = &stored

	return nil
}

func (r *memOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []order.Order
	for _, o := range r.s.orders {
		if len(filter.Ids) > 0 && !containsInt64(filter.Ids, o.ID) {
			continue
		}
		if len(filter.CustomerIds) > 0 && !containsInt64(filter.CustomerIds, o.CustomerID) {
			continue
		}
		out = append(out, *o)
	}

	return out, nil
}

func containsInt64(xs []int64, x int64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}

	return false
}

type memItemRepo struct{ s *memStore }

func (r memItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		item.ID = r.s.nextItem
		r.s.nextItem++
		r.s.items = append(r.s.items, item)
		out[i] = item
	}

	return out, nil
}

func (r memItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []orderitem.OrderItem
	for _, item := range r.s.items {
		if len(filter.OrderIds) > 0 && !containsInt64(filter.OrderIds, item.OrderID) {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, errs.NewProductNotFound(id)
	}
	cp := *p

	return &cp, nil
}

func (r memProductRepo) ReserveStock(_ context.Context, id int64, quantity int) (product.StockChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || !p.Purchasable() {
		return product.StockChange{}, errs.NewProductNotFound(id)
	}
	if p.Stock < quantity {
		return product.StockChange{}, errs.NewInsufficientStock(id, quantity, p.Stock)
	}

	before := p.Stock
	p.Stock -= quantity
	p.Status = product.DeriveStatus(p.Status, p.Stock)

	return product.StockChange{ProductID: id, Before: before, After: p.Stock, MinStock: p.MinStock, Status: p.Status}, nil
}

func (r memProductRepo) RestoreStock(_ context.Context, id int64, quantity int) (product.StockChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return product.StockChange{}, errs.NewProductNotFound(id)
	}

	before := p.Stock
	p.Stock += quantity
	p.Status = product.DeriveStatus(p.Status, p.Stock)

	return product.StockChange{ProductID: id, Before: before, After: p.Stock, MinStock: p.MinStock, Status: p.Status}, nil
}

type memOutboxRepo struct{ s *memStore }

func (r memOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.outbox = append(r.s.outbox, msg)

	return nil
}

func (r memOutboxRepo) GetPendingMessages(context.Context, int) ([]outbox.Message, error) {
	return nil, nil
}

func (r memOutboxRepo) Delete(context.Context, int64) error { return nil }

func (r memOutboxRepo) UpdateRetry(context.Context, int64, int, string, time.Time) error {
	return nil
}

type failingAudit struct{ records []auditlog.Record }

func (a *failingAudit) Record(_ context.Context, rec auditlog.Record) error {
	a.records = append(a.records, rec)
	return errors.New("audit sink unavailable")
}

func activeProduct(id int64, name string, priceCents int64, stockLevel, minStock int) *product.Product {
	return &product.Product{
		ID:            id,
		Name:          name,
		SKU:           "SKU-" + name,
		PriceCents:    priceCents,
		PriceCurrency: currency.CurrencyUSD,
		Stock:         stockLevel,
		MinStock:      minStock,
		Status:        product.StatusActive,
		IsActive:      true,
	}
}

func validAddress() order.Address {
	return order.Address{
		Name:       "Dana Whitfield",
		Line1:      "12 Harbor Way",
		City:       "Portsmouth",
		Region:     "NH",
		PostalCode: "03801",
		Country:    "US",
	}
}

func newService(store *memStore, opts ...option) *OrderService {
	base := []option{
		WithUnitOfWorkFactory(func() unitOfWork { return &memUOW{store: store} }),
		WithDispatcher(notifier.NewDispatcher("oms.notifications")),
	}

	return MustNewOrderService(append(base, opts...)...)
}

// eventsByType decodes the outbox and groups distinct events (by id) per
// type. One logical event fans out to one row per recipient routing key.
func eventsByType(t *testing.T, store *memStore) map[notification.EventType]map[string]int {
	t.Helper()

	out := make(map[notification.EventType]map[string]int)
	for _, msg := range store.outbox {
		var e notification.Event
		require.NoError(t, json.Unmarshal(msg.Payload, &e))
		if out[e.Type] == nil {
			out[e.Type] = make(map[string]int)
		}
		out[e.Type][e.ID]++
	}

	return out
}

func staff() principal.Principal {
	return principal.Principal{ID: 900, Role: principal.RoleManager}
}

func TestCreateOrderScenario(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "walnut desk organizer", 1000, 10, 1))
	svc := newService(store)

	ord, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 2}},
		ShippingAddress: validAddress(),
		ShippingCents:   500,
		TaxCents:        300,
	})
	require.NoError(t, err)

	require.Equal(t, int64(2000), ord.SubtotalCents)
	require.Equal(t, int64(2800), ord.TotalCents)
	require.Equal(t, order.StatusPending, ord.Status)
	require.Equal(t, order.PaymentPending, ord.PaymentStatus)
	require.NotEmpty(t, ord.OrderNumber)
	require.Len(t, ord.OrderItems, 1)
	require.Equal(t, "walnut desk organizer", ord.OrderItems[0].ProductName)
	require.Equal(t, int64(1000), ord.OrderItems[0].UnitPriceCents)
	require.Equal(t, int64(2000), ord.OrderItems[0].TotalPriceCents)

	require.Equal(t, 8, store.products[7].Stock)

	events := eventsByType(t, store)
	require.Len(t, events[notification.EventOrderCreated], 1, "exactly one ORDER_CREATED event")
	for _, recipients := range events[notification.EventOrderCreated] {
		require.Equal(t, 3, recipients, "purchaser plus both staff roles")
	}
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	t.Parallel()

	store := newMemStore(
		activeProduct(1, "plenty", 500, 5, 0),
		activeProduct(2, "scarce", 700, 1, 0),
	)
	svc := newService(store)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID: 42,
		Items: []CreateOrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 2},
		},
		ShippingAddress: validAddress(),
	})
	require.Error(t, err)
	require.Equal(t, errs.CodeInsufficientStock, errs.CodeOf(err))
	require.Contains(t, err.Error(), "product 2")

	require.Equal(t, 5, store.products[1].Stock, "prior reservation must be rolled back")
	require.Equal(t, 1, store.products[2].Stock)
	require.Empty(t, store.orders, "no order may be persisted")
	require.Empty(t, store.outbox, "no notification may be enqueued")
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 10, 0))
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      42,
		ShippingAddress: validAddress(),
	})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))

	_, err = svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 0}},
		ShippingAddress: validAddress(),
	})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))

	bad := validAddress()
	bad.City = ""
	_, err = svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: bad,
	})
	require.Equal(t, errs.CodeInvalidAddress, errs.CodeOf(err))

	_, err = svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
		DiscountCents:   100000,
	})
	require.Equal(t, errs.CodeDiscountExceedsTotal, errs.CodeOf(err))

	require.Equal(t, 10, store.products[7].Stock, "validation failures must not move stock")
}

func TestCreateOrderBillingDefaultsToShipping(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 10, 0))
	svc := newService(store)

	ord, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)
	require.Equal(t, ord.ShippingAddress, ord.BillingAddress)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newService(store)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 99, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.Equal(t, errs.CodeProductNotFound, errs.CodeOf(err))
}

func TestCreateOrderNumberCollisionRetries(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 10, 0))

	// Fixed entropy yields "0000000000" then "1111111111" as suffixes.
	entropy := bytes.NewReader(append(make([]byte, 10), bytes.Repeat([]byte{1}, 10)...))
	gen := ordernumber.NewWithEntropy(entropy)
	svc := newService(store, WithNumberGenerator(gen))

	now := time.Now()
	first, err := ordernumber.NewWithEntropy(bytes.NewReader(make([]byte, 10))).Next(now)
	require.NoError(t, err)
	store.numbersSet[first] = true

	ord, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)
	require.NotEqual(t, first, ord.OrderNumber)
	require.Contains(t, ord.OrderNumber, "1111111111")
}

func seedOrder(store *memStore, status order.Status, items ...orderitem.OrderItem) *order.Order {
	o := &order.Order{
		ID:            store.nextOrder,
		OrderNumber:   "ORD-20260831-SEEDED0001",
		CustomerID:    42,
		Status:        status,
		PaymentStatus: order.PaymentPending,
		Currency:      currency.CurrencyUSD,
	}
	store.nextOrder++
	store.orders[o.ID] = o
	store.numbersSet[o.OrderNumber] = true
	for i := range items {
		items[i].OrderID = o.ID
		items[i].ID = store.nextItem
		store.nextItem++
		store.items = append(store.items, items[i])
	}

	return o
}

func TestUpdateStatusEmitsExactlyOneEvent(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 8, 0))
	seeded := seedOrder(store, order.StatusPending, orderitem.OrderItem{ProductID: 7, Quantity: 2})
	svc := newService(store)

	ord, err := svc.UpdateStatus(context.Background(), seeded.ID, order.StatusProcessing, staff(), StatusUpdateOptions{})
	require.NoError(t, err)
	require.Equal(t, order.StatusProcessing, ord.Status)

	events := eventsByType(t, store)
	require.Len(t, events[notification.EventOrderStatusChanged], 1, "exactly one ORDER_STATUS_CHANGED event")
	require.Equal(t, 8, store.products[7].Stock, "no stock effect outside cancel/return")
}

func TestUpdateStatusIllegalFromDelivered(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 8, 0))
	seeded := seedOrder(store, order.StatusDelivered, orderitem.OrderItem{ProductID: 7, Quantity: 2})
	svc := newService(store)

	_, err := svc.UpdateStatus(context.Background(), seeded.ID, order.StatusCancelled, staff(), StatusUpdateOptions{CancelReason: "nope"})
	require.Error(t, err)
	require.Equal(t, errs.CodeIllegalTransition, errs.CodeOf(err))
	require.Contains(t, err.Error(), "DELIVERED")
	require.Contains(t, err.Error(), "CANCELLED")

	require.Equal(t, 8, store.products[7].Stock)
	require.Empty(t, store.outbox)
	require.Equal(t, order.StatusDelivered, store.orders[seeded.ID].Status)
}

func TestReturnRestoresStock(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 8, 0))
	seeded := seedOrder(store, order.StatusDelivered, orderitem.OrderItem{ProductID: 7, Quantity: 2})
	svc := newService(store)

	ord, err := svc.UpdateStatus(context.Background(), seeded.ID, order.StatusReturned, staff(), StatusUpdateOptions{})
	require.NoError(t, err)
	require.Equal(t, order.StatusReturned, ord.Status)
	require.Equal(t, 10, store.products[7].Stock)

	events := eventsByType(t, store)
	require.Len(t, events[notification.EventOrderStatusChanged], 1)
}

func TestCancelRestoresStockExactlyOnce(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 8, 0))
	seeded := seedOrder(store, order.StatusPending, orderitem.OrderItem{ProductID: 7, Quantity: 2})
	svc := newService(store)
	ctx := context.Background()

	ord, err := svc.CancelOrder(ctx, seeded.ID, "customer request", staff())
	require.NoError(t, err)
	require.Equal(t, order.StatusCancelled, ord.Status)
	require.Equal(t, "customer request", ord.CancelReason)
	require.NotNil(t, ord.CancelledAt)
	require.Equal(t, 10, store.products[7].Stock)

	outboxBefore := len(store.outbox)

	// Retrying a cancellation already applied is a no-op success.
	again, err := svc.CancelOrder(ctx, seeded.ID, "customer request", staff())
	require.NoError(t, err)
	require.Equal(t, order.StatusCancelled, again.Status)
	require.Equal(t, 10, store.products[7].Stock, "stock must be restored exactly once")
	require.Len(t, store.outbox, outboxBefore, "no duplicate notification on retry")
}

func TestCancelRequiresReason(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seeded := seedOrder(store, order.StatusPending)
	svc := newService(store)

	_, err := svc.CancelOrder(context.Background(), seeded.ID, "", staff())
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	t.Parallel()

	svc := newService(newMemStore())

	_, err := svc.UpdateStatus(context.Background(), 404, order.StatusProcessing, staff(), StatusUpdateOptions{})
	require.Equal(t, errs.CodeOrderNotFound, errs.CodeOf(err))
}

func TestUpdateStatusRecordsShippingFields(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seeded := seedOrder(store, order.StatusProcessing)
	svc := newService(store)

	ord, err := svc.UpdateStatus(context.Background(), seeded.ID, order.StatusShipped, staff(), StatusUpdateOptions{TrackingNumber: "TRK-9"})
	require.NoError(t, err)
	require.Equal(t, "TRK-9", ord.TrackingNumber)
	require.NotNil(t, ord.ShippedAt)
	require.Equal(t, "TRK-9", store.orders[seeded.ID].TrackingNumber)
}

func TestUpdatePaymentStatus(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seeded := seedOrder(store, order.StatusPending)
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.UpdatePaymentStatus(ctx, seeded.ID, order.PaymentRefunded, staff())
	require.Equal(t, errs.CodeIllegalTransition, errs.CodeOf(err))

	ord, err := svc.UpdatePaymentStatus(ctx, seeded.ID, order.PaymentPaid, staff())
	require.NoError(t, err)
	require.Equal(t, order.PaymentPaid, ord.PaymentStatus)

	ord, err = svc.UpdatePaymentStatus(ctx, seeded.ID, order.PaymentRefunded, staff())
	require.NoError(t, err)
	require.Equal(t, order.PaymentRefunded, ord.PaymentStatus)

	require.Empty(t, store.outbox, "payment changes emit no notifications")
}

func TestLowStockEmittedOnCrossing(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 6, 5))
	svc := newService(store)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 2}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	events := eventsByType(t, store)
	require.Len(t, events[notification.EventLowStock], 1)
	for _, recipients := range events[notification.EventLowStock] {
		require.Equal(t, 2, recipients, "low stock goes to staff roles only")
	}
}

func TestAuditFailureDoesNotFailOperation(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 10, 0))
	audit := &failingAudit{}
	svc := newService(store, WithAuditRepository(audit))

	ord, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)
	require.NotNil(t, ord)
	require.Len(t, audit.records, 1)
	require.Equal(t, "order.create", audit.records[0].Action)
}

func TestGetOrders(t *testing.T) {
	t.Parallel()

	store := newMemStore(activeProduct(7, "thing", 1000, 10, 0))
	svc := newService(store)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      42,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:      43,
		Items:           []CreateOrderItem{{ProductID: 7, Quantity: 1}},
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(ctx, &order.QueryOrdersModel{CustomerIds: []int64{42}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, first.ID, orders[0].ID)
	require.Len(t, orders[0].OrderItems, 1)

	orders, err = svc.GetOrders(ctx, &order.QueryOrdersModel{CustomerIds: []int64{999}})
	require.NoError(t, err)
	require.Empty(t, orders)
}
