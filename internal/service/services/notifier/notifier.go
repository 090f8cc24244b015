// Package notifier converts lifecycle events into outbox rows scoped to the
// interested recipients. Emission happens at exactly one point per logical
// event: the engine calls Publish once inside the committing transaction, so
// a status change can never fan out into duplicate notifications from
// competing hooks.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearmart/oms/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/clearmart/oms/order/internal/service/models/notification"
	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/outbox"
	"github.com/clearmart/oms/order/internal/service/models/product"
)

const defaultMaxRetries = 10

// Dispatcher writes notification events to the outbox for asynchronous
// delivery through the message broker.
type Dispatcher struct {
	exchange   string
	maxRetries int
	now        func() time.Time
}

// option configures the Dispatcher.
type option func(*Dispatcher)

// NewDispatcher creates a Dispatcher publishing to the given exchange.
func NewDispatcher(exchange string, opts ...option) *Dispatcher {
	d := &Dispatcher{
		exchange:   exchange,
		maxRetries: defaultMaxRetries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// WithClock overrides the dispatcher clock.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// Publish writes one outbox row per recipient routing key within the
// caller's transaction. Delivery to disconnected recipients is the broker's
// concern; a committed business change is never failed by delivery.
func (d *Dispatcher) Publish(
	ctx context.Context,
	ob ioutboxrepo.IOutboxRepository,
	event notification.Event,
	scope notification.Scope,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	now := d.now()
	for _, key := range RoutingKeys(scope) {
		msg := outbox.Message{
			ExchangeName: d.exchange,
			RoutingKey:   key,
			Payload:      payload,
			ContentType:  "application/json",
			MaxRetries:   d.maxRetries,
			CreatedAt:    now,
			UpdatedAt:    now,
			NextRetryAt:  now,
		}
		if err := ob.Insert(ctx, msg); err != nil {
			return fmt.Errorf("failed to enqueue notification %s for %s: %w", event.Type, key, err)
		}
	}

	return nil
}

// RoutingKeys expands a recipient scope into broker routing keys:
// user.<id> per user and role.<role> per role class.
func RoutingKeys(scope notification.Scope) []string {
	keys := make([]string, 0, len(scope.UserIDs)+len(scope.Roles))
	for _, id := range scope.UserIDs {
		keys = append(keys, fmt.Sprintf("user.%d", id))
	}
	for _, role := range scope.Roles {
		keys = append(keys, "role."+strings.ToLower(string(role)))
	}

	return keys
}

// OrderCreated builds the event announcing a newly placed order.
func (d *Dispatcher) OrderCreated(o *order.Order) notification.Event {
	return notification.Event{
		ID:        uuid.NewString(),
		Type:      notification.EventOrderCreated,
		Title:     "Order placed",
		Message:   fmt.Sprintf("Order %s has been placed", o.OrderNumber),
		Timestamp: d.now(),
		OrderID:   o.ID,
		Data: map[string]any{
			"orderNumber": o.OrderNumber,
			"totalCents":  o.TotalCents,
			"currency":    o.Currency.String(),
			"status":      o.Status.String(),
		},
	}
}

// StatusChanged builds the event announcing a completed status transition.
func (d *Dispatcher) StatusChanged(o *order.Order, from order.Status) notification.Event {
	return notification.Event{
		ID:        uuid.NewString(),
		Type:      notification.EventOrderStatusChanged,
		Title:     "Order status changed",
		Message:   fmt.Sprintf("Order %s moved from %s to %s", o.OrderNumber, from, o.Status),
		Timestamp: d.now(),
		OrderID:   o.ID,
		Data: map[string]any{
			"orderNumber": o.OrderNumber,
			"from":        from.String(),
			"to":          o.Status.String(),
		},
	}
}

// LowStock builds the advisory event for a stock level crossing its
// threshold.
func (d *Dispatcher) LowStock(change product.StockChange) notification.Event {
	return notification.Event{
		ID:        uuid.NewString(),
		Type:      notification.EventLowStock,
		Title:     "Low stock",
		Message:   fmt.Sprintf("Product %d is down to %d units (threshold %d)", change.ProductID, change.After, change.MinStock),
		Timestamp: d.now(),
		Data: map[string]any{
			"productId": change.ProductID,
			"stock":     change.After,
			"minStock":  change.MinStock,
		},
	}
}
