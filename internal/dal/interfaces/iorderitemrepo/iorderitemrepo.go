package iorderitemrepo

import (
	"context"

	"github.com/clearmart/oms/order/internal/service/models/orderitem"
)

// IOrderItemRepository is the storage contract for order line items.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error)
}
