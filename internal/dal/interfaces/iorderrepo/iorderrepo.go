package iorderrepo

import (
	"context"
	"errors"

	"github.com/clearmart/oms/order/internal/service/models/order"
)

// ErrOrderNumberConflict is returned by Insert when the generated order
// number collides with an existing one. Callers regenerate and retry.
var ErrOrderNumberConflict = errors.New("order number already exists")

// IOrderRepository is the storage contract for orders.
type IOrderRepository interface {
	// Insert persists a new order and returns it with the generated id.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// GetByID loads a single order without items.
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// GetByIDForUpdate loads a single order holding a row lock for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Update persists the mutable fields of an existing order.
	Update(ctx context.Context, o *order.Order) error

	// Query retrieves orders based on filter criteria.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
