package iproductrepo

import (
	"context"

	"github.com/clearmart/oms/order/internal/service/models/product"
)

// IProductRepository is the storage contract for the stock-bearing slice of
// the catalog. ReserveStock and RestoreStock must be atomic
// check-and-mutate operations on a single product row.
type IProductRepository interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)

	// ReserveStock decrements stock by quantity if the product is
	// purchasable and has at least that much stock, recomputing the derived
	// status. Returns the observed change, or an error with no mutation.
	ReserveStock(ctx context.Context, id int64, quantity int) (product.StockChange, error)

	// RestoreStock increments stock by quantity, recomputing the derived
	// status without overriding DISCONTINUED.
	RestoreStock(ctx context.Context, id int64, quantity int) (product.StockChange, error)
}
