// Package stock is the single entry point for mutating product stock
// counters. All reservations and restorations go through a Ledger bound to
// the caller's unit of work; the engine never does a read-modify-write of
// stock on its own.
package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iproductrepo"
	"github.com/clearmart/oms/order/internal/service/errs"
	"github.com/clearmart/oms/order/internal/service/models/product"
)

// Reservation is one requested stock movement.
type Reservation struct {
	ProductID int64
	Quantity  int
}

// Ledger performs atomic stock adjustments through a product repository.
// The repository is expected to be transaction-scoped; partial effects are
// undone by the surrounding rollback.
type Ledger struct {
	products iproductrepo.IProductRepository
}

func NewLedger(products iproductrepo.IProductRepository) *Ledger {
	return &Ledger{products: products}
}

// Reserve decrements stock for a single product, failing closed when the
// product is missing, not purchasable, or short on stock.
func (l *Ledger) Reserve(ctx context.Context, productID int64, quantity int) (product.StockChange, error) {
	if quantity <= 0 {
		return product.StockChange{}, errs.New(errs.CodeValidation, "reserve quantity must be positive, got %d", quantity)
	}

	change, err := l.products.ReserveStock(ctx, productID, quantity)
	if err != nil {
		return product.StockChange{}, fmt.Errorf("failed to reserve %d of product %d: %w", quantity, productID, err)
	}

	return change, nil
}

// Restore adds stock back for a single product.
func (l *Ledger) Restore(ctx context.Context, productID int64, quantity int) (product.StockChange, error) {
	if quantity <= 0 {
		return product.StockChange{}, errs.New(errs.CodeValidation, "restore quantity must be positive, got %d", quantity)
	}

	change, err := l.products.RestoreStock(ctx, productID, quantity)
	if err != nil {
		return product.StockChange{}, fmt.Errorf("failed to restore %d of product %d: %w", quantity, productID, err)
	}

	return change, nil
}

// ReserveAll applies the reservations in ascending product id order so that
// concurrent multi-item orders acquire row locks in the same sequence. The
// first failure aborts; the caller's transaction rollback undoes any prior
// decrements.
func (l *Ledger) ReserveAll(ctx context.Context, reservations []Reservation) ([]product.StockChange, error) {
	ordered := sortedByProduct(reservations)

	changes := make([]product.StockChange, 0, len(ordered))
	for _, r := range ordered {
		change, err := l.Reserve(ctx, r.ProductID, r.Quantity)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	return changes, nil
}

// RestoreAll reverses the reservations of an order, in the same ascending
// product id order as ReserveAll.
func (l *Ledger) RestoreAll(ctx context.Context, reservations []Reservation) ([]product.StockChange, error) {
	ordered := sortedByProduct(reservations)

	changes := make([]product.StockChange, 0, len(ordered))
	for _, r := range ordered {
		change, err := l.Restore(ctx, r.ProductID, r.Quantity)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	return changes, nil
}

func sortedByProduct(reservations []Reservation) []Reservation {
	ordered := make([]Reservation, len(reservations))
	copy(ordered, reservations)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ProductID < ordered[j].ProductID
	})

	return ordered
}
