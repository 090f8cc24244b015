package product

import (
	"time"

	"github.com/clearmart/oms/order/internal/service/models/currency"
)

// Status is the availability state of a catalog product. ACTIVE and
// OUT_OF_STOCK are derived from the stock level; DISCONTINUED is a sticky
// manual override that derivation never touches.
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

// DeriveStatus recomputes the status from the stock level, preserving the
// DISCONTINUED override.
func DeriveStatus(current Status, stock int) Status {
	if current == StatusDiscontinued {
		return StatusDiscontinued
	}
	if stock <= 0 {
		return StatusOutOfStock
	}

	return StatusActive
}

// Product is the slice of a catalog record the order engine reads: pricing
// for item snapshots and the stock fields mutated through the stock ledger.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Stock         int               `json:"stock"`
	MinStock      int               `json:"minStock"`
	Status        Status            `json:"status"`
	IsActive      bool              `json:"isActive"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Purchasable reports whether the product may appear on a new order.
func (p *Product) Purchasable() bool {
	return p.IsActive && p.Status != StatusDiscontinued
}

// StockChange is the observable effect of a single reserve or restore,
// returned by the storage layer so callers can detect threshold crossings
// without a second read.
type StockChange struct {
	ProductID int64
	Before    int
	After     int
	MinStock  int
	Status    Status
}

// CrossedLowStock reports whether this change moved the stock from above the
// low-stock threshold to at-or-below it while leaving some stock. Used to
// emit at most one LOW_STOCK signal per downward crossing.
func (c StockChange) CrossedLowStock() bool {
	return c.Before > c.MinStock && c.After <= c.MinStock && c.After > 0
}
