package orderitem

import (
	"time"

	"github.com/clearmart/oms/order/internal/service/models/currency"
)

// OrderItem is a line item of an order: a denormalized snapshot of the
// product at order time. Items are created with the order and never
// individually mutated afterwards.
type OrderItem struct {
	ID              int64             `json:"id"`
	OrderID         int64             `json:"orderId"`
	ProductID       int64             `json:"productId"`
	ProductName     string            `json:"productName"`
	ProductSKU      string            `json:"productSku"`
	Quantity        int               `json:"quantity"`
	UnitPriceCents  int64             `json:"unitPriceCents"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	PriceCurrency   currency.Currency `json:"priceCurrency"`
	CreatedAt       time.Time         `json:"createdAt"`
}
