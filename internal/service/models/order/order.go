package order

import (
	"time"

	"github.com/clearmart/oms/order/internal/service/models/currency"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
)

// Order represents a single customer purchase.
type Order struct {
	ID              int64                 `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	CustomerID      int64                 `json:"customerId"`
	Status          Status                `json:"status"`
	PaymentStatus   PaymentStatus         `json:"paymentStatus"`
	SubtotalCents   int64                 `json:"subtotalCents"`
	ShippingCents   int64                 `json:"shippingCents"`
	TaxCents        int64                 `json:"taxCents"`
	DiscountCents   int64                 `json:"discountCents"`
	TotalCents      int64                 `json:"totalCents"`
	Currency        currency.Currency     `json:"currency"`
	ShippingAddress Address               `json:"shippingAddress"`
	BillingAddress  Address               `json:"billingAddress"`
	Notes           string                `json:"notes,omitempty"`
	CancelReason    string                `json:"cancelReason,omitempty"`
	TrackingNumber  string                `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	ShippedAt       *time.Time            `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time            `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time            `json:"cancelledAt,omitempty"`
	OrderItems      []orderitem.OrderItem `json:"orderItems"`
}
