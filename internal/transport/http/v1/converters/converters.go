package converters

import (
	"time"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
)

// AddressDTO mirrors order.Address on the wire.
type AddressDTO struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// OrderItemDTO is the wire representation of a line item.
type OrderItemDTO struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	ProductName     string `json:"productName"`
	ProductSKU      string `json:"productSku"`
	Quantity        int    `json:"quantity"`
	UnitPriceCents  int64  `json:"unitPriceCents"`
	TotalPriceCents int64  `json:"totalPriceCents"`
	PriceCurrency   string `json:"priceCurrency"`
}

// OrderDTO is the wire representation of an order.
type OrderDTO struct {
	ID             int64          `json:"id"`
	OrderNumber    string         `json:"orderNumber"`
	CustomerID     int64          `json:"customerId"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"paymentStatus"`
	SubtotalCents  int64          `json:"subtotalCents"`
	ShippingCents  int64          `json:"shippingCents"`
	TaxCents       int64          `json:"taxCents"`
	DiscountCents  int64          `json:"discountCents"`
	TotalCents     int64          `json:"totalCents"`
	Currency       string         `json:"currency"`
	ShippingAddr   AddressDTO     `json:"shippingAddress"`
	BillingAddr    AddressDTO     `json:"billingAddress"`
	Notes          string         `json:"notes,omitempty"`
	CancelReason   string         `json:"cancelReason,omitempty"`
	TrackingNumber string         `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	ShippedAt      *time.Time     `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time     `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time     `json:"cancelledAt,omitempty"`
	OrderItems     []OrderItemDTO `json:"orderItems"`
}

// AddressFromDTO converts a wire address to the model.
func AddressFromDTO(dto AddressDTO) order.Address {
	return order.Address{
		Name:       dto.Name,
		Line1:      dto.Line1,
		Line2:      dto.Line2,
		City:       dto.City,
		Region:     dto.Region,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
		Phone:      dto.Phone,
	}
}

// AddressToDTO converts a model address to the wire shape.
func AddressToDTO(a order.Address) AddressDTO {
	return AddressDTO{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// OrderItemToDTO converts a model line item to the wire shape.
func OrderItemToDTO(item orderitem.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:              item.ID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		ProductSKU:      item.ProductSKU,
		Quantity:        item.Quantity,
		UnitPriceCents:  item.UnitPriceCents,
		TotalPriceCents: item.TotalPriceCents,
		PriceCurrency:   item.PriceCurrency.String(),
	}
}

// OrderToDTO converts a model order to the wire shape.
func OrderToDTO(o order.Order) OrderDTO {
	items := make([]OrderItemDTO, len(o.OrderItems))
	for i, item := range o.OrderItems {
		items[i] = OrderItemToDTO(item)
	}

	return OrderDTO{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		Status:         o.Status.String(),
		PaymentStatus:  o.PaymentStatus.String(),
		SubtotalCents:  o.SubtotalCents,
		ShippingCents:  o.ShippingCents,
		TaxCents:       o.TaxCents,
		DiscountCents:  o.DiscountCents,
		TotalCents:     o.TotalCents,
		Currency:       o.Currency.String(),
		ShippingAddr:   AddressToDTO(o.ShippingAddress),
		BillingAddr:    AddressToDTO(o.BillingAddress),
		Notes:          o.Notes,
		CancelReason:   o.CancelReason,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		OrderItems:     items,
	}
}

// OrdersToDTO converts a slice of model orders to the wire shape.
func OrdersToDTO(orders []order.Order) []OrderDTO {
	out := make([]OrderDTO, len(orders))
	for i, o := range orders {
		out[i] = OrderToDTO(o)
	}

	return out
}
