package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/services/ordersvc"
	"github.com/clearmart/oms/order/internal/transport/http/httperr"
	"github.com/clearmart/oms/order/internal/transport/http/v1/converters"
	"github.com/clearmart/oms/order/pkg/http/middleware/identity"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (*order.Order, error)
}

// Request is the create order payload.
type Request struct {
	Items []struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	} `json:"items"`
	ShippingAddress converters.AddressDTO  `json:"shippingAddress"`
	BillingAddress  *converters.AddressDTO `json:"billingAddress,omitempty"`
	ShippingCents   int64                  `json:"shippingCents"`
	TaxCents        int64                  `json:"taxCents"`
	DiscountCents   int64                  `json:"discountCents"`
	Notes           string                 `json:"notes,omitempty"`
}

// CreateOrder handles the order creation request.
func CreateOrder(w http.ResponseWriter, r *http.Request, svc service) {
	principal, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)

		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "failed to decode request body")
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	svcReq := ordersvc.CreateOrderRequest{
		CustomerID:      principal.ID,
		ShippingAddress: converters.AddressFromDTO(req.ShippingAddress),
		ShippingCents:   req.ShippingCents,
		TaxCents:        req.TaxCents,
		DiscountCents:   req.DiscountCents,
		Notes:           req.Notes,
	}
	if req.BillingAddress != nil {
		svcReq.BillingAddress = converters.AddressFromDTO(*req.BillingAddress)
	}
	for _, item := range req.Items {
		svcReq.Items = append(svcReq.Items, ordersvc.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := svc.CreateOrder(r.Context(), svcReq)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(converters.OrderToDTO(*created)); err != nil {
		slog.Error("Error writing response for create order", "error", err)
	}
}
