package updatepaymentstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/principal"
	"github.com/clearmart/oms/order/internal/transport/http/httperr"
	"github.com/clearmart/oms/order/internal/transport/http/v1/converters"
	"github.com/clearmart/oms/order/pkg/http/middleware/identity"
)

// service is an interface for the service layer.
type service interface {
	UpdatePaymentStatus(ctx context.Context, orderID int64, target order.PaymentStatus, actor principal.Principal) (*order.Order, error)
}

// Request is the payment status payload.
type Request struct {
	PaymentStatus string `json:"paymentStatus"`
}

// UpdatePaymentStatus handles the payment status request.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)

		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.BadRequest(w, "invalid order id")

		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(w, "failed to decode request body")
		slog.Error("Error decoding request body for update payment status", "error", err)

		return
	}

	target, err := order.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	updated, err := svc.UpdatePaymentStatus(r.Context(), orderID, target, actor)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToDTO(*updated)); err != nil {
		slog.Error("Error writing response for update payment status", "error", err)
	}
}
