package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/principal"
	"github.com/clearmart/oms/order/internal/service/services/ordersvc"
	"github.com/clearmart/oms/order/internal/transport/http/httperr"
	"github.com/clearmart/oms/order/internal/transport/http/v1/converters"
	"github.com/clearmart/oms/order/pkg/http/middleware/identity"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, orderID int64, target order.Status, actor principal.Principal, opts ordersvc.StatusUpdateOptions) (*order.Order, error)
}

// Request is the status transition payload.
type Request struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	CancelReason   string `json:"cancelReason,omitempty"`
}

// UpdateStatus handles the status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, svc service) {
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
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	updated, err := svc.UpdateStatus(r.Context(), orderID, target, actor, ordersvc.StatusUpdateOptions{
		TrackingNumber: req.TrackingNumber,
		CancelReason:   req.CancelReason,
	})
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToDTO(*updated)); err != nil {
		slog.Error("Error writing response for update status", "error", err)
	}
}
