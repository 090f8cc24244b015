package cancelorder

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
	CancelOrder(ctx context.Context, orderID int64, reason string, actor principal.Principal) (*order.Order, error)
}

// Request is the cancellation payload.
type Request struct {
	Reason string `json:"reason"`
}

// CancelOrder handles the order cancellation request.
func CancelOrder(w http.ResponseWriter, r *http.Request, svc service) {
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
		slog.Error("Error decoding request body for cancel order", "error", err)

		return
	}

	cancelled, err := svc.CancelOrder(r.Context(), orderID, req.Reason, actor)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(converters.OrderToDTO(*cancelled)); err != nil {
		slog.Error("Error writing response for cancel order", "error", err)
	}
}
