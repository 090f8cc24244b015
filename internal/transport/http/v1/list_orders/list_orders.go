package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/transport/http/httperr"
	"github.com/clearmart/oms/order/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// ListOrders handles the order listing request. Filters come from query
// parameters: ids, customer_ids, statuses, limit, offset.
func ListOrders(w http.ResponseWriter, r *http.Request, svc service) {
	filter := &order.QueryOrdersModel{}

	var err error
	if filter.Ids, err = parseInt64List(r.URL.Query().Get("ids")); err != nil {
		httperr.BadRequest(w, "invalid ids filter")

		return
	}
	if filter.CustomerIds, err = parseInt64List(r.URL.Query().Get("customer_ids")); err != nil {
		httperr.BadRequest(w, "invalid customer_ids filter")

		return
	}
	for _, raw := range splitList(r.URL.Query().Get("statuses")) {
		status, err := order.ParseStatus(raw)
		if err != nil {
			httperr.Write(w, err)

			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := svc.GetOrders(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"orders": converters.OrdersToDTO(orders),
	}); err != nil {
		slog.Error("Error writing response for list orders", "error", err)
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ",")
}

func parseInt64List(raw string) ([]int64, error) {
	var out []int64
	for _, part := range splitList(raw) {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
