package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/principal"
	"github.com/clearmart/oms/order/internal/service/services/ordersvc"
	cancelorder "github.com/clearmart/oms/order/internal/transport/http/v1/cancel_order"
	createorder "github.com/clearmart/oms/order/internal/transport/http/v1/create_order"
	listorders "github.com/clearmart/oms/order/internal/transport/http/v1/list_orders"
	updatepaymentstatus "github.com/clearmart/oms/order/internal/transport/http/v1/update_payment_status"
	updatestatus "github.com/clearmart/oms/order/internal/transport/http/v1/update_status"
	"github.com/clearmart/oms/order/pkg/http/middleware/identity"
	"github.com/clearmart/oms/order/pkg/http/middleware/trace"
	"github.com/clearmart/oms/order/pkg/logger"
)

type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (*order.Order, error)
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, target order.Status, actor principal.Principal, opts ordersvc.StatusUpdateOptions) (*order.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID int64, target order.PaymentStatus, actor principal.Principal) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID int64, reason string, actor principal.Principal) (*order.Order, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops the server without dropping in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Post("/orders/{id}/status", h.updateStatus)
		r.Post("/orders/{id}/payment-status", h.updatePaymentStatus)
		r.Post("/orders/{id}/cancel", h.cancelOrder)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	updatepaymentstatus.UpdatePaymentStatus(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(identity.NewIdentityMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
