package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/clearmart/oms/order/internal/dal/postgres"
	"github.com/clearmart/oms/order/internal/dal/rabbitmq"
	auditrepo "github.com/clearmart/oms/order/internal/dal/repositories/audit"
	outboxrepo "github.com/clearmart/oms/order/internal/dal/repositories/outbox/postgres"
	"github.com/clearmart/oms/order/internal/jaeger"
	"github.com/clearmart/oms/order/internal/service/services/notifier"
	"github.com/clearmart/oms/order/internal/service/services/ordersvc"
	httptransport "github.com/clearmart/oms/order/internal/transport/http"
	outboxworker "github.com/clearmart/oms/order/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	shutdownTracer func(ctx context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	shutdownTracer := jaeger.MustNewTracerProvider()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	exchange := viper.GetString("rabbitmq.notifications.exchange")
	if err := rabbitClient.DeclareTopicExchange(exchange); err != nil {
		panic("failed to declare notifications exchange: " + err.Error())
	}

	auditQueue := viper.GetString("rabbitmq.audit.queue")
	auditRepo := auditrepo.NewAuditRabbitMQRepository(rabbitClient, auditQueue)

	dispatcher := notifier.NewDispatcher(exchange)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithDispatcher(dispatcher),
		ordersvc.WithAuditRepository(auditRepo),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	worker := outboxworker.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitClient,
	)

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		outboxWorker:   worker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		shutdownTracer: shutdownTracer,
	}
}

// Run starts the HTTP server and the outbox worker and blocks until an
// interrupt signal arrives or one of them fails.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Starting HTTP server")

		return a.transport.Run()
	})

	group.Go(func() error {
		a.outboxWorker.Start(groupCtx)

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return a.transport.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("Application error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.rabbitClient.Connection().Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
