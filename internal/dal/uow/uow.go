package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/clearmart/oms/order/internal/dal/interfaces/iproductrepo"
	"github.com/clearmart/oms/order/internal/dal/postgres"
	orderrepo "github.com/clearmart/oms/order/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/clearmart/oms/order/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/clearmart/oms/order/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/clearmart/oms/order/internal/dal/repositories/product/postgres"
)

// unitOfWork scopes the repositories to a single database transaction. Until
// Begin is called, repositories run directly on the pool; after Begin, every
// repository shares one pgx.Tx, so an order row, its items, the stock
// decrements and the outbox rows commit or roll back together.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work over the Postgres client.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after Commit is a no-op, which
// lets callers defer it unconditionally.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}
