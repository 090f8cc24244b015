package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderrepo"
	"github.com/clearmart/oms/order/internal/dal/postgres"
	"github.com/clearmart/oms/order/internal/service/errs"
	"github.com/clearmart/oms/order/internal/service/models/currency"
	"github.com/clearmart/oms/order/internal/service/models/order"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

const orderNumberConstraint = "orders_order_number_key"

var orderColumns = []string{
	"id",
	"order_number",
	"customer_id",
	"status",
	"payment_status",
	"subtotal_cents",
	"shipping_cents",
	"tax_cents",
	"discount_cents",
	"total_cents",
	"currency",
	"shipping_address",
	"billing_address",
	"notes",
	"cancel_reason",
	"tracking_number",
	"created_at",
	"updated_at",
	"shipped_at",
	"delivered_at",
	"cancelled_at",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id              int64      `db:"id"`
	OrderNumber     string     `db:"order_number"`
	CustomerId      int64      `db:"customer_id"`
	Status          string     `db:"status"`
	PaymentStatus   string     `db:"payment_status"`
	SubtotalCents   int64      `db:"subtotal_cents"`
	ShippingCents   int64      `db:"shipping_cents"`
	TaxCents        int64      `db:"tax_cents"`
	DiscountCents   int64      `db:"discount_cents"`
	TotalCents      int64      `db:"total_cents"`
	Currency        string     `db:"currency"`
	ShippingAddress []byte     `db:"shipping_address"`
	BillingAddress  []byte     `db:"billing_address"`
	Notes           string     `db:"notes"`
	CancelReason    string     `db:"cancel_reason"`
	TrackingNumber  string     `db:"tracking_number"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	ShippedAt       *time.Time `db:"shipped_at"`
	DeliveredAt     *time.Time `db:"delivered_at"`
	CancelledAt     *time.Time `db:"cancelled_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(o.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var shipping, billing order.Address
	if err := json.Unmarshal(o.ShippingAddress, &shipping); err != nil {
		return nil, fmt.Errorf("failed to decode shipping address: %w", err)
	}
	if err := json.Unmarshal(o.BillingAddress, &billing); err != nil {
		return nil, fmt.Errorf("failed to decode billing address: %w", err)
	}

	return &order.Order{
		ID:              o.Id,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerId,
		Status:          status,
		PaymentStatus:   paymentStatus,
		SubtotalCents:   o.SubtotalCents,
		ShippingCents:   o.ShippingCents,
		TaxCents:        o.TaxCents,
		DiscountCents:   o.DiscountCents,
		TotalCents:      o.TotalCents,
		Currency:        cur,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Notes:           o.Notes,
		CancelReason:    o.CancelReason,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		OrderItems:      []orderitem.OrderItem{},
	}, nil
}

// PostgresOrderRepository is the orders repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

var _ iorderrepo.IOrderRepository = (*PostgresOrderRepository)(nil)

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists a new order and returns it with the generated id. A
// collision on the order number unique constraint is reported as
// iorderrepo.ErrOrderNumberConflict so the caller can regenerate.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}
	billing, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode billing address: %w", err)
	}

	query, args, err := r.sb.Insert("orders").
		Columns(
			"order_number",
			"customer_id",
			"status",
			"payment_status",
			"subtotal_cents",
			"shipping_cents",
			"tax_cents",
			"discount_cents",
			"total_cents",
			"currency",
			"shipping_address",
			"billing_address",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			o.OrderNumber,
			o.CustomerID,
			o.Status.String(),
			o.PaymentStatus.String(),
			o.SubtotalCents,
			o.ShippingCents,
			o.TaxCents,
			o.DiscountCents,
			o.TotalCents,
			o.Currency.String(),
			shipping,
			billing,
			o.Notes,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == orderNumberConstraint {
			return nil, iorderrepo.ErrOrderNumberConflict
		}

		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return &o, nil
}

// GetByID loads a single order without items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate loads a single order holding a row lock until the
// surrounding transaction ends. Concurrent status transitions on the same
// order serialize on this lock.
func (r *PostgresOrderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.getByID(ctx, id, true)
}

func (r *PostgresOrderRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.OrderNumber,
		&dal.CustomerId,
		&dal.Status,
		&dal.PaymentStatus,
		&dal.SubtotalCents,
		&dal.ShippingCents,
		&dal.TaxCents,
		&dal.DiscountCents,
		&dal.TotalCents,
		&dal.Currency,
		&dal.ShippingAddress,
		&dal.BillingAddress,
		&dal.Notes,
		&dal.CancelReason,
		&dal.TrackingNumber,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.ShippedAt,
		&dal.DeliveredAt,
		&dal.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewOrderNotFound(id)
		}

		return nil, fmt.Errorf("failed to query order %d: %w", id, err)
	}

	return dal.ToModel()
}

// Update persists the mutable fields of an existing order. The order number
// and creation data are immutable and never written here.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	query, args, err := r.sb.Update("orders").
		Set("status", o.Status.String()).
		Set("payment_status", o.PaymentStatus.String()).
		Set("cancel_reason", o.CancelReason).
		Set("tracking_number", o.TrackingNumber).
		Set("updated_at", o.UpdatedAt).
		Set("shipped_at", o.ShippedAt).
		Set("delivered_at", o.DeliveredAt).
		Set("cancelled_at", o.CancelledAt).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewOrderNotFound(o.ID)
	}

	return nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("id DESC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderNumber,
			&dal.CustomerId,
			&dal.Status,
			&dal.PaymentStatus,
			&dal.SubtotalCents,
			&dal.ShippingCents,
			&dal.TaxCents,
			&dal.DiscountCents,
			&dal.TotalCents,
			&dal.Currency,
			&dal.ShippingAddress,
			&dal.BillingAddress,
			&dal.Notes,
			&dal.CancelReason,
			&dal.TrackingNumber,
			&dal.CreatedAt,
			&dal.UpdatedAt,
			&dal.ShippedAt,
			&dal.DeliveredAt,
			&dal.CancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
