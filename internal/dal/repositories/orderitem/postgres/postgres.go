package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/clearmart/oms/order/internal/dal/postgres"
	"github.com/clearmart/oms/order/internal/service/models/currency"
	"github.com/clearmart/oms/order/internal/service/models/orderitem"
)

var itemColumns = []string{
	"id",
	"order_id",
	"product_id",
	"product_name",
	"product_sku",
	"quantity",
	"unit_price_cents",
	"total_price_cents",
	"price_currency",
	"created_at",
}

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id              int64     `db:"id"`
	OrderId         int64     `db:"order_id"`
	ProductId       int64     `db:"product_id"`
	ProductName     string    `db:"product_name"`
	ProductSKU      string    `db:"product_sku"`
	Quantity        int       `db:"quantity"`
	UnitPriceCents  int64     `db:"unit_price_cents"`
	TotalPriceCents int64     `db:"total_price_cents"`
	PriceCurrency   string    `db:"price_currency"`
	CreatedAt       time.Time `db:"created_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(oi.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ID:              oi.Id,
		OrderID:         oi.OrderId,
		ProductID:       oi.ProductId,
		ProductName:     oi.ProductName,
		ProductSKU:      oi.ProductSKU,
		Quantity:        oi.Quantity,
		UnitPriceCents:  oi.UnitPriceCents,
		TotalPriceCents: oi.TotalPriceCents,
		PriceCurrency:   cur,
		CreatedAt:       oi.CreatedAt,
	}, nil
}

// PostgresOrderItemRepository is the order items repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

var _ iorderitemrepo.IOrderItemRepository = (*PostgresOrderItemRepository)(nil)

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts the items of one order and returns them with the
// generated ids, in insertion order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.Insert("order_items").
		Columns(
			"order_id",
			"product_id",
			"product_name",
			"product_sku",
			"quantity",
			"unit_price_cents",
			"total_price_cents",
			"price_currency",
			"created_at",
		).
		Suffix("RETURNING id")

	for _, item := range items {
		builder = builder.Values(
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.ProductSKU,
			item.Quantity,
			item.UnitPriceCents,
			item.TotalPriceCents,
			item.PriceCurrency.String(),
			item.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, len(items))
	copy(result, items)

	i := 0
	for rows.Next() {
		if err := rows.Scan(&result[i].ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		i++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	builder := r.sb.Select(itemColumns...).
		From("order_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.ProductSKU,
			&dal.Quantity,
			&dal.UnitPriceCents,
			&dal.TotalPriceCents,
			&dal.PriceCurrency,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
