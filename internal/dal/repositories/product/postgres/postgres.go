package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/clearmart/oms/order/internal/dal/interfaces/iproductrepo"
	"github.com/clearmart/oms/order/internal/dal/postgres"
	"github.com/clearmart/oms/order/internal/service/errs"
	"github.com/clearmart/oms/order/internal/service/models/currency"
	"github.com/clearmart/oms/order/internal/service/models/product"
)

// ProductDal represents the stock-bearing slice of a catalog product.
type ProductDal struct {
	Id            int64     `db:"id"`
	Name          string    `db:"name"`
	SKU           string    `db:"sku"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	Stock         int       `db:"stock"`
	MinStock      int       `db:"min_stock"`
	Status        string    `db:"status"`
	IsActive      bool      `db:"is_active"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		SKU:           p.SKU,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Status:        product.Status(p.Status),
		IsActive:      p.IsActive,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// PostgresProductRepository is the products repository. The stock mutations
// are single-statement conditional updates: the row lock taken by UPDATE
// makes the check-then-decrement atomic against concurrent reservations.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

var _ iproductrepo.IProductRepository = (*PostgresProductRepository)(nil)

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID loads a single product.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := r.sb.Select(
		"id",
		"name",
		"sku",
		"price_cents",
		"price_currency",
		"stock",
		"min_stock",
		"status",
		"is_active",
		"updated_at",
	).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.SKU,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.Stock,
		&dal.MinStock,
		&dal.Status,
		&dal.IsActive,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewProductNotFound(id)
		}

		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}

	return dal.ToModel()
}

// ReserveStock conditionally decrements stock in one statement. No row is
// updated when the product is missing, not purchasable or short on stock;
// a follow-up read distinguishes those cases for the error.
func (r *PostgresProductRepository) ReserveStock(ctx context.Context, id int64, quantity int) (product.StockChange, error) {
	const query = `
		UPDATE products
		SET stock = stock - $2,
		    status = CASE
		        WHEN stock - $2 <= 0 AND status = 'ACTIVE' THEN 'OUT_OF_STOCK'
		        ELSE status
		    END,
		    updated_at = now()
		WHERE id = $1
		  AND stock >= $2
		  AND is_active
		  AND status <> 'DISCONTINUED'
		RETURNING stock + $2, stock, min_stock, status
	`

	var change product.StockChange
	change.ProductID = id

	err := r.conn.QueryRow(ctx, query, id, quantity).Scan(
		&change.Before,
		&change.After,
		&change.MinStock,
		&change.Status,
	)
	if err == nil {
		return change, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return product.StockChange{}, fmt.Errorf("failed to reserve stock for product %d: %w", id, err)
	}

	// Nothing matched: find out why.
	p, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return product.StockChange{}, getErr
	}
	if !p.Purchasable() {
		return product.StockChange{}, errs.NewProductNotFound(id)
	}

	return product.StockChange{}, errs.NewInsufficientStock(id, quantity, p.Stock)
}

// RestoreStock increments stock in one statement, reactivating an
// OUT_OF_STOCK product without touching the DISCONTINUED override.
func (r *PostgresProductRepository) RestoreStock(ctx context.Context, id int64, quantity int) (product.StockChange, error) {
	const query = `
		UPDATE products
		SET stock = stock + $2,
		    status = CASE
		        WHEN stock + $2 > 0 AND status = 'OUT_OF_STOCK' THEN 'ACTIVE'
		        ELSE status
		    END,
		    updated_at = now()
		WHERE id = $1
		RETURNING stock - $2, stock, min_stock, status
	`

	var change product.StockChange
	change.ProductID = id

	err := r.conn.QueryRow(ctx, query, id, quantity).Scan(
		&change.Before,
		&change.After,
		&change.MinStock,
		&change.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.StockChange{}, errs.NewProductNotFound(id)
		}

		return product.StockChange{}, fmt.Errorf("failed to restore stock for product %d: %w", id, err)
	}

	return change, nil
}
