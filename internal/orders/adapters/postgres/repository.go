package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// Repository persists order aggregates across the orders and
// order_items tables. Writes run in a single transaction; the item set
// is synced by delete-and-reinsert, which keeps insertion order via an
// explicit position column.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Add(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO orders (id, order_number, invoice_email, invoice_address, credit_card, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		order.ID(),
		order.Number().String(),
		order.InvoiceEmail(),
		order.InvoiceAddress().String(),
		order.CreditCard().Value(),
		order.Status(),
		order.Notes(),
		order.CreatedAt(),
		order.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertItems(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add order: %w", err)
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE orders
		SET invoice_email = $1, invoice_address = $2, credit_card = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := tx.Exec(ctx, query,
		order.InvoiceEmail(),
		order.InvoiceAddress().String(),
		order.CreditCard().Value(),
		order.Status(),
		order.Notes(),
		order.UpdatedAt(),
		order.ID(),
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID()); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}

	if err := insertItems(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update order: %w", err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, order *domain.Order) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, order.ID())
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByOrderNumber(ctx context.Context, number string) (*domain.Order, error) {
	return r.getOne(ctx, `WHERE order_number = $1`, number)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, invoice_email, invoice_address, credit_card, status, notes, created_at, updated_at
		FROM orders
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var records []orderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		items, err := r.loadItems(ctx, record.id)
		if err != nil {
			return nil, err
		}
		order, err := record.reconstitute(items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *Repository) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order exists: %w", err)
	}
	return exists, nil
}

func (r *Repository) getOne(ctx context.Context, where string, arg any) (*domain.Order, error) {
	query := `
		SELECT id, order_number, invoice_email, invoice_address, credit_card, status, notes, created_at, updated_at
		FROM orders
	` + where

	record, err := scanOrder(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, record.id)
	if err != nil {
		return nil, err
	}

	return record.reconstitute(items)
}

func (r *Repository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT product_id, product_name, product_amount, product_price::text
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			productID, productName, price string
			amount                        int
		)
		if err := rows.Scan(&productID, &productName, &amount, &price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		productPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse item price: %w", err)
		}

		item, err := domain.NewOrderItem(productID, productName, amount, productPrice)
		if err != nil {
			return nil, fmt.Errorf("rebuild order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	query := `
		INSERT INTO order_items (order_id, position, product_id, product_name, product_amount, product_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for position, item := range order.Items() {
		_, err := tx.Exec(ctx, query,
			order.ID(),
			position,
			item.ProductID(),
			item.ProductName(),
			item.ProductAmount(),
			item.ProductPrice().String(),
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

type orderRecord struct {
	id         string
	number     string
	email      string
	address    string
	creditCard string
	status     string
	notes      string
	createdAt  time.Time
	updatedAt  *time.Time
}

func scanOrder(row pgx.Row) (orderRecord, error) {
	var record orderRecord
	err := row.Scan(
		&record.id,
		&record.number,
		&record.email,
		&record.address,
		&record.creditCard,
		&record.status,
		&record.notes,
		&record.createdAt,
		&record.updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orderRecord{}, err
		}
		return orderRecord{}, fmt.Errorf("scan order: %w", err)
	}
	return record, nil
}

func (rec orderRecord) reconstitute(items []domain.OrderItem) (*domain.Order, error) {
	number, err := domain.NewOrderNumber(rec.number)
	if err != nil {
		return nil, fmt.Errorf("rebuild order %s number: %w", rec.id, err)
	}
	address, err := domain.NewInvoiceAddress(rec.address)
	if err != nil {
		return nil, fmt.Errorf("rebuild order %s address: %w", rec.id, err)
	}

	return domain.Reconstitute(
		rec.id,
		number,
		rec.email,
		address,
		domain.CreditCardNumberFromStored(rec.creditCard),
		items,
		domain.OrderStatus(rec.status),
		rec.notes,
		rec.createdAt,
		rec.updatedAt,
	), nil
}
