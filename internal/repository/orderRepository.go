package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecommerce-platform/orders/internal/domain"
)

// ErrOrderNotFound is returned when no order exists for the requested id.
// Events may outrun order creation, so callers treat this as retryable.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepo interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	PutOrder(ctx context.Context, order *domain.Order) error
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM orders WHERE order_id = $1`,
		orderID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get order %s: %w", orderID, ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	var o domain.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return nil, fmt.Errorf("get order %s: decode payload: %w", orderID, err)
	}
	return &o, nil
}

// PutOrder writes the full order record in a single upsert, so readers never
// observe a partially updated order.
func (r *OrderRepository) PutOrder(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("put order %s: encode payload: %w", o.OrderID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO orders (order_id, status, payload, modified_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (order_id)
		 DO UPDATE SET status = EXCLUDED.status,
		               payload = EXCLUDED.payload,
		               modified_at = now()`,
		o.OrderID, o.Status, payload,
	)
	if err != nil {
		return fmt.Errorf("put order %s: %w", o.OrderID, err)
	}
	return nil
}
