package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecommerce-platform/orders/internal/domain"
)

// ErrCacheMiss is returned when no cached record exists for the order.
var ErrCacheMiss = errors.New("order not in cache")

// OrderCache is a Redis-backed read cache for order records. Mutations go to
// the store first; the cache entry is invalidated afterwards.
type OrderCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) (*OrderCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &OrderCache{client: client, ttl: ttl}, nil
}

func orderKey(orderID string) string {
	return "order:" + orderID
}

func (c *OrderCache) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	val, err := c.client.Get(ctx, orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var o domain.Order
	if err := json.Unmarshal(val, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *OrderCache) Set(ctx context.Context, o *domain.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, orderKey(o.OrderID), data, c.ttl).Err()
}

func (c *OrderCache) Delete(ctx context.Context, orderID string) error {
	return c.client.Del(ctx, orderKey(orderID)).Err()
}

func (c *OrderCache) Close() error {
	return c.client.Close()
}
