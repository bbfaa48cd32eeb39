package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce-platform/orders/internal/cache"
	"github.com/ecommerce-platform/orders/internal/domain"
	"github.com/ecommerce-platform/orders/internal/logger"
	"github.com/ecommerce-platform/orders/internal/messaging"
	"github.com/ecommerce-platform/orders/internal/repository"
)

// OrderCache is the read-cache surface the service needs. A nil cache
// disables caching.
type OrderCache interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Set(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, orderID string) error
}

// OrdersService reacts to warehouse and delivery events: it loads the stored
// order, runs the status transition, persists the result and publishes an
// OrderModified event describing the change.
type OrdersService struct {
	repo      repository.OrderRepo
	cache     OrderCache
	publisher messaging.Publisher
}

func NewOrdersService(repo repository.OrderRepo, c OrderCache, pub messaging.Publisher) *OrdersService {
	return &OrdersService{
		repo:      repo,
		cache:     c,
		publisher: pub,
	}
}

// OnEvent processes one inbound domain event end to end.
//
// Unsupported detail types and no-op redeliveries return nil with zero store
// and bus effects. Malformed envelopes and unparseable payloads return the
// messaging sentinels so the consumer can drop them; every other error is
// transient and the event should be redelivered. Reprocessing the same event
// recomputes an identical order, so redelivery is safe.
func (s *OrdersService) OnEvent(ctx context.Context, env messaging.Envelope) error {
	evt, err := messaging.Normalize(env)
	if err != nil {
		return err
	}

	stored, err := s.repo.GetOrder(ctx, evt.OrderID)
	if err != nil {
		return err
	}

	next, err := domain.Transition(*stored, evt.DetailType, evt.Snapshot)
	if errors.Is(err, domain.ErrUnsupportedEvent) {
		logger.Info("ignoring event", "detail_type", evt.DetailType, "order_id", evt.OrderID)
		return nil
	}
	if err != nil {
		return err
	}

	changed := domain.Diff(*stored, next)
	if len(changed) == 0 {
		logger.Info("event is a no-op, suppressing publish", "detail_type", evt.DetailType, "order_id", evt.OrderID)
		return nil
	}

	if err := s.repo.PutOrder(ctx, &next); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, evt.OrderID); err != nil {
			logger.Warn("cache invalidation failed", "order_id", evt.OrderID, "err", err)
		}
	}

	detail := messaging.OrderModified{Changed: changed, Old: *stored, New: next}
	if err := s.publisher.PublishOrderModified(ctx, evt.OrderID, detail); err != nil {
		return fmt.Errorf("publish order modified: %w", err)
	}

	logger.Info("order updated", "order_id", evt.OrderID, "status", next.Status, "changed", changed)
	return nil
}

// GetOrder serves reads, cache first.
func (s *OrdersService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if s.cache != nil {
		o, err := s.cache.Get(ctx, orderID)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("cache read failed", "order_id", orderID, "err", err)
		}
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, o); err != nil {
			logger.Warn("cache write failed", "order_id", orderID, "err", err)
		}
	}
	return o, nil
}
