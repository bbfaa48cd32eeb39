package noop

import (
	"context"

	"github.com/ecommerce-platform/orders/internal/messaging"
)

// Publisher is a no-op messaging.Publisher used when Kafka is not configured.
type Publisher struct{}

func (Publisher) PublishOrderModified(_ context.Context, _ string, _ messaging.OrderModified) error {
	return nil
}
