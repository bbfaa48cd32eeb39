package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ecommerce-platform/orders/internal/messaging"
)

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishOrderModified emits one change event, keyed by order id so changes
// to the same order stay in partition order.
func (p *Producer) PublishOrderModified(ctx context.Context, orderID string, detail messaging.OrderModified) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	env := messaging.Envelope{
		ID:         uuid.NewString(),
		Source:     messaging.SourceOrders,
		DetailType: messaging.DetailTypeOrderModified,
		Resources:  []string{orderID},
		Detail:     raw,
		Time:       time.Now().UTC(),
	}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
