package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sethvargo/go-retry"

	"github.com/ecommerce-platform/orders/internal/logger"
	"github.com/ecommerce-platform/orders/internal/messaging"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// EventHandler processes one normalized-envelope message.
type EventHandler interface {
	OnEvent(ctx context.Context, env messaging.Envelope) error
}

// StartConsumer reads inbound domain events and feeds them to the service.
//
// Commit policy follows the error class: malformed envelopes and payloads are
// committed and skipped (redelivery cannot fix them), transient failures are
// retried in place with backoff. The next message is never fetched while one
// is still failing: committing a later offset would mark the failed message
// consumed and lose the event.
func StartConsumer(ctx context.Context, svc EventHandler, cfg ConsumerConfig) *kafka.Reader {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				time.Sleep(backoff)
				continue
			}

			if !processMessage(ctx, svc, m.Value) {
				// shutdown mid-retry, leave the offset uncommitted
				return
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("kafka commit failed", "err", err)
			}
		}
	}()
	return r
}

// processMessage handles one raw message, retrying transient failures in
// place with capped exponential backoff until the event goes through or turns
// out to be droppable. It reports whether the message's offset may be
// committed; false only when the context was cancelled while retrying.
func processMessage(ctx context.Context, svc EventHandler, value []byte) bool {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		logger.Warn("kafka invalid json, skip and commit", "err", err)
		return true
	}

	b := retry.WithCappedDuration(5*time.Second, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := svc.OnEvent(ctx, env)
		if err != nil && !dropOnError(err) {
			logger.Warn("event processing failed, will retry", "detail_type", env.DetailType, "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		logger.Warn("dropping bad event", "detail_type", env.DetailType, "err", err)
	}
	return true
}

func dropOnError(err error) bool {
	return errors.Is(err, messaging.ErrMalformedEvent) ||
		errors.Is(err, messaging.ErrInvalidPayload)
}
