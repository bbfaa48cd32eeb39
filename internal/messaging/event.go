// Package messaging defines the event envelope shared with the rest of the
// platform and the normalization of inbound domain events.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecommerce-platform/orders/internal/domain"
)

// DetailTypeOrderModified is the detail type of every event this service emits.
const DetailTypeOrderModified = "OrderModified"

// SourceOrders identifies this service as event source on outbound events.
const SourceOrders = "ecommerce.orders"

var (
	// ErrMalformedEvent marks envelopes that do not reference exactly one
	// order. Redelivery cannot fix these, callers drop them.
	ErrMalformedEvent = errors.New("malformed event envelope")
	// ErrInvalidPayload marks envelopes whose detail does not parse as an
	// order snapshot. Also non-retryable.
	ErrInvalidPayload = errors.New("invalid event payload")
)

// Envelope is the wire shape of events on the platform bus, inbound and
// outbound alike.
type Envelope struct {
	ID         string          `json:"id,omitempty"`
	Source     string          `json:"source"`
	DetailType string          `json:"detail-type"`
	Resources  []string        `json:"resources"`
	Detail     json.RawMessage `json:"detail"`
	Time       time.Time       `json:"time,omitempty"`
}

// InboundEvent is a normalized inbound domain event: the detail type, the
// single order it targets and the order snapshot carried in its detail.
type InboundEvent struct {
	DetailType string
	OrderID    string
	Snapshot   domain.Order
}

// OrderModified is the detail of the outbound change event: the names of the
// top-level fields that changed plus the full pre- and post-images.
type OrderModified struct {
	Changed []string     `json:"changed"`
	Old     domain.Order `json:"old"`
	New     domain.Order `json:"new"`
}

// Publisher emits outbound change events to the platform bus.
type Publisher interface {
	PublishOrderModified(ctx context.Context, orderID string, detail OrderModified) error
}

// Normalize validates the envelope and parses its detail. The envelope must
// name exactly one non-empty order id in resources and carry a recognizable
// detail type; the detail must decode as an order snapshot. Extra fields in
// the detail are tolerated, other subsystems may enrich their snapshots.
func Normalize(env Envelope) (*InboundEvent, error) {
	if env.DetailType == "" {
		return nil, fmt.Errorf("%w: missing detail-type", ErrMalformedEvent)
	}
	if len(env.Resources) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one resource, got %d", ErrMalformedEvent, len(env.Resources))
	}
	orderID := env.Resources[0]
	if orderID == "" {
		return nil, fmt.Errorf("%w: empty order id in resources", ErrMalformedEvent)
	}

	var snapshot domain.Order
	if err := json.Unmarshal(env.Detail, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return &InboundEvent{
		DetailType: env.DetailType,
		OrderID:    orderID,
		Snapshot:   snapshot,
	}, nil
}
