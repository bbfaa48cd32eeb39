package domain

import "errors"

// Inbound detail types recognized by the transition engine.
const (
	EventPackageCreated    = "PackageCreated"
	EventPackagingFailed   = "PackagingFailed"
	EventDeliveryCompleted = "DeliveryCompleted"
	EventDeliveryFailed    = "DeliveryFailed"
)

// ErrUnsupportedEvent marks detail types the engine does not react to.
// Callers drop such events without touching stored state.
var ErrUnsupportedEvent = errors.New("unsupported detail type")

// Transition computes the next order state from the stored order and an
// inbound event. It is pure: the stored order is never mutated, and the same
// inputs always produce the same output, so redelivered events recompute an
// identical record.
//
// The event snapshot is authoritative only for what the event is about: a
// PackageCreated snapshot narrows products to the set the warehouse actually
// packaged, everything else on the stored order passes through unchanged.
func Transition(order Order, detailType string, snapshot Order) (Order, error) {
	next := order

	switch detailType {
	case EventPackageCreated:
		next.Status = StatusPackaged
		next.Products = intersectProducts(order.Products, snapshot.Products)
	case EventPackagingFailed:
		next.Status = StatusPackagingFailed
	case EventDeliveryCompleted:
		next.Status = StatusFulfilled
	case EventDeliveryFailed:
		next.Status = StatusDeliveryFailed
	default:
		return order, ErrUnsupportedEvent
	}

	return next, nil
}

// intersectProducts keeps the stored entries whose productId the event
// confirms. Stored metadata (price, name) and stored ordering win over
// whatever the event carried.
func intersectProducts(stored, confirmed []Product) []Product {
	ids := make(map[string]struct{}, len(confirmed))
	for _, p := range confirmed {
		ids[p.ProductID] = struct{}{}
	}

	kept := make([]Product, 0, len(stored))
	for _, p := range stored {
		if _, ok := ids[p.ProductID]; ok {
			kept = append(kept, p)
		}
	}
	return kept
}
