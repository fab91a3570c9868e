package port

import "geo-bidder/internal/core/domain"

// SpendPublisher receives an event for every successful budget reservation.
// Publish is called on the request path and must not block.
type SpendPublisher interface {
	Publish(ev domain.SpendEvent)
}

// NopSpendPublisher discards every event.
type NopSpendPublisher struct{}

// Publish discards the event.
func (NopSpendPublisher) Publish(domain.SpendEvent) {}
