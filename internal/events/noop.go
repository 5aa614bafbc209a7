package events

import (
	"context"
	"log/slog"
)

// NoopPublisher logs order lifecycle events without sending them
// anywhere. The event surface exists for a future broker integration;
// nothing downstream consumes these today.
type NoopPublisher struct{}

// NewNoopPublisher returns a new no-op event publisher.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) PublishOrderCreated(_ context.Context, orderNumber string) error {
	slog.Debug("event::order_created", "order_number", orderNumber)
	return nil
}

func (n *NoopPublisher) PublishOrderStatusChanged(_ context.Context, orderNumber string, status string) error {
	slog.Debug("event::order_status_changed", "order_number", orderNumber, "status", status)
	return nil
}

func (n *NoopPublisher) PublishOrderDeleted(_ context.Context, orderNumber string) error {
	slog.Debug("event::order_deleted", "order_number", orderNumber)
	return nil
}
