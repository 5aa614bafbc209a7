package ports

import "context"

// EventBus defines the contract for publishing order lifecycle events.
// No broker is wired today; the only implementation logs the events.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderNumber string) error
	PublishOrderStatusChanged(ctx context.Context, orderNumber string, status string) error
	PublishOrderDeleted(ctx context.Context, orderNumber string) error
}
