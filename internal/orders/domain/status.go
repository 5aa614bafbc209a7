package domain

import "fmt"

// OrderStatus captures the lifecycle of an order in the system.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// allowedTransitions lists, per current status, the statuses an order
// may move to. Pending is never a valid target.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusProcessing, StatusShipped},
	StatusShipped:    {StatusShipped, StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseOrderStatus converts a raw string into a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	switch status {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return status, nil
	default:
		return "", NewInvalidArgument(fmt.Sprintf("unknown order status %q", raw))
	}
}

// CanTransitionTo reports whether the status machine permits moving
// from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leads out of s.
func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}
