package commands

import (
	"context"
	"fmt"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
)

// UpdateOrderStatusCommand moves an order along its status machine.
type UpdateOrderStatusCommand struct {
	OrderNumber string
	Status      string
}

type UpdateOrderStatusHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewUpdateOrderStatusHandler(repo ports.OrderRepository, events ports.EventBus) *UpdateOrderStatusHandler {
	return &UpdateOrderStatusHandler{repo: repo, events: events}
}

func (h *UpdateOrderStatusHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	status, err := domain.ParseOrderStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	order, err := h.repo.GetByOrderNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderStatusChanged(ctx, order.Number().String(), string(order.Status())); err != nil {
		return order, fmt.Errorf("status saved but failed to publish event: %w", err)
	}

	return order, nil
}
