package commands

import (
	"context"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
	"github.com/shopspring/decimal"
)

// AddItemCommand appends a line to a pending order.
type AddItemCommand struct {
	OrderNumber   string
	ProductID     string
	ProductName   string
	ProductAmount int
	ProductPrice  decimal.Decimal
}

// RemoveItemCommand drops a line from a pending order.
type RemoveItemCommand struct {
	OrderNumber string
	ProductID   string
}

// UpdateItemQuantityCommand replaces a line's quantity on a pending
// order.
type UpdateItemQuantityCommand struct {
	OrderNumber string
	ProductID   string
	Quantity    int
}

// MutateItemsHandler loads the aggregate, applies one item mutation
// through it and persists the result.
type MutateItemsHandler struct {
	repo ports.OrderRepository
}

func NewMutateItemsHandler(repo ports.OrderRepository) *MutateItemsHandler {
	return &MutateItemsHandler{repo: repo}
}

func (h *MutateItemsHandler) HandleAdd(ctx context.Context, cmd AddItemCommand) (*domain.Order, error) {
	item, err := domain.NewOrderItem(cmd.ProductID, cmd.ProductName, cmd.ProductAmount, cmd.ProductPrice)
	if err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.OrderNumber, func(order *domain.Order) error {
		return order.AddItem(item)
	})
}

func (h *MutateItemsHandler) HandleRemove(ctx context.Context, cmd RemoveItemCommand) (*domain.Order, error) {
	return h.mutate(ctx, cmd.OrderNumber, func(order *domain.Order) error {
		return order.RemoveItem(cmd.ProductID)
	})
}

func (h *MutateItemsHandler) HandleUpdateQuantity(ctx context.Context, cmd UpdateItemQuantityCommand) (*domain.Order, error) {
	return h.mutate(ctx, cmd.OrderNumber, func(order *domain.Order) error {
		return order.UpdateItemQuantity(cmd.ProductID, cmd.Quantity)
	})
}

func (h *MutateItemsHandler) mutate(ctx context.Context, number string, apply func(*domain.Order) error) (*domain.Order, error) {
	order, err := h.repo.GetByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := h.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}
