package commands

import (
	"context"
	"fmt"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
	"github.com/shopspring/decimal"
)

// CreateOrderItem is one requested order line.
type CreateOrderItem struct {
	ProductID     string
	ProductName   string
	ProductAmount int
	ProductPrice  decimal.Decimal
}

// CreateOrderCommand carries everything needed to create an order. An
// empty OrderNumber means one is generated.
type CreateOrderCommand struct {
	OrderNumber             string
	InvoiceEmailAddress     string
	InvoiceAddress          string
	InvoiceCreditCardNumber string
	Notes                   string
	Items                   []CreateOrderItem
}

// CreateOrderHandler validates the command into value objects, builds
// the aggregate and persists it.
type CreateOrderHandler struct {
	repo    ports.OrderRepository
	events  ports.EventBus
	numbers *domain.NumberGenerator
}

func NewCreateOrderHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	numbers *domain.NumberGenerator,
) *CreateOrderHandler {
	return &CreateOrderHandler{
		repo:    repo,
		events:  events,
		numbers: numbers,
	}
}

func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	address, err := domain.NewInvoiceAddress(cmd.InvoiceAddress)
	if err != nil {
		return nil, err
	}

	card, err := domain.NewCreditCardNumber(cmd.InvoiceCreditCardNumber)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, line := range cmd.Items {
		item, err := domain.NewOrderItem(line.ProductID, line.ProductName, line.ProductAmount, line.ProductPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	number, err := h.resolveNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(number, cmd.InvoiceEmailAddress, address, card, items, cmd.Notes)
	if err != nil {
		return nil, err
	}

	if err := h.repo.Add(ctx, order); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderCreated(ctx, order.Number().String()); err != nil {
		return order, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return order, nil
}

// resolveNumber uses the supplied order number after a uniqueness
// check, or generates a fresh one.
func (h *CreateOrderHandler) resolveNumber(ctx context.Context, supplied string) (domain.OrderNumber, error) {
	if supplied == "" {
		return h.numbers.Generate(), nil
	}

	number, err := domain.NewOrderNumber(supplied)
	if err != nil {
		return domain.OrderNumber{}, err
	}

	taken, err := h.repo.Exists(ctx, number.String())
	if err != nil {
		return domain.OrderNumber{}, fmt.Errorf("check order number: %w", err)
	}
	if taken {
		return domain.OrderNumber{}, ports.ErrDuplicateOrderNumber
	}

	return number, nil
}
