package app

import (
	"context"
	"log/slog"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/app/commands"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/app/queries"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/metrics"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
)

// Service bundles use cases for handling orders via the API.
type Service struct {
	repo                ports.OrderRepository
	events              ports.EventBus
	idemStore           ports.IdempotencyStore
	createOrderHandler  commands.CreateHandler
	updateStatusHandler *commands.UpdateOrderStatusHandler
	itemsHandler        *commands.MutateItemsHandler
	getOrderHandler     *queries.GetOrderQueryHandler
	listOrdersHandler   *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	numbers *domain.NumberGenerator,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewCreateOrderHandler(repo, events, numbers)
	observableHandler := commands.NewObservableCreateOrderHandler(coreHandler, logger, metrics)

	return &Service{
		repo:                repo,
		events:              events,
		idemStore:           idem,
		createOrderHandler:  observableHandler,
		updateStatusHandler: commands.NewUpdateOrderStatusHandler(repo, events),
		itemsHandler:        commands.NewMutateItemsHandler(repo),
		getOrderHandler:     queries.NewGetOrderQueryHandler(repo),
		listOrdersHandler:   queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrder orchestrates order creation and event emission.
func (s *Service) CreateOrder(ctx context.Context, cmd commands.CreateOrderCommand) (*domain.Order, error) {
	return s.createOrderHandler.Handle(ctx, cmd)
}

// GetOrder retrieves an order by its business number.
func (s *Service) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.getOrderHandler.Handle(ctx, queries.GetOrderQuery{OrderNumber: orderNumber})
}

// ListOrders returns all stored orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx)
}

// UpdateOrderStatus applies one status transition.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderNumber, status string) (*domain.Order, error) {
	return s.updateStatusHandler.Handle(ctx, commands.UpdateOrderStatusCommand{
		OrderNumber: orderNumber,
		Status:      status,
	})
}

// CancelOrder is a shortcut for transitioning to cancelled.
func (s *Service) CancelOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.UpdateOrderStatus(ctx, orderNumber, string(domain.StatusCancelled))
}

// AddItem appends a line to a pending order.
func (s *Service) AddItem(ctx context.Context, cmd commands.AddItemCommand) (*domain.Order, error) {
	return s.itemsHandler.HandleAdd(ctx, cmd)
}

// RemoveItem drops a line from a pending order.
func (s *Service) RemoveItem(ctx context.Context, cmd commands.RemoveItemCommand) (*domain.Order, error) {
	return s.itemsHandler.HandleRemove(ctx, cmd)
}

// UpdateItemQuantity replaces a line's quantity on a pending order.
func (s *Service) UpdateItemQuantity(ctx context.Context, cmd commands.UpdateItemQuantityCommand) (*domain.Order, error) {
	return s.itemsHandler.HandleUpdateQuantity(ctx, cmd)
}

// DeleteOrder removes an order at the repository level. This bypasses
// aggregate rules on purpose; there is no soft delete.
func (s *Service) DeleteOrder(ctx context.Context, orderNumber string) error {
	order, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, order); err != nil {
		return err
	}
	return s.events.PublishOrderDeleted(ctx, orderNumber)
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
