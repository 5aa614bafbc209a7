package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development
// and tests. Orders are keyed by their business number.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]*domain.Order)}
}

// Add stores a new order instance.
func (r *Repository) Add(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.Number().String()]; exists {
		return ports.ErrDuplicateOrderNumber
	}
	r.orders[order.Number().String()] = order
	return nil
}

// Update overwrites the stored order.
func (r *Repository) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.Number().String()]; !exists {
		return ports.ErrNotFound
	}
	r.orders[order.Number().String()] = order
	return nil
}

// Delete removes the order.
func (r *Repository) Delete(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.Number().String()]; !exists {
		return ports.ErrNotFound
	}
	delete(r.orders, order.Number().String())
	return nil
}

// GetByOrderNumber fetches a single order by its business number.
func (r *Repository) GetByOrderNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[number]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// GetByID fetches a single order by its internal identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.ID() == id {
			return order, nil
		}
	}
	return nil, ports.ErrNotFound
}

// GetAll returns every stored order, oldest first.
func (r *Repository) GetAll(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})

	return orders, nil
}

// Exists reports whether an order number is taken.
func (r *Repository) Exists(_ context.Context, number string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[number]
	return ok, nil
}
