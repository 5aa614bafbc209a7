package ports

import (
	"context"
	"errors"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
)

// OrderRepository exposes the persistence operations the application
// layer needs. The aggregate never talks to storage itself.
type OrderRepository interface {
	Add(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, order *domain.Order) error
	GetByOrderNumber(ctx context.Context, number string) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetAll(ctx context.Context) ([]*domain.Order, error)
	Exists(ctx context.Context, number string) (bool, error)
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateOrderNumber is returned when adding an order whose
	// number is already taken.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)
