package adapters

import (
	"context"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/database"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
)

// ObservableRepository wraps a repository with tracing and query
// duration metrics.
type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Add(ctx context.Context, order *domain.Order) error {
	return r.observe(ctx, "OrderRepository.Add", "add_order",
		attribute.String("order.number", order.Number().String()),
	)(func(ctx context.Context) error {
		return r.repo.Add(ctx, order)
	})
}

func (r *ObservableRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.observe(ctx, "OrderRepository.Update", "update_order",
		attribute.String("order.number", order.Number().String()),
		attribute.String("order.status", string(order.Status())),
	)(func(ctx context.Context) error {
		return r.repo.Update(ctx, order)
	})
}

func (r *ObservableRepository) Delete(ctx context.Context, order *domain.Order) error {
	return r.observe(ctx, "OrderRepository.Delete", "delete_order",
		attribute.String("order.number", order.Number().String()),
	)(func(ctx context.Context) error {
		return r.repo.Delete(ctx, order)
	})
}

func (r *ObservableRepository) GetByOrderNumber(ctx context.Context, number string) (order *domain.Order, err error) {
	err = r.observe(ctx, "OrderRepository.GetByOrderNumber", "get_order_by_number",
		attribute.String("order.number", number),
	)(func(ctx context.Context) error {
		order, err = r.repo.GetByOrderNumber(ctx, number)
		return err
	})
	return order, err
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (order *domain.Order, err error) {
	err = r.observe(ctx, "OrderRepository.GetByID", "get_order_by_id",
		attribute.String("order.id", id),
	)(func(ctx context.Context) error {
		order, err = r.repo.GetByID(ctx, id)
		return err
	})
	return order, err
}

func (r *ObservableRepository) GetAll(ctx context.Context) (orders []*domain.Order, err error) {
	err = r.observe(ctx, "OrderRepository.GetAll", "list_orders")(func(ctx context.Context) error {
		orders, err = r.repo.GetAll(ctx)
		return err
	})
	return orders, err
}

func (r *ObservableRepository) Exists(ctx context.Context, number string) (exists bool, err error) {
	err = r.observe(ctx, "OrderRepository.Exists", "order_exists",
		attribute.String("order.number", number),
	)(func(ctx context.Context) error {
		exists, err = r.repo.Exists(ctx, number)
		return err
	})
	return exists, err
}

// observe runs one repository call inside a span and records its
// duration under the given query name.
func (r *ObservableRepository) observe(ctx context.Context, spanName, queryName string, attrs ...attribute.KeyValue) func(func(context.Context) error) error {
	return func(call func(context.Context) error) error {
		ctx, span := telemetry.StartSpan(ctx, spanName, trace.WithAttributes(attrs...))
		defer span.End()

		start := time.Now()
		err := call(ctx)
		duration := time.Since(start).Seconds()

		r.metrics.RecordQuery(ctx, queryName, duration)

		if err != nil {
			telemetry.RecordSpanError(span, err)
			return err
		}

		telemetry.SetSpanSuccess(span)
		return nil
	}
}
