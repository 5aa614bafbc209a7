package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/domain"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/metrics"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// CreateHandler is the create-order use case boundary, implemented by
// the core handler and its observability decorator.
type CreateHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

type ObservableCreateOrderHandler struct {
	handler CreateHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreateOrderHandler(handler CreateHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreateOrderHandler {
	return &ObservableCreateOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderCreationDuration(ctx, duration)
		o.metrics.RecordOrderCreated(ctx, success)
	}()

	o.logger.InfoContext(ctx, "creating order",
		"invoice_email", cmd.InvoiceEmailAddress,
		"item_count", len(cmd.Items),
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order",
			"error", err,
			"invoice_email", cmd.InvoiceEmailAddress,
		)
		return nil, err
	}

	o.metrics.RecordOrderItemCount(ctx, len(order.Items()))

	telemetry.AddSpanAttributes(span,
		attribute.String("order.number", order.Number().String()),
		attribute.String("order.status", string(order.Status())),
		attribute.Int("order.item_count", len(order.Items())),
		attribute.String("order.total_amount", order.TotalAmount().String()),
	)

	o.logger.InfoContext(ctx, "order created successfully",
		"order_number", order.Number().String(),
		"total_amount", order.TotalAmount().String(),
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
