package adapters

import (
	"context"
	"time"

	"github.com/Atharva-System/OrderProcessing-TestCode/internal/events"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/orders/ports"
	"github.com/Atharva-System/OrderProcessing-TestCode/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableEventBus wraps an event bus with tracing and publish
// latency metrics.
type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *events.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *events.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderNumber string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.number", orderNumber),
		attribute.String("event.type", "order.created"),
	)

	start := time.Now()
	err := e.bus.PublishOrderCreated(ctx, orderNumber)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.created", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderNumber string, status string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderStatusChanged")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.number", orderNumber),
		attribute.String("event.type", "order.status_changed"),
		attribute.String("order.status", status),
	)

	start := time.Now()
	err := e.bus.PublishOrderStatusChanged(ctx, orderNumber, status)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.status_changed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderDeleted(ctx context.Context, orderNumber string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderDeleted")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.number", orderNumber),
		attribute.String("event.type", "order.deleted"),
	)

	start := time.Now()
	err := e.bus.PublishOrderDeleted(ctx, orderNumber)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.deleted", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
