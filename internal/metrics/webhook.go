package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Webhook delivery outcomes used as the "outcome" label.
const (
	OutcomeDelivered     = "delivered"
	OutcomeFailed        = "failed"
	OutcomeNotConfigured = "not_configured"
	OutcomeDropped       = "dropped"
)

// DeliveryMetrics counts webhook dispatch outcomes per event type.
type DeliveryMetrics interface {
	RecordDelivery(ctx context.Context, eventType, outcome string)
}

type deliveryMetrics struct {
	deliveryCounter metric.Int64Counter
}

// NewDeliveryMetrics creates a DeliveryMetrics implementation on the given meter provider.
func NewDeliveryMetrics(meterProvider metric.MeterProvider, namespace string) (DeliveryMetrics, error) {
	meter := meterProvider.Meter(namespace)

	deliveryCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_webhook_deliveries_total", namespace),
		metric.WithDescription("Total number of webhook dispatch attempts by outcome"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook delivery counter: %w", err)
	}

	return &deliveryMetrics{deliveryCounter: deliveryCounter}, nil
}

func (d *deliveryMetrics) RecordDelivery(ctx context.Context, eventType, outcome string) {
	d.deliveryCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("event", eventType),
			attribute.String("outcome", outcome),
		),
	)
}

// NoOpDeliveryMetrics is used when metrics are disabled.
type NoOpDeliveryMetrics struct{}

// NewNoOpDeliveryMetrics creates a no-op DeliveryMetrics implementation.
func NewNoOpDeliveryMetrics() DeliveryMetrics {
	return &NoOpDeliveryMetrics{}
}

// RecordDelivery does nothing.
func (n *NoOpDeliveryMetrics) RecordDelivery(ctx context.Context, eventType, outcome string) {}
