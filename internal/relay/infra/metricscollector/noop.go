package metricscollector

import (
	"context"

	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
)

// NoopCollector discards metrics, used when no metrics database is configured
type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (c *NoopCollector) RecordDelivery(ctx context.Context, metrics core.DeliveryMetrics) error {
	return nil
}
