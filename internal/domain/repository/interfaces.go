package repository

import (
	"context"

	"SignalDash/internal/domain/models"
)

// EventPublisher fans dashboard events out to an external sink.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.DashboardEvent) error
	Close() error
}

type Metrics interface {
	RecordFetch(source, symbol, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordSnapshot(kind string, size int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, string, string) {}
func (NopMetrics) RecordError(string)                 {}
func (NopMetrics) RecordLatency(string, float64)      {}
func (NopMetrics) RecordSnapshot(string, int)         {}
