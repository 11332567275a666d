package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	applogger "SignalDash/pkg/logger"
)

// EventSink receives session state transitions. Emit must not block for long.
type EventSink interface {
	Emit(ctx context.Context, ev models.DashboardEvent)
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(sessionID, typ string, data interface{}) models.DashboardEvent {
	return models.DashboardEvent{
		ID:        uuid.NewString(),
		Type:      typ,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Events fans one event out to every sink.
type Events []EventSink

func (es Events) Emit(ctx context.Context, ev models.DashboardEvent) {
	for _, s := range es {
		if s != nil {
			s.Emit(ctx, ev)
		}
	}
}

// DefaultEventQueue is the PublisherSink buffer size used when none is given.
const DefaultEventQueue = 256

const publishTimeout = 10 * time.Second

// PublisherSink forwards events to an external publisher from a background goroutine.
// Emit only enqueues; events arriving while the queue is full are dropped.
type PublisherSink struct {
	pub     repository.EventPublisher
	metrics repository.Metrics
	log     *applogger.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan models.DashboardEvent
	done   chan struct{}
}

func NewPublisherSink(pub repository.EventPublisher, queueSize int, metrics repository.Metrics, l *applogger.Logger) *PublisherSink {
	if queueSize <= 0 {
		queueSize = DefaultEventQueue
	}
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	p := &PublisherSink{
		pub:     pub,
		metrics: metrics,
		log:     l,
		queue:   make(chan models.DashboardEvent, queueSize),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *PublisherSink) Emit(_ context.Context, ev models.DashboardEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- ev:
	default:
		p.metrics.RecordError("event_dropped")
		p.log.Warn("event queue full, dropping event",
			applogger.String("type", ev.Type),
			applogger.String("session", ev.SessionID),
		)
	}
}

func (p *PublisherSink) loop() {
	defer close(p.done)
	for ev := range p.queue {
		p.publish(ev)
	}
}

func (p *PublisherSink) publish(ev models.DashboardEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.pub.Publish(ctx, ev); err != nil {
		p.metrics.RecordError("event_publish")
		p.log.Warn("event publish failed",
			applogger.String("type", ev.Type),
			applogger.String("session", ev.SessionID),
			applogger.Error(err),
		)
	}
}

// Close stops accepting events, publishes what is queued and closes the publisher.
func (p *PublisherSink) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.pub.Close()
}

type nopSink struct{}

func (nopSink) Emit(context.Context, models.DashboardEvent) {}
