package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
)

type blockingPublisher struct {
	release chan struct{}

	mu        sync.Mutex
	published []string
	closed    bool
}

func (b *blockingPublisher) Publish(ctx context.Context, ev models.DashboardEvent) error {
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, ev.Type)
	return nil
}

func (b *blockingPublisher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func TestPublisherSinkEmitDoesNotWaitForPublish(t *testing.T) {
	pub := &blockingPublisher{release: make(chan struct{})}
	sink := NewPublisherSink(pub, 8, nil, nil)

	start := time.Now()
	for _, typ := range []string{models.EventBacktestStarted, models.EventBacktestQuickStats, models.EventBacktestCompleted} {
		sink.Emit(context.Background(), NewEvent("s1", typ, nil))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(pub.release)
	require.NoError(t, sink.Close())

	assert.True(t, pub.closed)
	assert.Equal(t, []string{models.EventBacktestStarted, models.EventBacktestQuickStats, models.EventBacktestCompleted}, pub.published)
}

func TestPublisherSinkDropsWhenQueueFull(t *testing.T) {
	pub := &blockingPublisher{release: make(chan struct{})}
	sink := NewPublisherSink(pub, 1, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			sink.Emit(context.Background(), NewEvent("s1", models.EventHistoryRefreshed, nil))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full queue")
	}

	close(pub.release)
	require.NoError(t, sink.Close())
	assert.LessOrEqual(t, len(pub.published), 2)
}

func TestPublisherSinkEmitAfterCloseIsIgnored(t *testing.T) {
	pub := &blockingPublisher{release: make(chan struct{})}
	close(pub.release)
	sink := NewPublisherSink(pub, 4, nil, nil)
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	assert.NotPanics(t, func() {
		sink.Emit(context.Background(), NewEvent("s1", models.EventHistoryRefreshed, nil))
	})
	assert.Empty(t, pub.published)
}
