package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu      sync.Mutex
	topic   string
	batches []LogBatch
}

func (f *fakePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topic = topic
	f.batches = append(f.batches, payload.(LogBatch))
	return nil
}

func TestCollectorDedupesAcrossSessions(t *testing.T) {
	pub := &fakePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval: time.Hour,
		Topic:        "signaldash.logs",
		Publisher:    pub,
		Service:      "signaldash",
	})

	c.AddLog("error", "backtest run failed", map[string]interface{}{"session": "a", "period": "30d"}, "usecase/backtest_runner.go:80")
	c.AddLog("error", "backtest run failed", map[string]interface{}{"session": "b", "period": "30d"}, "usecase/backtest_runner.go:80")
	c.AddLog("warn", "history refresh partially failed", map[string]interface{}{"session": "a"}, "usecase/history_refresh.go:120")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	require.Len(t, pub.batches, 1)
	assert.Equal(t, "signaldash.logs", pub.topic)
	b := pub.batches[0]
	assert.Equal(t, "signaldash", b.Service)
	require.Len(t, b.Entries, 2)
	assert.Equal(t, "backtest run failed", b.Entries[0].Message)
	assert.Equal(t, 2, b.Entries[0].Count)
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &fakePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Publisher: pub})

	c.AddLog("error", "one", nil, "x:1")
	c.AddLog("error", "two", nil, "x:2")
	assert.Equal(t, 0, c.Pending())

	c.Close()
	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0].Entries, 2)
}

func TestCollectorWithoutPublisherKeepsEntries(t *testing.T) {
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour})
	c.AddLog("error", "one", nil, "x:1")
	assert.Equal(t, 1, c.Pending())
	c.Close()
}
