package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
	pkgkafka "SignalDash/pkg/kafka"
)

type fakeProducer struct {
	topic  string
	msgs   []pkgkafka.Message
	err    error
	closed bool
}

func (f *fakeProducer) PublishBatch(_ context.Context, topic string, messages []pkgkafka.Message) error {
	f.topic = topic
	f.msgs = append(f.msgs, messages...)
	return f.err
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func TestKafkaEventPublisherKeysBySession(t *testing.T) {
	fp := &fakeProducer{}
	p := &KafkaEventPublisher{producer: fp, topic: "signaldash.events"}

	ev := models.DashboardEvent{
		ID:        "e1",
		Type:      models.EventBacktestCompleted,
		SessionID: "s1",
		Timestamp: time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), ev))

	assert.Equal(t, "signaldash.events", fp.topic)
	require.Len(t, fp.msgs, 1)
	assert.Equal(t, []byte("s1"), fp.msgs[0].Key)
	assert.Equal(t, models.EventBacktestCompleted, fp.msgs[0].Headers["event_type"])
	assert.Equal(t, ev, fp.msgs[0].Value)

	require.NoError(t, p.Close())
	assert.True(t, fp.closed)
}

func TestKafkaEventPublisherPropagatesErrors(t *testing.T) {
	fp := &fakeProducer{err: errors.New("broker down")}
	p := &KafkaEventPublisher{producer: fp, topic: "t"}
	assert.Error(t, p.Publish(context.Background(), models.DashboardEvent{SessionID: "s1"}))
}
