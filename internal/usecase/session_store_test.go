package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
)

func TestSessionStoreReplacesInvalidIDs(t *testing.T) {
	st := NewSessionStore(time.Hour, 10, 20)

	s, created := st.GetOrCreate("not-a-uuid")
	require.True(t, created)
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	st := NewSessionStore(time.Minute, 0, 20)
	st.now = func() time.Time { return now }

	s, _ := st.GetOrCreate("")
	now = now.Add(2 * time.Minute)

	_, ok := st.Get(s.ID)
	assert.False(t, ok)

	fresh, created := st.GetOrCreate(s.ID)
	assert.True(t, created)
	assert.Equal(t, s.ID, fresh.ID)
	assert.NotSame(t, s, fresh)
}

func TestSessionStoreEvictsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	st := NewSessionStore(0, 2, 20)
	st.now = func() time.Time { return now }

	a, _ := st.GetOrCreate("")
	now = now.Add(time.Second)
	b, _ := st.GetOrCreate("")
	now = now.Add(time.Second)
	_, ok := st.Get(a.ID)
	require.True(t, ok)

	now = now.Add(time.Second)
	st.GetOrCreate("")
	assert.Equal(t, 2, st.Len())
	_, ok = st.Get(b.ID)
	assert.False(t, ok)
	_, ok = st.Get(a.ID)
	assert.True(t, ok)
}

func TestSessionSignalsPageWithoutHistory(t *testing.T) {
	s := newSession("s1", 20, time.Now())
	p := s.SignalsPage("", "", 3)
	assert.Empty(t, p.Records)
	assert.Equal(t, 0, p.Total)
}

func TestSessionSignalsPageFilters(t *testing.T) {
	s := newSession("s1", 2, time.Now())
	s.ReplaceHistory(models.HistoryAggregate{All: []models.SignalRecord{
		rec("1", "BTCUSDT", models.StatusExecuted, models.ResultProfit, 1),
		rec("2", "ETHUSDT", models.StatusPending, models.ResultNone, 0),
		rec("3", "BTCUSDT", models.StatusPending, models.ResultNone, 0),
		rec("4", "BTCUSDT", models.StatusExecuted, models.ResultLoss, -1),
	}})

	p := s.SignalsPage("btcusdt", "", 2)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Records, 1)

	p = s.SignalsPage("BTCUSDT", "pending", 0)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, 1, p.Page)
}
