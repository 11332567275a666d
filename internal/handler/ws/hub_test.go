package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/usecase"
	xlogger "SignalDash/pkg/logger"
)

func TestHubDeliversSessionEvents(t *testing.T) {
	store := usecase.NewSessionStore(time.Hour, 10, 20)
	sess, _ := store.GetOrCreate("")
	hub := NewHub(xlogger.NewNop(), store, nil)

	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session_id=" + sess.ID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(sess.ID) == 1 }, time.Second, 10*time.Millisecond)

	hub.Emit(context.Background(), usecase.NewEvent("someone-else", models.EventBacktestStarted, nil))
	hub.Emit(context.Background(), usecase.NewEvent(sess.ID, models.EventHistoryRefreshed, map[string]int{"total": 3}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev models.DashboardEvent
	require.NoError(t, json.Unmarshal(b, &ev))
	assert.Equal(t, models.EventHistoryRefreshed, ev.Type)
	assert.Equal(t, sess.ID, ev.SessionID)
}

func TestHubRejectsUnknownSession(t *testing.T) {
	store := usecase.NewSessionStore(time.Hour, 10, 20)
	hub := NewHub(xlogger.NewNop(), store, nil)

	e := echo.New()
	hub.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws?session_id=missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://dash.example.com"})
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))
	r.Header.Set("Origin", "https://dash.example.com")
	assert.True(t, check(r))
}
