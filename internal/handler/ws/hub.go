package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	xlogger "SignalDash/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

type subscriber struct {
	session string
	conn    *websocket.Conn
	send    chan []byte
}

// Hub pushes session events to the websocket connections of that session.
type Hub struct {
	logger   *xlogger.Logger
	sessions *usecase.SessionStore
	upgrader websocket.Upgrader

	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

// NewHub creates a hub. allowedOrigins empty or "*" accepts any origin.
func NewHub(logger *xlogger.Logger, sessions *usecase.SessionStore, allowedOrigins []string) *Hub {
	h := &Hub{
		logger:   logger,
		sessions: sessions,
		subs:     make(map[string]map[*subscriber]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the request and subscribes it to an existing session.
func (h *Hub) Serve(c echo.Context) error {
	id := c.QueryParam("session_id")
	if id == "" {
		id = c.Request().Header.Get(xhttp.HeaderSessionID)
	}
	if id == "" {
		if ck, err := c.Cookie("sd_session"); err == nil {
			id = ck.Value
		}
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("session not found"))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}

	s := &subscriber{session: sess.ID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(s)
	h.logger.Debug("websocket subscribed", xlogger.String("session", sess.ID))

	go h.writePump(s)
	h.readPump(s)
	return nil
}

// Emit implements usecase.EventSink. Slow subscribers drop events instead of blocking.
func (h *Hub) Emit(_ context.Context, ev models.DashboardEvent) {
	if h.Subscribers(ev.SessionID) == 0 {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("encode event", xlogger.String("type", ev.Type), xlogger.Error(err))
		return
	}

	// Sends happen under the read lock so remove cannot close a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[ev.SessionID] {
		select {
		case s.send <- b:
		default:
			h.logger.Warn("websocket subscriber too slow, event dropped",
				xlogger.String("session", s.session),
				xlogger.String("type", ev.Type),
			)
		}
	}
}

// Subscribers reports the live connection count for a session.
func (h *Hub) Subscribers(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[session])
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.subs {
		for s := range set {
			close(s.send)
		}
		delete(h.subs, id)
	}
}

func (h *Hub) add(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[s.session]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[s.session] = set
	}
	set[s] = struct{}{}
}

// remove closes s.send once, whether called by the reader or by Close.
func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[s.session]
	if !ok {
		return
	}
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.send)
	if len(set) == 0 {
		delete(h.subs, s.session)
	}
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.remove(s)
		_ = s.conn.Close()
	}()
	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", xlogger.String("session", s.session), xlogger.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case b, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
