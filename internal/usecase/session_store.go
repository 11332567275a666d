package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/services/stats"
)

// SessionStore keeps per-viewer sessions in memory with an idle TTL and a size cap.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	pageSize int
	now      func() time.Time
}

// NewSessionStore creates a store. ttl <= 0 disables expiry; max <= 0 disables the cap.
func NewSessionStore(ttl time.Duration, max, pageSize int) *SessionStore {
	if pageSize <= 0 {
		pageSize = stats.DefaultPageSize
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Get returns a live session without creating one.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || st.expired(s, st.now()) {
		return nil, false
	}
	s.touch(st.now())
	return s, true
}

// GetOrCreate returns the session for id, creating it when id is unknown or expired.
// Ids that are not UUIDs are replaced by a fresh one. created reports a new session.
func (st *SessionStore) GetOrCreate(id string) (s *Session, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if s, ok := st.sessions[id]; ok && !st.expired(s, now) {
		s.touch(now)
		return s, false
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	st.evict(now)
	s = newSession(id, st.pageSize, now)
	st.sessions[id] = s
	return s, true
}

// Len reports the number of stored sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// evict drops expired sessions, then the least recently seen ones until there is room for one more.
func (st *SessionStore) evict(now time.Time) {
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
		}
	}
	for st.max > 0 && len(st.sessions) >= st.max {
		var oldestID string
		var oldest time.Time
		for id, s := range st.sessions {
			if seen := s.idleSince(); oldestID == "" || seen.Before(oldest) {
				oldestID, oldest = id, seen
			}
		}
		delete(st.sessions, oldestID)
	}
}

func (st *SessionStore) expired(s *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.idleSince()) > st.ttl
}
