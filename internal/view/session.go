package view

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"city-forecast/pkg/logger"
)

// Session is one browser's page and the controller that writes to it.
type Session struct {
	ID         string
	Page       *Page
	Controller *Controller

	lastSeen time.Time
}

// SessionStore keeps sessions in memory and forgets those idle for longer than ttl.
type SessionStore struct {
	fetcher Fetcher
	opts    Options
	ttl     time.Duration
	l       *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(fetcher Fetcher, opts Options, ttl time.Duration, l *logger.Logger) *SessionStore {
	return &SessionStore{
		fetcher:  fetcher,
		opts:     opts,
		ttl:      ttl,
		l:        l,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Acquire returns the live session for id, or a fresh one under a new id when id is
// unknown or expired. created reports the latter.
func (s *SessionStore) Acquire(id string) (session *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if session, ok := s.sessions[id]; ok {
		session.lastSeen = now
		return session, false
	}

	page := NewPage(s.opts.Target, s.opts.Slots)
	session = &Session{
		ID:         uuid.NewString(),
		Page:       page,
		Controller: NewController(s.fetcher, page, s.opts, s.l),
		lastSeen:   now,
	}
	s.sessions[session.ID] = session

	s.l.Debug("session created", map[string]any{"sessions": len(s.sessions)})

	return session, true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweep(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
