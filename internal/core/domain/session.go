package domain

import (
	"sync"
	"sync/atomic"
	"time"
)

// Session owns one browser session's map. Hold Lock while reading or changing Map;
// every user event on a session runs to completion before the next one starts.
type Session struct {
	mu       sync.Mutex
	ID       string
	Map      *Map
	lastSeen atomic.Int64
}

// NewSession binds m to id.
func NewSession(id string, m *Map, now time.Time) *Session {
	s := &Session{ID: id, Map: m}
	s.Touch(now)
	return s
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is the time of the most recent activity. Safe without the lock.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
