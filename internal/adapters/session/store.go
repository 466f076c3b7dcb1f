package session

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/longregen/pipegen/internal/adapters/metrics"
	"github.com/longregen/pipegen/internal/domain/models"
)

// NewID generates a session identifier: a human-readable timestamp prefix
// plus a short random suffix so concurrent requests in the same second never
// collide.
func NewID(now time.Time) string {
	suffix, err := gonanoid.New(6)
	if err != nil {
		suffix = "fallback"
	}
	return now.Format("20060102_150405") + "_" + suffix
}

type entry struct {
	session  *models.Session
	expireAt time.Time
}

// Store is an in-memory session store with TTL eviction and a hard size
// bound. Sessions past their TTL are invisible to Get and swept by a janitor
// goroutine.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	ttl      time.Duration
	maxSize  int
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewStore creates a store with the given TTL and maximum session count and
// starts its eviction janitor.
func NewStore(ttl time.Duration, maxSize int) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		maxSize: maxSize,
		stopCh:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores a session. When the store is full, the oldest session is
// evicted first.
func (s *Store) Put(session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxSize {
		s.evictOldestLocked()
	}
	s.entries[session.ID] = &entry{
		session:  session,
		expireAt: time.Now().Add(s.ttl),
	}
	metrics.SessionsActive.Set(float64(len(s.entries)))
}

// Get returns a live session by ID. Expired sessions are treated as absent.
func (s *Store) Get(id string) (*models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expireAt) {
		delete(s.entries, id)
		metrics.SessionsActive.Set(float64(len(s.entries)))
		return nil, false
	}
	return e.session, true
}

// Len reports the number of stored sessions, including any not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the eviction janitor.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, e := range s.entries {
		if oldestID == "" || e.expireAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.expireAt
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}

func (s *Store) janitor() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expireAt) {
			delete(s.entries, id)
		}
	}
	metrics.SessionsActive.Set(float64(len(s.entries)))
}
