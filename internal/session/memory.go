package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryEntry struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between instances.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	log      *zap.Logger
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore starts a store whose janitor sweeps expired sessions every
// cleanupInterval. Call Close to stop the janitor.
func NewMemoryStore(cleanupInterval time.Duration, log *zap.Logger) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		log:      log,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.janitor(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Load(_ context.Context, token string) (Identity, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return Identity{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return Identity{}, ErrNotFound
	}
	return entry.identity, nil
}

func (s *MemoryStore) Save(_ context.Context, token string, identity Identity, ttl time.Duration) (string, error) {
	if token == "" {
		token = uuid.NewString()
	}
	s.mu.Lock()
	s.sessions[token] = memoryEntry{identity: identity, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the janitor
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, token)
			s.log.Debug("Cleaned up expired session", zap.Uint("user_id", entry.identity.ID))
		}
	}
}
