package session

import (
	"context"
	"sync"
	"time"

	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/utils"
)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions vanish on
// process restart, which matches the default deployment where the cookie
// signing secret is regenerated at boot anyway. Expired entries are
// dropped opportunistically on Create; there is no janitor goroutine.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemoryStore returns an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

// Create mints a new session for the user.
func (s *MemoryStore) Create(_ context.Context, userID int64, ttl time.Duration) (*model.Session, error) {
	id, err := utils.NewSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := model.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.sessions {
		if v.Expired(now) {
			delete(s.sessions, k)
		}
	}
	s.sessions[id] = sess
	return &sess, nil
}

// Get resolves a session id, dropping it when expired.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(time.Now().UTC()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	out := sess
	return &out, nil
}

// Delete removes a session if present.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
