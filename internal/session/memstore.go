package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/buttercrumb/cakeflow/internal/repository"
)

// MemoryStore keeps sessions in an in-process map. Handy for tests and for
// single-instance deployments where session durability does not matter.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*repository.DesignSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*repository.DesignSession),
	}
}

func (m *MemoryStore) Create(_ context.Context, s *repository.DesignSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessionCopy := *s
	m.sessions[s.Token] = &sessionCopy
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*repository.DesignSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, found := m.sessions[token]
	if !found {
		return nil, repository.ErrObjectNotFound
	}
	sessionCopy := *s
	return &sessionCopy, nil
}

func (m *MemoryStore) Complete(_ context.Context, token string, payload json.RawMessage, completedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, found := m.sessions[token]
	if !found || s.Status != StatusActive || !completedAt.Before(s.ExpiresAt) {
		return false, nil
	}
	s.Status = StatusCompleted
	s.Payload = append(json.RawMessage(nil), payload...)
	s.CompletedAt = &completedAt
	return true, nil
}

func (m *MemoryStore) Cancel(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, found := m.sessions[token]; found && s.Status == StatusActive {
		s.Status = StatusCancelled
	}
	return nil
}

func (m *MemoryStore) MarkExpired(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, found := m.sessions[token]; found && s.Status == StatusActive {
		s.Status = StatusExpired
	}
	return nil
}

func (m *MemoryStore) ExpireBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive && !cutoff.Before(s.ExpiresAt) {
			s.Status = StatusExpired
			count++
		}
	}
	return count, nil
}
