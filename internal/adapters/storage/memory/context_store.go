package memory

import (
	"sync"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// ContextStore keeps conversation contexts in process memory. Contexts are
// never reloaded from the persisted chat log; they live exactly as long as the
// process does.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[domain.SessionID]*domain.Context
	current  domain.SessionID
}

func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[domain.SessionID]*domain.Context),
	}
}

// GetOrCreate returns the context for id, creating an empty one on first
// access. The same pointer is returned for the lifetime of the process.
func (s *ContextStore) GetOrCreate(id domain.SessionID) *domain.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx, ok := s.contexts[id]; ok {
		return ctx
	}
	ctx := domain.NewContext()
	s.contexts[id] = ctx
	return ctx
}

func (s *ContextStore) SetCurrent(id domain.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

func (s *ContextStore) Current() domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
