package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// HistoryStore keeps the flat chat logs in memory. Useful for tests and for
// running without a writable data directory.
type HistoryStore struct {
	mu        sync.RWMutex
	histories map[domain.SessionID]*domain.ChatHistory
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		histories: make(map[domain.SessionID]*domain.ChatHistory),
	}
}

func (s *HistoryStore) AppendEntry(id domain.SessionID, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.histories[id]
	if !ok {
		h = &domain.ChatHistory{
			SessionID: id,
			StartedAt: domain.UTCStamp(time.Now()),
		}
		s.histories[id] = h
	}
	h.Messages = append(h.Messages, entry)
	h.LastUpdated = domain.UTCStamp(time.Now())
	return nil
}

func (s *HistoryStore) Load(id domain.SessionID) (*domain.ChatHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.histories[id]
	if !ok {
		return &domain.ChatHistory{SessionID: id, Messages: []domain.HistoryEntry{}}, nil
	}
	cp := *h
	cp.Messages = append([]domain.HistoryEntry(nil), h.Messages...)
	return &cp, nil
}

func (s *HistoryStore) List() ([]*domain.ChatHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ChatHistory, 0, len(s.histories))
	for _, h := range s.histories {
		cp := *h
		cp.Messages = append([]domain.HistoryEntry(nil), h.Messages...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated > out[j].LastUpdated })
	return out, nil
}
