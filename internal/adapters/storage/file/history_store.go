package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mamahealth/triage-agent/internal/domain"
)

const historyPrefix = "chat_history_"

// HistoryStore persists one JSON log per session under dir, named
// chat_history_<session_id>.json. The on-disk shape matches what the web UI
// reads back: session_id, started_at, messages, last_updated.
type HistoryStore struct {
	mu  sync.Mutex
	dir string
}

func NewHistoryStore(dir string) (*HistoryStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &HistoryStore{dir: dir}, nil
}

func (s *HistoryStore) path(id domain.SessionID) string {
	return filepath.Join(s.dir, historyPrefix+string(id)+".json")
}

func (s *HistoryStore) AppendEntry(id domain.SessionID, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.load(id)
	if err != nil {
		return err
	}
	h.Messages = append(h.Messages, entry)
	h.LastUpdated = domain.UTCStamp(time.Now())

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chat history: %w", err)
	}
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return fmt.Errorf("writing chat history: %w", err)
	}
	return nil
}

func (s *HistoryStore) Load(id domain.SessionID) (*domain.ChatHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

func (s *HistoryStore) load(id domain.SessionID) (*domain.ChatHistory, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return &domain.ChatHistory{
			SessionID: id,
			StartedAt: domain.UTCStamp(time.Now()),
			Messages:  []domain.HistoryEntry{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading chat history: %w", err)
	}

	var h domain.ChatHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding chat history %s: %w", s.path(id), err)
	}
	if h.SessionID == "" {
		h.SessionID = id
	}
	return &h, nil
}

// List reads every chat_history_*.json under the directory. Malformed files
// are skipped rather than failing the whole listing.
func (s *HistoryStore) List() ([]*domain.ChatHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	var out []*domain.ChatHistory
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, historyPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := domain.SessionID(strings.TrimSuffix(strings.TrimPrefix(name, historyPrefix), ".json"))
		h, err := s.load(id)
		if err != nil {
			continue
		}
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated > out[j].LastUpdated })
	return out, nil
}
