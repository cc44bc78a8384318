package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

// Manager owns per-session conversation state. It serializes turns on the
// same session id with a per-session lock so concurrent requests cannot race
// the context's read-modify-write; different sessions proceed independently.
type Manager struct {
	contexts domain.ContextStore
	history  domain.HistoryStore

	mu    sync.Mutex
	locks map[domain.SessionID]*sync.Mutex
}

func NewManager(contexts domain.ContextStore, history domain.HistoryStore) *Manager {
	return &Manager{
		contexts: contexts,
		history:  history,
		locks:    make(map[domain.SessionID]*sync.Mutex),
	}
}

// NewSessionID mints ids like chat_20240115_093042_1a2b3c4d.
func NewSessionID() domain.SessionID {
	stamp := time.Now().UTC().Format("20060102_150405")
	return domain.SessionID(fmt.Sprintf("chat_%s_%s", stamp, uuid.NewString()[:8]))
}

func (m *Manager) sessionLock(id domain.SessionID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// WithSession runs fn while holding the session's lock, handing it the
// session's context. The whole per-turn pair (process + context update +
// history append) belongs inside fn.
func (m *Manager) WithSession(id domain.SessionID, fn func(convCtx *domain.Context) error) error {
	l := m.sessionLock(id)
	l.Lock()
	defer l.Unlock()

	return fn(m.contexts.GetOrCreate(id))
}

// GetContext returns the session's context, creating an empty one on first
// access.
func (m *Manager) GetContext(id domain.SessionID) *domain.Context {
	return m.contexts.GetOrCreate(id)
}

func (m *Manager) SetCurrent(id domain.SessionID) {
	m.contexts.SetCurrent(id)
}

func (m *Manager) Current() domain.SessionID {
	return m.contexts.Current()
}

// SaveHistory appends one interaction to the flat chat log. Failures are
// logged and swallowed: the log is an audit artifact, not the source of truth
// for the running conversation.
func (m *Manager) SaveHistory(id domain.SessionID, userMessage string, response domain.AgentResponse) {
	entry := domain.HistoryEntry{
		Timestamp:  time.Now().UTC(),
		User:       userMessage,
		Agent:      string(response.AgentKind),
		Response:   response.Content,
		Confidence: response.Confidence,
		Metadata:   response.Metadata,
	}
	if err := m.history.AppendEntry(id, entry); err != nil {
		observability.Logger().Error("failed to save chat history",
			"session_id", id, "error", err)
	}
}

// History loads the flat chat log for a session.
func (m *Manager) History(id domain.SessionID) (*domain.ChatHistory, error) {
	return m.history.Load(id)
}

// ListHistories returns every persisted chat log, newest first.
func (m *Manager) ListHistories() ([]*domain.ChatHistory, error) {
	return m.history.List()
}
