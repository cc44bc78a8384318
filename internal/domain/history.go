package domain

import "time"

// HistoryEntry is one persisted interaction: the user's message paired with
// the agent's processed reply and its routing metadata.
type HistoryEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	User       string         `json:"user"`
	Agent      string         `json:"agent"`
	Response   string         `json:"response"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ChatHistory is the flat per-session log written alongside the in-memory
// context. Timestamps are serialized as ISO-8601 UTC with a trailing "Z".
type ChatHistory struct {
	SessionID   SessionID      `json:"session_id"`
	StartedAt   string         `json:"started_at"`
	LastUpdated string         `json:"last_updated,omitempty"`
	Messages    []HistoryEntry `json:"messages"`
}

// UTCStamp renders t the way the chat log and API responses expect it.
func UTCStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}
