package domain

import "strings"

type SessionID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AgentKind identifies a specialist agent. The set is closed; RouterKind is a
// conceptual label only and is never a dispatch target.
type AgentKind string

const (
	RouterKind     AgentKind = "router"
	SymptomKind    AgentKind = "symptom"
	MedicationKind AgentKind = "medication"
	LifestyleKind  AgentKind = "lifestyle"
	FallbackKind   AgentKind = "fallback"
)

// ParseAgentKind maps free-form text (the routing model answers in upper case)
// onto the closed enumeration. The boolean is false when the text names no
// dispatchable agent.
func ParseAgentKind(s string) (AgentKind, bool) {
	switch AgentKind(strings.ToLower(strings.TrimSpace(s))) {
	case SymptomKind:
		return SymptomKind, true
	case MedicationKind:
		return MedicationKind, true
	case LifestyleKind:
		return LifestyleKind, true
	case FallbackKind:
		return FallbackKind, true
	}
	return FallbackKind, false
}
