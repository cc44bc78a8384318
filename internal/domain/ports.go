package domain

import "context"

// Generator is the external text-completion capability. Implementations may
// fail with a generic error on network, quota, or malformed-response
// conditions; callers treat every failure uniformly.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContextStore holds per-session conversation contexts for the lifetime of the
// process. Contexts round-trip by identity: the pointer handed out is the one
// mutated after each turn.
type ContextStore interface {
	GetOrCreate(id SessionID) *Context
	SetCurrent(id SessionID)
	Current() SessionID
}

// HistoryStore persists the flat per-session chat log. This log is written
// after every turn but is never reconciled back into the in-memory Context.
type HistoryStore interface {
	AppendEntry(id SessionID, entry HistoryEntry) error
	Load(id SessionID) (*ChatHistory, error)
	List() ([]*ChatHistory, error)
}

// AppointmentStore persists booked appointments.
type AppointmentStore interface {
	SaveAppointment(appt *Appointment) error
	ListAppointments() ([]*Appointment, error)
	CountAppointments() (int, error)
}
