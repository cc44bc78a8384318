package memory

import (
	"sync"

	"github.com/mamahealth/triage-agent/internal/domain"
)

type AppointmentStore struct {
	mu    sync.RWMutex
	appts []*domain.Appointment
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{}
}

func (s *AppointmentStore) SaveAppointment(appt *domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append(s.appts, appt)
	return nil
}

func (s *AppointmentStore) ListAppointments() ([]*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Appointment(nil), s.appts...), nil
}

func (s *AppointmentStore) CountAppointments() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.appts), nil
}
