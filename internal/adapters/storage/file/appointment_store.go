package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// AppointmentStore persists confirmed bookings in a single appointments.json
// file under dir.
type AppointmentStore struct {
	mu   sync.Mutex
	path string
}

type appointmentsFile struct {
	Appointments []*domain.Appointment `json:"appointments"`
}

func NewAppointmentStore(dir string) (*AppointmentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &AppointmentStore{path: filepath.Join(dir, "appointments.json")}, nil
}

func (s *AppointmentStore) load() (*appointmentsFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &appointmentsFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading appointments: %w", err)
	}
	var f appointmentsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding appointments: %w", err)
	}
	return &f, nil
}

func (s *AppointmentStore) SaveAppointment(appt *domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return err
	}
	f.Appointments = append(f.Appointments, appt)

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding appointments: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing appointments: %w", err)
	}
	return nil
}

func (s *AppointmentStore) ListAppointments() ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Appointments, nil
}

func (s *AppointmentStore) CountAppointments() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(f.Appointments), nil
}
