package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// Service is the mock appointment booking subsystem: specialist lookup, slot
// generation, and booking persistence through an AppointmentStore.
type Service struct {
	store domain.AppointmentStore
	now   func() time.Time
}

func NewService(store domain.AppointmentStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// SpecialistOption is a specialist plus the type key used to book it.
type SpecialistOption struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// AllSpecialistTypes lists every bookable specialist, sorted by specialty.
// Emergency Medicine is excluded: emergencies are escalated, not booked.
func (s *Service) AllSpecialistTypes() []SpecialistOption {
	out := make([]SpecialistOption, 0, len(specialists))
	for typ, info := range specialists {
		if typ == "Emergency Medicine" {
			continue
		}
		out = append(out, SpecialistOption{Type: typ, Name: info.Name, Specialty: info.Specialty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Specialty < out[j].Specialty })
	return out
}

// SpecialistsForCondition recommends specialists whose mapped keywords appear
// in the condition text, defaulting to the Primary Care Physician.
func (s *Service) SpecialistsForCondition(condition string) []SpecialistOption {
	lower := strings.ToLower(condition)

	var out []SpecialistOption
	seen := map[string]bool{}
	for keyword, types := range specialistMapping {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, typ := range types {
			info, ok := specialists[typ]
			if !ok || seen[typ] {
				continue
			}
			seen[typ] = true
			out = append(out, SpecialistOption{Type: typ, Name: info.Name, Specialty: info.Specialty})
		}
	}

	if len(out) == 0 {
		if pcp, ok := specialists["Primary Care Physician"]; ok {
			out = append(out, SpecialistOption{
				Type:      "Primary Care Physician",
				Name:      pcp.Name,
				Specialty: pcp.Specialty,
			})
		}
	}
	return out
}

// AvailableSlots generates hourly slots from 9 AM to 4 PM starting tomorrow,
// skipping weekends for everyone except Emergency Medicine, capped at the
// first 10.
func (s *Service) AvailableSlots(specialistType string, daysAhead int) []domain.Slot {
	if daysAhead <= 0 {
		daysAhead = 7
	}

	var slots []domain.Slot
	start := s.now().AddDate(0, 0, 1)

	for day := 0; day < daysAhead; day++ {
		current := start.AddDate(0, 0, day)

		wd := current.Weekday()
		if (wd == time.Saturday || wd == time.Sunday) && specialistType != "Emergency Medicine" {
			continue
		}

		for hour := 9; hour < 16; hour++ {
			slot := time.Date(current.Year(), current.Month(), current.Day(), hour, 0, 0, 0, current.Location())
			slots = append(slots, domain.Slot{
				Datetime:  slot.Format(time.RFC3339),
				Display:   domain.FormatSlot(slot),
				Available: true,
			})
		}
	}

	if len(slots) > 10 {
		slots = slots[:10]
	}
	return slots
}

// reasonConditions condenses long free-text reasons (usually a whole agent
// reply) into a short, chart-friendly line.
var reasonConditions = []struct {
	keyword     string
	description string
}{
	{"chest pain", "Chest pain consultation"},
	{"headache", "Headache evaluation"},
	{"stomach cramp", "Stomach cramps and digestive issues"},
	{"abdominal pain", "Abdominal pain evaluation"},
	{"fever", "Fever and related symptoms"},
	{"cough", "Persistent cough evaluation"},
	{"shortness of breath", "Breathing difficulty assessment"},
	{"dizziness", "Dizziness and balance issues"},
	{"fatigue", "Chronic fatigue evaluation"},
	{"medication", "Medication review and concerns"},
	{"blood pressure", "Blood pressure management"},
	{"diabetes", "Diabetes management"},
	{"anxiety", "Anxiety and mental health consultation"},
	{"depression", "Depression evaluation"},
	{"back pain", "Back pain assessment"},
	{"joint pain", "Joint pain evaluation"},
	{"skin rash", "Skin condition evaluation"},
	{"allergy", "Allergy assessment"},
	{"asthma", "Asthma management"},
}

// SanitizeReason keeps short reasons as-is and distills anything longer than
// 200 characters down to a known condition description.
func SanitizeReason(reason string) string {
	if reason == "" {
		return "General consultation"
	}
	if len(reason) <= 200 {
		return strings.TrimSpace(reason)
	}

	lower := strings.ToLower(reason)
	for _, c := range reasonConditions {
		if strings.Contains(lower, c.keyword) {
			return c.description
		}
	}
	if strings.Contains(lower, "follow") && strings.Contains(lower, "up") {
		return "Follow-up consultation"
	}
	return "General health consultation"
}

// BookingRequest carries everything needed to confirm an appointment.
type BookingRequest struct {
	PatientName    string
	PatientEmail   string
	PatientPhone   string
	SpecialistType string
	SlotDatetime   string
	Reason         string
}

// BookingResult is the confirmed appointment plus the patient-facing message.
type BookingResult struct {
	Appointment *domain.Appointment `json:"appointment"`
	Message     string              `json:"message"`
}

// Book confirms an appointment and persists it. Ids are sequential in the
// APT-0001 format.
func (s *Service) Book(req BookingRequest) (*BookingResult, error) {
	count, err := s.store.CountAppointments()
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	name := req.PatientName
	if name == "" {
		name = "Patient"
	}

	appt := &domain.Appointment{
		ID:             fmt.Sprintf("APT-%04d", count+1),
		PatientName:    name,
		PatientEmail:   req.PatientEmail,
		PatientPhone:   req.PatientPhone,
		Specialist:     specialists[req.SpecialistType],
		SpecialistType: req.SpecialistType,
		Datetime:       req.SlotDatetime,
		Reason:         SanitizeReason(req.Reason),
		Status:         "confirmed",
		BookedAt:       domain.UTCStamp(s.now()),
	}

	if err := s.store.SaveAppointment(appt); err != nil {
		return nil, fmt.Errorf("saving appointment: %w", err)
	}

	display := req.SlotDatetime
	if t, err := time.Parse(time.RFC3339, req.SlotDatetime); err == nil {
		display = domain.FormatSlot(t)
	}

	specialistName := appt.Specialist.Name
	if specialistName == "" {
		specialistName = req.SpecialistType
	}

	message := fmt.Sprintf(`See you on %s!

Your appointment with %s has been confirmed.

Meanwhile, if you have any questions or need to reschedule:
Email us at: support@mamahealth.com
Call us at: +1 (555) 123-4567

We look forward to seeing you!`, display, specialistName)

	return &BookingResult{Appointment: appt, Message: message}, nil
}

// Appointments lists every confirmed booking.
func (s *Service) Appointments() ([]*domain.Appointment, error) {
	return s.store.ListAppointments()
}
