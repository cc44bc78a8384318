package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/mamahealth/triage-agent/internal/adapters/storage/memory"
)

func fixedNowService(t *testing.T, now time.Time) *Service {
	t.Helper()
	svc := NewService(memory.NewAppointmentStore())
	svc.now = func() time.Time { return now }
	return svc
}

func TestAvailableSlotsSkipWeekends(t *testing.T) {
	// Friday: the next seven days include a weekend to skip.
	friday := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc := fixedNowService(t, friday)

	slots := svc.AvailableSlots("Primary Care Physician", 7)

	if len(slots) != 10 {
		t.Fatalf("expected the first 10 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		ts, err := time.Parse(time.RFC3339, slot.Datetime)
		if err != nil {
			t.Fatalf("slot datetime not RFC3339: %v", err)
		}
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend slot generated: %s", slot.Datetime)
		}
		if ts.Hour() < 9 || ts.Hour() > 15 {
			t.Fatalf("slot outside business hours: %s", slot.Datetime)
		}
		if !slot.Available {
			t.Fatal("generated slots must be available")
		}
	}

	// Tomorrow is Saturday, so the first slot lands on Monday the 8th.
	first, _ := time.Parse(time.RFC3339, slots[0].Datetime)
	if first.Day() != 8 || first.Hour() != 9 {
		t.Fatalf("expected first slot Monday 9 AM, got %s", slots[0].Datetime)
	}
}

func TestAvailableSlotsEmergencyIncludesWeekends(t *testing.T) {
	friday := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	svc := fixedNowService(t, friday)

	slots := svc.AvailableSlots("Emergency Medicine", 7)

	first, _ := time.Parse(time.RFC3339, slots[0].Datetime)
	if first.Weekday() != time.Saturday {
		t.Fatalf("emergency slots should start Saturday, got %s", first.Weekday())
	}
}

func TestSanitizeReason(t *testing.T) {
	long := strings.Repeat("I understand your concern. ", 10)

	tests := []struct {
		name   string
		reason string
		want   string
	}{
		{"empty", "", "General consultation"},
		{"short passthrough", "Knee pain", "Knee pain"},
		{"long with condition", long + "This chest pain needs evaluation.", "Chest pain consultation"},
		{"long with medication", long + "Your medication may interact.", "Medication review and concerns"},
		{"long follow up", long + "We should follow this up soon.", "Follow-up consultation"},
		{"long unknown", long + "Nothing specific here.", "General health consultation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeReason(tt.reason); got != tt.want {
				t.Fatalf("SanitizeReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookAssignsSequentialIDs(t *testing.T) {
	svc := NewService(memory.NewAppointmentStore())

	first, err := svc.Book(BookingRequest{
		PatientName:    "Ada",
		SpecialistType: "Cardiologist",
		SlotDatetime:   "2024-01-08T09:00:00Z",
		Reason:         "Chest pain",
	})
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if first.Appointment.ID != "APT-0001" {
		t.Fatalf("expected APT-0001, got %s", first.Appointment.ID)
	}
	if first.Appointment.Status != "confirmed" {
		t.Fatalf("expected confirmed status, got %s", first.Appointment.Status)
	}
	if !strings.Contains(first.Message, first.Appointment.Specialist.Name) {
		t.Fatal("confirmation message should name the specialist")
	}

	second, err := svc.Book(BookingRequest{
		SpecialistType: "Cardiologist",
		SlotDatetime:   "2024-01-08T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if second.Appointment.ID != "APT-0002" {
		t.Fatalf("expected APT-0002, got %s", second.Appointment.ID)
	}
	if second.Appointment.PatientName != "Patient" {
		t.Fatalf("expected default patient name, got %s", second.Appointment.PatientName)
	}

	appts, err := svc.Appointments()
	if err != nil {
		t.Fatalf("Appointments failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
}

func TestSpecialistsForCondition(t *testing.T) {
	svc := NewService(memory.NewAppointmentStore())

	got := svc.SpecialistsForCondition("persistent headache for a week")
	var types []string
	for _, s := range got {
		types = append(types, s.Type)
	}
	found := false
	for _, typ := range types {
		if typ == "Neurologist" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Neurologist for headache, got %v", types)
	}

	def := svc.SpecialistsForCondition("something entirely unrelated")
	if len(def) != 1 || def[0].Type != "Primary Care Physician" {
		t.Fatalf("expected Primary Care Physician default, got %v", def)
	}
}

func TestAllSpecialistTypesExcludesEmergency(t *testing.T) {
	svc := NewService(memory.NewAppointmentStore())

	all := svc.AllSpecialistTypes()
	if len(all) == 0 {
		t.Fatal("expected specialist types")
	}
	for i, s := range all {
		if s.Type == "Emergency Medicine" {
			t.Fatal("Emergency Medicine must not be bookable")
		}
		if i > 0 && all[i-1].Specialty > s.Specialty {
			t.Fatal("specialist types must be sorted by specialty")
		}
	}
}
