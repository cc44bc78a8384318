package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mamahealth/triage-agent/internal/domain"
)

func TestHistoryStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewHistoryStore(dir)
	if err != nil {
		t.Fatalf("NewHistoryStore failed: %v", err)
	}

	entry := domain.HistoryEntry{
		Timestamp:  time.Now().UTC(),
		User:       "I have a fever",
		Agent:      "symptom",
		Response:   "How high is it?",
		Confidence: 1.0,
	}
	if err := store.AppendEntry("abc", entry); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "chat_history_abc.json")); err != nil {
		t.Fatalf("expected chat_history_abc.json on disk: %v", err)
	}

	h, err := store.Load("abc")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if h.SessionID != "abc" {
		t.Fatalf("expected session abc, got %s", h.SessionID)
	}
	if len(h.Messages) != 1 || h.Messages[0].User != "I have a fever" {
		t.Fatalf("unexpected messages %+v", h.Messages)
	}
	if h.LastUpdated == "" {
		t.Fatal("expected last_updated stamp")
	}
}

func TestHistoryStoreLoadMissingSession(t *testing.T) {
	store, err := NewHistoryStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistoryStore failed: %v", err)
	}

	h, err := store.Load("nothing-here")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if h.SessionID != "nothing-here" || len(h.Messages) != 0 {
		t.Fatalf("expected fresh empty history, got %+v", h)
	}
}

func TestHistoryStoreListSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	store, err := NewHistoryStore(dir)
	if err != nil {
		t.Fatalf("NewHistoryStore failed: %v", err)
	}

	if err := store.AppendEntry("first", domain.HistoryEntry{User: "hi"}); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := store.AppendEntry("second", domain.HistoryEntry{User: "hello"}); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	garbage := filepath.Join(dir, "chat_history_broken.json")
	if err := os.WriteFile(garbage, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing garbage file: %v", err)
	}
	unrelated := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unrelated, []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("writing unrelated file: %v", err)
	}

	histories, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("expected 2 histories, got %d", len(histories))
	}
	if histories[0].SessionID != "second" {
		t.Fatalf("expected newest first, got %s", histories[0].SessionID)
	}
}

func TestAppointmentStorePersistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAppointmentStore(dir)
	if err != nil {
		t.Fatalf("NewAppointmentStore failed: %v", err)
	}

	count, err := store.CountAppointments()
	if err != nil || count != 0 {
		t.Fatalf("expected empty store, got %d, %v", count, err)
	}

	appt := &domain.Appointment{
		ID:             "APT-0001",
		PatientName:    "Ada",
		SpecialistType: "Cardiologist",
		Status:         "confirmed",
	}
	if err := store.SaveAppointment(appt); err != nil {
		t.Fatalf("SaveAppointment failed: %v", err)
	}

	// Reopen against the same directory: bookings survive the process.
	reopened, err := NewAppointmentStore(dir)
	if err != nil {
		t.Fatalf("NewAppointmentStore failed: %v", err)
	}
	appts, err := reopened.ListAppointments()
	if err != nil {
		t.Fatalf("ListAppointments failed: %v", err)
	}
	if len(appts) != 1 || appts[0].ID != "APT-0001" {
		t.Fatalf("unexpected appointments %+v", appts)
	}
	count, err = reopened.CountAppointments()
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d, %v", count, err)
	}
}
