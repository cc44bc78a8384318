package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// Store persists chat histories and appointments in Firestore. It implements
// both domain.HistoryStore and domain.AppointmentStore so deployments can run
// with a single managed backend instead of local JSON files.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project
// (TRIAGE_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) historiesCol() *firestore.CollectionRef {
	return s.client.Collection("chat_histories")
}

func (s *Store) historyDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.historiesCol().Doc(string(id))
}

func (s *Store) entriesCol(id domain.SessionID) *firestore.CollectionRef {
	return s.historyDoc(id).Collection("entries")
}

func (s *Store) appointmentsCol() *firestore.CollectionRef {
	return s.client.Collection("appointments")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type historyDoc struct {
	SessionID   string `firestore:"session_id"`
	StartedAt   string `firestore:"started_at"`
	LastUpdated string `firestore:"last_updated"`
}

type entryDoc struct {
	Timestamp  time.Time      `firestore:"timestamp"`
	User       string         `firestore:"user"`
	Agent      string         `firestore:"agent"`
	Response   string         `firestore:"response"`
	Confidence float64        `firestore:"confidence"`
	Metadata   map[string]any `firestore:"metadata"`
}

type appointmentDoc struct {
	PatientName    string `firestore:"patient_name"`
	PatientEmail   string `firestore:"patient_email"`
	PatientPhone   string `firestore:"patient_phone"`
	SpecialistName string `firestore:"specialist_name"`
	Specialty      string `firestore:"specialty"`
	SpecialistType string `firestore:"specialist_type"`
	Datetime       string `firestore:"datetime"`
	Reason         string `firestore:"reason"`
	Status         string `firestore:"status"`
	BookedAt       string `firestore:"booked_at"`
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendEntry(id domain.SessionID, entry domain.HistoryEntry) error {
	ctx := context.Background()
	now := domain.UTCStamp(time.Now())

	snap, err := s.historyDoc(id).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("firestore AppendEntry get: %w", err)
	}

	meta := map[string]interface{}{
		"session_id":   string(id),
		"last_updated": now,
	}
	if snap == nil || !snap.Exists() {
		meta["started_at"] = now
	}
	if _, err := s.historyDoc(id).Set(ctx, meta, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore AppendEntry meta: %w", err)
	}

	doc := entryDoc{
		Timestamp:  entry.Timestamp,
		User:       entry.User,
		Agent:      entry.Agent,
		Response:   entry.Response,
		Confidence: entry.Confidence,
		Metadata:   entry.Metadata,
	}
	if _, _, err := s.entriesCol(id).Add(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendEntry: %w", err)
	}
	return nil
}

func (s *Store) Load(id domain.SessionID) (*domain.ChatHistory, error) {
	ctx := context.Background()

	h := &domain.ChatHistory{SessionID: id, Messages: []domain.HistoryEntry{}}

	snap, err := s.historyDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			h.StartedAt = domain.UTCStamp(time.Now())
			return h, nil
		}
		return nil, fmt.Errorf("firestore Load: %w", err)
	}

	var meta historyDoc
	if err := snap.DataTo(&meta); err != nil {
		return nil, fmt.Errorf("firestore Load decode: %w", err)
	}
	h.StartedAt = meta.StartedAt
	h.LastUpdated = meta.LastUpdated

	iter := s.entriesCol(id).OrderBy("timestamp", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		esnap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore Load entries: %w", err)
		}

		var doc entryDoc
		if err := esnap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode entryDoc: %w", err)
		}
		h.Messages = append(h.Messages, domain.HistoryEntry{
			Timestamp:  doc.Timestamp,
			User:       doc.User,
			Agent:      doc.Agent,
			Response:   doc.Response,
			Confidence: doc.Confidence,
			Metadata:   doc.Metadata,
		})
	}
	return h, nil
}

func (s *Store) List() ([]*domain.ChatHistory, error) {
	ctx := context.Background()

	iter := s.historiesCol().OrderBy("last_updated", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.ChatHistory
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List: %w", err)
		}

		var meta historyDoc
		if err := snap.DataTo(&meta); err != nil {
			return nil, fmt.Errorf("decode historyDoc: %w", err)
		}

		h, err := s.Load(domain.SessionID(snap.Ref.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// ─────────────────────────────────────────
// AppointmentStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveAppointment(appt *domain.Appointment) error {
	ctx := context.Background()

	doc := appointmentDoc{
		PatientName:    appt.PatientName,
		PatientEmail:   appt.PatientEmail,
		PatientPhone:   appt.PatientPhone,
		SpecialistName: appt.Specialist.Name,
		Specialty:      appt.Specialist.Specialty,
		SpecialistType: appt.SpecialistType,
		Datetime:       appt.Datetime,
		Reason:         appt.Reason,
		Status:         appt.Status,
		BookedAt:       appt.BookedAt,
	}

	if _, err := s.appointmentsCol().Doc(appt.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore SaveAppointment: %w", err)
	}
	return nil
}

func (s *Store) ListAppointments() ([]*domain.Appointment, error) {
	ctx := context.Background()

	iter := s.appointmentsCol().OrderBy("booked_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Appointment
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListAppointments: %w", err)
		}

		var doc appointmentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode appointmentDoc: %w", err)
		}

		out = append(out, &domain.Appointment{
			ID:           snap.Ref.ID,
			PatientName:  doc.PatientName,
			PatientEmail: doc.PatientEmail,
			PatientPhone: doc.PatientPhone,
			Specialist: domain.Specialist{
				Name:      doc.SpecialistName,
				Specialty: doc.Specialty,
			},
			SpecialistType: doc.SpecialistType,
			Datetime:       doc.Datetime,
			Reason:         doc.Reason,
			Status:         doc.Status,
			BookedAt:       doc.BookedAt,
		})
	}
	return out, nil
}

func (s *Store) CountAppointments() (int, error) {
	appts, err := s.ListAppointments()
	if err != nil {
		return 0, err
	}
	return len(appts), nil
}
