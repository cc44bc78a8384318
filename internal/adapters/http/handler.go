package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mamahealth/triage-agent/internal/app/scheduling"
	"github.com/mamahealth/triage-agent/internal/app/session"
	"github.com/mamahealth/triage-agent/internal/app/triage"
	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

type Server struct {
	orchestrator *triage.Orchestrator
	sessions     *session.Manager
	scheduler    *scheduling.Service
	envLoaded    bool
}

func NewServer(orch *triage.Orchestrator, sessions *session.Manager, scheduler *scheduling.Service, envLoaded bool) http.Handler {
	s := &Server{
		orchestrator: orch,
		sessions:     sessions,
		scheduler:    scheduler,
		envLoaded:    envLoaded,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/process", s.handleProcess)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/reset", s.handleNewChat)
	mux.HandleFunc("/api/chats/new", s.handleNewChat)
	mux.HandleFunc("/api/chats/list", s.handleListChats)
	mux.HandleFunc("/api/chats/switch", s.handleSwitchChat)
	mux.HandleFunc("/api/appointments/get-specialists", s.handleGetSpecialists)
	mux.HandleFunc("/api/appointments/specialist-types", s.handleSpecialistTypes)
	mux.HandleFunc("/api/appointments/get-slots", s.handleGetSlots)
	mux.HandleFunc("/api/appointments/book", s.handleBook)
	mux.HandleFunc("/api/appointments/confirm", s.handleConfirm)
	mux.HandleFunc("/api/appointments", s.handleListAppointments)

	return chainMiddlewares(mux, withCORS, withRequestID, withLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type processRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// processResponse is the per-turn shape the chat UI consumes. Timestamp is
// ISO-8601 UTC with a trailing "Z"; metadata carries the nested routing
// decision.
type processResponse struct {
	Original   string         `json:"original"`
	Processed  string         `json:"processed"`
	Agent      string         `json:"agent"`
	Confidence float64        `json:"confidence"`
	Timestamp  string         `json:"timestamp"`
	Metadata   map[string]any `json:"metadata"`
}

type chatPreview struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at"`
	LastUpdated  string `json:"last_updated"`
	MessageCount int    `json:"message_count"`
	Preview      string `json:"preview"`
	IsActive     bool   `json:"is_active"`
}

type switchChatRequest struct {
	SessionID string `json:"session_id"`
}

type conditionRequest struct {
	Condition string `json:"condition"`
}

type slotsRequest struct {
	SpecialistType string `json:"specialist_type"`
}

type bookRequest struct {
	PatientName    string `json:"patient_name"`
	PatientEmail   string `json:"patient_email"`
	PatientPhone   string `json:"patient_phone"`
	SpecialistType string `json:"specialist_type"`
	SlotDatetime   string `json:"slot_datetime"`
	Reason         string `json:"reason"`
	Reasoning      string `json:"reasoning"`
}

type confirmRequest struct {
	SessionID     string `json:"session_id"`
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id"`
	Reasoning     string `json:"reasoning"`
}

// ─────────────────────────────────────────────
// Chat handlers
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the mama health triage API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"orchestrator_ready": s.orchestrator != nil,
		"env_loaded":         s.envLoaded,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	sessionID := domain.SessionID(req.SessionID)
	if sessionID == "" {
		sessionID = s.sessions.Current()
	}
	if sessionID == "" {
		sessionID = "default"
	}
	if req.SessionID != "" {
		s.sessions.SetCurrent(sessionID)
	}

	log := observability.LoggerFromContext(r.Context()).With("session_id", sessionID)
	log.Info("processing query", "text", req.Text)

	var resp processResponse

	// The per-turn pair — process then update — runs under the session lock
	// so concurrent turns on the same session cannot interleave.
	err := s.sessions.WithSession(sessionID, func(convCtx *domain.Context) error {
		response := s.orchestrator.ProcessQuery(r.Context(), req.Text, convCtx)
		s.orchestrator.UpdateContext(convCtx, req.Text, response)

		resp = processResponse{
			Original:   req.Text,
			Processed:  response.Content,
			Agent:      string(response.AgentKind),
			Confidence: response.Confidence,
			Timestamp:  domain.UTCStamp(time.Now()),
			Metadata:   response.Metadata,
		}

		s.sessions.SaveHistory(sessionID, req.Text, response)
		return nil
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionID(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		sessionID = s.sessions.Current()
	}
	if sessionID == "" {
		sessionID = "default"
	}

	history, err := s.sessions.History(sessionID)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("failed to load chat history", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"messages":   []any{},
			"session_id": sessionID,
		})
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleNewChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	sessionID := session.NewSessionID()
	s.sessions.SetCurrent(sessionID)
	s.sessions.GetContext(sessionID)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"session_id": sessionID,
		"message":    "New chat created",
	})
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	histories, err := s.sessions.ListHistories()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"chats":   []any{},
			"error":   err.Error(),
		})
		return
	}

	current := s.sessions.Current()
	chats := make([]chatPreview, 0, len(histories))
	for _, h := range histories {
		preview := "No messages"
		if len(h.Messages) > 0 {
			preview = h.Messages[0].User
			if len(preview) > 100 {
				preview = preview[:100]
			}
		}
		chats = append(chats, chatPreview{
			SessionID:    string(h.SessionID),
			StartedAt:    h.StartedAt,
			LastUpdated:  h.LastUpdated,
			MessageCount: len(h.Messages),
			Preview:      preview,
			IsActive:     h.SessionID == current,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"chats":              chats,
		"current_session_id": current,
	})
}

func (s *Server) handleSwitchChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req switchChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "session_id required"})
		return
	}

	sessionID := domain.SessionID(req.SessionID)
	s.sessions.SetCurrent(sessionID)
	s.sessions.GetContext(sessionID)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": sessionID,
		"message":    "Switched to chat session",
	})
}

// ─────────────────────────────────────────────
// Appointment handlers
// ─────────────────────────────────────────────

func (s *Server) handleGetSpecialists(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req conditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"specialists": s.scheduler.SpecialistsForCondition(req.Condition),
	})
}

func (s *Server) handleSpecialistTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"specialists": s.scheduler.AllSpecialistTypes(),
	})
}

func (s *Server) handleGetSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req slotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.SpecialistType == "" {
		req.SpecialistType = "Primary Care Physician"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"slots":   s.scheduler.AvailableSlots(req.SpecialistType, 7),
	})
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	result, err := s.scheduler.Book(scheduling.BookingRequest{
		PatientName:    req.PatientName,
		PatientEmail:   req.PatientEmail,
		PatientPhone:   req.PatientPhone,
		SpecialistType: req.SpecialistType,
		SlotDatetime:   req.SlotDatetime,
		Reason:         req.Reason,
	})
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("failed to book appointment", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to book appointment",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"appointment": result.Appointment,
		"message":     result.Message,
	})
}

// handleConfirm appends a booking confirmation to the session's chat log so
// the transcript shows the appointment alongside the conversation.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	sessionID := domain.SessionID(req.SessionID)
	if sessionID == "" {
		sessionID = "default"
	}

	metadata := map[string]any{
		"appointment_id": req.AppointmentID,
		"type":           "appointment_confirmation",
	}
	if req.Reasoning != "" {
		metadata["reasoning"] = req.Reasoning
	}

	s.sessions.SaveHistory(sessionID, "[Appointment "+req.AppointmentID+" booked]", domain.AgentResponse{
		AgentKind:  "system",
		Content:    req.Message,
		Confidence: 1.0,
		Metadata:   metadata,
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Confirmation saved"})
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.scheduler.Appointments()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      false,
			"error":        err.Error(),
			"appointments": []any{},
		})
		return
	}
	if appts == nil {
		appts = []*domain.Appointment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"appointments": appts,
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
