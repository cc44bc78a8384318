package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/mamahealth/triage-agent/internal/adapters/http"
	"github.com/mamahealth/triage-agent/internal/adapters/llm"
	"github.com/mamahealth/triage-agent/internal/adapters/storage/memory"
	"github.com/mamahealth/triage-agent/internal/app/scheduling"
	"github.com/mamahealth/triage-agent/internal/app/session"
	"github.com/mamahealth/triage-agent/internal/app/triage"
	"github.com/mamahealth/triage-agent/internal/observability"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	tracer, meter := observability.NoopTelemetry()
	orch, err := triage.NewOrchestrator(llm.NewMockLLM(), 0, tracer, meter)
	if err != nil {
		t.Fatalf("NewOrchestrator failed: %v", err)
	}

	sessions := session.NewManager(memory.NewContextStore(), memory.NewHistoryStore())
	scheduler := scheduling.NewService(memory.NewAppointmentStore())

	return httpadapter.NewServer(orch, sessions, scheduler, true)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	rec := getJSON(t, h, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", body["status"])
	}
	if body["orchestrator_ready"] != true {
		t.Fatal("expected orchestrator_ready true")
	}
	if body["env_loaded"] != true {
		t.Fatal("expected env_loaded true")
	}
}

func TestProcessReturnsAgentResponse(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/process", map[string]string{
		"text":       "Hello there",
		"session_id": "s1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["original"] != "Hello there" {
		t.Fatalf("expected original echoed, got %v", body["original"])
	}
	if body["agent"] != "fallback" {
		t.Fatalf("mock backend routes to fallback, got %v", body["agent"])
	}
	if body["confidence"].(float64) != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", body["confidence"])
	}
	ts, _ := body["timestamp"].(string)
	if !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp with Z suffix, got %q", ts)
	}

	metadata, ok := body["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("expected metadata object, got %T", body["metadata"])
	}
	routing, ok := metadata["routing"].(map[string]any)
	if !ok {
		t.Fatalf("expected routing decision in metadata, got %T", metadata["routing"])
	}
	if routing["target_agent"] != "fallback" {
		t.Fatalf("unexpected routing target %v", routing["target_agent"])
	}
}

func TestProcessRejectsEmptyText(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/process", map[string]string{"text": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProcessRejectsGet(t *testing.T) {
	h := newTestServer(t)

	rec := getJSON(t, h, "/api/process")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHistoryAfterProcess(t *testing.T) {
	h := newTestServer(t)

	postJSON(t, h, "/api/process", map[string]string{
		"text":       "I have a headache",
		"session_id": "s1",
	})

	rec := getJSON(t, h, "/api/history?session_id=s1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["session_id"] != "s1" {
		t.Fatalf("expected session s1, got %v", body["session_id"])
	}
	messages, ok := body["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected 1 logged interaction, got %v", body["messages"])
	}
	first := messages[0].(map[string]any)
	if first["user"] != "I have a headache" {
		t.Fatalf("unexpected logged user message %v", first["user"])
	}
}

func TestNewChatAndList(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/chats/new", map[string]string{})
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Fatalf("expected success, got %v", body)
	}
	sessionID, _ := body["session_id"].(string)
	if !strings.HasPrefix(sessionID, "chat_") {
		t.Fatalf("expected chat_ session id, got %q", sessionID)
	}

	// A processed turn makes the chat show up in the listing.
	postJSON(t, h, "/api/process", map[string]string{"text": "hello"})

	rec = getJSON(t, h, "/api/chats/list")
	body = decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	if body["current_session_id"] != sessionID {
		t.Fatalf("expected current session %s, got %v", sessionID, body["current_session_id"])
	}
	chats := body["chats"].([]any)
	if len(chats) != 1 {
		t.Fatalf("expected 1 chat, got %d", len(chats))
	}
	chat := chats[0].(map[string]any)
	if chat["preview"] != "hello" {
		t.Fatalf("expected first user message as preview, got %v", chat["preview"])
	}
	if chat["is_active"] != true {
		t.Fatal("expected the current chat to be marked active")
	}
}

func TestSwitchChat(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/chats/switch", map[string]string{"session_id": "other"})
	body := decodeBody(t, rec)
	if body["success"] != true || body["session_id"] != "other" {
		t.Fatalf("unexpected switch response %v", body)
	}

	rec = postJSON(t, h, "/api/chats/switch", map[string]string{})
	body = decodeBody(t, rec)
	if body["success"] != false {
		t.Fatal("expected switch without session_id to fail")
	}
}

func TestSpecialistTypes(t *testing.T) {
	h := newTestServer(t)

	rec := getJSON(t, h, "/api/appointments/specialist-types")
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	specialists := body["specialists"].([]any)
	if len(specialists) == 0 {
		t.Fatal("expected specialist types")
	}
	for _, s := range specialists {
		if s.(map[string]any)["type"] == "Emergency Medicine" {
			t.Fatal("Emergency Medicine must not be listed as bookable")
		}
	}
}

func TestGetSpecialistsForCondition(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/appointments/get-specialists", map[string]string{
		"condition": "crushing chest pain",
	})
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	specialists := body["specialists"].([]any)
	if len(specialists) == 0 {
		t.Fatal("expected specialists for chest pain")
	}
}

func TestGetSlots(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/appointments/get-slots", map[string]string{
		"specialist_type": "Cardiologist",
	})
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	slots := body["slots"].([]any)
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	first := slots[0].(map[string]any)
	if first["available"] != true {
		t.Fatalf("expected available slot, got %v", first)
	}
}

func TestBookAndListAppointments(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/appointments/book", map[string]string{
		"patient_name":    "Ada",
		"specialist_type": "Cardiologist",
		"slot_datetime":   "2026-09-01T09:00:00Z",
		"reason":          "Chest pain",
	})
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected booking success, got %v", body)
	}
	appt := body["appointment"].(map[string]any)
	if appt["id"] != "APT-0001" {
		t.Fatalf("expected APT-0001, got %v", appt["id"])
	}
	message, _ := body["message"].(string)
	if !strings.Contains(message, "confirmed") {
		t.Fatalf("expected confirmation message, got %q", message)
	}

	rec = getJSON(t, h, "/api/appointments")
	body = decodeBody(t, rec)
	appts := body["appointments"].([]any)
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
}

func TestConfirmAppendsToHistory(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/appointments/confirm", map[string]string{
		"session_id":     "s1",
		"appointment_id": "APT-0001",
		"message":        "See you on Monday!",
	})
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}

	rec = getJSON(t, h, "/api/history?session_id=s1")
	hist := decodeBody(t, rec)
	messages := hist["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected confirmation entry in history, got %v", hist["messages"])
	}
	entry := messages[0].(map[string]any)
	if entry["agent"] != "system" {
		t.Fatalf("expected system entry, got %v", entry["agent"])
	}
}

func TestCORSHeaders(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/process", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected permissive CORS origin")
	}
}
