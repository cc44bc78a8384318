package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/mamahealth/triage-agent/internal/adapters/http"
	"github.com/mamahealth/triage-agent/internal/adapters/llm"
	filestore "github.com/mamahealth/triage-agent/internal/adapters/storage/file"
	firestorestore "github.com/mamahealth/triage-agent/internal/adapters/storage/firestore"
	memstore "github.com/mamahealth/triage-agent/internal/adapters/storage/memory"
	"github.com/mamahealth/triage-agent/internal/app/scheduling"
	"github.com/mamahealth/triage-agent/internal/app/session"
	"github.com/mamahealth/triage-agent/internal/app/triage"
	"github.com/mamahealth/triage-agent/internal/config"
	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger := observability.Init(cfg.LogFile)

	tracer, meter := observability.NoopTelemetry()
	if cfg.EnableTelemetry {
		var shutdown func()
		var err error
		tracer, meter, shutdown, err = observability.InitTelemetry(ctx, cfg.TelemetryDir)
		if err != nil {
			log.Fatalf("error initializing telemetry: %v", err)
		}
		defer shutdown()
	}

	// Generation capability: Gemini, OpenAI or mock
	var (
		generator domain.Generator
		err       error
	)
	switch cfg.LLMBackend {
	case config.BackendMock:
		logger.Info("using mock generation backend")
		generator = llm.NewMockLLM()
	case config.BackendOpenAI:
		logger.Info("using OpenAI generation backend", "model", cfg.ModelName)
		generator, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing OpenAI client: %v", err)
		}
	default:
		logger.Info("using Gemini generation backend", "model", cfg.ModelName)
		generator, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	// Persistence: file (default), memory, or Firestore
	var historyStore domain.HistoryStore
	var appointmentStore domain.AppointmentStore

	switch cfg.StorageBackend {
	case config.StorageFirestore:
		if cfg.GCPProjectID == "" {
			log.Fatal("TRIAGE_GCP_PROJECT is required for the Firestore storage backend")
		}
		logger.Info("using Firestore storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 2 interfaces
		historyStore = fsStore
		appointmentStore = fsStore

	case config.StorageMemory:
		logger.Info("using in-memory storage")
		historyStore = memstore.NewHistoryStore()
		appointmentStore = memstore.NewAppointmentStore()

	default:
		logger.Info("using file storage", "prompts_dir", cfg.PromptsDir, "data_dir", cfg.DataDir)
		historyStore, err = filestore.NewHistoryStore(cfg.PromptsDir)
		if err != nil {
			log.Fatalf("error initializing history store: %v", err)
		}
		appointmentStore, err = filestore.NewAppointmentStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("error initializing appointment store: %v", err)
		}
	}

	orchestrator, err := triage.NewOrchestrator(generator, cfg.GenerateTimeout, tracer, meter)
	if err != nil {
		log.Fatalf("error initializing orchestrator: %v", err)
	}

	sessions := session.NewManager(memstore.NewContextStore(), historyStore)
	scheduler := scheduling.NewService(appointmentStore)

	envLoaded := cfg.GeminiAPIKey != "" || cfg.OpenAIAPIKey != "" || cfg.LLMBackend == config.BackendMock
	handler := httpadapter.NewServer(orchestrator, sessions, scheduler, envLoaded)

	addr := ":" + cfg.Port
	logger.Info("triage API listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
