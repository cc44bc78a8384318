package config

import (
	"os"
	"strconv"
	"time"
)

const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
	BackendMock   = "mock"

	StorageFile      = "file"
	StorageMemory    = "memory"
	StorageFirestore = "firestore"
)

type Config struct {
	Port string

	// Generation capability
	LLMBackend      string // "gemini", "openai" or "mock"
	GeminiAPIKey    string
	OpenAIAPIKey    string
	ModelName       string
	GenerateTimeout time.Duration

	// Persistence
	StorageBackend string // "file", "memory" or "firestore"
	PromptsDir     string // flat chat-history logs
	DataDir        string // appointments
	GCPProjectID   string

	// Observability
	LogFile         string
	TelemetryDir    string
	EnableTelemetry bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// Load reads all env vars and builds the config
func Load() *Config {
	return &Config{
		Port: getEnv("TRIAGE_PORT", "8080"),

		LLMBackend:      getEnv("TRIAGE_LLM_BACKEND", BackendGemini),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		ModelName:       getEnv("TRIAGE_MODEL_NAME", "gemini-flash-latest"),
		GenerateTimeout: time.Duration(getIntEnv("TRIAGE_GENERATE_TIMEOUT_SECONDS", 30)) * time.Second,

		StorageBackend: getEnv("TRIAGE_STORAGE_BACKEND", StorageFile),
		PromptsDir:     getEnv("TRIAGE_PROMPTS_DIR", "prompts"),
		DataDir:        getEnv("TRIAGE_DATA_DIR", "data"),
		GCPProjectID:   getEnv("TRIAGE_GCP_PROJECT", ""),

		LogFile:         getEnv("TRIAGE_LOG_FILE", ""),
		TelemetryDir:    getEnv("TRIAGE_TELEMETRY_DIR", "logs"),
		EnableTelemetry: getBoolEnv("TRIAGE_TELEMETRY", false),
	}
}
