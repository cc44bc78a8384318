package triage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mamahealth/triage-agent/internal/domain"
)

func TestProcessWrapsGeneratedText(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, _ string) (string, error) {
		return "Rest and stay hydrated.", nil
	})
	agents := NewAgentSet(gen)

	resp := agents.Process(context.Background(), domain.SymptomKind, "I have a cold", domain.NewContext())

	if resp.AgentKind != domain.SymptomKind {
		t.Fatalf("expected symptom response, got %s", resp.AgentKind)
	}
	if resp.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", resp.Confidence)
	}
	if resp.Content != "Rest and stay hydrated." {
		t.Fatalf("unexpected content %q", resp.Content)
	}
}

func TestProcessGenerationFailureDegrades(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("network down")
	})
	agents := NewAgentSet(gen)

	resp := agents.Process(context.Background(), domain.MedicationKind, "aspirin dose?", nil)

	if resp.Confidence != 0.0 {
		t.Fatalf("expected confidence 0.0, got %v", resp.Confidence)
	}
	if resp.Content == "" {
		t.Fatal("expected apology content")
	}
	if resp.AgentKind != domain.MedicationKind {
		t.Fatalf("degraded response keeps agent kind, got %s", resp.AgentKind)
	}
	if _, ok := resp.Metadata["error"]; !ok {
		t.Fatal("expected diagnostic in metadata")
	}
}

func TestProcessUsesDomainSystemPrompt(t *testing.T) {
	var captured string
	gen := generatorFunc(func(_ context.Context, prompt string) (string, error) {
		captured = prompt
		return "ok", nil
	})
	agents := NewAgentSet(gen)

	agents.Process(context.Background(), domain.LifestyleKind, "how do I sleep better", nil)

	if !strings.Contains(captured, "Lifestyle & Wellness Coach") {
		t.Fatal("lifestyle prompt expected in generation call")
	}
	if !strings.HasSuffix(captured, "Assistant:") {
		t.Fatalf("prompt must end with the assistant cue, got %q", captured[len(captured)-40:])
	}
}

func TestShouldHandleKeywords(t *testing.T) {
	agents := NewAgentSet(generatorFunc(func(_ context.Context, _ string) (string, error) {
		return "", nil
	}))

	tests := []struct {
		kind  domain.AgentKind
		query string
		want  bool
	}{
		{domain.SymptomKind, "I have a sharp pain in my chest", true},
		{domain.SymptomKind, "what is a healthy breakfast", false},
		{domain.MedicationKind, "is this dosage safe", true},
		{domain.MedicationKind, "hello there", false},
		{domain.LifestyleKind, "how much exercise do I need", true},
		{domain.LifestyleKind, "my prescription ran out", false},
		{domain.FallbackKind, "anything at all", true},
	}

	for _, tt := range tests {
		if got := agents.ShouldHandle(tt.kind, tt.query); got != tt.want {
			t.Errorf("ShouldHandle(%s, %q) = %v, want %v", tt.kind, tt.query, got, tt.want)
		}
	}
}

func TestAgentSetIsClosed(t *testing.T) {
	agents := NewAgentSet(generatorFunc(func(_ context.Context, _ string) (string, error) {
		return "", nil
	}))

	for _, kind := range []domain.AgentKind{domain.SymptomKind, domain.MedicationKind, domain.LifestyleKind, domain.FallbackKind} {
		if !agents.Has(kind) {
			t.Errorf("expected agent set to contain %s", kind)
		}
	}
	if agents.Has(domain.RouterKind) {
		t.Error("router must not be a dispatchable agent")
	}
}
