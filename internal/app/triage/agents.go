package triage

import (
	"context"
	"strings"

	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

// agentSpec is one entry in the closed agent table: the domain system prompt
// plus the advisory keyword set.
type agentSpec struct {
	systemPrompt string
	keywords     []string
}

// AgentSet holds the four dispatchable specialists. The table is built once at
// startup; dispatch is an exhaustive map lookup, not virtual dispatch.
type AgentSet struct {
	gen    domain.Generator
	agents map[domain.AgentKind]agentSpec
}

func NewAgentSet(gen domain.Generator) *AgentSet {
	return &AgentSet{
		gen: gen,
		agents: map[domain.AgentKind]agentSpec{
			domain.SymptomKind: {
				systemPrompt: symptomSystemPrompt,
				keywords: []string{
					"pain", "ache", "hurt", "symptom", "feel", "cramp",
					"nausea", "dizzy", "fever", "cough", "bleeding", "swelling",
				},
			},
			domain.MedicationKind: {
				systemPrompt: medicationSystemPrompt,
				keywords: []string{
					"medication", "medicine", "drug", "pill", "prescription",
					"dosage", "dose", "tablet", "capsule", "pharmacy",
				},
			},
			domain.LifestyleKind: {
				systemPrompt: lifestyleSystemPrompt,
				keywords: []string{
					"diet", "exercise", "sleep", "stress", "nutrition",
					"workout", "food", "eat", "lifestyle", "habit", "routine",
				},
			},
			domain.FallbackKind: {
				systemPrompt: fallbackSystemPrompt,
			},
		},
	}
}

// Has reports whether kind is a dispatchable agent.
func (s *AgentSet) Has(kind domain.AgentKind) bool {
	_, ok := s.agents[kind]
	return ok
}

// SystemPrompt returns the domain prompt for kind, empty if unknown.
func (s *AgentSet) SystemPrompt(kind domain.AgentKind) string {
	return s.agents[kind].systemPrompt
}

// ShouldHandle is the advisory keyword predicate. Dispatch never consults it,
// routing is entirely the Router's job, but it stays available for offline
// evaluation. The fallback agent accepts everything.
func (s *AgentSet) ShouldHandle(kind domain.AgentKind, query string) bool {
	spec, ok := s.agents[kind]
	if !ok {
		return false
	}
	if kind == domain.FallbackKind {
		return true
	}
	q := strings.ToLower(query)
	for _, kw := range spec.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Process answers the query as the given specialist: compose the prompt, make
// one generation call, wrap the text. A generation failure becomes a
// zero-confidence apology; Process never returns an error.
func (s *AgentSet) Process(ctx context.Context, kind domain.AgentKind, query string, convCtx *domain.Context) domain.AgentResponse {
	log := observability.LoggerFromContext(ctx).With("agent", kind)

	spec, ok := s.agents[kind]
	if !ok {
		// Unreachable with the closed enumeration; degrade like any other failure.
		log.Error("process called with unknown agent kind")
		return domain.AgentResponse{
			AgentKind:  kind,
			Content:    apologyContent,
			Confidence: 0.0,
			Metadata:   map[string]any{"error": "unknown agent kind"},
		}
	}

	prompt := composePrompt(spec.systemPrompt, convCtx, query)

	content, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Error("agent generation failed", "error", err)
		return domain.AgentResponse{
			AgentKind:  kind,
			Content:    apologyContent,
			Confidence: 0.0,
			Metadata:   map[string]any{"error": err.Error()},
		}
	}

	return domain.AgentResponse{
		AgentKind:  kind,
		Content:    content,
		Confidence: 1.0,
		Metadata:   map[string]any{},
	}
}
