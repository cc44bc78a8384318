package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

// Router classifies queries into specialist agents using the generation
// capability itself. Route never fails past its boundary: every error path
// collapses into a fallback decision.
type Router struct {
	gen domain.Generator
}

func NewRouter(gen domain.Generator) *Router {
	return &Router{gen: gen}
}

// routingPayload is the strict JSON schema the classification model must emit.
type routingPayload struct {
	TargetAgent string  `json:"target_agent"`
	Reasoning   string  `json:"reasoning"`
	Confidence  float64 `json:"confidence"`
}

// Route builds the classification prompt, calls the generator, and parses the
// decision. When convCtx carries a previous agent, a note naming it is
// appended so bare follow-ups ("book an appointment") inherit that agent.
func (r *Router) Route(ctx context.Context, query string, convCtx *domain.Context) domain.RoutingDecision {
	log := observability.LoggerFromContext(ctx)

	var contextInfo string
	if convCtx != nil && convCtx.CurrentAgent != "" && convCtx.CurrentAgent != domain.RouterKind {
		contextInfo = fmt.Sprintf(
			"\n\nPrevious message context: User's last query was handled by the %s agent.",
			strings.ToUpper(string(convCtx.CurrentAgent)),
		)
	}

	prompt := fmt.Sprintf("%s%s\n\nRoute this query: %s", routerSystemPrompt, contextInfo, query)

	content, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		log.Error("routing generation failed", "error", err)
		return fallbackDecision(fmt.Sprintf("Error during routing: %v", err))
	}

	decision, err := parseDecision(content)
	if err != nil {
		log.Error("routing response unparsable", "error", err, "content", content)
		return fallbackDecision(fmt.Sprintf("Error during routing: %v", err))
	}

	log.Info("query routed",
		"target_agent", decision.TargetAgent,
		"confidence", decision.Confidence)
	return decision
}

func fallbackDecision(reasoning string) domain.RoutingDecision {
	return domain.RoutingDecision{
		TargetAgent: domain.FallbackKind,
		Reasoning:   reasoning,
		Confidence:  0.5,
	}
}

// parseDecision extracts the JSON payload, tolerating a fenced code block
// around it, and validates the target against the closed enumeration.
func parseDecision(content string) (domain.RoutingDecision, error) {
	payload := extractJSON(content)

	var p routingPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return domain.RoutingDecision{}, fmt.Errorf("decoding routing response: %w", err)
	}

	kind, ok := domain.ParseAgentKind(p.TargetAgent)
	if !ok || kind == domain.RouterKind {
		return domain.RoutingDecision{}, fmt.Errorf("unknown target agent %q", p.TargetAgent)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return domain.RoutingDecision{}, fmt.Errorf("confidence %v out of range", p.Confidence)
	}

	return domain.RoutingDecision{
		TargetAgent: kind,
		Reasoning:   p.Reasoning,
		Confidence:  p.Confidence,
	}, nil
}

// extractJSON strips markdown fencing that generation models tend to wrap
// around JSON output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.Index(content, "```json"); i >= 0 {
		content = content[i+len("```json"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	if i := strings.Index(content, "```"); i >= 0 {
		content = content[i+len("```"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	return content
}
