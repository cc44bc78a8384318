package triage

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mamahealth/triage-agent/internal/domain"
	"github.com/mamahealth/triage-agent/internal/observability"
)

// Orchestrator is the single entry point of the triage pipeline. One turn is
// two sequential generation calls: routing, then the selected agent's answer.
// Both are fallible; neither failure crosses this boundary as an error.
type Orchestrator struct {
	router *Router
	agents *AgentSet

	tracer  trace.Tracer
	queries metric.Int64Counter
}

// NewOrchestrator wires the router and agent set around gen. A nil generator
// is a configuration failure: construction fails outright instead of limping
// into the first request. Each generation call is capped at timeout; expiry is
// treated as a generation failure.
func NewOrchestrator(gen domain.Generator, timeout time.Duration, tracer trace.Tracer, meter metric.Meter) (*Orchestrator, error) {
	if gen == nil {
		return nil, fmt.Errorf("orchestrator requires a generation capability")
	}
	if timeout > 0 {
		gen = &timeoutGenerator{next: gen, timeout: timeout}
	}

	queries, err := meter.Int64Counter("triage.queries.processed")
	if err != nil {
		return nil, fmt.Errorf("creating queries counter: %w", err)
	}

	return &Orchestrator{
		router:  NewRouter(gen),
		agents:  NewAgentSet(gen),
		tracer:  tracer,
		queries: queries,
	}, nil
}

// Agents exposes the agent table for advisory use (keyword heuristics).
func (o *Orchestrator) Agents() *AgentSet {
	return o.agents
}

// ProcessQuery runs one turn: route the query, dispatch to the selected
// agent, and finalize the response. It always returns a response; failures
// degrade per the router and agent contracts. It does not mutate convCtx,
// callers pair it with UpdateContext.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string, convCtx *domain.Context) domain.AgentResponse {
	log := observability.LoggerFromContext(ctx)

	if convCtx == nil {
		convCtx = domain.NewContext()
	}

	rctx, routeSpan := o.tracer.Start(ctx, "triage.route")
	decision := o.router.Route(rctx, query, convCtx)
	routeSpan.SetAttributes(
		attribute.String("triage.target_agent", string(decision.TargetAgent)),
		attribute.Float64("triage.routing_confidence", decision.Confidence),
	)
	routeSpan.End()

	target := decision.TargetAgent
	if !o.agents.Has(target) {
		// Defensive: the enumeration is closed, so this is an invariant
		// violation worth flagging, not a user-visible failure.
		log.Error("routing decision names unknown agent, substituting fallback",
			"target_agent", target)
		target = domain.FallbackKind
	}

	pctx, respondSpan := o.tracer.Start(ctx, "triage.respond",
		trace.WithAttributes(attribute.String("triage.agent", string(target))))
	response := o.agents.Process(pctx, target, query, convCtx)
	respondSpan.End()

	if response.Metadata == nil {
		response.Metadata = map[string]any{}
	}
	response.Metadata["routing"] = decision

	o.queries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent", string(response.AgentKind)),
	))

	return response
}

// UpdateContext appends the turn's user and assistant messages, records which
// agent answered, and enforces the history cap. Callers must invoke it right
// after ProcessQuery, once per turn, and persist the returned context; the
// orchestrator retains nothing across calls.
func (o *Orchestrator) UpdateContext(convCtx *domain.Context, userQuery string, response domain.AgentResponse) *domain.Context {
	convCtx.Append(
		domain.Message{Role: domain.RoleUser, Content: userQuery},
		domain.Message{Role: domain.RoleAssistant, Content: response.Content},
	)
	convCtx.CurrentAgent = response.AgentKind
	return convCtx
}

// timeoutGenerator caps every generation call. A hung call surfaces as a
// context deadline error and follows the ordinary failure paths.
type timeoutGenerator struct {
	next    domain.Generator
	timeout time.Duration
}

func (g *timeoutGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.next.Generate(ctx, prompt)
}
