package domain

// MaxContextMessages caps the per-session history at the last 5 exchanges.
const MaxContextMessages = 10

// Message is a single turn fragment in a conversation. Immutable once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Context is the mutable per-session state threaded through every call:
// bounded message history plus the agent that handled the previous turn.
type Context struct {
	Messages     []Message      `json:"messages"`
	CurrentAgent AgentKind      `json:"current_agent,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func NewContext() *Context {
	return &Context{Metadata: map[string]any{}}
}

// Append adds messages and drops the oldest entries once the cap is exceeded,
// preserving order.
func (c *Context) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
	if len(c.Messages) > MaxContextMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxContextMessages:]
	}
}

// RoutingDecision is the router's structured output driving dispatch. It is
// produced fresh per query and embedded into response metadata, never stored.
type RoutingDecision struct {
	TargetAgent AgentKind `json:"target_agent"`
	Reasoning   string    `json:"reasoning"`
	Confidence  float64   `json:"confidence"`
}

// AgentResponse is the dispatched agent's answer. Confidence 0.0 signals an
// internal failure that was absorbed into a degraded response.
type AgentResponse struct {
	AgentKind  AgentKind      `json:"agent_type"`
	Content    string         `json:"content"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
}
