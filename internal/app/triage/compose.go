package triage

import (
	"strings"

	"github.com/mamahealth/triage-agent/internal/domain"
)

// transcriptWindow bounds how much history is rendered into an agent prompt.
const transcriptWindow = 5

// composePrompt builds the full text sent to the generation capability:
// system prompt, then a transcript of at most the last transcriptWindow
// messages in original order, then the literal query. Pure; never mutates the
// context.
func composePrompt(systemPrompt string, convCtx *domain.Context, query string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if convCtx != nil && len(convCtx.Messages) > 0 {
		msgs := convCtx.Messages
		if len(msgs) > transcriptWindow {
			msgs = msgs[len(msgs)-transcriptWindow:]
		}
		b.WriteString("Conversation history:\n")
		for _, m := range msgs {
			b.WriteString(string(m.Role))
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("User: ")
	b.WriteString(query)
	b.WriteString("\n\nAssistant:")

	return b.String()
}
