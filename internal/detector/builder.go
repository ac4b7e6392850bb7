package detector

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/promisekeeper/internal/llm"
)

// BuildChatPrompt renders the system prompt, one user message per context
// turn, and the current message last, unmarked.
func BuildChatPrompt(in *ChatInput) []llm.Message {
	msgs := make([]llm.Message, 0, len(in.Context)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range in.Context {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: FormatTurn(turn)})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: in.Current})
	return msgs
}

// FormatTurn renders a context turn as "sender: text", marked when it reads
// like a request.
func FormatTurn(turn ConversationTurn) string {
	line := turn.Sender + ": " + turn.Text
	if turn.IsRequest {
		return requestMarker + line
	}
	return line
}

// BuildThreadPrompt renders the whole thread into a single user message.
func BuildThreadPrompt(in *ThreadInput) []llm.Message {
	var sb strings.Builder
	sb.WriteString(threadFraming)
	for _, m := range in.Messages {
		fmt.Fprintf(&sb, "From: %s\nDate: %s\nBody:\n%s\n---\n", m.From, m.Date, m.Body)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: sb.String()},
	}
}
