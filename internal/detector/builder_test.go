package detector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/promisekeeper/internal/llm"
)

func TestBuildChatPrompt_NoContext(t *testing.T) {
	in, err := NormalizeChat(ChatRequest{Message: "I'll have it done by Friday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := BuildChatPrompt(in)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != systemPrompt {
		t.Errorf("expected system prompt first, got %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleUser || msgs[1].Content != "I'll have it done by Friday" {
		t.Errorf("expected current message verbatim, got %+v", msgs[1])
	}
}

func TestBuildChatPrompt_ContextOrderAndCap(t *testing.T) {
	prev := make([]ChatMessage, 40)
	for i := range prev {
		prev[i] = ChatMessage{Sender: "Alice", Text: fmt.Sprintf("note %d", i)}
	}
	in, err := NormalizeChat(ChatRequest{Message: "Will do", PreviousMessages: prev})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := BuildChatPrompt(in)

	if len(msgs) != 1+MaxContextTurns+1 {
		t.Fatalf("expected %d messages, got %d", MaxContextTurns+2, len(msgs))
	}
	for i := 0; i < MaxContextTurns; i++ {
		want := fmt.Sprintf("Alice: note %d", i)
		if got := msgs[i+1].Content; got != want {
			t.Errorf("context %d: expected %q, got %q", i, want, got)
		}
		if msgs[i+1].Role != llm.RoleUser {
			t.Errorf("context %d: expected user role, got %q", i, msgs[i+1].Role)
		}
	}
	if last := msgs[len(msgs)-1]; last.Content != "Will do" || last.Role != llm.RoleUser {
		t.Errorf("expected current message last, got %+v", last)
	}
}

func TestFormatTurn(t *testing.T) {
	req := ConversationTurn{Sender: "Alice", Text: "Can you send the report?", IsRequest: IsRequestText("Can you send the report?")}
	if got := FormatTurn(req); got != "[REQUEST] Alice: Can you send the report?" {
		t.Errorf("unexpected request rendering %q", got)
	}

	plain := ConversationTurn{Sender: "Bob", Text: "Thanks for the update", IsRequest: IsRequestText("Thanks for the update")}
	if got := FormatTurn(plain); got != "Bob: Thanks for the update" {
		t.Errorf("unexpected plain rendering %q", got)
	}
}

func TestBuildChatPrompt_CurrentMessageNeverMarked(t *testing.T) {
	in, err := NormalizeChat(ChatRequest{Message: "Can you do it? Yes, I can."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := BuildChatPrompt(in)

	if strings.HasPrefix(msgs[len(msgs)-1].Content, requestMarker) {
		t.Errorf("current message must not carry the request marker: %q", msgs[len(msgs)-1].Content)
	}
}

func TestBuildThreadPrompt(t *testing.T) {
	in, err := NormalizeThread(ThreadRequest{Thread: &EmailThread{Messages: []EmailMessage{
		{From: "alice@example.com", Date: "Mon, 6 May 2024", Body: "Could you send the deck?"},
		{From: "Bob <bob@example.com>", Date: "Tue, 7 May 2024", Body: "Sure, sending today."},
	}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := BuildThreadPrompt(in)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != systemPrompt {
		t.Errorf("expected system prompt first, got %+v", msgs[0])
	}

	want := threadFraming +
		"From: alice@example.com\nDate: Mon, 6 May 2024\nBody:\nCould you send the deck?\n---\n" +
		"From: Bob <bob@example.com>\nDate: Tue, 7 May 2024\nBody:\nSure, sending today.\n---\n"
	if msgs[1].Role != llm.RoleUser || msgs[1].Content != want {
		t.Errorf("unexpected thread prompt:\n%s", msgs[1].Content)
	}
}

func TestSystemPrompt_DescribesSchema(t *testing.T) {
	for _, want := range []string{`"promises"`, `"requester"`, `"requestText"`, `"fullRequestText"`, `"commitmentText"`, "MOST RECENT or STRONGEST", "empty array"} {
		if !strings.Contains(systemPrompt, want) {
			t.Errorf("system prompt is missing %q", want)
		}
	}
}
