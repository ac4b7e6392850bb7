package detector

import "strings"

// MaxContextTurns caps how many prior chat messages are sent to the model.
const MaxContextTurns = 25

var requestPhrases = []string{"can you", "could you", "please", "would you", "will you"}

// IsRequestText reports whether text reads like a request: it ends with a
// question mark or contains one of the request phrases, case-insensitively.
func IsRequestText(text string) bool {
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range requestPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// NormalizeChat validates a chat request and shapes its context. The first
// MaxContextTurns previous messages are kept in the order given.
func NormalizeChat(req ChatRequest) (*ChatInput, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Message: "Message is required"}
	}

	source := req.Source
	switch source {
	case "":
		source = SourceSlack
	case SourceSlack, SourceGmail:
	default:
		return nil, &ValidationError{Message: "Source must be slack or gmail"}
	}

	prev := req.PreviousMessages
	if len(prev) > MaxContextTurns {
		prev = prev[:MaxContextTurns]
	}

	turns := make([]ConversationTurn, 0, len(prev))
	for _, m := range prev {
		turns = append(turns, ConversationTurn{
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: m.Timestamp,
			IsRequest: IsRequestText(m.Text),
		})
	}

	return &ChatInput{
		Current: req.Message,
		Context: turns,
		Source:  source,
	}, nil
}

// NormalizeThread validates an email thread request.
func NormalizeThread(req ThreadRequest) (*ThreadInput, error) {
	if req.Thread == nil || len(req.Thread.Messages) == 0 {
		return nil, &ValidationError{Message: "Valid Gmail thread is required"}
	}
	return &ThreadInput{
		Messages:  req.Thread.Messages,
		AvatarMap: req.AvatarMap,
	}, nil
}
