package detector

// Source tags where a commitment was found.
type Source string

const (
	SourceSlack Source = "slack"
	SourceGmail Source = "gmail"
)

// ChatMessage is a prior chat message as sent by the app.
type ChatMessage struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Sender         string `json:"sender"`
	UserID         string `json:"userId"`
	Timestamp      string `json:"timestamp"`
	ConversationID string `json:"conversationId"`
}

// ChatRequest is the body of a chat-style detection request.
type ChatRequest struct {
	Message          string        `json:"message"`
	PreviousMessages []ChatMessage `json:"previousMessages,omitempty"`
	Source           Source        `json:"source,omitempty"`
}

type EmailMessage struct {
	From string `json:"from"`
	Date string `json:"date"`
	Body string `json:"body"`
}

type EmailThread struct {
	Messages []EmailMessage `json:"messages"`
}

// ThreadRequest is the body of an email-thread detection request.
type ThreadRequest struct {
	Thread    *EmailThread `json:"thread"`
	AvatarMap AvatarMap    `json:"avatarMap,omitempty"`
}

// ConversationTurn is one normalized message of chat context.
type ConversationTurn struct {
	Sender    string
	Text      string
	Timestamp string
	IsRequest bool // derived from Text, see IsRequestText
}

// ChatInput is a validated chat request.
type ChatInput struct {
	Current string
	Context []ConversationTurn
	Source  Source
}

// ThreadInput is a validated email thread request.
type ThreadInput struct {
	Messages  []EmailMessage
	AvatarMap AvatarMap
}

// DetectedCommitment is one entry of the model's JSON reply.
type DetectedCommitment struct {
	Requester       string `json:"requester"`
	RequestText     string `json:"requestText"`
	FullRequestText string `json:"fullRequestText"`
	CommitmentText  string `json:"commitmentText"`
}

type detectionResult struct {
	Promises []DetectedCommitment `json:"promises"`
}

// CommitmentRecord is what the app receives for each detected commitment.
type CommitmentRecord struct {
	ID                string `json:"id"`
	From              string `json:"from"`
	Text              string `json:"text"`
	Date              string `json:"date"`
	Source            Source `json:"source"`
	IsIncomingRequest bool   `json:"isIncomingRequest"`
	FullText          string `json:"fullText"`
	CommitmentText    string `json:"commitmentText"`
	AvatarURL         string `json:"avatarURL,omitempty"`
}
