package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	client openai.Client
}

// NewClient builds an OpenAI chat-completions client. The SDK's automatic
// retries are turned off: a failed call surfaces to the caller immediately.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
			option.WithHTTPClient(&http.Client{Timeout: timeout}),
		),
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// APIError is returned when the provider answers with a non-success status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai api error %d: %s", e.StatusCode, e.Body)
}

// Complete sends one chat completion and returns the first choice's text.
// A successful reply without choices yields an empty string and no error.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       req.Model,
		Messages:    convertMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{StatusCode: apiErr.StatusCode, Body: errorBody(apiErr)}
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	slog.DebugContext(ctx, "chat completion finished",
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"choices", len(resp.Choices),
	)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func errorBody(e *openai.Error) string {
	if raw := e.RawJSON(); raw != "" {
		return raw
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}
