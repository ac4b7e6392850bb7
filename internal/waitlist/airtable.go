package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAirtableURL = "https://api.airtable.com/v0"

// AirtableSink appends signups as rows of an Airtable table with Email and
// Date columns.
type AirtableSink struct {
	apiKey string
	baseID string
	table  string
	apiURL string
	client *http.Client
}

func NewAirtableSink(apiKey, baseID, table, apiURL string) *AirtableSink {
	if apiURL == "" {
		apiURL = defaultAirtableURL
	}
	return &AirtableSink{
		apiKey: apiKey,
		baseID: baseID,
		table:  table,
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *AirtableSink) Add(ctx context.Context, email string, joinedOn time.Time) error {
	body, err := json.Marshal(map[string]any{
		"fields": map[string]string{
			"Email": email,
			"Date":  joinedOn.Format(DateLayout),
		},
	})
	if err != nil {
		return fmt.Errorf("marshal airtable payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", a.apiURL, url.PathEscape(a.baseID), url.PathEscape(a.table))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("airtable post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("airtable error %d: %s", resp.StatusCode, airtableErrorMessage(respBody))
	}
	return nil
}

// airtableErrorMessage handles both {"error":{"message":...}} and
// {"error":"CODE"} bodies.
func airtableErrorMessage(body []byte) string {
	var withObject struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &withObject) == nil && withObject.Error.Message != "" {
		return withObject.Error.Message
	}

	var withCode struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &withCode) == nil && withCode.Error != "" {
		return withCode.Error
	}
	return "Airtable error"
}
