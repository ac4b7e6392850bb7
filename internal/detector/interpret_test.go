package detector

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDetection_DirectJSON(t *testing.T) {
	raw := `{"promises":[{"requester":"Alice","requestText":"send deck","fullRequestText":"Could you send the deck?","commitmentText":"Sure"}]}`

	got, err := ParseDetection(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Requester != "Alice" || got[0].CommitmentText != "Sure" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestParseDetection_WrappedInProse(t *testing.T) {
	raw := "Here is the result: {\"promises\":[{\"requester\":\"Bob\",\"requestText\":\"send report\",\"fullRequestText\":\"Can you send the report?\",\"commitmentText\":\"Sure, I'll send it\"}]} Thanks!"

	got, err := ParseDetection(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 commitment, got %d", len(got))
	}
	if got[0].Requester != "Bob" {
		t.Errorf("expected requester Bob, got %q", got[0].Requester)
	}
	if got[0].FullRequestText != "Can you send the report?" {
		t.Errorf("unexpected full request text %q", got[0].FullRequestText)
	}
}

func TestParseDetection_MarkdownFence(t *testing.T) {
	raw := "```json\n{\"promises\": []}\n```"

	got, err := ParseDetection(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestParseDetection_Malformed(t *testing.T) {
	cases := []string{
		"no json here",
		"} backwards {",
		`{"promises": [ {"requester": "A"} `,
		`{}`,
		`{"promises": null}`,
		`[]`,
		// Two objects: first '{' to last '}' spans both and is not valid JSON.
		`{"promises": []} and also {"promises": []}`,
	}
	for _, raw := range cases {
		_, err := ParseDetection(raw)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ParseDetection(%q): expected ErrMalformedResponse, got %v", raw, err)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{`prefix {"a":1} suffix`, `{"a":1}`, true},
		{`{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{`x {"a":1} y {"b":2} z`, `{"a":1} y {"b":2}`, true},
		{`no braces`, "", false},
		{`only open {`, "", false},
		{`} then {`, "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractJSON(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ExtractJSON(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDetectionResult_RoundTrip(t *testing.T) {
	in := detectionResult{Promises: []DetectedCommitment{
		{Requester: "Alice", RequestText: "send deck", FullRequestText: "Could you send the deck?", CommitmentText: "Sure"},
		{Requester: "Unknown", RequestText: "review PR", FullRequestText: "", CommitmentText: "I'll take a look"},
	}}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ParseDetection(string(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(in.Promises) {
		t.Fatalf("expected %d commitments, got %d", len(in.Promises), len(got))
	}
	for i := range got {
		if got[i] != in.Promises[i] {
			t.Errorf("commitment %d: got %+v, want %+v", i, got[i], in.Promises[i])
		}
	}
}
