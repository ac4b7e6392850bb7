package detector

import (
	"encoding/json"
	"strings"
)

// ParseDetection decodes the model reply. When the reply is not JSON as a
// whole, the span from the first '{' to the last '}' is tried instead.
func ParseDetection(content string) ([]DetectedCommitment, error) {
	if promises, ok := decodePromises(content); ok {
		return promises, nil
	}
	if extracted, ok := ExtractJSON(content); ok {
		if promises, ok := decodePromises(extracted); ok {
			return promises, nil
		}
	}
	return nil, ErrMalformedResponse
}

// decodePromises requires a "promises" array; an object without one is not
// a usable reply.
func decodePromises(s string) ([]DetectedCommitment, bool) {
	var res detectionResult
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		return nil, false
	}
	if res.Promises == nil {
		return nil, false
	}
	return res.Promises, true
}

// ExtractJSON returns text from the first '{' through the last '}'. It does
// not balance braces.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return "", false
	}
	return text[start : end+1], true
}
