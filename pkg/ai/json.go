package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips markdown fences and surrounding prose from a model reply
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end < start {
		return text[start:]
	}
	return text[start : end+1]
}

// DecodeJSON extracts and unmarshals a model reply into v
func DecodeJSON(text string, v any) error {
	cleaned := ExtractJSON(text)
	if cleaned == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}
