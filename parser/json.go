package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSON isolates the JSON payload in model output. It strips markdown
// code fences (``` or ```json) and any prose before the first brace or
// bracket and after the matching last one. Output that carries no JSON
// payload is returned unchanged so decoding fails with the real content
// in the error.
func CleanJSON(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "\n"); idx >= 0 {
			// Drop the language tag on the opening fence line.
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}

	var end int
	if s[start] == '{' {
		end = strings.LastIndex(s, "}")
	} else {
		end = strings.LastIndex(s, "]")
	}
	if end <= start {
		return s
	}

	return s[start : end+1]
}

// Decode decodes model output into v after isolating its JSON payload.
func Decode(content string, v any) error {
	if err := json.Unmarshal([]byte(CleanJSON(content)), v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// ParseJSON parses a single JSON object from model output using generics.
func ParseJSON[T any](content string) (*T, error) {
	var result T
	if err := Decode(content, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseJSONArray parses a JSON array from model output into a slice.
func ParseJSONArray[T any](content string) ([]T, error) {
	var results []T
	if err := Decode(content, &results); err != nil {
		return nil, err
	}
	return results, nil
}
