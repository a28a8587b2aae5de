package service

import (
	"encoding/json"
	"log"
	"strings"
)

// ExtractRecipeJSON strips any Markdown code fence the model wrapped around
// its output and decodes the remainder as JSON. The result is untyped; it has
// not yet been checked against the recipe schema.
func ExtractRecipeJSON(raw string) (map[string]interface{}, error) {
	text := stripCodeFence(raw)

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		log.Printf("[LLMService] JSON parse error: %v", err)
		return nil, ErrMalformedResponse
	}
	return decoded, nil
}

// stripCodeFence removes a leading/trailing triple-backtick fence, optionally
// tagged "json". Bare JSON passes through unchanged.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
