package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// schema is implemented by every structured output type
type schema interface {
	Validate() error
}

// decodeInto parses a model response into the target schema and validates it.
// The response may be wrapped in a markdown code block.
func decodeInto(content string, target schema) error {
	raw := extractJSON(content)
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return target.Validate()
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
