package proof

import (
	"encoding/json"
	"fmt"
	"strings"
)

// verdict is the JSON object the model returns for a single sentence. An
// empty ErrorType means the sentence is clean.
type verdict struct {
	OriginalText string `json:"original_text"`
	ErrorType    string `json:"error_type"`
	Description  string `json:"description"`
	CheckedText  string `json:"checked_text"`
}

func parseVerdict(content string) (verdict, error) {
	content = strings.TrimSpace(content)

	// Strip markdown code fences if present
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) >= 2 {
			start := 1
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end = end - 1
			}
			content = strings.Join(lines[start:end], "\n")
		}
	}

	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return verdict{}, fmt.Errorf("invalid verdict JSON: %w", err)
	}
	return v, nil
}
