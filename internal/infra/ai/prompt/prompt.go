package prompt

import (
	"encoding/json"
	"strings"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
)

// GetSystemPrompt returns the fixed mentor instructions: score the text on the
// four rubric dimensions and answer with strict JSON only.
func GetSystemPrompt() string {
	return "Ты — опытный ментор. Проанализируй предоставленный текст по критериям: " +
		strings.Join(ai.Dimensions, ", ") + ". " +
		"Верни строго JSON с полями: overall (structure,content,grammar,style), details (grammar,structure,content,style) " +
		"каждый раздел — объект { score: number, issues: [ { text: string, recommendation: string } ] }, " +
		"и overall_comment. Return only valid JSON. No extra text.\n\n" +
		"Schema (example with empty values):\n" + schemaExample()
}

// GetUserPrompt builds the user message. The text is sent as-is.
func GetUserPrompt(text string) string {
	return text
}

func schemaExample() string {
	sample := ai.Rubric{
		Details: ai.Sections{
			Grammar:   ai.Section{Issues: []ai.Issue{{}}},
			Structure: ai.Section{Issues: []ai.Issue{{}}},
			Content:   ai.Section{Issues: []ai.Issue{{}}},
			Style:     ai.Section{Issues: []ai.Issue{{}}},
		},
	}
	b, err := json.Marshal(sample)
	if err != nil {
		return "{}"
	}
	return string(b)
}
