package prompt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetSystemPrompt_MentionsRubricAndStrictJSON(t *testing.T) {
	p := GetSystemPrompt()
	for _, want := range []string{"structure", "content", "grammar", "style", "overall_comment", "Return only valid JSON"} {
		if !strings.Contains(p, want) {
			t.Fatalf("system prompt missing %q:\n%s", want, p)
		}
	}
}

func TestSchemaExample_IsValidJSON(t *testing.T) {
	var v map[string]any
	if err := json.Unmarshal([]byte(schemaExample()), &v); err != nil {
		t.Fatalf("schema example is not JSON: %v", err)
	}
	for _, k := range []string{"overall", "details", "overall_comment"} {
		if _, ok := v[k]; !ok {
			t.Fatalf("schema example missing key %q", k)
		}
	}
}

func TestGetUserPrompt_PassesTextThrough(t *testing.T) {
	if got := GetUserPrompt("Привет, мир"); got != "Привет, мир" {
		t.Fatalf("unexpected user prompt %q", got)
	}
}
