package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
)

type stubClient struct {
	out    ai.Completion
	err    error
	called bool
	text   string
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Analyze(ctx context.Context, text string) (ai.Completion, error) {
	s.called = true
	s.text = text
	return s.out, s.err
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestAnalyze_ValidJSONGoesUnderAnalysis(t *testing.T) {
	stub := &stubClient{out: ai.TextCompletion(` {"overall": {"structure": 7}, "overall_comment": "ok"} `)}
	res, err := NewService(stub).Analyze(context.Background(), AnalyzeCommand{Text: "essay"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !res.Structured() {
		t.Fatalf("expected structured result, got %+v", res)
	}
	if got, want := encode(t, res), `{"analysis":{"overall":{"structure":7},"overall_comment":"ok"}}`; got != want {
		t.Fatalf("unexpected body\n got %s\nwant %s", got, want)
	}
	if stub.text != "essay" {
		t.Fatalf("provider got %q", stub.text)
	}
}

func TestAnalyze_NonJSONGoesUnderRaw(t *testing.T) {
	stub := &stubClient{out: ai.TextCompletion("```json\n{}\n``` sorry")}
	res, err := NewService(stub).Analyze(context.Background(), AnalyzeCommand{Text: "essay"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Structured() {
		t.Fatalf("expected raw result")
	}
	if got, want := encode(t, res), `{"raw":"`+"```json\\n{}\\n``` sorry"+`"}`; got != want {
		t.Fatalf("unexpected body\n got %s\nwant %s", got, want)
	}
}

func TestAnalyze_EmptyCompletionGoesUnderRaw(t *testing.T) {
	res, err := NewService(&stubClient{out: ai.TextCompletion("")}).Analyze(context.Background(), AnalyzeCommand{Text: "essay"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got := encode(t, res); got != `{"raw":""}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestAnalyze_FallbackResponseGoesUnderRaw(t *testing.T) {
	stub := &stubClient{out: ai.ResponseCompletion(json.RawMessage(`{"result":{"alternatives":[]}}`))}
	res, err := NewService(stub).Analyze(context.Background(), AnalyzeCommand{Text: "essay"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got, want := encode(t, res), `{"raw":{"result":{"alternatives":[]}}}`; got != want {
		t.Fatalf("unexpected body\n got %s\nwant %s", got, want)
	}
}

func TestAnalyze_EmptyTextRejectedBeforeProvider(t *testing.T) {
	stub := &stubClient{}
	_, err := NewService(stub).Analyze(context.Background(), AnalyzeCommand{Text: ""})
	if !errors.Is(err, ai.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if stub.called {
		t.Fatalf("provider must not be called for empty text")
	}
}

func TestAnalyze_ProviderErrorPassesThrough(t *testing.T) {
	id := int64(42)
	stub := &stubClient{err: ai.ErrMissingCredentials}
	_, err := NewService(stub).Analyze(context.Background(), AnalyzeCommand{Text: "essay", SubmissionID: &id})
	if !errors.Is(err, ai.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
