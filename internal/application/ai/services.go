package ai

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
)

type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

// AnalyzeCommand is the analysis request. SubmissionID is only logged.
type AnalyzeCommand struct {
	Text         string
	SubmissionID *int64
}

// Result carries either the parsed provider JSON under "analysis" or the
// unparsed completion under "raw". Exactly one of the two is set.
type Result struct {
	Analysis json.RawMessage `json:"analysis,omitempty"`
	Raw      any             `json:"raw,omitempty"`
}

// Structured reports whether the provider answered with valid JSON.
func (r Result) Structured() bool {
	return r.Analysis != nil
}

// Analyze asks the configured provider for a rubric review of cmd.Text.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (Result, error) {
	if cmd.Text == "" {
		return Result{}, ai.ErrEmptyText
	}

	ev := log.Info().Str("provider", s.client.Name()).Int("text_len", len(cmd.Text))
	if cmd.SubmissionID != nil {
		ev = ev.Int64("submission_id", *cmd.SubmissionID)
	}
	ev.Msg("analysis requested")

	c, err := s.client.Analyze(ctx, cmd.Text)
	if err != nil {
		return Result{}, err
	}
	res := Interpret(c)
	log.Info().Str("provider", s.client.Name()).Bool("structured", res.Structured()).Msg("analysis done")
	return res, nil
}

// Interpret parses a completion string as JSON. Anything that does not parse,
// including a whole-response fallback, is returned under Raw.
func Interpret(c ai.Completion) Result {
	if c.IsFallback() {
		return Result{Raw: c.Response}
	}
	trimmed := bytes.TrimSpace([]byte(c.Text))
	if json.Valid(trimmed) {
		return Result{Analysis: json.RawMessage(trimmed)}
	}
	return Result{Raw: c.Text}
}
