package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
	"github.com/mentorflow/mentorflow/internal/infra/ai/prompt"
)

const (
	defaultModel   = "gpt-4o-mini"
	maxTokens      = 800
	requestTimeout = 120 * time.Second
)

// Config for the OpenAI client.
type Config struct {
	APIKey  string
	Model   string        // default gpt-4o-mini
	BaseURL string        // default https://api.openai.com/v1
	Timeout time.Duration // default 120s
}

type Client struct {
	*openai.Client
	Model  string
	apiKey string
}

func NewClient(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{Client: openai.NewClientWithConfig(oc), Model: model, apiKey: cfg.APIKey}
}

func (c *Client) Name() string { return "openai" }

// Analyze sends text with the rubric system prompt to chat completions.
// The completion is choices[0].message.content; a response without choices is
// returned whole.
func (c *Client) Analyze(ctx context.Context, text string) (ai.Completion, error) {
	if c.apiKey == "" {
		return ai.Completion{}, fmt.Errorf("OpenAI key not configured: %w", ai.ErrMissingCredentials)
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(text)},
		},
		// a literal 0 is dropped by omitempty
		Temperature: math.SmallestNonzeroFloat32,
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(c.Model) {
		req.MaxCompletionTokens = maxTokens
		req.Temperature = 0
	} else {
		req.MaxTokens = maxTokens
	}

	start := time.Now()
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Debug().Err(err).Str("provider", c.Name()).Dur("elapsed", time.Since(start)).Msg("chat completion failed")
		return ai.Completion{}, fmt.Errorf("%w: %v", ai.ErrProviderFailed, err)
	}
	log.Debug().
		Str("provider", c.Name()).
		Str("model", resp.Model).
		Int("choices", len(resp.Choices)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion done")

	if len(resp.Choices) == 0 {
		whole, err := json.Marshal(resp)
		if err != nil {
			return ai.Completion{}, fmt.Errorf("failed to encode chat completion: %w", err)
		}
		return ai.ResponseCompletion(whole), nil
	}
	return ai.TextCompletion(resp.Choices[0].Message.Content), nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}
