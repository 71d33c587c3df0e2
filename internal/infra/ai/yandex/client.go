package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
	"github.com/mentorflow/mentorflow/internal/infra/ai/prompt"
)

const (
	DefaultBaseURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	maxTokens      = "800"
	requestTimeout = 120 * time.Second
)

// Config for the Yandex Foundation Models client.
type Config struct {
	APIKey   string
	FolderID string
	ModelURI string        // default gpt://<folder>/yandexgpt-lite/latest
	BaseURL  string        // full completion endpoint
	Timeout  time.Duration // default 120s
}

type Client struct {
	cfg   Config
	httpc *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = requestTimeout
	}
	return &Client{cfg: cfg, httpc: &http.Client{Timeout: cfg.Timeout}}
}

func (c *Client) Name() string { return "yandex" }

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   string  `json:"maxTokens"`
	Stream      bool    `json:"stream"`
}

type request struct {
	ModelURI          string            `json:"modelUri"`
	Messages          []message         `json:"messages"`
	CompletionOptions completionOptions `json:"completionOptions"`
}

type response struct {
	Result *struct {
		Alternatives []struct {
			Message *struct {
				Role string  `json:"role"`
				Text *string `json:"text"`
			} `json:"message"`
			Status string `json:"status"`
		} `json:"alternatives"`
	} `json:"result"`
}

func (r *response) text() (string, bool) {
	if r == nil || r.Result == nil || len(r.Result.Alternatives) == 0 {
		return "", false
	}
	m := r.Result.Alternatives[0].Message
	if m == nil || m.Text == nil {
		return "", false
	}
	return *m.Text, true
}

func (c *Client) modelURI() string {
	if c.cfg.ModelURI != "" {
		return c.cfg.ModelURI
	}
	return fmt.Sprintf("gpt://%s/yandexgpt-lite/latest", c.cfg.FolderID)
}

// Analyze sends text with the rubric system prompt to the completion API.
// The completion is result.alternatives[0].message.text; any other response
// shape is returned whole.
func (c *Client) Analyze(ctx context.Context, text string) (ai.Completion, error) {
	if c.cfg.APIKey == "" || c.cfg.FolderID == "" {
		return ai.Completion{}, fmt.Errorf("Yandex keys not configured: %w", ai.ErrMissingCredentials)
	}

	payload, err := json.Marshal(request{
		ModelURI: c.modelURI(),
		Messages: []message{
			{Role: "system", Text: prompt.GetSystemPrompt()},
			{Role: "user", Text: prompt.GetUserPrompt(text)},
		},
		CompletionOptions: completionOptions{Temperature: 0, MaxTokens: maxTokens, Stream: false},
	})
	if err != nil {
		return ai.Completion{}, fmt.Errorf("encode yandex request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return ai.Completion{}, fmt.Errorf("build yandex request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)
	req.Header.Set("x-folder-id", c.cfg.FolderID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return ai.Completion{}, fmt.Errorf("%w: %v", ai.ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ai.Completion{}, fmt.Errorf("%w: read body: %v", ai.ErrProviderFailed, err)
	}
	log.Debug().
		Str("provider", c.Name()).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("completion done")

	if resp.StatusCode/100 != 2 {
		return ai.Completion{}, fmt.Errorf("%w: yandex %d: %s", ai.ErrProviderFailed, resp.StatusCode, string(raw))
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		if json.Valid(raw) {
			return ai.ResponseCompletion(raw), nil
		}
		return ai.Completion{}, fmt.Errorf("decode yandex response: %w", err)
	}
	if t, ok := out.text(); ok {
		return ai.TextCompletion(t), nil
	}
	return ai.ResponseCompletion(raw), nil
}
