package ai

import "context"

// Client is a rubric-review provider. Implementations send text together with
// the rubric system prompt and return the provider's completion.
type Client interface {
	Name() string
	Analyze(ctx context.Context, text string) (Completion, error)
}
