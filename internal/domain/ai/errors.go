package ai

import "errors"

// ErrMissingCredentials indicates the selected provider has no API credentials configured.
var ErrMissingCredentials = errors.New("provider credentials not configured")

// ErrProviderFailed indicates the provider call failed (transport error or non-2xx status).
var ErrProviderFailed = errors.New("LLM request failed")

// ErrEmptyText indicates an analysis request without text.
var ErrEmptyText = errors.New("No text provided")
