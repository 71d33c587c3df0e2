package ai

import "encoding/json"

// Completion is what a provider answered. Text holds the completion string.
// When the provider response lacks the expected completion path, Response holds
// the whole response object instead and Text is empty.
type Completion struct {
	Text     string
	Response json.RawMessage
}

// TextCompletion wraps a completion string.
func TextCompletion(text string) Completion {
	return Completion{Text: text}
}

// ResponseCompletion wraps a whole provider response object.
func ResponseCompletion(resp json.RawMessage) Completion {
	return Completion{Response: resp}
}

// IsFallback reports whether the completion carries the whole response object.
func (c Completion) IsFallback() bool {
	return c.Response != nil
}
