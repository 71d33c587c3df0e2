package provider

import (
	"strings"

	"github.com/mentorflow/mentorflow/internal/domain/ai"
	"github.com/mentorflow/mentorflow/internal/infra/ai/openai"
	"github.com/mentorflow/mentorflow/internal/infra/ai/yandex"
)

const (
	OpenAI = "openai"
	Yandex = "yandex"
)

// New returns the client for the named provider. Any name other than
// "openai" selects Yandex.
func New(name string, oc openai.Config, yc yandex.Config) ai.Client {
	if strings.EqualFold(strings.TrimSpace(name), OpenAI) {
		return openai.NewClient(oc)
	}
	return yandex.NewClient(yc)
}

// Configured reports whether the provider New would pick has its credentials set.
func Configured(name string, oc openai.Config, yc yandex.Config) bool {
	if strings.EqualFold(strings.TrimSpace(name), OpenAI) {
		return oc.APIKey != ""
	}
	return yc.APIKey != "" && yc.FolderID != ""
}
