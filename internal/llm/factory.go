package llm

import (
	"fmt"
	"strings"
)

// Supported provider names.
const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderOpenAI   = "openai"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// NewClient creates a chat client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		return NewLMStudioClient(model, baseURL)
	case ProviderOpenAI:
		if baseURL == "" || strings.Contains(baseURL, "localhost") {
			baseURL = defaultOpenAIBaseURL
		}
		return NewLMStudioClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
