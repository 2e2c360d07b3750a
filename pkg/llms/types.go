// Package llms implements the completion providers consumed by LLM-backed
// council members. The core only needs a single operation: send an ordered
// message sequence, get free text back. Providers defend every call with the
// caller's context deadline and retry transient HTTP failures.
package llms

import (
	"context"
	"fmt"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation sent to a provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completion is the provider result.
type Completion struct {
	Text       string
	TokensUsed int
}

// Provider is a completion endpoint.
type Provider interface {
	ModelName() string
	Complete(ctx context.Context, messages []Message) (*Completion, error)
	Close() error
}

// New builds a provider from configuration.
func New(cfg *config.LLMConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM configuration is required")
	}

	switch cfg.Provider {
	case config.LLMProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case config.LLMProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case config.LLMProviderOllama:
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// splitSystem separates system messages from the conversational messages for
// providers that carry the system prompt out of band.
func splitSystem(messages []Message) (string, []Message) {
	var system string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
