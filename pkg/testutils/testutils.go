// Package testutils provides shared helpers for Sanhedrin tests.
package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/llms"
)

// TestConfig returns a minimal valid configuration for testing.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Council.Specialists = 3
	return cfg
}

// TestLLMConfig returns a minimal valid LLM configuration for testing.
func TestLLMConfig() *config.LLMConfig {
	cfg := &config.LLMConfig{
		Provider: config.LLMProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
		Timeout:  5,
	}
	cfg.SetDefaults()
	return cfg
}

// MockProvider is a scripted llms.Provider. Replies are consumed in order;
// when the script is exhausted the provider repeats the last reply. Setting
// Err makes every call fail.
type MockProvider struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Calls   [][]llms.Message
	next    int
}

func NewMockProvider(replies ...string) *MockProvider {
	return &MockProvider{Replies: replies}
}

// FailingProvider returns a provider whose every call errors.
func FailingProvider(message string) *MockProvider {
	return &MockProvider{Err: errors.New(message)}
}

func (m *MockProvider) ModelName() string {
	return "mock-model"
}

func (m *MockProvider) Complete(ctx context.Context, messages []llms.Message) (*llms.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, messages)

	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.Replies) == 0 {
		return &llms.Completion{Text: "acknowledged"}, nil
	}

	reply := m.Replies[min(m.next, len(m.Replies)-1)]
	m.next++
	return &llms.Completion{Text: reply, TokensUsed: len(reply)}, nil
}

func (m *MockProvider) Close() error {
	return nil
}

// CallCount returns the number of Complete invocations so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
