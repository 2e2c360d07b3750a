package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/llms"
	"github.com/sanhedrin-ai/sanhedrin/pkg/verdict"
)

// StaticResponder formats the request deterministically with a style tag.
// No I/O; cannot fail except on malformed input.
type StaticResponder struct {
	Style string
}

func NewStaticResponder(style string) *StaticResponder {
	return &StaticResponder{Style: style}
}

func (r *StaticResponder) Respond(ctx context.Context, req *Request) (*Response, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("static responder requires request content")
	}

	return &Response{
		Result:        fmt.Sprintf("[%s] %s", r.Style, req.Content),
		Verdict:       verdict.Approved,
		ResponseStyle: r.Style,
	}, nil
}

// LLMResponder sends the persona's system prompt plus the request content to
// a completion provider and classifies the free-text reply. Provider failures
// and timeouts are absorbed into a needs-review response with a reason: a
// mission must not abort because one advisory opinion was unavailable.
type LLMResponder struct {
	provider     llms.Provider
	systemPrompt string
	style        string
	timeout      time.Duration
}

func NewLLMResponder(provider llms.Provider, cfg *config.LLMConfig, systemPrompt, style string) *LLMResponder {
	timeout := 60 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	return &LLMResponder{
		provider:     provider,
		systemPrompt: systemPrompt,
		style:        style,
		timeout:      timeout,
	}
}

func (r *LLMResponder) Respond(ctx context.Context, req *Request) (*Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	completion, err := r.provider.Complete(callCtx, []llms.Message{
		{Role: llms.RoleSystem, Content: r.systemPrompt},
		{Role: llms.RoleUser, Content: req.Content},
	})
	if err != nil {
		slog.Warn("completion call failed, downgrading to needs-review",
			"model", r.provider.ModelName(), "error", err)
		return &Response{
			Verdict:       verdict.NeedsReview,
			Reason:        fmt.Sprintf("advisory opinion unavailable: %v", err),
			ResponseStyle: r.style,
		}, nil
	}

	return &Response{
		Result:        completion.Text,
		Verdict:       verdict.Classify(completion.Text),
		ResponseStyle: r.style,
		Metadata: map[string]string{
			"model":       r.provider.ModelName(),
			"tokens_used": strconv.Itoa(completion.TokensUsed),
		},
	}, nil
}
