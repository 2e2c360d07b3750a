// Package agent implements the council: named personas with a single
// operation — respond to a request — backed either by a deterministic static
// responder or by an LLM completion provider. The council registry is built
// once at startup and frozen; lookups after that are read-only.
package agent

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
	"github.com/sanhedrin-ai/sanhedrin/pkg/verdict"
)

// Request is the payload handed to an agent.
type Request struct {
	// Content is the rendered request text.
	Content string

	// Metadata travels alongside the content and into audit records.
	Metadata map[string]string
}

// Response is the result of one agent invocation. Immutable once returned.
type Response struct {
	// Agent is the name of the descriptor that produced the response.
	Agent string `json:"agent"`

	// Result is the response text.
	Result string `json:"result"`

	// Verdict classifies advisory output; static responders always approve.
	Verdict verdict.Verdict `json:"verdict"`

	// Reason explains a needs-review verdict produced by a soft failure.
	Reason string `json:"reason,omitempty"`

	// ResponseStyle tags the persona's register.
	ResponseStyle string `json:"response_style,omitempty"`

	// Metadata carries provider details (model, token counts).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Responder produces a response for a request. Implementations absorb
// network and provider failures into a needs-review response; an error
// return is reserved for malformed input.
type Responder interface {
	Respond(ctx context.Context, req *Request) (*Response, error)
}

// Descriptor is one council member: identity, capabilities, and behavior.
type Descriptor struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`

	responder Responder
	recorder  *pinkas.Recorder
	steps     atomic.Int64
}

// NewDescriptor builds a council member. The recorder may be nil.
func NewDescriptor(name, role string, capabilities []string, responder Responder, recorder *pinkas.Recorder) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name cannot be empty")
	}
	if responder == nil {
		return nil, fmt.Errorf("agent %s requires a responder", name)
	}
	return &Descriptor{
		Name:         name,
		Role:         role,
		Capabilities: capabilities,
		responder:    responder,
		recorder:     recorder,
	}, nil
}

// Respond invokes the member's responder, stamps the response with the
// member's name, and emits an audit record when auditing is enabled.
func (d *Descriptor) Respond(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("agent %s received a nil request", d.Name)
	}

	resp, err := d.responder.Respond(ctx, req)
	if err != nil {
		return nil, err
	}
	resp.Agent = d.Name

	stepIndex := int(d.steps.Add(1))
	meta := map[string]string{"verdict": string(resp.Verdict)}
	for k, v := range req.Metadata {
		meta[k] = v
	}
	d.recorder.Step(ctx, d.Name, stepIndex, resp.Result, meta)

	return resp, nil
}
