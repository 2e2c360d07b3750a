package mission

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
)

// pipeline binds the stage handlers to the council for one mission run.
// Stateless beyond its references: every invocation builds fresh requests.
type pipeline struct {
	registry *agent.Registry
}

// invocationError names the agent whose call failed, so the runner can
// write the failure to that agent's action log.
type invocationError struct {
	Agent string
	Err   error
}

func (e *invocationError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.Agent, e.Err)
}

func (e *invocationError) Unwrap() error {
	return e.Err
}

// invoke resolves a council member and requests a response.
func (p *pipeline) invoke(ctx context.Context, name, content string, meta map[string]string) (*agent.Response, error) {
	d, err := p.registry.Lookup(name)
	if err != nil {
		return nil, &invocationError{Agent: name, Err: err}
	}

	resp, err := d.Respond(ctx, &agent.Request{Content: content, Metadata: meta})
	if err != nil {
		return nil, &invocationError{Agent: name, Err: err}
	}
	return resp, nil
}

// invokePair calls two agents concurrently and records their results in the
// documented call order, so history stays deterministic regardless of which
// call finishes first.
func (p *pipeline) invokePair(ctx context.Context, first, second, content string, meta map[string]string) (*agent.Response, *agent.Response, error) {
	var firstResp, secondResp *agent.Response

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := p.invoke(gctx, first, content, meta)
		firstResp = resp
		return err
	})
	g.Go(func() error {
		resp, err := p.invoke(gctx, second, content, meta)
		secondResp = resp
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return firstResp, secondResp, nil
}

// analyze invokes the Strategist and the Scholar with the raw mission
// payload and merges both opinions into the analysis namespace.
func (p *pipeline) analyze(ctx context.Context, mc *Context) error {
	content := renderJSON(map[string]interface{}{
		"mission_type": mc.Type,
		"payload":      mc.Payload,
	})
	meta := map[string]string{"stage": StageAnalyze, "mission_id": mc.ID}

	strategist, scholar, err := p.invokePair(ctx, "Strategist", "Scholar", content, meta)
	if err != nil {
		return err
	}

	mc.Analysis["strategist"] = strategist
	mc.Analysis["scholar"] = scholar
	mc.record(StageAnalyze, strategist)
	mc.record(StageAnalyze, scholar)
	return nil
}

// plan invokes the CEO and the CTO with the analysis (falling back to the
// raw payload when analysis produced nothing) and merges into the plan
// namespace.
func (p *pipeline) plan(ctx context.Context, mc *Context) error {
	content := renderResponses(mc.Analysis)
	if content == "" {
		content = renderJSON(mc.Payload)
	}
	meta := map[string]string{"stage": StagePlan, "mission_id": mc.ID}

	ceo, cto, err := p.invokePair(ctx, "CEO", "CTO", content, meta)
	if err != nil {
		return err
	}

	mc.Plan["ceo"] = ceo
	mc.Plan["cto"] = cto
	mc.record(StagePlan, ceo)
	mc.record(StagePlan, cto)
	return nil
}

// execute invokes the routed primary agent with the full bundle of payload,
// analysis, and plan.
func (p *pipeline) execute(ctx context.Context, mc *Context) error {
	content := renderJSON(map[string]interface{}{
		"payload":  mc.Payload,
		"analysis": summarize(mc.Analysis),
		"plan":     summarize(mc.Plan),
	})
	meta := map[string]string{"stage": StageExecute, "mission_id": mc.ID}

	resp, err := p.invoke(ctx, mc.PrimaryAgent, content, meta)
	if err != nil {
		return err
	}

	mc.Execution["primary"] = resp
	mc.record(StageExecute, resp)
	return nil
}

// finalize invokes the Evangelist then the Editor in sequence; the Editor
// consumes the Evangelist's draft plus the plan and history, and its result
// becomes the final message.
func (p *pipeline) finalize(ctx context.Context, mc *Context) error {
	meta := map[string]string{"stage": StageFinalize, "mission_id": mc.ID}

	draftContent := renderJSON(map[string]interface{}{
		"payload":   mc.Payload,
		"plan":      summarize(mc.Plan),
		"execution": summarize(mc.Execution),
	})
	evangelist, err := p.invoke(ctx, "Evangelist", draftContent, meta)
	if err != nil {
		return err
	}
	mc.record(StageFinalize, evangelist)

	editorContent := renderJSON(map[string]interface{}{
		"draft":   evangelist.Result,
		"plan":    summarize(mc.Plan),
		"history": mc.History,
	})
	editor, err := p.invoke(ctx, "Editor", editorContent, meta)
	if err != nil {
		return err
	}
	mc.record(StageFinalize, editor)

	mc.FinalMessage = editor.Result
	return nil
}

// buildGraph assembles the fixed four-stage pipeline in order.
func buildGraph(p *pipeline) *Graph {
	return NewGraph().
		AddNode(StageAnalyze, p.analyze).
		AddNode(StagePlan, p.plan).
		AddNode(StageExecute, p.execute).
		AddNode(StageFinalize, p.finalize)
}

func renderJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// summarize flattens a response namespace to plain result strings.
func summarize(responses map[string]*agent.Response) map[string]string {
	out := make(map[string]string, len(responses))
	for key, resp := range responses {
		out[key] = resp.Result
	}
	return out
}

// renderResponses joins a namespace into readable sections, ordered by key.
func renderResponses(responses map[string]*agent.Response) string {
	if len(responses) == 0 {
		return ""
	}

	keys := make([]string, 0, len(responses))
	for key := range responses {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s (%s): %s", responses[key].Agent, key, responses[key].Result)
	}
	return b.String()
}
