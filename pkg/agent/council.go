package agent

import (
	"fmt"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/llms"
	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
)

// persona is one hand-authored council seat.
type persona struct {
	Name         string
	Role         string
	Style        string
	Capabilities []string
	SystemPrompt string
}

// The named seats of the council. Stage handlers and routing refer to these
// names directly, so they are part of the public contract.
var personas = []persona{
	{
		Name:         "Strategist",
		Role:         "Chief strategist weighing long-term consequences",
		Style:        "strategic",
		Capabilities: []string{"analysis", "forecasting"},
		SystemPrompt: "You are the council's Strategist. Analyze the request and surface risks, opportunities, and long-term consequences. Be concise.",
	},
	{
		Name:         "Scholar",
		Role:         "Scholar grounding decisions in tradition and precedent",
		Style:        "scholarly",
		Capabilities: []string{"analysis", "research", "precedent"},
		SystemPrompt: "You are the council's Scholar. Examine the request against precedent and tradition. Cite the principles that apply. Be concise.",
	},
	{
		Name:         "CEO",
		Role:         "Chief executive setting direction and priorities",
		Style:        "decisive",
		Capabilities: []string{"planning", "leadership"},
		SystemPrompt: "You are the council's CEO. Turn the analysis into a prioritized plan of action. State clearly whether you approve or reject the direction.",
	},
	{
		Name:         "CTO",
		Role:         "Chief technologist judging feasibility",
		Style:        "technical",
		Capabilities: []string{"planning", "engineering"},
		SystemPrompt: "You are the council's CTO. Judge the technical feasibility of the plan and name the concrete steps required. State clearly whether you approve or reject.",
	},
	{
		Name:         "CFO",
		Role:         "Chief financial officer guarding resources",
		Style:        "prudent",
		Capabilities: []string{"finance", "budgeting"},
		SystemPrompt: "You are the council's CFO. Weigh the cost of the proposal against its value. State clearly whether you approve or reject.",
	},
	{
		Name:         "CKO",
		Role:         "Chief knowledge officer curating the record",
		Style:        "archival",
		Capabilities: []string{"knowledge", "curation"},
		SystemPrompt: "You are the council's CKO. Identify what should be recorded and what prior knowledge bears on the request. Be concise.",
	},
	{
		Name:         "Evangelist",
		Role:         "Evangelist carrying the message outward",
		Style:        "inspiring",
		Capabilities: []string{"outreach", "distribution"},
		SystemPrompt: "You are the council's Evangelist. Draft an uplifting message that carries the mission's intent to its audience.",
	},
	{
		Name:         "Editor",
		Role:         "Editor polishing the final word",
		Style:        "polished",
		Capabilities: []string{"writing", "editing"},
		SystemPrompt: "You are the council's Editor. Refine the draft into its final form: clear, correct, and true to the mission's intent.",
	},
	{
		Name:         "Designer",
		Role:         "Designer shaping the visual form",
		Style:        "visual",
		Capabilities: []string{"design", "visuals"},
		SystemPrompt: "You are the council's Designer. Describe the visual treatment that best serves the content.",
	},
	{
		Name:         "Researcher",
		Role:         "Researcher pursuing open questions",
		Style:        "inquisitive",
		Capabilities: []string{"research", "analysis"},
		SystemPrompt: "You are the council's Researcher. Investigate the question, list what is known, unknown, and where to look next.",
	},
}

// CouncilDeps carries the collaborators a council needs.
type CouncilDeps struct {
	// Provider is required in LLM mode, ignored in static mode.
	Provider llms.Provider

	// LLM settings (per-call timeout). Required in LLM mode.
	LLM *config.LLMConfig

	// Recorder for audit records. May be nil.
	Recorder *pinkas.Recorder
}

// BuildCouncil assembles the full council — named personas plus generated
// specialists — and freezes the registry. The returned registry is safe for
// concurrent read-only use for the life of the process.
func BuildCouncil(cfg *config.CouncilConfig, deps CouncilDeps) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("council configuration is required")
	}
	if cfg.Mode == config.CouncilModeLLM && deps.Provider == nil {
		return nil, fmt.Errorf("LLM council mode requires a completion provider")
	}

	reg := NewRegistry()

	for _, p := range personas {
		responder := buildResponder(cfg.Mode, p, deps)
		d, err := NewDescriptor(p.Name, p.Role, p.Capabilities, responder, deps.Recorder)
		if err != nil {
			return nil, fmt.Errorf("failed to seat %s: %w", p.Name, err)
		}
		if err := reg.Add(d); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", p.Name, err)
		}
	}

	// Specialists are always static responders: they exist to answer narrow
	// delegated questions deterministically.
	for i := 1; i <= cfg.Specialists; i++ {
		name := fmt.Sprintf("SPECIALIST_%03d", i)
		d, err := NewDescriptor(
			name,
			fmt.Sprintf("Specialist seat %d of the greater assembly", i),
			[]string{"specialist"},
			NewStaticResponder("specialist"),
			deps.Recorder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seat %s: %w", name, err)
		}
		if err := reg.Add(d); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", name, err)
		}
	}

	reg.Freeze()
	return reg, nil
}

func buildResponder(mode config.CouncilMode, p persona, deps CouncilDeps) Responder {
	if mode == config.CouncilModeLLM {
		return NewLLMResponder(deps.Provider, deps.LLM, p.SystemPrompt, p.Style)
	}
	return NewStaticResponder(p.Style)
}
