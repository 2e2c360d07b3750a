package pinkas

import (
	"context"
	"log/slog"
)

// Recorder is the fire-and-forget facade handed to agents and the mission
// runner. Step records are gated by the audit flag; action records are always
// written. Write failures are logged and swallowed: the Pinkas must never
// fail a mission.
type Recorder struct {
	store        Store
	auditEnabled bool
}

func NewRecorder(store Store, auditEnabled bool) *Recorder {
	return &Recorder{store: store, auditEnabled: auditEnabled}
}

// AuditEnabled reports whether step auditing is on.
func (r *Recorder) AuditEnabled() bool {
	return r != nil && r.auditEnabled
}

// Step appends an audit record if auditing is enabled. Best effort.
func (r *Recorder) Step(ctx context.Context, agent string, stepIndex int, content string, meta map[string]string) {
	if r == nil || r.store == nil || !r.auditEnabled {
		return
	}
	if err := r.store.LogStep(ctx, agent, stepIndex, content, meta); err != nil {
		slog.Warn("pinkas step write failed", "agent", agent, "step", stepIndex, "error", err)
	}
}

// Action appends an action record. Best effort.
func (r *Recorder) Action(ctx context.Context, agent string, action, detail string, meta map[string]string) {
	if r == nil || r.store == nil {
		return
	}
	if err := r.store.LogAction(ctx, agent, action, detail, meta); err != nil {
		slog.Warn("pinkas action write failed", "agent", agent, "action", action, "error", err)
	}
}
