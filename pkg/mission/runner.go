package mission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
)

// Observer receives the outcome of every mission run.
type Observer interface {
	ObserveMission(missionType, status string, duration time.Duration)
}

// Runner drives missions through the fixed pipeline. It is safe for
// concurrent use: every run gets a fresh context and graph, and the council
// registry is frozen before the runner sees it.
type Runner struct {
	registry *agent.Registry
	recorder *pinkas.Recorder
	observer Observer
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRecorder attaches a pinkas recorder for audit and action logging.
func WithRecorder(r *pinkas.Recorder) RunnerOption {
	return func(rn *Runner) { rn.recorder = r }
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) RunnerOption {
	return func(rn *Runner) { rn.observer = o }
}

// NewRunner builds a runner over a frozen council registry.
func NewRunner(registry *agent.Registry, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		logger:   slog.Default().With("component", "mission"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a mission end to end and always returns a well-formed
// envelope. Errors from any point of the pipeline surface exactly once, as
// a failed envelope; callers never see a raw error.
func (r *Runner) Run(ctx context.Context, missionType, userID string, payload map[string]interface{}) *Result {
	started := time.Now()

	result := r.run(ctx, missionType, userID, payload)

	if r.observer != nil {
		r.observer.ObserveMission(missionType, string(result.Status), time.Since(started))
	}
	return result
}

func (r *Runner) run(ctx context.Context, rawType, userID string, payload map[string]interface{}) *Result {
	// Validation happens before any agent is touched or any log entry is
	// written: a bad request leaves no trace in the pinkas.
	mt, err := ParseType(rawType)
	if err != nil {
		return r.failed(ctx, "", rawType, err)
	}

	typed, err := DecodePayload(mt, payload)
	if err != nil {
		return r.failed(ctx, "", rawType, err)
	}

	primary, err := SelectPrimaryAgent(mt, payload)
	if err != nil {
		return r.failed(ctx, "", rawType, err)
	}

	mc := NewContext(mt, userID, payload)
	mc.Typed = typed
	mc.PrimaryAgent = primary

	r.logger.Info("mission started",
		"mission_id", mc.ID,
		"mission_type", mc.Type,
		"primary_agent", mc.PrimaryAgent)

	p := &pipeline{registry: r.registry}
	if err := buildGraph(p).Run(ctx, mc); err != nil {
		return r.failed(ctx, mc.ID, rawType, err)
	}

	summary := mc.FinalMessage
	if summary == "" {
		summary = fmt.Sprintf("Mission %s completed by %s", mc.Type, mc.PrimaryAgent)
	}

	r.recorder.Action(ctx, mc.PrimaryAgent, "mission_completed", summary, map[string]string{
		"mission_id":   mc.ID,
		"mission_type": string(mc.Type),
	})
	r.logger.Info("mission completed", "mission_id", mc.ID, "agents", len(mc.History))

	return &Result{
		Status:  StatusSuccess,
		Summary: summary,
		Data: &ResultData{
			MissionID:    mc.ID,
			MissionType:  mc.Type,
			PrimaryAgent: mc.PrimaryAgent,
			FinalMessage: mc.FinalMessage,
			Analysis:     mc.Analysis,
			Plan:         mc.Plan,
			Execution:    mc.Execution,
			History:      mc.History,
		},
	}
}

// failed converts any failure into the failed envelope. Partial context is
// not surfaced. When the failure names an agent, the action log records it
// best-effort.
func (r *Runner) failed(ctx context.Context, missionID, rawType string, err error) *Result {
	var inv *invocationError
	if errors.As(err, &inv) {
		r.recorder.Action(ctx, inv.Agent, "mission_failed", err.Error(), map[string]string{
			"mission_id":   missionID,
			"mission_type": rawType,
		})
	}

	r.logger.Error("mission failed", "mission_id", missionID, "mission_type", rawType, "error", err)

	return &Result{
		Status:  StatusFailed,
		Summary: err.Error(),
	}
}
