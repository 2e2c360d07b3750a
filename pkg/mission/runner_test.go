package mission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
	"github.com/sanhedrin-ai/sanhedrin/pkg/testutils"
	"github.com/sanhedrin-ai/sanhedrin/pkg/verdict"
)

func staticRunner(t *testing.T) (*Runner, *pinkas.MemoryStore) {
	t.Helper()

	store := pinkas.NewMemoryStore()
	recorder := pinkas.NewRecorder(store, true)

	reg, err := agent.BuildCouncil(
		&config.CouncilConfig{Mode: config.CouncilModeStatic, Specialists: 3},
		agent.CouncilDeps{Recorder: recorder},
	)
	require.NoError(t, err)

	return NewRunner(reg, WithRecorder(recorder)), store
}

func TestRunPrayerDistribution(t *testing.T) {
	runner, _ := staticRunner(t)

	result := runner.Run(context.Background(), "PRAYER_DISTRIBUTION", "user-1", map[string]interface{}{
		"topic":    "gratitude",
		"audience": "community",
	})

	require.Equal(t, StatusSuccess, result.Status)
	require.NotNil(t, result.Data)
	assert.Equal(t, TypePrayerDistribution, result.Data.MissionType)
	assert.Equal(t, "Evangelist", result.Data.PrimaryAgent)
	assert.NotEmpty(t, result.Data.FinalMessage)
	assert.Equal(t, result.Data.FinalMessage, result.Summary)

	wantHistory := []struct {
		stage string
		agent string
	}{
		{StageAnalyze, "Strategist"},
		{StageAnalyze, "Scholar"},
		{StagePlan, "CEO"},
		{StagePlan, "CTO"},
		{StageExecute, "Evangelist"},
		{StageFinalize, "Evangelist"},
		{StageFinalize, "Editor"},
	}
	require.Len(t, result.Data.History, len(wantHistory))
	for i, want := range wantHistory {
		assert.Equal(t, want.stage, result.Data.History[i].Stage, "entry %d stage", i)
		assert.Equal(t, want.agent, result.Data.History[i].Agent, "entry %d agent", i)
	}
}

func TestRunResearchRouting(t *testing.T) {
	runner, _ := staticRunner(t)

	result := runner.Run(context.Background(), "RESEARCH", "user-1", map[string]interface{}{
		"question": "origins of the council",
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "Researcher", result.Data.PrimaryAgent)
	assert.Equal(t, "Researcher", result.Data.History[4].Agent)
}

func TestRunContentCreationVisuals(t *testing.T) {
	runner, _ := staticRunner(t)

	result := runner.Run(context.Background(), "CONTENT_CREATION", "user-1", map[string]interface{}{
		"topic":            "poster",
		"requires_visuals": true,
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "Designer", result.Data.PrimaryAgent)
}

func TestRunProviderFailureDowngradesNotAborts(t *testing.T) {
	// Every advisory call fails the provider; the mission still completes,
	// with each opinion downgraded to needs-review and the fallback summary
	// in place of a final message.
	store := pinkas.NewMemoryStore()
	recorder := pinkas.NewRecorder(store, true)

	reg, err := agent.BuildCouncil(
		&config.CouncilConfig{Mode: config.CouncilModeLLM, Specialists: 0},
		agent.CouncilDeps{
			Provider: testutils.FailingProvider("provider unreachable"),
			LLM:      testutils.TestLLMConfig(),
			Recorder: recorder,
		},
	)
	require.NoError(t, err)

	runner := NewRunner(reg, WithRecorder(recorder))
	result := runner.Run(context.Background(), "PRAYER_DISTRIBUTION", "user-1", map[string]interface{}{
		"topic": "gratitude",
	})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "Mission PRAYER_DISTRIBUTION completed by Evangelist", result.Summary)
	require.Len(t, result.Data.History, 7)

	for _, resp := range result.Data.Analysis {
		assert.Equal(t, verdict.NeedsReview, resp.Verdict)
		assert.Contains(t, resp.Reason, "advisory opinion unavailable")
	}
}

func TestRunUnknownAgentFailsEnvelope(t *testing.T) {
	// A council missing the Editor seat: the finalize stage cannot resolve
	// it, and the failure surfaces as a failed envelope, not an error.
	store := pinkas.NewMemoryStore()
	recorder := pinkas.NewRecorder(store, true)

	reg := agent.NewRegistry()
	for _, name := range []string{"Strategist", "Scholar", "CEO", "CTO", "Evangelist"} {
		d, err := agent.NewDescriptor(name, "seat", nil, agent.NewStaticResponder("plain"), recorder)
		require.NoError(t, err)
		require.NoError(t, reg.Add(d))
	}
	reg.Freeze()

	runner := NewRunner(reg, WithRecorder(recorder))
	result := runner.Run(context.Background(), "PRAYER_DISTRIBUTION", "user-1", map[string]interface{}{
		"topic": "gratitude",
	})

	require.Equal(t, StatusFailed, result.Status)
	assert.Nil(t, result.Data)
	assert.Contains(t, result.Summary, "Editor")

	// The failure is attributed to the missing agent in the action log.
	actions, err := store.ListActions(context.Background(), "Editor")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "mission_failed", actions[0].Action)
}

func TestRunUnsupportedTypeLeavesNoTrace(t *testing.T) {
	runner, store := staticRunner(t)

	result := runner.Run(context.Background(), "TEMPLE_BUILDING", "user-1", map[string]interface{}{
		"topic": "anything",
	})

	require.Equal(t, StatusFailed, result.Status)
	assert.Nil(t, result.Data)
	assert.Contains(t, result.Summary, "TEMPLE_BUILDING")
	assert.Empty(t, store.All(), "a rejected request must not touch the pinkas")
}

func TestRunInvalidPayloadFailsBeforeAgents(t *testing.T) {
	runner, store := staticRunner(t)

	result := runner.Run(context.Background(), "RESEARCH", "user-1", map[string]interface{}{
		"depth": "deep",
	})

	require.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Summary, "question")
	assert.Empty(t, store.All())
}

func TestRunNilRecorder(t *testing.T) {
	reg, err := agent.BuildCouncil(
		&config.CouncilConfig{Mode: config.CouncilModeStatic, Specialists: 0},
		agent.CouncilDeps{},
	)
	require.NoError(t, err)

	runner := NewRunner(reg)
	result := runner.Run(context.Background(), "RESEARCH", "user-1", map[string]interface{}{
		"question": "origins",
	})
	assert.Equal(t, StatusSuccess, result.Status)
}

type recordingObserver struct {
	observed []struct {
		missionType string
		status      string
	}
}

func (o *recordingObserver) ObserveMission(missionType, status string, _ time.Duration) {
	o.observed = append(o.observed, struct {
		missionType string
		status      string
	}{missionType, status})
}

func TestRunObserver(t *testing.T) {
	store := pinkas.NewMemoryStore()
	recorder := pinkas.NewRecorder(store, false)

	reg, err := agent.BuildCouncil(
		&config.CouncilConfig{Mode: config.CouncilModeStatic, Specialists: 0},
		agent.CouncilDeps{Recorder: recorder},
	)
	require.NoError(t, err)

	obs := &recordingObserver{}
	runner := NewRunner(reg, WithRecorder(recorder), WithObserver(obs))

	runner.Run(context.Background(), "RESEARCH", "user-1", map[string]interface{}{"question": "q"})
	runner.Run(context.Background(), "BOGUS", "user-1", nil)

	require.Len(t, obs.observed, 2)
	assert.Equal(t, "success", obs.observed[0].status)
	assert.Equal(t, "failed", obs.observed[1].status)
}
