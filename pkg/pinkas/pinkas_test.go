package pinkas

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
)

func TestMemoryStore_AppendOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.LogAction(ctx, "CEO", "review", "first", nil))
	require.NoError(t, store.LogStep(ctx, "CEO", 1, "second", map[string]string{"stage": "plan_actions"}))
	require.NoError(t, store.LogAction(ctx, "CTO", "review", "other agent", nil))

	entries, err := store.ListActions(ctx, "CEO")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, KindAction, entries[0].Kind)
	assert.Equal(t, "second", entries[1].Content)
	assert.Equal(t, KindStep, entries[1].Kind)
	assert.Equal(t, 1, entries[1].StepIndex)

	assert.Len(t, store.All(), 3)
}

func TestSQLStore_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "pinkas.db"),
	}

	store, err := NewSQLStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.LogAction(ctx, "Evangelist", "mission_completed", "spread the word", map[string]string{"mission_type": "PRAYER_DISTRIBUTION"}))
	require.NoError(t, store.LogStep(ctx, "Evangelist", 5, "finalize output", nil))

	entries, err := store.ListActions(ctx, "Evangelist")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "mission_completed", entries[0].Action)
	assert.Equal(t, "PRAYER_DISTRIBUTION", entries[0].Metadata["mission_type"])
	assert.Equal(t, 5, entries[1].StepIndex)

	missing, err := store.ListActions(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestNewStore(t *testing.T) {
	mem, err := NewStore(&config.DatabaseConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	_, err = NewStore(&config.DatabaseConfig{Driver: "dynamo"})
	assert.Error(t, err)

	_, err = NewStore(nil)
	assert.Error(t, err)
}

// failingStore always errors, to prove the recorder swallows write failures.
type failingStore struct{}

func (f *failingStore) LogStep(ctx context.Context, agent string, stepIndex int, content string, meta map[string]string) error {
	return errors.New("disk full")
}

func (f *failingStore) LogAction(ctx context.Context, agent string, action, detail string, meta map[string]string) error {
	return errors.New("disk full")
}

func (f *failingStore) ListActions(ctx context.Context, agent string) ([]Entry, error) {
	return nil, errors.New("disk full")
}

func (f *failingStore) Close() error { return nil }

func TestRecorder_SwallowsFailures(t *testing.T) {
	recorder := NewRecorder(&failingStore{}, true)
	ctx := context.Background()

	// Must not panic or surface the error in any way.
	recorder.Step(ctx, "CEO", 1, "content", nil)
	recorder.Action(ctx, "CEO", "review", "detail", nil)
}

func TestRecorder_AuditGate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	off := NewRecorder(store, false)
	off.Step(ctx, "CEO", 1, "suppressed", nil)
	assert.Empty(t, store.All(), "step records are gated by the audit flag")

	off.Action(ctx, "CEO", "review", "always written", nil)
	assert.Len(t, store.All(), 1, "action records ignore the audit flag")

	on := NewRecorder(store, true)
	on.Step(ctx, "CEO", 1, "recorded", nil)
	assert.Len(t, store.All(), 2)
}

func TestRecorder_NilSafe(t *testing.T) {
	var recorder *Recorder
	recorder.Step(context.Background(), "CEO", 1, "content", nil)
	recorder.Action(context.Background(), "CEO", "review", "detail", nil)
	assert.False(t, recorder.AuditEnabled())
}
