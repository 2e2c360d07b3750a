package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/testutils"
)

func staticCouncil(t *testing.T, specialists int) *Registry {
	t.Helper()
	cfg := &config.CouncilConfig{Mode: config.CouncilModeStatic, Specialists: specialists}
	reg, err := BuildCouncil(cfg, CouncilDeps{})
	require.NoError(t, err)
	return reg
}

func TestBuildCouncil_NamedSeats(t *testing.T) {
	reg := staticCouncil(t, 0)

	for _, name := range []string{
		"Strategist", "Scholar", "CEO", "CTO", "CFO", "CKO",
		"Evangelist", "Editor", "Designer", "Researcher",
	} {
		d, err := reg.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, d.Name)
		assert.NotEmpty(t, d.Role)
		assert.NotEmpty(t, d.Capabilities)
	}
}

func TestBuildCouncil_Specialists(t *testing.T) {
	reg := staticCouncil(t, 144)

	first, err := reg.Lookup("SPECIALIST_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"specialist"}, first.Capabilities)

	_, err = reg.Lookup("SPECIALIST_144")
	require.NoError(t, err)

	_, err = reg.Lookup("SPECIALIST_145")
	assert.Error(t, err)

	assert.Equal(t, len(personas)+144, reg.Count())
}

func TestBuildCouncil_Frozen(t *testing.T) {
	reg := staticCouncil(t, 0)

	d, err := NewDescriptor("Intruder", "role", nil, NewStaticResponder("x"), nil)
	require.NoError(t, err)
	assert.Error(t, reg.Add(d), "council must be immutable after construction")
}

// Two sequential lookups of the same name return identical descriptors.
func TestRegistry_IdempotentLookup(t *testing.T) {
	reg := staticCouncil(t, 1)

	first, err := reg.Lookup("CEO")
	require.NoError(t, err)
	second, err := reg.Lookup("CEO")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Role, second.Role)
	assert.Equal(t, first.Capabilities, second.Capabilities)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := staticCouncil(t, 0)

	_, err := reg.Lookup("Prophet")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Prophet", notFound.Name)
}

func TestBuildCouncil_LLMModeRequiresProvider(t *testing.T) {
	cfg := &config.CouncilConfig{Mode: config.CouncilModeLLM, Specialists: 0}
	_, err := BuildCouncil(cfg, CouncilDeps{})
	assert.Error(t, err)

	_, err = BuildCouncil(cfg, CouncilDeps{
		Provider: testutils.NewMockProvider("approve"),
		LLM:      testutils.TestLLMConfig(),
	})
	assert.NoError(t, err)
}

func TestBuildCouncil_NilConfig(t *testing.T) {
	_, err := BuildCouncil(nil, CouncilDeps{})
	assert.Error(t, err)
}
