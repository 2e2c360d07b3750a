package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, CouncilModeStatic, cfg.Council.Mode)
	assert.Equal(t, 144, cfg.Council.Specialists)
	assert.Equal(t, "memory", cfg.Pinkas.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Audit.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestConfig_ValidateCouncilMode(t *testing.T) {
	cfg := Default()
	cfg.Council.Mode = "oracle"
	assert.Error(t, cfg.Validate())
}

func TestConfig_LLMRequiredOnlyInLLMMode(t *testing.T) {
	cfg := Default()
	cfg.Council.Mode = CouncilModeLLM
	cfg.LLM = LLMConfig{}
	cfg.LLM.SetDefaults()
	cfg.LLM.APIKey = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")

	// Static mode does not need LLM settings at all.
	cfg.Council.Mode = CouncilModeStatic
	assert.NoError(t, cfg.Validate())
}

func TestLLMConfig_Defaults(t *testing.T) {
	cfg := LLMConfig{Provider: LLMProviderOpenAI}
	cfg.SetDefaults()

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 60, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLLMConfig_OllamaNeedsNoKey(t *testing.T) {
	cfg := LLMConfig{Provider: LLMProviderOllama}
	cfg.SetDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Database: "pinkas",
		Username: "scribe",
	}
	pg.SetDefaults()
	assert.Equal(t, "host=db.internal port=5432 dbname=pinkas user=scribe sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: "sqlite", Database: "/tmp/pinkas.db"}
	lite.SetDefaults()
	assert.Equal(t, "/tmp/pinkas.db", lite.DSN())

	my := DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.internal",
		Database: "pinkas",
		Username: "scribe",
		Password: "s3cret",
	}
	my.SetDefaults()
	assert.Equal(t, "scribe:s3cret@tcp(db.internal:3306)/pinkas?parseTime=true", my.DSN())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	mem := DatabaseConfig{Driver: "memory"}
	assert.NoError(t, mem.Validate())

	bad := DatabaseConfig{Driver: "dynamo"}
	assert.Error(t, bad.Validate())

	noHost := DatabaseConfig{Driver: "postgres", Database: "pinkas"}
	assert.Error(t, noHost.Validate())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SANHEDRIN_TEST_KEY", "secret-value")

	assert.Equal(t, "secret-value", ExpandEnvVars("${SANHEDRIN_TEST_KEY}"))
	assert.Equal(t, "secret-value", ExpandEnvVars("$SANHEDRIN_TEST_KEY"))
	assert.Equal(t, "fallback", ExpandEnvVars("${SANHEDRIN_TEST_MISSING:-fallback}"))
	assert.Equal(t, "plain", ExpandEnvVars("plain"))
}

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: debug
council:
  mode: static
  specialists: 12
audit:
  enabled: true
pinkas:
  driver: sqlite
  database: ` + filepath.Join(dir, "pinkas.db") + `
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loader, err := NewLoader(LoaderOptions{Path: path})
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 12, cfg.Council.Specialists)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "sqlite", cfg.Pinkas.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoader_FileEnvExpansion(t *testing.T) {
	t.Setenv("SANHEDRIN_TEST_MODEL", "claude-sonnet-4-20250514")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
llm:
  provider: anthropic
  model: ${SANHEDRIN_TEST_MODEL}
  api_key: ${SANHEDRIN_TEST_UNSET:-test-key}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loader, err := NewLoader(LoaderOptions{Path: path})
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestLoader_MissingPath(t *testing.T) {
	_, err := NewLoader(LoaderOptions{})
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	loader, err := NewLoader(LoaderOptions{Path: "/nonexistent/config.yaml"})
	require.NoError(t, err)

	_, err = loader.Load()
	assert.Error(t, err)
}
