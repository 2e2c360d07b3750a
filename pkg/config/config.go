// Package config defines the Sanhedrin configuration surface and its loader.
// Every config type carries SetDefaults and Validate; the loader applies both
// after unmarshalling, so the rest of the system can assume a valid config.
package config

import (
	"fmt"
)

// Config is the root configuration for the mission orchestration service.
type Config struct {
	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" jsonschema:"title=Logging,description=Process logging configuration"`

	// LLM configures the completion endpoint used by LLM-backed council members.
	LLM LLMConfig `yaml:"llm,omitempty" json:"llm,omitempty" jsonschema:"title=LLM,description=Completion provider configuration"`

	// Council configures how the agent council is assembled.
	Council CouncilConfig `yaml:"council,omitempty" json:"council,omitempty" jsonschema:"title=Council,description=Agent council configuration"`

	// Audit gates Pinkas step auditing.
	Audit AuditConfig `yaml:"audit,omitempty" json:"audit,omitempty" jsonschema:"title=Audit,description=Audit logging configuration"`

	// Pinkas configures the append-only activity log store.
	Pinkas DatabaseConfig `yaml:"pinkas,omitempty" json:"pinkas,omitempty" jsonschema:"title=Pinkas,description=Activity log database"`

	// Server configures the HTTP entrypoint.
	Server ServerConfig `yaml:"server,omitempty" json:"server,omitempty" jsonschema:"title=Server,description=HTTP server configuration"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty" json:"level,omitempty" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info"`

	// Format is "simple" or "verbose".
	Format string `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"title=Format,enum=simple,enum=verbose,default=simple"`

	// File is an optional log file path (empty = stderr).
	File string `yaml:"file,omitempty" json:"file,omitempty" jsonschema:"title=File,description=Log file path"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "simple"
	}
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	return nil
}

// CouncilMode selects how council members respond.
type CouncilMode string

const (
	// CouncilModeStatic uses deterministic echo responders (no network I/O).
	CouncilModeStatic CouncilMode = "static"
	// CouncilModeLLM backs every persona with the configured completion provider.
	CouncilModeLLM CouncilMode = "llm"
)

// CouncilConfig controls council assembly.
type CouncilConfig struct {
	// Mode is "static" or "llm".
	Mode CouncilMode `yaml:"mode,omitempty" json:"mode,omitempty" jsonschema:"title=Mode,enum=static,enum=llm,default=static"`

	// Specialists is the number of generated SPECIALIST_NNN entries.
	Specialists int `yaml:"specialists,omitempty" json:"specialists,omitempty" jsonschema:"title=Specialists,description=Number of generated specialist members,minimum=0,default=144"`
}

func (c *CouncilConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = CouncilModeStatic
	}
	if c.Specialists == 0 {
		c.Specialists = 144
	}
}

func (c *CouncilConfig) Validate() error {
	switch c.Mode {
	case CouncilModeStatic, CouncilModeLLM:
	default:
		return fmt.Errorf("invalid council mode %q (valid: static, llm)", c.Mode)
	}
	if c.Specialists < 0 {
		return fmt.Errorf("specialists must be non-negative")
	}
	return nil
}

// AuditConfig gates the Pinkas step audit trail.
type AuditConfig struct {
	// Enabled turns on per-step audit records.
	Enabled bool `yaml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"title=Enabled,description=Write per-step audit records,default=false"`
}

// ServerConfig controls the HTTP entrypoint.
type ServerConfig struct {
	// Host to bind (default 0.0.0.0).
	Host string `yaml:"host,omitempty" json:"host,omitempty" jsonschema:"title=Host,default=0.0.0.0"`

	// Port to listen on.
	Port int `yaml:"port,omitempty" json:"port,omitempty" jsonschema:"title=Port,minimum=1,maximum=65535,default=8080"`

	// Metrics enables the Prometheus /metrics endpoint.
	Metrics bool `yaml:"metrics,omitempty" json:"metrics,omitempty" jsonschema:"title=Metrics,description=Expose Prometheus metrics,default=false"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Address returns the host:port listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SetDefaults applies defaults to all sections.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.LLM.SetDefaults()
	c.Council.SetDefaults()
	c.Server.SetDefaults()
	if c.Pinkas.Driver == "" {
		c.Pinkas.Driver = "memory"
	}
	c.Pinkas.SetDefaults()
}

// Validate checks all sections. The LLM section is only required when the
// council actually uses it.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Council.Validate(); err != nil {
		return fmt.Errorf("council: %w", err)
	}
	if c.Council.Mode == CouncilModeLLM {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	if err := c.Pinkas.Validate(); err != nil {
		return fmt.Errorf("pinkas: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}
