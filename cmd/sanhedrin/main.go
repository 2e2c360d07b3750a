// Command sanhedrin runs the mission orchestration council.
//
// Usage:
//
//	sanhedrin serve --config config.yaml
//	sanhedrin run PRAYER_DISTRIBUTION --payload '{"topic": "gratitude"}'
//	sanhedrin validate config.yaml
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/logger"
)

// CLI defines the command-line interface.
type CLI struct {
	Version  VersionCmd  `cmd:"" help:"Show version information."`
	Serve    ServeCmd    `cmd:"" help:"Start the HTTP server."`
	Run      RunCmd      `cmd:"" help:"Run a single mission from the command line."`
	Agents   AgentsCmd   `cmd:"" help:"List the council members."`
	Validate ValidateCmd `cmd:"" help:"Validate a configuration file."`
	Schema   SchemaCmd   `cmd:"" help:"Generate the JSON Schema for configuration files."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("sanhedrin version %s\n", version)
	return nil
}

func main() {
	// .env values feed ${VAR} references in config files.
	config.LoadEnvFiles(".env")

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("sanhedrin"),
		kong.Description("Sanhedrin - agent council mission orchestration"),
		kong.UsageOnError(),
	)

	cleanup, err := initLogging(cli.LogLevel, cli.LogFile, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	err = ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// initLogging configures the process logger from CLI flags, falling back to
// LOG_LEVEL, LOG_FILE, and LOG_FORMAT environment variables.
func initLogging(level, file, format string) (func(), error) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	if file == "" {
		file = os.Getenv("LOG_FILE")
	}
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if format == "" {
		format = "simple"
	}

	output := os.Stderr
	var cleanup func()
	if file != "" {
		f, closeFn, err := logger.OpenLogFile(file)
		if err != nil {
			return nil, err
		}
		output = f
		cleanup = closeFn
	}

	logger.Init(logger.ParseLevel(level), output, format)
	return cleanup, nil
}
