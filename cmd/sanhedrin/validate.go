package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
)

// ValidateCmd validates a configuration file.
type ValidateCmd struct {
	Config      string `arg:"" name:"config" help:"Configuration file path." placeholder:"PATH"`
	PrintConfig bool   `short:"p" name:"print-config" help:"Print the expanded configuration (defaults applied, env vars resolved)."`
}

func (c *ValidateCmd) Run(cli *CLI) error {
	loader, err := config.NewLoader(config.LoaderOptions{Path: c.Config})
	if err != nil {
		return err
	}
	defer loader.Stop()

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", c.Config, err)
	}

	fmt.Printf("%s: valid\n", c.Config)
	fmt.Printf("  council: %s mode, %d specialists\n", cfg.Council.Mode, cfg.Council.Specialists)
	fmt.Printf("  pinkas:  %s\n", cfg.Pinkas.Driver)
	fmt.Printf("  server:  %s\n", cfg.Server.Address())

	if c.PrintConfig {
		fmt.Println()
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}
