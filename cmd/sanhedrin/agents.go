package main

import (
	"context"
	"fmt"
	"strings"
)

// AgentsCmd lists the council members.
type AgentsCmd struct {
	Verbose bool `short:"v" help:"Include roles and capabilities."`
}

func (c *AgentsCmd) Run(cli *CLI) error {
	ctx := context.Background()

	cfg, loader, err := loadConfig(ctx, cli.Config, false, nil)
	if err != nil {
		return err
	}
	if loader != nil {
		defer loader.Stop()
	}

	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Printf("Council members (%d):\n", rt.registry.Count())
	for _, d := range rt.registry.List() {
		if c.Verbose {
			fmt.Printf("  %-16s %s", d.Name, d.Role)
			if len(d.Capabilities) > 0 {
				fmt.Printf(" [%s]", strings.Join(d.Capabilities, ", "))
			}
			fmt.Println()
		} else {
			fmt.Printf("  %s\n", d.Name)
		}
	}
	return nil
}
