package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanhedrin-ai/sanhedrin/pkg/mission"
)

// RunCmd executes one mission and prints the result envelope as JSON.
type RunCmd struct {
	MissionType string `arg:"" name:"mission-type" help:"Mission type (PRAYER_DISTRIBUTION, RESEARCH, CONTENT_CREATION)."`
	Payload     string `short:"p" help:"Mission payload as a JSON object." default:"{}"`
	UserID      string `name:"user-id" help:"Requesting user identifier." default:"cli"`
}

func (c *RunCmd) Run(cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(c.Payload), &payload); err != nil {
		return fmt.Errorf("invalid payload JSON: %w", err)
	}

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

	result := rt.runner.Run(ctx, c.MissionType, c.UserID, payload)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if result.Status != mission.StatusSuccess {
		return fmt.Errorf("mission failed: %s", result.Summary)
	}
	return nil
}
