package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/server"
)

// ServeCmd starts the HTTP server.
type ServeCmd struct {
	Port  int  `help:"Port to listen on." default:"8080"`
	Watch bool `help:"Watch the config file for changes."`
}

func (c *ServeCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	// On config change a whole new council and store are assembled and
	// swapped in; the running registry is never reshaped. In-flight missions
	// finish against the backend they started with.
	var srv *server.Server
	onChange := func(newCfg *config.Config) error {
		if srv == nil {
			return nil
		}
		newRT, err := buildRuntime(newCfg)
		if err != nil {
			return fmt.Errorf("reload rejected: %w", err)
		}
		// The previous backend's store stays open for in-flight requests
		// and is released at process exit.
		srv.SwapBackend(&server.Backend{
			Runner:   newRT.runner,
			Registry: newRT.registry,
			Store:    newRT.store,
		})
		slog.Info("Configuration reloaded",
			"council_mode", newCfg.Council.Mode,
			"members", newRT.registry.Count())
		return nil
	}

	cfg, loader, err := loadConfig(ctx, cli.Config, c.Watch, onChange)
	if err != nil {
		return err
	}
	if loader != nil {
		defer loader.Stop()
	}

	if c.Port != 0 && c.Port != 8080 {
		cfg.Server.Port = c.Port
	}

	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv = server.New(&cfg.Server, &server.Backend{
		Runner:   rt.runner,
		Registry: rt.registry,
		Store:    rt.store,
	})

	fmt.Printf("\nSanhedrin council ready\n")
	fmt.Printf("   Missions:  POST http://%s/v1/missions\n", cfg.Server.Address())
	fmt.Printf("   Agents:    GET  http://%s/v1/agents\n", cfg.Server.Address())
	fmt.Printf("   Health:    GET  http://%s/health\n", cfg.Server.Address())
	if cfg.Server.Metrics {
		fmt.Printf("   Metrics:   GET  http://%s/metrics\n", cfg.Server.Address())
	}
	fmt.Printf("   Council:   %d members (%s mode)\n", rt.registry.Count(), cfg.Council.Mode)
	fmt.Printf("   Pinkas:    %s\n", cfg.Pinkas.Driver)
	fmt.Println("\nPress Ctrl+C to stop")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
