package main

import (
	"context"
	"fmt"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
	"github.com/sanhedrin-ai/sanhedrin/pkg/llms"
	"github.com/sanhedrin-ai/sanhedrin/pkg/mission"
	"github.com/sanhedrin-ai/sanhedrin/pkg/observability"
	"github.com/sanhedrin-ai/sanhedrin/pkg/pinkas"
)

// runtime holds the assembled components of a running process.
type runtime struct {
	cfg      *config.Config
	store    pinkas.Store
	registry *agent.Registry
	runner   *mission.Runner
	provider llms.Provider
}

// loadConfig resolves the config source: an explicit path when given,
// otherwise built-in defaults.
func loadConfig(ctx context.Context, path string, watch bool, onChange func(*config.Config) error) (*config.Config, *config.Loader, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, nil, nil
	}

	loader, err := config.NewLoader(config.LoaderOptions{
		Path:     path,
		Watch:    watch,
		OnChange: onChange,
	})
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// buildRuntime assembles store, council, and runner from configuration.
func buildRuntime(cfg *config.Config) (*runtime, error) {
	store, err := pinkas.NewStore(&cfg.Pinkas)
	if err != nil {
		return nil, fmt.Errorf("failed to open pinkas store: %w", err)
	}
	recorder := pinkas.NewRecorder(store, cfg.Audit.Enabled)

	var provider llms.Provider
	if cfg.Council.Mode == config.CouncilModeLLM {
		provider, err = llms.New(&cfg.LLM)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to build completion provider: %w", err)
		}
	}

	registry, err := agent.BuildCouncil(&cfg.Council, agent.CouncilDeps{
		Provider: provider,
		LLM:      &cfg.LLM,
		Recorder: recorder,
	})
	if err != nil {
		if provider != nil {
			provider.Close()
		}
		store.Close()
		return nil, fmt.Errorf("failed to assemble council: %w", err)
	}

	metrics, err := observability.InitMetrics(cfg.Server.Metrics)
	if err != nil {
		if provider != nil {
			provider.Close()
		}
		store.Close()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	runner := mission.NewRunner(registry,
		mission.WithRecorder(recorder),
		mission.WithObserver(metrics),
	)

	return &runtime{
		cfg:      cfg,
		store:    store,
		registry: registry,
		runner:   runner,
		provider: provider,
	}, nil
}

func (rt *runtime) Close() {
	if rt.provider != nil {
		rt.provider.Close()
	}
	if rt.store != nil {
		rt.store.Close()
	}
}
