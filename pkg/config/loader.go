package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/consul/api"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/consul"
	"github.com/knadh/koanf/providers/etcd"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SourceType identifies where configuration is loaded from.
type SourceType string

const (
	SourceFile   SourceType = "file"
	SourceConsul SourceType = "consul"
	SourceEtcd   SourceType = "etcd"
)

// LoaderOptions configures a config Loader.
type LoaderOptions struct {
	// Type of the config source. Defaults to file.
	Type SourceType

	// Path is the file path or remote key.
	Path string

	// Endpoints for remote sources.
	Endpoints []string

	// Watch enables change notification via OnChange.
	Watch bool

	// OnChange is invoked with the freshly validated config on each reload.
	OnChange func(*Config) error
}

// Loader loads, validates, and optionally watches configuration.
type Loader struct {
	koanf    *koanf.Koanf
	options  LoaderOptions
	parser   *yaml.YAML
	stopOnce sync.Once
	stopChan chan struct{}
}

func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.Type == "" {
		opts.Type = SourceFile
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if len(opts.Endpoints) == 0 {
		switch opts.Type {
		case SourceConsul:
			opts.Endpoints = []string{"localhost:8500"}
		case SourceEtcd:
			opts.Endpoints = []string{"localhost:2379"}
		}
	}

	return &Loader{
		koanf:    koanf.New("."),
		options:  opts,
		parser:   yaml.Parser(),
		stopChan: make(chan struct{}),
	}, nil
}

// Load reads the config source, expands environment references, applies
// defaults, and validates. When watching is enabled, a watcher goroutine is
// started after the first successful load.
func (l *Loader) Load() (*Config, error) {
	provider, parser, err := l.buildProvider()
	if err != nil {
		return nil, err
	}

	if err := l.koanf.Load(provider, parser); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", l.options.Type, err)
	}

	cfg, err := l.unmarshalAndProcess()
	if err != nil {
		return nil, err
	}

	if l.options.Watch {
		switch l.options.Type {
		case SourceFile:
			go l.watchFile()
		default:
			go l.watchProvider(provider, parser)
		}
	}

	return cfg, nil
}

// Stop terminates any watcher goroutine.
func (l *Loader) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

func (l *Loader) buildProvider() (koanf.Provider, koanf.Parser, error) {
	switch l.options.Type {
	case SourceFile:
		return file.Provider(l.options.Path), l.parser, nil

	case SourceConsul:
		consulConfig := api.DefaultConfig()
		consulConfig.Address = l.options.Endpoints[0]
		return consul.Provider(consul.Config{
			Cfg: consulConfig,
			Key: l.options.Path,
		}), nil, nil

	case SourceEtcd:
		return etcd.Provider(etcd.Config{
			Endpoints:   l.options.Endpoints,
			DialTimeout: 5 * time.Second,
			Key:         l.options.Path,
		}), nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported config source: %s", l.options.Type)
	}
}

func (l *Loader) unmarshalAndProcess() (*Config, error) {
	// Expand ${VAR} references in every string value before unmarshalling.
	for key, value := range l.koanf.All() {
		if s, ok := value.(string); ok {
			if expanded := ExpandEnvVars(s); expanded != s {
				if err := l.koanf.Set(key, expanded); err != nil {
					return nil, fmt.Errorf("failed to expand %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := l.koanf.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// watchFile watches the config file for changes with fsnotify. The parent
// directory is watched because editors typically replace the file on save.
func (l *Loader) watchFile() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("config watcher failed to start", "error", err)
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(l.options.Path)
	if err := watcher.Add(dir); err != nil {
		slog.Warn("config watcher failed to watch directory", "dir", dir, "error", err)
		return
	}

	target, _ := filepath.Abs(l.options.Path)
	slog.Info("config watcher started", "path", l.options.Path)

	for {
		select {
		case <-l.stopChan:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			evPath, _ := filepath.Abs(event.Name)
			if evPath != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			l.reload(file.Provider(l.options.Path), l.parser)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watch error", "error", err)
		}
	}
}

// providerWatcher is implemented by koanf providers that support watching.
type providerWatcher interface {
	Watch(cb func(event interface{}, err error)) error
}

func (l *Loader) watchProvider(provider koanf.Provider, parser koanf.Parser) {
	watcher, ok := provider.(providerWatcher)
	if !ok {
		slog.Warn("config provider does not support watching", "type", string(l.options.Type))
		return
	}

	slog.Info("config watcher started", "type", string(l.options.Type))

	err := watcher.Watch(func(event interface{}, err error) {
		select {
		case <-l.stopChan:
			return
		default:
		}

		if err != nil {
			slog.Warn("config watch error", "error", err)
			return
		}

		l.reload(provider, parser)
	})
	if err != nil {
		slog.Warn("config watcher stopped", "error", err)
	}
}

func (l *Loader) reload(provider koanf.Provider, parser koanf.Parser) {
	fresh := koanf.New(".")
	if err := fresh.Load(provider, parser); err != nil {
		slog.Warn("config reload failed", "error", err)
		return
	}
	l.koanf = fresh

	newCfg, err := l.unmarshalAndProcess()
	if err != nil {
		slog.Warn("reloaded config rejected", "error", err)
		return
	}

	if l.options.OnChange == nil {
		slog.Warn("config change detected but no OnChange callback is set")
		return
	}

	if err := l.options.OnChange(newCfg); err != nil {
		slog.Warn("config change callback failed", "error", err)
		return
	}
	slog.Info("configuration reloaded", "type", string(l.options.Type))
}
