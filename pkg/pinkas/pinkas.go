// Package pinkas implements the append-only activity log. Every entry is an
// independent insert; entries are never updated or deleted, so concurrent
// writers need no coordination beyond what the storage layer provides.
package pinkas

import (
	"context"
	"fmt"
	"time"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"
)

// EntryKind distinguishes audit steps from agent actions.
type EntryKind string

const (
	KindStep   EntryKind = "step"
	KindAction EntryKind = "action"
)

// Entry is one appended record.
type Entry struct {
	ID        string            `json:"id"`
	Kind      EntryKind         `json:"kind"`
	Agent     string            `json:"agent"`
	StepIndex int               `json:"step_index,omitempty"`
	Action    string            `json:"action,omitempty"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store is an append-only entry sink with read access for listings.
type Store interface {
	// LogStep appends an audit record for one pipeline step of an agent.
	LogStep(ctx context.Context, agent string, stepIndex int, content string, meta map[string]string) error

	// LogAction appends an action record for an agent.
	LogAction(ctx context.Context, agent string, action, detail string, meta map[string]string) error

	// ListActions returns all entries for an agent in append order.
	ListActions(ctx context.Context, agent string) ([]Entry, error)

	Close() error
}

// NewStore builds a store from configuration.
func NewStore(cfg *config.DatabaseConfig) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pinkas configuration is required")
	}

	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3", "postgres", "mysql":
		return NewSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported pinkas driver: %s", cfg.Driver)
	}
}
