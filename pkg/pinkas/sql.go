package pinkas

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sanhedrin-ai/sanhedrin/pkg/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore persists entries via database/sql. Supports PostgreSQL, MySQL,
// and SQLite with a shared schema.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS pinkas_entries (
    id VARCHAR(36) PRIMARY KEY,
    kind VARCHAR(16) NOT NULL,
    agent VARCHAR(255) NOT NULL,
    step_index INTEGER NOT NULL DEFAULT 0,
    action VARCHAR(255),
    content TEXT,
    metadata TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pinkas_agent ON pinkas_entries(agent);
CREATE INDEX IF NOT EXISTS idx_pinkas_created_at ON pinkas_entries(created_at);
`

// NewSQLStore opens the database described by cfg and ensures the schema.
func NewSQLStore(cfg *config.DatabaseConfig) (*SQLStore, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pinkas configuration: %w", err)
	}

	// Config uses "sqlite" but the go-sqlite3 driver registers as "sqlite3".
	driverName := cfg.Driver
	if driverName == "sqlite" {
		driverName = "sqlite3"
	}

	if driverName == "sqlite3" {
		if dir := filepath.Dir(cfg.Database); dir != "." && dir != "/" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create pinkas directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open pinkas database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping pinkas database: %w", err)
	}

	s := &SQLStore{db: db, dialect: cfg.Driver}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create pinkas schema: %w", err)
	}
	return nil
}

func (s *SQLStore) insert(ctx context.Context, entry Entry) error {
	metaJSON := "{}"
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		metaJSON = string(b)
	}

	query := `INSERT INTO pinkas_entries (id, kind, agent, step_index, action, content, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if s.dialect != "postgres" {
		query = `INSERT INTO pinkas_entries (id, kind, agent, step_index, action, content, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	}

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, string(entry.Kind), entry.Agent, entry.StepIndex,
		entry.Action, entry.Content, metaJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append pinkas entry: %w", err)
	}
	return nil
}

func (s *SQLStore) LogStep(ctx context.Context, agent string, stepIndex int, content string, meta map[string]string) error {
	return s.insert(ctx, Entry{
		ID:        uuid.NewString(),
		Kind:      KindStep,
		Agent:     agent,
		StepIndex: stepIndex,
		Content:   content,
		Metadata:  meta,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *SQLStore) LogAction(ctx context.Context, agent string, action, detail string, meta map[string]string) error {
	return s.insert(ctx, Entry{
		ID:        uuid.NewString(),
		Kind:      KindAction,
		Agent:     agent,
		Action:    action,
		Content:   detail,
		Metadata:  meta,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *SQLStore) ListActions(ctx context.Context, agent string) ([]Entry, error) {
	query := `SELECT id, kind, agent, step_index, action, content, metadata, created_at
FROM pinkas_entries WHERE agent = $1 ORDER BY created_at, id`
	if s.dialect != "postgres" {
		query = `SELECT id, kind, agent, step_index, action, content, metadata, created_at
FROM pinkas_entries WHERE agent = ? ORDER BY created_at, id`
	}

	rows, err := s.db.QueryContext(ctx, query, agent)
	if err != nil {
		return nil, fmt.Errorf("failed to list pinkas entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, metaJSON string
		var action sql.NullString
		if err := rows.Scan(&e.ID, &kind, &e.Agent, &e.StepIndex, &action, &e.Content, &metaJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pinkas entry: %w", err)
		}
		e.Kind = EntryKind(kind)
		e.Action = action.String
		if metaJSON != "" && metaJSON != "{}" {
			if err := json.Unmarshal([]byte(metaJSON), &e.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
