package pinkas

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps entries in process memory. Used for tests and for
// running without a database.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *MemoryStore) LogStep(ctx context.Context, agent string, stepIndex int, content string, meta map[string]string) error {
	s.append(Entry{
		ID:        uuid.NewString(),
		Kind:      KindStep,
		Agent:     agent,
		StepIndex: stepIndex,
		Content:   content,
		Metadata:  meta,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *MemoryStore) LogAction(ctx context.Context, agent string, action, detail string, meta map[string]string) error {
	s.append(Entry{
		ID:        uuid.NewString(),
		Kind:      KindAction,
		Agent:     agent,
		Action:    action,
		Content:   detail,
		Metadata:  meta,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *MemoryStore) ListActions(ctx context.Context, agent string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []Entry
	for _, e := range s.entries {
		if e.Agent == agent {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// All returns every entry in append order.
func (s *MemoryStore) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *MemoryStore) Close() error {
	return nil
}
