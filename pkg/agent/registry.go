package agent

import (
	"errors"
	"fmt"

	"github.com/sanhedrin-ai/sanhedrin/pkg/registry"
)

// ErrNotFound is returned when a name is absent from the council. Resolving
// an unknown agent is a configuration error and is never retried.
var ErrNotFound = errors.New("agent not found")

// NotFoundError carries the missing name and unwraps to ErrNotFound.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent %q not found in council", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Registry is the read-only council lookup table.
type Registry struct {
	*registry.BaseRegistry[*Descriptor]
}

func NewRegistry() *Registry {
	return &Registry{BaseRegistry: registry.NewBaseRegistry[*Descriptor]()}
}

// Add registers a member. Fails after Freeze.
func (r *Registry) Add(d *Descriptor) error {
	if d == nil {
		return fmt.Errorf("descriptor cannot be nil")
	}
	return r.Register(d.Name, d)
}

// Lookup resolves a member by name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d, exists := r.Get(name)
	if !exists {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}
