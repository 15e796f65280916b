package modes

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateMode is returned when two modes register the same name.
	ErrDuplicateMode = errors.New("mode already registered")
	// ErrModeNotFound is returned when a name does not match any registered mode.
	ErrModeNotFound = errors.New("mode not found")
)

// Registry maps mode names to modes. It is filled during initialization and only read afterwards.
type Registry struct {
	modes map[string]Mode
}

// NewRegistry registers the given modes in order and fails on the first name collision.
func NewRegistry(ms ...Mode) (*Registry, error) {
	r := &Registry{modes: make(map[string]Mode, len(ms))}
	for _, m := range ms {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a mode keyed by its name. The zero Registry is ready to use.
func (r *Registry) Register(mode Mode) error {
	if mode == nil {
		return fmt.Errorf("register mode: nil mode")
	}
	if r.modes == nil {
		r.modes = make(map[string]Mode)
	}
	name := mode.Name()
	if _, exists := r.modes[name]; exists {
		return fmt.Errorf("register mode %q: %w", name, ErrDuplicateMode)
	}
	r.modes[name] = mode
	return nil
}

// Get returns the mode registered under exactly this name
func (r *Registry) Get(name string) (Mode, error) {
	mode, ok := r.modes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModeNotFound, name)
	}
	return mode, nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValid reports whether name is registered
func (r *Registry) IsValid(name string) bool {
	_, ok := r.modes[name]
	return ok
}

// mustGet is used for catalog members the registry is known to contain.
func (r *Registry) mustGet(name string) Mode {
	mode, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return mode
}
