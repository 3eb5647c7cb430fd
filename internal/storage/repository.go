// Package storage holds the backend-agnostic contract used by the apply
// command and a registry of backend factories.
//
// Backends register themselves from init(); import
// productseed/internal/storage/all to enable every built-in kind.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"
)

// ErrUnsupportedKind is returned by New for an unregistered kind.
var ErrUnsupportedKind = errors.New("unsupported storage kind")

// Repository executes a rendered seed statement.
type Repository interface {
	// Exec runs sql once, as-is.
	Exec(ctx context.Context, sql string) error
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string
	DSN  string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository with the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedKind, "kind %q (registered: %v)", cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
