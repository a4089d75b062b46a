// Package favorites persists the user's favorite host names as a JSON
// array under a fixed key in a small key-value store.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/litescript/ls-orrery/internal/logging"
)

// StorageKey is the key holding the favorites array.
const StorageKey = "universe_viewer_favorites"

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Favorites reads and toggles the favorites list.
type Favorites struct {
	mu    sync.Mutex
	store Store
	log   *logging.Logger
}

// New wraps a store. A nil logger discards output.
func New(store Store, log *logging.Logger) *Favorites {
	if log == nil {
		log = logging.Discard()
	}
	return &Favorites{store: store, log: log}
}

// List returns the favorites in insertion order. A missing or unreadable
// value is reported as an empty list.
func (f *Favorites) List(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

func (f *Favorites) load(ctx context.Context) ([]string, error) {
	raw, ok, err := f.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	var hosts []string
	if err := json.Unmarshal([]byte(raw), &hosts); err != nil {
		f.log.Warn("ignoring unreadable favorites: %v", err)
		return []string{}, nil
	}
	if hosts == nil {
		hosts = []string{}
	}
	return hosts, nil
}

// Contains reports whether host is a favorite.
func (f *Favorites) Contains(ctx context.Context, host string) (bool, error) {
	hosts, err := f.List(ctx)
	if err != nil {
		return false, err
	}
	for _, h := range hosts {
		if h == host {
			return true, nil
		}
	}
	return false, nil
}

// Toggle adds host when absent and removes it when present, then returns
// the saved list.
func (f *Favorites) Toggle(ctx context.Context, host string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hosts, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(hosts)+1)
	found := false
	for _, h := range hosts {
		if h == host {
			found = true
			continue
		}
		next = append(next, h)
	}
	if !found {
		next = append(next, host)
	}

	if err := f.save(ctx, next); err != nil {
		return nil, err
	}
	f.log.Debug("toggled %q (now %d favorites)", host, len(next))
	return next, nil
}

// Replace overwrites the list.
func (f *Favorites) Replace(ctx context.Context, hosts []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if hosts == nil {
		hosts = []string{}
	}
	return f.save(ctx, hosts)
}

func (f *Favorites) save(ctx context.Context, hosts []string) error {
	data, err := json.Marshal(hosts)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.store.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (f *Favorites) Close() error {
	return f.store.Close()
}
