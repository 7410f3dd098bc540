// Package memstore keeps values in memory; nothing survives the process.
package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/checklist/internal/store"
)

var _ store.KV = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
	writes int
}

// New returns a store seeded with a copy of initial.
func New(initial map[string]string) *Store {
	data := make(map[string]string, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &Store{data: data}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	s.data[key] = value
	s.writes++
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Writes reports how many Set calls succeeded.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
