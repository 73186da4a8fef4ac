// Package memory holds the ledger snapshot in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// Store keeps a deep copy of the last saved snapshot.
type Store struct {
	mu    sync.Mutex
	snap  *storage.Snapshot
	saves int
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// NewStoreWith returns a Store preloaded with snap.
func NewStoreWith(snap *storage.Snapshot) *Store {
	return &Store{snap: clone(snap)}
}

func (s *Store) Load(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return storage.NewSnapshot(), nil
	}
	return clone(s.snap), nil
}

func (s *Store) Save(ctx context.Context, snap *storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = clone(snap)
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func clone(snap *storage.Snapshot) *storage.Snapshot {
	copied := &storage.Snapshot{
		Accounts:     append([]storage.Account{}, snap.Accounts...),
		Transactions: append([]storage.Transaction{}, snap.Transactions...),
		Settings:     make(map[string]string, len(snap.Settings)),
	}
	for key, value := range snap.Settings {
		copied.Settings[key] = value
	}
	return copied
}
