// Package store holds the client-side cache of the remote contacts
// collection. Its contents always equal the most recently delivered
// snapshot: the subscription handler is the sole writer, and it only ever
// replaces the collection wholesale, so readers never observe a partial
// update.
package store

import (
	"sync"

	"rolodex/internal/models"
)

// LookupState qualifies a Find result. NotLoaded means no snapshot has
// arrived yet, which is not the same as the contact being absent.
type LookupState int

const (
	Found LookupState = iota
	NotFound
	NotLoaded
)

type Store struct {
	mu       sync.RWMutex
	contacts []models.Contact
	byID     map[string]int
	loaded   bool
}

func New() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// ReplaceAll atomically swaps the entire collection for the new snapshot.
// Only the subscription handler calls this.
func (s *Store) ReplaceAll(contacts []models.Contact) {
	copied := make([]models.Contact, len(contacts))
	copy(copied, contacts)

	byID := make(map[string]int, len(copied))
	for i, contact := range copied {
		byID[contact.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = copied
	s.byID = byID
	s.loaded = true
}

// Find returns the contact with the given id. Before the first snapshot the
// state is NotLoaded regardless of id.
func (s *Store) Find(id string) (models.Contact, LookupState) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return models.Contact{}, NotLoaded
	}
	if i, ok := s.byID[id]; ok {
		return s.contacts[i], Found
	}
	return models.Contact{}, NotFound
}

// All returns the snapshot contents in delivery order.
func (s *Store) All() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.contacts)
}

// Loaded reports whether at least one snapshot has arrived.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}
