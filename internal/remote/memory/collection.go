// Package memory implements the contacts collection in process memory. It
// exists for tests and for running the UI without a Redis instance; the
// semantics mirror the redis backend (insertion order, full-snapshot push,
// store-assigned ids), except that snapshots are delivered synchronously on
// the mutating goroutine.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rolodex/internal/models"
	"rolodex/internal/remote"
)

type Collection struct {
	mu      sync.Mutex
	order   []string
	docs    map[string]models.Contact
	subs    map[int]remote.SnapshotFunc
	nextSub int
	failure error
}

func New() *Collection {
	return &Collection{
		docs: make(map[string]models.Contact),
		subs: make(map[int]remote.SnapshotFunc),
	}
}

// Seed inserts contacts with pre-assigned ids and notifies subscribers.
func (c *Collection) Seed(contacts ...models.Contact) {
	c.mu.Lock()
	for _, contact := range contacts {
		if _, exists := c.docs[contact.ID]; !exists {
			c.order = append(c.order, contact.ID)
		}
		c.docs[contact.ID] = contact
	}
	c.mu.Unlock()
	c.broadcast()
}

// FailWith makes every following operation return the given error until
// called again with nil.
func (c *Collection) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failure = err
}

func (c *Collection) Subscribe(_ context.Context, onSnapshot remote.SnapshotFunc) (remote.UnsubscribeFunc, error) {
	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		return nil, remote.NewSubscriptionError("failed to subscribe", err)
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = onSnapshot
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	onSnapshot(snapshot)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}, nil
}

func (c *Collection) Create(_ context.Context, fields models.ContactFields) error {
	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		return remote.ClassifyError(err)
	}
	id := uuid.NewString()
	c.docs[id] = fields.WithID(id)
	c.order = append(c.order, id)
	c.mu.Unlock()

	c.broadcast()
	return nil
}

func (c *Collection) Update(_ context.Context, id string, fields models.ContactFields) error {
	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		return remote.ClassifyError(err)
	}
	if _, exists := c.docs[id]; !exists {
		c.mu.Unlock()
		return remote.NewNotFoundError(id)
	}
	c.docs[id] = fields.WithID(id)
	c.mu.Unlock()

	c.broadcast()
	return nil
}

func (c *Collection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	if c.failure != nil {
		err := c.failure
		c.mu.Unlock()
		return remote.ClassifyError(err)
	}
	if _, exists := c.docs[id]; !exists {
		c.mu.Unlock()
		return remote.NewNotFoundError(id)
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.broadcast()
	return nil
}

// Contacts returns the current ordered contents, for test assertions.
func (c *Collection) Contacts() []models.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Collection) snapshotLocked() []models.Contact {
	snapshot := make([]models.Contact, 0, len(c.order))
	for _, id := range c.order {
		snapshot = append(snapshot, c.docs[id])
	}
	return snapshot
}

func (c *Collection) broadcast() {
	c.mu.Lock()
	snapshot := c.snapshotLocked()
	subs := make([]remote.SnapshotFunc, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}
